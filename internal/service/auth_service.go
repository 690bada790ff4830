package service

import (
	"context"
	"errors"
	"time"

	"biowearth/internal/config"
	"biowearth/internal/dto"
	"biowearth/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredentials = errors.New("Invalid username or password")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	reader Reader
	cfg    *config.Config
	now    func() time.Time
}

func NewAuthService(reader Reader, cfg *config.Config) AuthService {
	return &authService{reader: reader, cfg: cfg, now: time.Now}
}

// Login matches username and password exactly against the mirrored user profiles.
// Passwords are stored in plain text; the login gates the UI only.
func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var user *model.UserProfile
	for _, u := range s.reader.Snapshot().Users {
		if u.Username == req.Username && u.Password == req.Password {
			u := u
			user = &u
			break
		}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := s.generateToken(*user, ttl)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User: dto.UserResponse{
			ID:       user.ID,
			Name:     user.Name,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

func (s *authService) generateToken(u model.UserProfile, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"name":     u.Name,
		"role":     u.Role,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}
