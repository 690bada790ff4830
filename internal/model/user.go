package model

// Roles
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

// UserProfile is an application login. Password is stored and compared in plain
// text: the login is a UI gate, not a security boundary.
type UserProfile struct {
	Meta
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the profile may open the admin panel.
func (u UserProfile) IsAdmin() bool { return u.Role == RoleAdmin }

// Built-in administrator created when the users collection is empty.
const (
	DefaultAdminName     = "System Admin"
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "password123"
)
