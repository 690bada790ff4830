package handler

import (
	"errors"
	"net/http"
	"reflect"

	"biowearth/internal/apierror"
	"biowearth/internal/calc"
	"biowearth/internal/document"
	"biowearth/internal/infra"
	"biowearth/internal/middleware"
	"biowearth/internal/model"
	"biowearth/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails; the caller
// should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Newf("Invalid JSON: %v", err))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// kindParam resolves the :kind path parameter, writing a 404 when unknown.
func kindParam(c *gin.Context) (model.Kind, bool) {
	kind := model.Kind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusNotFound, apierror.Newf("%s: %s", service.ErrUnknownKind, kind))
		return "", false
	}
	return kind, true
}

// companyKind resolves the :type path parameter of company routes.
func companyKind(c *gin.Context) (model.Kind, bool) {
	switch kind := model.Kind(c.Param("type")); kind {
	case model.KindVendor, model.KindClient:
		return kind, true
	default:
		c.JSON(http.StatusNotFound, apierror.New(service.ErrNotACompany.Error()))
		return "", false
	}
}

// respondError maps service errors to a status and a client-safe message.
func respondError(c *gin.Context, err error) {
	var milestone *calc.MilestoneError
	switch {
	case errors.As(err, &milestone):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(milestone.Error()))
	case errors.Is(err, document.ErrNoSheets):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrUnknownKind),
		errors.Is(err, service.ErrRecordNotFound),
		errors.Is(err, service.ErrUnknownSetting),
		errors.Is(err, document.ErrSourceNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrConfirmationRequired),
		errors.Is(err, service.ErrNotACompany),
		errors.Is(err, service.ErrTermOutOfRange),
		errors.Is(err, service.ErrNothingToApply),
		errors.Is(err, document.ErrUnknownType):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrDocNotRequired),
		errors.Is(err, service.ErrDocNotReceived),
		errors.Is(err, service.ErrSessionClosed):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrProtectedUser):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.Is(err, infra.ErrCircuitOpen):
		c.JSON(http.StatusServiceUnavailable, apierror.New("Store temporarily unavailable"))
	case errors.Is(err, service.ErrStoreWrite):
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("handler: store write failed")
		c.JSON(http.StatusBadGateway, apierror.New("Failed to save changes"))
	default:
		_ = c.Error(err)
	}
}
