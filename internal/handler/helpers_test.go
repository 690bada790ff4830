package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"biowearth/internal/calc"
	"biowearth/internal/document"
	"biowearth/internal/infra"
	"biowearth/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func init() { gin.SetMode(gin.TestMode) }

func TestRespondError_StatusMapping(t *testing.T) {
	storeDown := fmt.Errorf("%w: %w", service.ErrStoreWrite, errors.New("dial tcp: refused"))
	breakerOpen := fmt.Errorf("%w: %w", service.ErrStoreWrite, infra.ErrCircuitOpen)

	cases := []struct {
		err  error
		want int
	}{
		{service.ErrRecordNotFound, http.StatusNotFound},
		{service.ErrUnknownKind, http.StatusNotFound},
		{document.ErrSourceNotFound, http.StatusNotFound},
		{document.ErrNoSheets, http.StatusUnprocessableEntity},
		{service.ErrConfirmationRequired, http.StatusBadRequest},
		{service.ErrTermOutOfRange, http.StatusBadRequest},
		{service.ErrDocNotReceived, http.StatusConflict},
		{service.ErrProtectedUser, http.StatusForbidden},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{&calc.MilestoneError{Sum: decimal.NewFromInt(90)}, http.StatusUnprocessableEntity},
		{storeDown, http.StatusBadGateway},
		{breakerOpen, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(c, tc.err)
		assert.Equal(t, tc.want, w.Code, tc.err.Error())
	}
}

func TestRespondError_StoreDetailsStayServerSide(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	respondError(c, fmt.Errorf("%w: %w", service.ErrStoreWrite, errors.New("pq: password authentication failed")))
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestRespondError_UnknownErrorsAreAttached(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, errors.New("unexpected"))
	assert.Len(t, c.Errors, 1)
}
