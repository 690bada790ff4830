package handler

import (
	"net/http"

	"biowearth/internal/apierror"
	"biowearth/internal/dto"
	"biowearth/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// List godoc
// @Summary All settings lists
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Router /v1/settings [get]
func (h *SettingsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.All())
}

func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddItem godoc
// @Summary Add a settings item
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Param key path string true "Settings key"
// @Param body body dto.SettingItemRequest true "Item"
// @Success 200 {object} dto.SettingResponse
// @Failure 403 {object} apierror.APIError
// @Router /v1/settings/{key} [post]
func (h *SettingsHandler) AddItem(c *gin.Context) {
	var req dto.SettingItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), c.Param("key"), req.Item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveItem deletes ?item= from the list.
//
// @Summary Remove a settings item
// @Tags settings
// @Security BearerAuth
// @Param key path string true "Settings key"
// @Param item query string true "Item to remove"
// @Success 200 {object} dto.SettingResponse
// @Router /v1/settings/{key} [delete]
func (h *SettingsHandler) RemoveItem(c *gin.Context) {
	item := c.Query("item")
	if item == "" {
		c.JSON(http.StatusBadRequest, apierror.New("item is required"))
		return
	}
	resp, err := h.svc.RemoveItem(c.Request.Context(), c.Param("key"), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
