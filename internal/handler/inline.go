package handler

import (
	"net/http"
	"strconv"

	"biowearth/internal/apierror"
	"biowearth/internal/dto"
	"biowearth/internal/service"

	"github.com/gin-gonic/gin"
)

// InlineHandler serves the one-field edits made on boards and detail screens.
type InlineHandler struct{ svc service.InlineService }

func NewInlineHandler(svc service.InlineService) *InlineHandler {
	return &InlineHandler{svc: svc}
}

// ToggleTask godoc
// @Summary Toggle task completion
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task id"
// @Router /v1/tasks/{id}/toggle [post]
func (h *InlineHandler) ToggleTask(c *gin.Context) {
	status, err := h.svc.ToggleTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *InlineHandler) PatchTask(c *gin.Context) {
	var req dto.TaskPatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.PatchTask(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetCompanyStatus godoc
// @Summary Set company status
// @Tags companies
// @Security BearerAuth
// @Accept json
// @Param body body dto.CompanyStatusRequest true "Status"
// @Router /v1/companies/{type}/{id}/status [patch]
func (h *InlineHandler) SetCompanyStatus(c *gin.Context) {
	kind, ok := companyKind(c)
	if !ok {
		return
	}
	var req dto.CompanyStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetCompanyStatus(c.Request.Context(), kind, c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// TogglePayment godoc
// @Summary Toggle a payment milestone
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order id"
// @Param idx path int true "Milestone index"
// @Failure 400 {object} apierror.APIError
// @Router /v1/orders/{id}/payment-terms/{idx}/toggle [post]
func (h *InlineHandler) TogglePayment(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid payment term index"))
		return
	}
	status, err := h.svc.TogglePayment(c.Request.Context(), c.Param("id"), idx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *InlineHandler) ToggleDoc(c *gin.Context) {
	required, err := h.svc.ToggleDoc(c.Request.Context(), c.Param("id"), c.Param("doc"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"required": required})
}

// PatchDoc godoc
// @Summary Edit an order document
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Param body body dto.DocPatchRequest true "Document fields"
// @Failure 409 {object} apierror.APIError
// @Router /v1/orders/{id}/docs/{doc} [patch]
func (h *InlineHandler) PatchDoc(c *gin.Context) {
	var req dto.DocPatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.PatchDoc(c.Request.Context(), c.Param("id"), c.Param("doc"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
