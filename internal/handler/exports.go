package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"biowearth/internal/apierror"
	"biowearth/internal/document"
	"biowearth/internal/dto"
	"biowearth/internal/infra"
	"biowearth/internal/worker"

	"github.com/gin-gonic/gin"
)

// ExportsHandler renders RFQ and ORS sheets to PDF, either inline or through
// the export worker pool.
type ExportsHandler struct {
	src        SnapshotSource
	dispatcher *worker.Dispatcher
}

func NewExportsHandler(src SnapshotSource, dispatcher *worker.Dispatcher) *ExportsHandler {
	return &ExportsHandler{src: src, dispatcher: dispatcher}
}

// PDF streams one sheet as an attachment. An ORS yields one sheet per
// recipient; ?sheet= selects it (default 0).
func (h *ExportsHandler) PDF(docType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sheets, err := document.Sheets(h.src.Snapshot(), docType, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		idx, err := strconv.Atoi(c.DefaultQuery("sheet", "0"))
		if err != nil || idx < 0 || idx >= len(sheets) {
			c.JSON(http.StatusBadRequest, apierror.Newf("sheet must be between 0 and %d", len(sheets)-1))
			return
		}
		sheet := sheets[idx]
		data, err := infra.RenderSheetPDF(sheet)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(sheet.FileName)))
		c.Header("X-Sheet-Count", strconv.Itoa(len(sheets)))
		c.Data(http.StatusOK, "application/pdf", data)
	}
}

// Enqueue validates the source record exists and queues the export.
//
// @Summary Queue a PDF export
// @Tags exports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.ExportRequest true "Document to export"
// @Success 202 {object} dto.ExportResponse
// @Router /v1/exports [post]
func (h *ExportsHandler) Enqueue(c *gin.Context) {
	var req dto.ExportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if _, err := document.Sheets(h.src.Snapshot(), req.Type, req.ID); err != nil {
		respondError(c, err)
		return
	}
	jobID, err := h.dispatcher.EnqueueExport(c.Request.Context(), worker.ExportPayload{Type: req.Type, ID: req.ID})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, dto.ExportResponse{JobID: jobID, Status: worker.StateQueued})
}

// Status godoc
// @Summary Export job status
// @Tags exports
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job id"
// @Failure 404 {object} apierror.APIError
// @Router /v1/exports/{id} [get]
func (h *ExportsHandler) Status(c *gin.Context) {
	st, ok, err := h.dispatcher.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Export job not found"))
		return
	}
	c.JSON(http.StatusOK, st)
}
