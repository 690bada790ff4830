package handler

import (
	"net/http"
	"strconv"

	"biowearth/internal/apierror"
	"biowearth/internal/document"
	"biowearth/internal/dto"
	"biowearth/internal/middleware"
	"biowearth/internal/model"
	"biowearth/internal/service"
	"biowearth/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RecordsHandler exposes the generic create/read/update/delete surface of
// every record kind. User records are restricted to admins.
type RecordsHandler struct {
	svc service.Coordinator
	src SnapshotSource
}

func NewRecordsHandler(svc service.Coordinator, src SnapshotSource) *RecordsHandler {
	return &RecordsHandler{svc: svc, src: src}
}

func (h *RecordsHandler) kind(c *gin.Context) (model.Kind, bool) {
	kind, ok := kindParam(c)
	if !ok {
		return "", false
	}
	if kind == model.KindUser {
		if claims := middleware.GetClaims(c); claims == nil || claims.Role != model.RoleAdmin {
			c.JSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
			return "", false
		}
	}
	return kind, true
}

func bindFields(c *gin.Context) (store.Fields, bool) {
	var fields store.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Newf("Invalid JSON: %v", err))
		return nil, false
	}
	if fields == nil {
		fields = store.Fields{}
	}
	return fields, true
}

// redact drops fields that must never be echoed back to a client.
func redact(kind model.Kind, doc store.Document) store.Document {
	if kind != model.KindUser {
		return doc
	}
	fields := doc.Fields.Clone()
	delete(fields, "password")
	return store.Document{ID: doc.ID, Fields: fields}
}

// List godoc
// @Summary List records of a kind
// @Tags records
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Record kind"
// @Success 200 {array} dto.RecordResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/records/{kind} [get]
func (h *RecordsHandler) List(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	docs, err := h.svc.Records(kind)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]store.Document, len(docs))
	for i, d := range docs {
		out[i] = redact(kind, d)
	}
	c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get one record
// @Tags records
// @Security BearerAuth
// @Produce json
// @Param kind path string true "Record kind"
// @Param id path string true "Record id"
// @Success 200 {object} dto.RecordResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/records/{kind}/{id} [get]
func (h *RecordsHandler) Get(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	doc, err := h.svc.Record(kind, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RecordResponse{Kind: string(kind), Record: redact(kind, doc)})
}

// Create godoc
// @Summary Create a record
// @Tags records
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "Record kind"
// @Success 201 {object} dto.CreatedResponse
// @Failure 422 {object} apierror.APIError
// @Failure 502 {object} apierror.APIError
// @Router /v1/records/{kind} [post]
func (h *RecordsHandler) Create(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	id, err := h.svc.Save(c.Request.Context(), kind, "", fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id})
}

// Update godoc
// @Summary Update a record
// @Tags records
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "Record kind"
// @Param id path string true "Record id"
// @Success 200 {object} dto.RecordResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/records/{kind}/{id} [put]
func (h *RecordsHandler) Update(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	id, err := h.svc.Save(c.Request.Context(), kind, c.Param("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreatedResponse{ID: id})
}

// Delete requires ?confirm=true; references to the record are left dangling.
//
// @Summary Delete a record
// @Tags records
// @Security BearerAuth
// @Param kind path string true "Record kind"
// @Param id path string true "Record id"
// @Param confirm query bool true "Must be true"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/records/{kind}/{id} [delete]
func (h *RecordsHandler) Delete(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.svc.Delete(c.Request.Context(), kind, c.Param("id"), confirmed); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Preview returns the draft a form would hold after applying the body, with
// derived fields filled in. Nothing is written. ?id= previews an edit.
//
// @Summary Preview a draft
// @Tags records
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "Record kind"
// @Param id query string false "Existing record to start from"
// @Success 200 {object} dto.PreviewResponse
// @Router /v1/drafts/{kind}/preview [post]
func (h *RecordsHandler) Preview(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	draft, err := h.svc.Preview(kind, c.Query("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	if kind == model.KindUser {
		delete(draft, "password")
	}
	c.JSON(http.StatusOK, dto.PreviewResponse{Kind: string(kind), Draft: draft})
}

// DraftEmail builds the RFQ email from a draft that has not been saved yet,
// exactly as Preview would hold it. ?id= starts from a stored RFQ.
//
// @Summary RFQ email for a draft
// @Tags rfqs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param kind path string true "Must be rfq"
// @Param id query string false "Existing RFQ to start from"
// @Success 200 {object} document.Email
// @Router /v1/drafts/{kind}/email [post]
func (h *RecordsHandler) DraftEmail(c *gin.Context) {
	kind, ok := h.kind(c)
	if !ok {
		return
	}
	if kind != model.KindRFQ {
		c.JSON(http.StatusNotFound, apierror.Newf("no email draft for kind: %s", kind))
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	draft, err := h.svc.Preview(kind, c.Query("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	var rfq model.RFQ
	if err := (store.Document{ID: c.Query("id"), Fields: draft}).Decode(&rfq); err != nil {
		log.Debug().Err(err).Msg("handler: partial rfq draft decode")
	}
	c.JSON(http.StatusOK, document.RFQEmail(h.src.Snapshot(), rfq))
}
