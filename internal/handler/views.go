package handler

import (
	"net/http"
	"time"

	"biowearth/internal/apierror"
	"biowearth/internal/document"
	"biowearth/internal/model"
	"biowearth/internal/projection"
	"biowearth/internal/relation"
	"biowearth/internal/repository"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// SnapshotSource is satisfied by the repository.
type SnapshotSource interface {
	Snapshot() *repository.Snapshot
}

// ViewsHandler serves the read-only screens. Every response is computed from
// the latest snapshot; nothing here touches the store.
type ViewsHandler struct {
	src SnapshotSource
	now func() time.Time
}

func NewViewsHandler(src SnapshotSource) *ViewsHandler {
	return &ViewsHandler{src: src, now: time.Now}
}

func bindQuery(c *gin.Context, dst ...interface{}) bool {
	for _, d := range dst {
		if err := c.ShouldBindQuery(d); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
	}
	return true
}

// ── Companies ────────────────────────────────────────────────────────────────

// Companies lists vendors or clients with rollups, filtered and sorted by the
// query. ?view=board groups them into status columns instead.
//
// @Summary Vendor or client list
// @Tags companies
// @Security BearerAuth
// @Produce json
// @Param type path string true "vendor or client"
// @Param view query string false "board for the status board"
// @Success 200 {array} projection.CompanyRow
// @Router /v1/companies/{type} [get]
func (h *ViewsHandler) Companies(c *gin.Context) {
	kind, ok := companyKind(c)
	if !ok {
		return
	}
	var f projection.CompanyFilter
	var srt projection.Sort
	if !bindQuery(c, &f, &srt) {
		return
	}
	snap := h.src.Snapshot()
	rows := projection.FilterCompanies(projection.Companies(snap, kind), kind, f)
	projection.SortCompanies(rows, srt)

	if c.Query("view") == "board" {
		c.JSON(http.StatusOK, projection.CompanyBoard(rows, projection.StatusOptions(snap.Settings, kind)))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CompanyDetail godoc
// @Summary Company detail
// @Tags companies
// @Security BearerAuth
// @Produce json
// @Success 200 {object} projection.CompanyDetail
// @Failure 404 {object} apierror.APIError
// @Router /v1/companies/{type}/{id}/detail [get]
func (h *ViewsHandler) CompanyDetail(c *gin.Context) {
	kind, ok := companyKind(c)
	if !ok {
		return
	}
	detail, found := projection.Detail(h.src.Snapshot(), kind, c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, apierror.New("Company not found"))
		return
	}
	c.JSON(http.StatusOK, detail)
}

// OrderSKUs lists the SKUs a new order for the company may reference.
func (h *ViewsHandler) OrderSKUs(c *gin.Context) {
	kind, ok := companyKind(c)
	if !ok {
		return
	}
	snap := h.src.Snapshot()
	if _, found := relation.Company(snap, kind, c.Param("id")); !found {
		c.JSON(http.StatusNotFound, apierror.New("Company not found"))
		return
	}
	skus := relation.AvailableSKUsForOrder(snap, kind, c.Param("id"))
	if skus == nil {
		skus = []model.SKU{}
	}
	c.JSON(http.StatusOK, skus)
}

// ── Products and quotes ──────────────────────────────────────────────────────

// Products godoc
// @Summary Product list
// @Tags products
// @Security BearerAuth
// @Produce json
// @Success 200 {array} projection.ProductRow
// @Router /v1/products [get]
func (h *ViewsHandler) Products(c *gin.Context) {
	var f projection.ProductFilter
	var srt projection.Sort
	if !bindQuery(c, &f, &srt) {
		return
	}
	c.JSON(http.StatusOK, projection.Products(h.src.Snapshot(), f, srt))
}

func (h *ViewsHandler) ActiveQuotes(c *gin.Context) {
	snap := h.src.Snapshot()
	if _, ok := snap.Product(c.Param("id")); !ok {
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
		return
	}
	c.JSON(http.StatusOK, projection.ActiveQuotes(snap, c.Param("id")))
}

func (h *ViewsHandler) PurchaseQuotes(c *gin.Context) {
	c.JSON(http.StatusOK, projection.PurchaseQuotes(h.src.Snapshot()))
}

func (h *ViewsHandler) SalesQuotes(c *gin.Context) {
	c.JSON(http.StatusOK, projection.SalesQuotes(h.src.Snapshot()))
}

func (h *ViewsHandler) Formulations(c *gin.Context) {
	c.JSON(http.StatusOK, projection.Formulations(h.src.Snapshot(), c.Query("search")))
}

// ── Tasks ────────────────────────────────────────────────────────────────────

// Tasks godoc
// @Summary Task list
// @Tags tasks
// @Security BearerAuth
// @Produce json
// @Router /v1/tasks [get]
func (h *ViewsHandler) Tasks(c *gin.Context) {
	var f projection.TaskFilter
	var srt projection.Sort
	if !bindQuery(c, &f, &srt) {
		return
	}
	c.JSON(http.StatusOK, projection.Tasks(h.src.Snapshot().Tasks, f, srt))
}

// Calendar lays tasks out by due date. ?mode=week|month (default month) and
// ?date=YYYY-MM-DD picks the period (default today).
//
// @Summary Task calendar
// @Tags tasks
// @Security BearerAuth
// @Produce json
// @Param mode query string false "week or month"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {array} projection.CalendarDay
// @Failure 400 {object} apierror.APIError
// @Router /v1/tasks/calendar [get]
func (h *ViewsHandler) Calendar(c *gin.Context) {
	ref := h.now()
	if d := c.Query("date"); d != "" {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("date must be YYYY-MM-DD"))
			return
		}
		ref = t
	}
	tasks := h.src.Snapshot().Tasks
	switch c.DefaultQuery("mode", "month") {
	case "week":
		c.JSON(http.StatusOK, projection.WeekCalendar(tasks, ref))
	case "month":
		c.JSON(http.StatusOK, projection.MonthCalendar(tasks, ref))
	default:
		c.JSON(http.StatusBadRequest, apierror.New("mode must be week or month"))
	}
}

// ── Documents ────────────────────────────────────────────────────────────────

// RFQs godoc
// @Summary RFQ list
// @Tags rfqs
// @Security BearerAuth
// @Produce json
// @Success 200 {array} projection.RFQRow
// @Router /v1/rfqs [get]
func (h *ViewsHandler) RFQs(c *gin.Context) {
	c.JSON(http.StatusOK, projection.RFQs(h.src.Snapshot(), c.Query("search")))
}

// ORS godoc
// @Summary ORS list
// @Tags ors
// @Security BearerAuth
// @Produce json
// @Success 200 {array} projection.ORSRow
// @Router /v1/ors [get]
func (h *ViewsHandler) ORS(c *gin.Context) {
	c.JSON(http.StatusOK, projection.ORSList(h.src.Snapshot(), c.Query("search")))
}

// RFQEmail godoc
// @Summary RFQ email
// @Tags rfqs
// @Security BearerAuth
// @Produce json
// @Param id path string true "RFQ id"
// @Success 200 {object} document.Email
// @Failure 404 {object} apierror.APIError
// @Router /v1/rfqs/{id}/email [get]
func (h *ViewsHandler) RFQEmail(c *gin.Context) {
	snap := h.src.Snapshot()
	r, ok := snap.RFQ(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("RFQ not found"))
		return
	}
	c.JSON(http.StatusOK, document.RFQEmail(snap, r))
}

// Dashboard godoc
// @Summary Dashboard counters
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Router /v1/dashboard [get]
func (h *ViewsHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, relation.DashboardStats(h.src.Snapshot()))
}
