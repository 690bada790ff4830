package router

import (
	"net/http"
	"time"

	"biowearth/internal/apierror"
	"biowearth/internal/config"
	"biowearth/internal/handler"
	"biowearth/internal/infra"
	"biowearth/internal/middleware"
	"biowearth/internal/model"
	"biowearth/internal/repository"
	"biowearth/internal/service"
	"biowearth/internal/store"
	"biowearth/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps are the long-lived components the HTTP layer is built on.
type Deps struct {
	// Repo is the read side; every view and lookup goes through its snapshot.
	Repo *repository.Repository
	// Writer is the write side, normally the feed behind a GuardedAdapter.
	Writer store.Adapter
	// Store reports backend connectivity for /health.
	Store      handler.Pinger
	Breaker    *infra.CircuitBreaker // optional
	Redis      *redis.Client         // optional
	Dispatcher *worker.Dispatcher
	Metrics    *middleware.Metrics // optional
	Gatherer   prometheus.Gatherer // optional, serves /metrics
}

// New wires services and handlers and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Store
func New(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()...))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(deps.Repo, cfg)
	coordinator := service.NewCoordinator(deps.Writer, deps.Repo)
	inlineSvc := service.NewInlineService(deps.Writer, deps.Repo)
	settingsSvc := service.NewSettingsService(deps.Writer, deps.Repo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	recordsH := handler.NewRecordsHandler(coordinator, deps.Repo)
	viewsH := handler.NewViewsHandler(deps.Repo)
	inlineH := handler.NewInlineHandler(inlineSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	exportsH := handler.NewExportsHandler(deps.Repo, deps.Dispatcher)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(deps.Store, deps.Redis, deps.Breaker))
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes. Any signed-in user can read and edit business records;
	// settings writes and user records are admin only.
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		records := v1.Group("/records/:kind")
		{
			records.GET("", recordsH.List)
			records.POST("", recordsH.Create)
			records.GET("/:id", recordsH.Get)
			records.PUT("/:id", recordsH.Update)
			records.DELETE("/:id", recordsH.Delete)
		}
		v1.POST("/drafts/:kind/preview", recordsH.Preview)
		v1.POST("/drafts/:kind/email", recordsH.DraftEmail)

		companies := v1.Group("/companies/:type")
		{
			companies.GET("", viewsH.Companies)
			companies.GET("/:id/detail", viewsH.CompanyDetail)
			companies.GET("/:id/order-skus", viewsH.OrderSKUs)
			companies.PATCH("/:id/status", inlineH.SetCompanyStatus)
		}

		v1.GET("/products", viewsH.Products)
		v1.GET("/products/:id/active-quotes", viewsH.ActiveQuotes)
		v1.GET("/quotes/purchase", viewsH.PurchaseQuotes)
		v1.GET("/quotes/sales", viewsH.SalesQuotes)
		v1.GET("/formulations", viewsH.Formulations)

		tasks := v1.Group("/tasks")
		{
			tasks.GET("", viewsH.Tasks)
			tasks.GET("/calendar", viewsH.Calendar)
			tasks.PATCH("/:id", inlineH.PatchTask)
			tasks.POST("/:id/toggle", inlineH.ToggleTask)
		}

		orders := v1.Group("/orders/:id")
		{
			orders.POST("/payment-terms/:idx/toggle", inlineH.TogglePayment)
			orders.POST("/docs/:doc/toggle", inlineH.ToggleDoc)
			orders.PATCH("/docs/:doc", inlineH.PatchDoc)
		}

		v1.GET("/rfqs", viewsH.RFQs)
		v1.GET("/rfqs/:id/email", viewsH.RFQEmail)
		v1.GET("/rfqs/:id/pdf", exportsH.PDF("rfq"))
		v1.GET("/ors", viewsH.ORS)
		v1.GET("/ors/:id/pdf", exportsH.PDF("ors"))

		v1.POST("/exports", exportsH.Enqueue)
		v1.GET("/exports/:id", exportsH.Status)

		v1.GET("/dashboard", viewsH.Dashboard)

		v1.GET("/settings", settingsH.List)
		v1.GET("/settings/:key", settingsH.Get)
		settings := v1.Group("/settings", middleware.RequireRole(model.RoleAdmin))
		{
			settings.POST("/:key", settingsH.AddItem)
			settings.DELETE("/:key", settingsH.RemoveItem)
		}
	}

	// Swagger UI, outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apierror.New("Not found"))
	})

	return r
}
