package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/config"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/observability"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/handler"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health      *handler.HealthHandler
	Product     *handler.ProductHandler
	Order       *handler.OrderHandler
	CashSession *handler.CashSessionHandler
	Report      *handler.ReportHandler
	Fiado       *handler.FiadoHandler
	Customer    *handler.CustomerHandler
	Supplier    *handler.SupplierHandler
	Invoice     *handler.InvoiceHandler
	Ledger      *handler.LedgerHandler
	Dashboard   *handler.DashboardHandler
	Settings    *handler.SettingsHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *zap.Logger
	Metrics         *observability.Metrics
	Gatherer        prometheus.Gatherer
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.MetricsMiddleware(deps.Metrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Check)
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}
	if deps.IdempotencyRepo != nil {
		v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Log:  log,
		}))
	}

	// Settings
	v1.GET("/settings", h.Settings.GetSettings)
	v1.PUT("/settings", h.Settings.UpdateSettings)

	// Dashboard
	v1.GET("/dashboard", h.Dashboard.GetStats)

	registerOrderRoutes(v1, h)
	registerCashSessionRoutes(v1, h)
	registerReportRoutes(v1, h)
	registerFiadoRoutes(v1, h)
	registerProductRoutes(v1, h)
	registerCustomerRoutes(v1, h)
	registerSupplierRoutes(v1, h)
	registerInvoiceRoutes(v1, h)
	registerLedgerRoutes(v1, h)
	registerPrinterRoutes(v1, h)

	return router
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers) {
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/print", h.Order.Print)
	}
}

func registerCashSessionRoutes(v1 *gin.RouterGroup, h *Handlers) {
	sessions := v1.Group("/cash-sessions")
	{
		sessions.GET("", h.CashSession.List)
		sessions.POST("/open", h.CashSession.Open)
		sessions.POST("/close", h.CashSession.Close)
		sessions.GET("/current", h.CashSession.Current)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
	}
}

func registerFiadoRoutes(v1 *gin.RouterGroup, h *Handlers) {
	fiado := v1.Group("/fiado")
	{
		fiado.GET("", h.Fiado.List)
		fiado.POST("", h.Fiado.Create)
		fiado.GET("/:id", h.Fiado.Get)
		fiado.DELETE("/:id", h.Fiado.Delete)
		fiado.POST("/:id/settle", h.Fiado.Settle)
	}
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:slug", h.Product.Get)
		products.PUT("/:slug", h.Product.Update)
		products.DELETE("/:slug", h.Product.Delete)
	}
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerSupplierRoutes(v1 *gin.RouterGroup, h *Handlers) {
	suppliers := v1.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, h *Handlers) {
	invoices := v1.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/receive", h.Invoice.Receive)
		invoices.DELETE("/:id", h.Invoice.Delete)
	}
}

func registerLedgerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	ledger := v1.Group("/ledger")
	{
		ledger.GET("", h.Ledger.List)
		ledger.POST("", h.Ledger.Create)
		ledger.GET("/summary", h.Ledger.Summary)
		ledger.DELETE("/:id", h.Ledger.Delete)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printer := v1.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}
