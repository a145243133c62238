package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gusto-pos/internal/config"
	domainRepo "github.com/sangkips/gusto-pos/internal/domain/repository"
	"github.com/sangkips/gusto-pos/internal/presentation/http/handler"
	"github.com/sangkips/gusto-pos/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Order    *handler.OrderHandler
	Document *handler.DocumentHandler
	Printer  *handler.PrinterHandler
	Settings *handler.SettingsHandler
	Report   *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		}
		if deps.RateLimiter != nil {
			body["rate_limit"] = deps.RateLimiter.Stats()
		}
		c.JSON(http.StatusOK, body)
	})

	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}

	registerOrderRoutes(v1, h, deps)
	registerDocumentRoutes(v1, h)
	registerPrinterRoutes(v1, h)
	registerSettingsRoutes(v1, h)
	registerReportRoutes(v1, h)

	return router
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", idempotent, h.Order.Save)
		orders.POST("/archive-completed", h.Order.ArchiveCompleted)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id/items", h.Order.UpdateItems)
		orders.PUT("/:id/kitchen-status", h.Order.UpdateKitchenStatus)
		orders.POST("/:id/payment-quote", h.Order.QuotePayment)
		orders.POST("/:id/pay", idempotent, h.Order.Pay)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/restore", h.Order.Restore)
		orders.GET("/:id/documents/:type", h.Document.OrderDocument)
	}

	v1.GET("/kitchen/board", h.Order.KitchenBoard)
}

func registerDocumentRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.POST("/documents/preview", h.Document.Preview)
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printer := v1.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
		printer.POST("/print", h.Printer.Print)
	}
}

func registerSettingsRoutes(v1 *gin.RouterGroup, h *Handlers) {
	settings := v1.Group("/settings")
	{
		settings.GET("/venue", h.Settings.GetVenue)
		settings.PUT("/venue", h.Settings.UpdateVenue)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/sales/export", h.Report.Export)
		reports.GET("/sales/document", h.Report.Document)
	}
}
