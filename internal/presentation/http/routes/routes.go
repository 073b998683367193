package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sonitraders/invoicify-api/internal/config"
	domainRepo "github.com/sonitraders/invoicify-api/internal/domain/repository"
	"github.com/sonitraders/invoicify-api/internal/presentation/http/handler"
	"github.com/sonitraders/invoicify-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Invoice *handler.InvoiceHandler
	Profile *handler.ProfileHandler
	Catalog *handler.CatalogHandler
	Print   *handler.PrintHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
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
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		// Retried generate/print requests replay the stored response
		v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}))

		registerInvoiceRoutes(v1, h)
		registerProfileRoutes(v1, h)
		registerCatalogRoutes(v1, h)
		registerPrintRoutes(v1, h)
	}

	return router
}

func registerInvoiceRoutes(v1 *gin.RouterGroup, h *Handlers) {
	invoices := v1.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Generate)
		invoices.POST("/preview", h.Invoice.Preview)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/document", h.Invoice.Document)
		invoices.POST("/:id/print", h.Invoice.Print)
		invoices.PATCH("/:id/status", h.Invoice.UpdateStatus)
		invoices.DELETE("/:id", h.Invoice.Delete)
	}
}

func registerProfileRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.GET("/profile", h.Profile.Get)
	v1.PUT("/profile", h.Profile.Update)
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/items", h.Catalog.List)
		catalog.GET("/items/:id", h.Catalog.Get)
	}
}

func registerPrintRoutes(v1 *gin.RouterGroup, h *Handlers) {
	print := v1.Group("/print")
	{
		print.GET("/status", h.Print.GetStatus)
		print.POST("/test", h.Print.Test)
	}
}
