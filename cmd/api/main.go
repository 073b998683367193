package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/sonitraders/invoicify-api/internal/application/service"
	"github.com/sonitraders/invoicify-api/internal/config"
	"github.com/sonitraders/invoicify-api/internal/infrastructure/database"
	"github.com/sonitraders/invoicify-api/internal/infrastructure/repository"
	"github.com/sonitraders/invoicify-api/internal/infrastructure/upstream"
	"github.com/sonitraders/invoicify-api/internal/presentation/http/handler"
	"github.com/sonitraders/invoicify-api/internal/presentation/http/routes"
	"github.com/sonitraders/invoicify-api/pkg/printout"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(db)
	profileRepo := repository.NewSellerProfileRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Inventory service client for the item catalog
	catalogClient := upstream.NewCatalogClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	// Initialize the invoice output sink
	sink, err := printout.NewSinkFromConfig(cfg.Print.SinkType, cfg.Print.SpoolDir, cfg.Print.Address)
	if err != nil {
		log.Printf("Warning: Failed to initialize output sink: %v", err)
		sink = printout.NewNullSink()
	}
	dispatchService := service.NewDispatchService(sink, cfg.Print.SinkType)
	defer dispatchService.Close()

	// Initialize services
	invoiceService := service.NewInvoiceService(invoiceRepo, profileRepo, catalogClient, dispatchService, cfg.Print.QRWidth)
	profileService := service.NewProfileService(profileRepo)
	catalogService := service.NewCatalogService(catalogClient)

	// Initialize handlers
	handlers := &routes.Handlers{
		Invoice: handler.NewInvoiceHandler(invoiceService),
		Profile: handler.NewProfileHandler(profileService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Print:   handler.NewPrintHandler(dispatchService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
