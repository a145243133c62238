package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gusto-pos/internal/application/service"
	"github.com/sangkips/gusto-pos/internal/config"
	"github.com/sangkips/gusto-pos/internal/domain/enum"
	"github.com/sangkips/gusto-pos/internal/infrastructure/database"
	"github.com/sangkips/gusto-pos/internal/infrastructure/repository"
	"github.com/sangkips/gusto-pos/internal/presentation/http/handler"
	"github.com/sangkips/gusto-pos/internal/presentation/http/middleware"
	"github.com/sangkips/gusto-pos/internal/presentation/http/routes"
	"github.com/sangkips/gusto-pos/pkg/printer"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	cfg.Log.ConfigureLogger()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open the snapshot store
	db, err := database.NewDatabase(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open storage")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize repositories
	snapshotRepo := repository.NewSnapshotRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	if err := idempotencyRepo.DeleteExpired(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to delete expired idempotency keys")
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
		Timeout: time.Duration(cfg.Printer.Timeout) * time.Second,
	})
	if err != nil {
		logrus.WithError(err).Warn("Failed to initialize printer, printing disabled")
		thermalPrinter = printer.None()
	}
	defer thermalPrinter.Close()

	// Initialize services
	composer := service.NewComposer(cfg.Ticket.QRTemplate, cfg.Ticket.QRSize)
	orderService := service.NewOrderService(ctx, snapshotRepo, time.Now)
	venueService := service.NewVenueConfigService(snapshotRepo)
	paper := enum.PaperFormat(cfg.Ticket.PaperFormat)
	printerService := service.NewPrinterService(thermalPrinter, paper, composer, venueService, time.Now)
	documentService := service.NewDocumentService(orderService, venueService, composer, printerService, paper, time.Now)
	reportService := service.NewSalesReportService(orderService, time.Now)

	// Initialize handlers
	handlers := &routes.Handlers{
		Order:    handler.NewOrderHandler(orderService),
		Document: handler.NewDocumentHandler(documentService),
		Printer:  handler.NewPrinterHandler(printerService, documentService),
		Settings: handler.NewSettingsHandler(venueService),
		Report:   handler.NewReportHandler(reportService, documentService),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"service": cfg.App.Name,
			"port":    port,
			"env":     cfg.App.Env,
			"storage": cfg.Storage.Driver,
			"printer": cfg.Printer.Type,
		}).Info("Starting server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
}
