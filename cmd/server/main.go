package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	importapp "github.com/import1688/backend/internal/application/import"
	"github.com/import1688/backend/internal/domain/currency"
	"github.com/import1688/backend/internal/infrastructure/config"
	"github.com/import1688/backend/internal/infrastructure/logger"
	"github.com/import1688/backend/internal/infrastructure/persistence"
	"github.com/import1688/backend/internal/interfaces/http/handler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting 1688 order import backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Initialize repositories
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	runRepo := persistence.NewGormImportRunRepository(db.DB)

	// Seed the configured import currency so the CNY lookup can succeed
	// on a fresh database.
	if cny, err := currency.NewCurrency(cfg.Import.DefaultCurrency, "¥"); err == nil {
		cny.IsCompanyDefault = true
		if err := currencyRepo.Save(context.Background(), cny); err != nil {
			log.Warn("Could not seed default currency", zap.Error(err))
		}
	}

	// Initialize application service
	importService := importapp.NewOrderImportService(
		supplierRepo,
		productRepo,
		orderRepo,
		currencyRepo,
		runRepo,
		importapp.Options{
			DefaultCurrency: cfg.Import.DefaultCurrency,
			OriginPrefix:    cfg.Import.OriginPrefix,
			HeaderRows:      cfg.Import.HeaderRows,
		},
		log.Named("import"),
	)

	// Set up HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
		}
	}
	engine.Use(
		logger.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	importHandler := handler.NewOrderImportHandler(importService, cfg.Import.MaxUploadSize)
	importHandler.RegisterRoutes(engine.Group("/api/v1"))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
