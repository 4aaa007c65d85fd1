package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	analyticsapp "github.com/shopsync/backend/internal/application/analytics"
	identityapp "github.com/shopsync/backend/internal/application/identity"
	"github.com/shopsync/backend/internal/application/ingest"
	integrationapp "github.com/shopsync/backend/internal/application/integration"
	shopapp "github.com/shopsync/backend/internal/application/shop"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/auth"
	"github.com/shopsync/backend/internal/infrastructure/cache"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/shopsync/backend/internal/infrastructure/scheduler"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"github.com/shopsync/backend/internal/interfaces/http/handler"
	"github.com/shopsync/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ShopSync Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithGormLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Webhook de-duplication store, Redis when configured, in-memory otherwise
	var idempotency shared.IdempotencyStore
	if cfg.Redis.Host != "" {
		store, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory webhook de-duplication", zap.Error(err))
			idempotency = cache.NewInMemoryIdempotencyStore()
		} else {
			idempotency = store
			log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
		}
	} else {
		idempotency = cache.NewInMemoryIdempotencyStore()
	}
	defer func() {
		_ = idempotency.Close()
	}()

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	eventRepo := persistence.NewGormPlatformEventRepository(db.DB)
	analyticsRepo := persistence.NewGormAnalyticsRepository(db.DB)

	// Remote platform client
	shopifyClient := shopify.NewClient(cfg.Shopify)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(tenantRepo, userRepo, jwtService, log)
	connectService := integrationapp.NewConnectService(tenantRepo, shopifyClient, customerRepo, productRepo, orderRepo, eventRepo, log)
	reconciler := ingest.NewReconciler(customerRepo, productRepo, orderRepo, log)
	syncService := ingest.NewSyncService(tenantRepo, shopifyClient, reconciler, cfg.Shopify.PageSize, log)
	webhookService := ingest.NewWebhookService(tenantRepo, reconciler, eventRepo, idempotency, cfg.Webhook, log)
	catalogService := shopapp.NewCatalogService(customerRepo, productRepo, orderRepo, eventRepo, log)
	dashboardService := analyticsapp.NewDashboardService(analyticsRepo, log)

	// Background sync scheduler
	syncScheduler, err := scheduler.NewSyncScheduler(
		scheduler.FromAppConfig(cfg.Scheduler),
		tenantRepo,
		syncService,
		log,
	)
	if err != nil {
		log.Fatal("Invalid scheduler configuration", zap.Error(err))
	}
	if err := syncScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start sync scheduler", zap.Error(err))
	}

	// HTTP server
	engine := router.New(cfg, jwtService, router.Handlers{
		System:    handler.NewSystemHandler(db.DB, version),
		Auth:      handler.NewAuthHandler(authService),
		Shopify:   handler.NewShopifyHandler(connectService, syncService),
		Webhook:   handler.NewWebhookHandler(webhookService, log),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}, log)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := syncScheduler.Stop(shutdownCtx); err != nil {
		log.Error("Scheduler shutdown failed", zap.Error(err))
	}

	log.Info("Shutdown complete")
}
