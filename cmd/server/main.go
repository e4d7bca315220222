package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/jelectro/storefront/internal/application/catalog"
	appidentity "github.com/jelectro/storefront/internal/application/identity"
	apporder "github.com/jelectro/storefront/internal/application/order"
	"github.com/jelectro/storefront/internal/infrastructure/auth"
	"github.com/jelectro/storefront/internal/infrastructure/config"
	"github.com/jelectro/storefront/internal/infrastructure/logger"
	"github.com/jelectro/storefront/internal/infrastructure/persistence"
	"github.com/jelectro/storefront/internal/interfaces/http/handler"
	"github.com/jelectro/storefront/internal/interfaces/http/router"
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
		_ = log.Sync()
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	purchaseStore := persistence.NewGormPurchaseStore(db.DB)

	// Services
	sessions := auth.NewSessionService(cfg.JWT)
	authService := appidentity.NewAuthService(userRepo, sessions)
	categoryService := appcatalog.NewCategoryService(categoryRepo, productRepo)
	productService := appcatalog.NewProductService(productRepo, categoryRepo)
	checkoutService := apporder.NewCheckoutService(productRepo, purchaseStore, transactionRepo)

	// HTTP surface
	engine := router.Setup(router.Config{
		Logger:   log,
		Sessions: sessions,
		HTTP:     cfg.HTTP,
		DB:       db,

		AuthHandler:        handler.NewAuthHandler(authService, cfg.Cookie),
		ShopHandler:        handler.NewShopHandler(productService, checkoutService),
		ProductHandler:     handler.NewProductHandler(productService),
		CategoryHandler:    handler.NewCategoryHandler(categoryService),
		TransactionHandler: handler.NewTransactionHandler(checkoutService),
		HealthHandler:      handler.NewHealthHandler(db, version),
		ContactHandler:     handler.NewContactHandler(log),
	})

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
