package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jelectro/storefront/internal/infrastructure/auth"
	"github.com/jelectro/storefront/internal/infrastructure/config"
	"github.com/jelectro/storefront/internal/infrastructure/logger"
	"github.com/jelectro/storefront/internal/interfaces/http/handler"
	"github.com/jelectro/storefront/internal/interfaces/http/middleware"
)

// Config carries everything the router needs to wire the HTTP surface
type Config struct {
	Logger   *zap.Logger
	Sessions *auth.SessionService
	HTTP     config.HTTPConfig
	DB       middleware.AvailabilityChecker

	AuthHandler        *handler.AuthHandler
	ShopHandler        *handler.ShopHandler
	ProductHandler     *handler.ProductHandler
	CategoryHandler    *handler.CategoryHandler
	TransactionHandler *handler.TransactionHandler
	HealthHandler      *handler.HealthHandler
	ContactHandler     *handler.ContactHandler
}

// Setup builds the gin engine with all middleware and routes
func Setup(cfg Config) *gin.Engine {
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.CORSWithConfig(corsCfg),
	)

	sessionAuth := middleware.SessionAuth(cfg.Sessions)
	requireAdmin := middleware.RequireAdmin()

	api := engine.Group("/api/v1")
	{
		api.GET("/health", cfg.HealthHandler.Health)
		api.POST("/contact", cfg.ContactHandler.Submit)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", cfg.AuthHandler.Register)
			authGroup.POST("/login", cfg.AuthHandler.Login)
			authGroup.POST("/logout", sessionAuth, cfg.AuthHandler.Logout)
			authGroup.GET("/me", sessionAuth, cfg.AuthHandler.Me)
		}

		shop := api.Group("/shop")
		{
			shop.GET("/products", cfg.ShopHandler.ListProducts)
			shop.GET("/products/:id", cfg.ShopHandler.GetProduct)
			shop.POST("/checkout/:id", sessionAuth, middleware.RequireDatabase(cfg.DB), cfg.ShopHandler.Checkout)
			shop.GET("/purchases", sessionAuth, cfg.ShopHandler.ListPurchases)
		}

		catalogGroup := api.Group("/catalog", sessionAuth, requireAdmin)
		{
			catalogGroup.GET("/products", cfg.ProductHandler.List)
			catalogGroup.POST("/products", cfg.ProductHandler.Create)
			catalogGroup.GET("/products/:id", cfg.ProductHandler.Get)
			catalogGroup.PUT("/products/:id", cfg.ProductHandler.Update)
			catalogGroup.DELETE("/products/:id", cfg.ProductHandler.Delete)

			catalogGroup.GET("/categories", cfg.CategoryHandler.List)
			catalogGroup.POST("/categories", cfg.CategoryHandler.Create)
			catalogGroup.GET("/categories/:id", cfg.CategoryHandler.Get)
			catalogGroup.PUT("/categories/:id", cfg.CategoryHandler.Update)
			catalogGroup.DELETE("/categories/:id", cfg.CategoryHandler.Delete)
		}

		api.GET("/transactions", sessionAuth, requireAdmin, cfg.TransactionHandler.List)
	}

	return engine
}
