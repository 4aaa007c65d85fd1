package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/infrastructure/auth"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/interfaces/http/handler"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Shopify   *handler.ShopifyHandler
	Webhook   *handler.WebhookHandler
	Catalog   *handler.CatalogHandler
	Dashboard *handler.DashboardHandler
}

// New builds the gin engine with all middleware and routes mounted.
// Webhook deliveries and the auth endpoints are reachable without a
// token; everything else under /api/v1 requires one.
func New(cfg *config.Config, jwtService *auth.JWTService, h Handlers, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidations()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())

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
	engine.Use(middleware.CORSWithConfig(corsCfg))

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
		},
		SkipPathPrefixes: []string{
			"/api/v1/webhooks/",
		},
		Logger: log,
	}))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", h.Auth.Me)
	}

	// Webhook deliveries are signed, not token authenticated, and get a
	// tighter body limit
	webhooks := api.Group("/webhooks")
	webhooks.Use(middleware.BodyLimit(cfg.Webhook.MaxPayloadSize))
	{
		webhooks.POST("/shopify", h.Webhook.Receive)
	}

	shopify := api.Group("/shopify")
	{
		shopify.POST("/connect", h.Shopify.Connect)
		shopify.POST("/disconnect", h.Shopify.Disconnect)
		shopify.GET("/status", h.Shopify.Status)
		shopify.POST("/sync", h.Shopify.TriggerSync)
	}

	customers := api.Group("/customers")
	{
		customers.GET("", h.Catalog.ListCustomers)
		customers.GET("/:id", h.Catalog.GetCustomer)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.GET("/:id", h.Catalog.GetProduct)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", h.Catalog.ListOrders)
		orders.GET("/:id", h.Catalog.GetOrder)
	}

	api.GET("/events", h.Catalog.ListEvents)

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("", h.Dashboard.Full)
		dashboard.GET("/overview", h.Dashboard.Overview)
		dashboard.GET("/orders-by-date", h.Dashboard.OrdersByDate)
		dashboard.GET("/top-customers", h.Dashboard.TopCustomers)
		dashboard.GET("/monthly-revenue", h.Dashboard.MonthlyRevenue)
		dashboard.GET("/top-products", h.Dashboard.TopProducts)
		dashboard.GET("/status-breakdown", h.Dashboard.StatusBreakdown)
	}

	api.GET("/system/info", h.System.Info)

	return engine
}
