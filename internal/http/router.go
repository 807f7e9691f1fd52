package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/grind-calculator/internal/metrics"
	"github.com/guttosm/grind-calculator/internal/middleware"
	"github.com/guttosm/grind-calculator/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	// CartURL is the page the add-to-cart query is appended to.
	CartURL string
	// APIKeyHashes are the bcrypt hashes of the admin API keys. Empty disables the check.
	APIKeyHashes   []string
	LoggingService service.LoggingService
	SessionTokens  service.SessionTokenService
	Catalog        service.CatalogService
	Quotes         service.QuoteService
	Wizard         service.WizardService
	Settings       service.SettingsService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		RequestTimeout:    middleware.DefaultRequestTimeout,
		EnableIdempotency: true,
		CartURL:           "/winkelwagen/",
	}
}

// NewRouter builds the engine. Business routes are only mounted for the
// services set in cfg, so a partially wired app still serves health checks.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	registerRoutes(api, &cfg)

	return router
}

// configureGlobalMiddleware installs the chain every route shares. Recovery
// sits after RequestID so panics are logged with the request id.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	router.Use(func(c *gin.Context) {
		c.Set(LoggingServiceKey, cfg.LoggingService)
		c.Next()
	})

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes mounts the probes, /metrics and the API docs.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler == nil {
		healthHandler = NewHealthHandler()
	}
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs := router.Group("/swagger")
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		docs.Use(gin.BasicAuth(gin.Accounts{cfg.SwaggerUser: cfg.SwaggerPass}))
	}
	docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// idempotency returns the idempotency middleware, or nil when disabled.
func idempotency(cfg *RouterConfig) []gin.HandlerFunc {
	if !cfg.EnableIdempotency {
		return nil
	}
	return []gin.HandlerFunc{middleware.Idempotency(middleware.DefaultIdempotencyConfig())}
}

// registerRoutes registers the business routes for the services that are configured.
func registerRoutes(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.Settings != nil {
		settings := api.Group("", idempotency(cfg)...)
		NewSettingsRoutes(NewSettingsHandler(cfg.Settings)).RegisterRoutes(settings, cfg)
	}

	if cfg.LoggingService != nil {
		NewLogsRoutes(NewLogsHandler(cfg.LoggingService)).RegisterRoutes(api, cfg)
	}

	if cfg.SessionTokens == nil {
		return
	}
	NewSessionRoutes(NewSessionHandler(cfg.SessionTokens)).RegisterPublicRoutes(api)

	protected := api.Group("", middleware.SessionToken(cfg.SessionTokens))
	if cfg.RateLimit > 0 {
		sessionLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(sessionLimiter.SessionRateLimit())
	}
	protected.Use(idempotency(cfg)...)

	var groups []ProtectedRouteGroup
	if cfg.Catalog != nil && cfg.Quotes != nil {
		groups = append(groups, NewCalculatorRoutes(NewCatalogHandler(cfg.Catalog), NewHandler(cfg.Quotes)))
	}
	if cfg.Wizard != nil {
		groups = append(groups, NewWizardRoutes(NewWizardHandler(cfg.Wizard, cfg.CartURL)))
	}
	for _, g := range groups {
		g.RegisterProtectedRoutes(protected, cfg)
	}
}
