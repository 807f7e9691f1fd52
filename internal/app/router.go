// Package app provides router configuration.
package app

import (
	"github.com/guttosm/grind-calculator/config"
	"github.com/guttosm/grind-calculator/internal/http"
	"github.com/guttosm/grind-calculator/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the health checks and the router configuration.
func InitializeRouter(
	services *ServiceComponents,
	catalog *CatalogComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterChecker("catalog", http.CheckFunc(services.Catalog.Ping))
	if catalog != nil && catalog.CircuitBreaker != nil {
		healthHandler.RegisterCircuitBreaker("catalog", catalog.CircuitBreaker)
	}

	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
		healthHandler.RegisterChecker("mongodb", http.CheckFunc(dbComponents.DB.HealthCheck))
		healthHandler.RegisterCircuitBreaker("mongodb_settings", dbComponents.SettingsCircuitBreaker)
		healthHandler.RegisterCircuitBreaker("mongodb_sessions", dbComponents.SessionsCircuitBreaker)
		healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	if cfg.Server.CartURL != "" {
		routerCfg.CartURL = cfg.Server.CartURL
	}
	routerCfg.APIKeyHashes = cfg.Auth.APIKeyHashes
	routerCfg.LoggingService = loggingService
	routerCfg.SessionTokens = services.SessionTokens
	routerCfg.Catalog = services.Catalog
	routerCfg.Quotes = services.Quotes
	routerCfg.Wizard = services.Wizard
	routerCfg.Settings = services.Settings

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
