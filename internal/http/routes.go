package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/grind-calculator/internal/middleware"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// PublicRouteGroup defines routes that don't require a session token.
type PublicRouteGroup interface {
	// RegisterPublicRoutes registers public routes to the given router group.
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup defines routes that require a session token.
type ProtectedRouteGroup interface {
	// RegisterProtectedRoutes registers protected routes to the given router group.
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// SessionRoutes registers the session endpoint.
type SessionRoutes struct {
	handler *SessionHandler
}

// NewSessionRoutes creates a new SessionRoutes instance.
func NewSessionRoutes(handler *SessionHandler) *SessionRoutes {
	return &SessionRoutes{handler: handler}
}

// RegisterPublicRoutes registers POST /session.
func (r *SessionRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/session", r.handler.CreateSession)
}

// CalculatorRoutes registers the catalog lookups and the standalone calculator.
type CalculatorRoutes struct {
	catalog *CatalogHandler
	handler *Handler
}

// NewCalculatorRoutes creates a new CalculatorRoutes instance.
func NewCalculatorRoutes(catalog *CatalogHandler, handler *Handler) *CalculatorRoutes {
	return &CalculatorRoutes{catalog: catalog, handler: handler}
}

// RegisterProtectedRoutes registers /catalog/* and /calculate.
func (r *CalculatorRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/wizard", r.catalog.GetWizardCatalog)
		catalog.GET("/products/:id/calculator", r.catalog.GetCalculatorData)
		catalog.POST("/formats", r.catalog.GetFormats)
		catalog.POST("/quantities", r.catalog.GetQuantities)
		catalog.POST("/variation", r.catalog.ResolveVariation)
	}
	rg.POST("/calculate", r.handler.Calculate)
}

// WizardRoutes registers the wizard endpoints.
type WizardRoutes struct {
	handler *WizardHandler
}

// NewWizardRoutes creates a new WizardRoutes instance.
func NewWizardRoutes(handler *WizardHandler) *WizardRoutes {
	return &WizardRoutes{handler: handler}
}

// RegisterProtectedRoutes registers /wizard and its steps.
func (r *WizardRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	wizard := rg.Group("/wizard")
	{
		wizard.GET("", r.handler.Get)
		wizard.DELETE("", r.handler.Reset)
		wizard.POST("/category", r.handler.SelectCategory)
		wizard.POST("/product", r.handler.SelectProduct)
		wizard.POST("/format", r.handler.SelectFormat)
		wizard.POST("/inputs", r.handler.UpdateInputs)
		wizard.POST("/step", r.handler.GoTo)
		wizard.POST("/cart", r.handler.AddToCart)
	}
}

// SettingsRoutes registers the admin settings endpoints behind the API key check.
type SettingsRoutes struct {
	handler *SettingsHandler
}

// NewSettingsRoutes creates a new SettingsRoutes instance.
func NewSettingsRoutes(handler *SettingsHandler) *SettingsRoutes {
	return &SettingsRoutes{handler: handler}
}

// RegisterRoutes registers /settings and /settings/history.
func (r *SettingsRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	settings := rg.Group("/settings", middleware.APIKeyAuth(cfg.APIKeyHashes))
	{
		settings.GET("", r.handler.GetActive)
		settings.PUT("", r.handler.Update)
		settings.GET("/history", r.handler.History)
	}
}

// LogsRoutes registers the log query endpoint behind the API key check.
type LogsRoutes struct {
	handler *LogsHandler
}

// NewLogsRoutes creates a new LogsRoutes instance.
func NewLogsRoutes(handler *LogsHandler) *LogsRoutes {
	return &LogsRoutes{handler: handler}
}

// RegisterRoutes registers GET /logs.
func (r *LogsRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.GET("/logs", middleware.APIKeyAuth(cfg.APIKeyHashes), r.handler.Query)
}
