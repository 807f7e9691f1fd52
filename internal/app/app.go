// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/grind-calculator/config"
	"github.com/guttosm/grind-calculator/internal/http"
	"github.com/guttosm/grind-calculator/internal/middleware"
)

// App is the wired application.
type App struct {
	Router *gin.Engine

	services *ServiceComponents
	catalog  *CatalogComponents
	db       *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context, cfg config.Config) (*App, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger()

	dbComponents := InitializeDatabase(cfg.Database, cfg.Session.StateTTL)

	catalog, err := InitializeCatalog(ctx, cfg, dbComponents)
	if err != nil {
		_ = dbComponents.Close(ctx)
		return nil, err
	}

	services := InitializeServices(cfg, catalog, dbComponents)

	// Audit entries are written by a bounded worker pool instead of one goroutine each
	if dbComponents != nil {
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	routerComponents := InitializeRouter(services, catalog, dbComponents, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.HealthHandler, routerComponents.Config),
		services: services,
		catalog:  catalog,
		db:       dbComponents,
	}, nil
}

// Close stops background workers and closes the database connections.
func (a *App) Close(ctx context.Context) error {
	a.services.Close()
	middleware.StopAsyncLogger()

	err := errors.Join(a.catalog.Close(), a.db.Close(ctx))
	if err != nil {
		log.Error().Err(err).Msg("Failed to close application resources")
	}
	return err
}
