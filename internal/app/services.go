// Package app provides service initialization.
package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/grind-calculator/config"
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/repository"
	"github.com/guttosm/grind-calculator/internal/service"
)

// sessionSweepInterval is how often expired in-memory wizard sessions are dropped.
const sessionSweepInterval = 5 * time.Minute

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Settings      service.SettingsService
	Catalog       *service.CatalogServiceImpl
	Quotes        service.QuoteService
	Wizard        service.WizardService
	SessionTokens service.SessionTokenService

	stopSweeper func()
}

// InitializeServices initializes business logic services. Settings and wizard
// sessions live in MongoDB when db is set and in process memory otherwise.
func InitializeServices(cfg config.Config, catalog *CatalogComponents, db *DatabaseComponents) *ServiceComponents {
	var (
		settingsRepo repository.SettingsRepositoryInterface
		store        repository.SessionStoreInterface
		stopSweeper  = func() {}
	)
	if db != nil {
		settingsRepo = db.SettingsRepo
		store = db.SessionStore
	} else {
		settingsRepo = repository.NewMemorySettingsRepository()
		memStore := repository.NewMemorySessionStore(cfg.Session.StateTTL)
		stopSweeper = startSessionSweeper(memStore, sessionSweepInterval)
		store = memStore
	}

	settings := service.NewSettingsService(settingsRepo, model.Settings{
		DefaultLayerThickness: cfg.Catalog.DefaultLayerThickness,
		WizardCategoryIDs:     cfg.Catalog.WizardCategoryIDs,
	})

	opts := []service.CatalogOption{service.WithCatalogTimeout(cfg.Catalog.Timeout)}
	if cfg.Cache.Size > 0 {
		opts = append(opts, service.WithLabelCache(cfg.Cache.Size, cfg.Cache.TTL))
	}
	catalogService := service.NewCatalogService(catalog.Repo, settings, opts...)

	return &ServiceComponents{
		Settings:      settings,
		Catalog:       catalogService,
		Quotes:        service.NewQuoteService(catalogService),
		Wizard:        service.NewWizardService(store, catalogService, settings),
		SessionTokens: service.NewSessionTokenService(cfg.Session),
		stopSweeper:   stopSweeper,
	}
}

// Close stops background work started by InitializeServices.
func (s *ServiceComponents) Close() {
	if s == nil {
		return
	}
	s.stopSweeper()
	s.Catalog.Close()
}

// startSessionSweeper drops expired sessions every interval until the returned func is called.
func startSessionSweeper(store *repository.MemorySessionStore, interval time.Duration) func() {
	stop := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := store.Sweep(); n > 0 {
					log.Debug().Int("removed", n).Msg("Swept expired wizard sessions")
				}
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(stop) }) }
}
