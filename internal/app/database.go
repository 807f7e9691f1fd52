// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/grind-calculator/config"
	"github.com/guttosm/grind-calculator/internal/circuitbreaker"
	"github.com/guttosm/grind-calculator/internal/metrics"
	"github.com/guttosm/grind-calculator/internal/repository"
	"github.com/guttosm/grind-calculator/internal/service"
)

// DatabaseComponents holds the MongoDB backed repositories.
type DatabaseComponents struct {
	DB                     *repository.MongoDB
	LoggingService         service.LoggingService
	SettingsRepo           repository.SettingsRepositoryInterface
	SessionStore           repository.SessionStoreInterface
	SettingsCircuitBreaker *circuitbreaker.CircuitBreaker
	SessionsCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker     *circuitbreaker.CircuitBreaker
}

// newCircuitBreaker builds a breaker with the configured thresholds.
func newCircuitBreaker(cfg config.DatabaseConfig, name string, ignore ...error) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        circuitbreaker.IgnoreErrors(ignore...),
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.RecordCircuitBreakerState(name, to.String(), int(to))
		},
	})
}

// InitializeDatabase connects to MongoDB and creates the settings, session and log repositories.
// Wizard sessions expire stateTTL after their last write.
// Returns nil if the database is disabled or the connection fails.
func InitializeDatabase(cfg config.DatabaseConfig, stateTTL time.Duration) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	settingsCB := newCircuitBreaker(cfg, "mongodb-settings")
	sessionsCB := newCircuitBreaker(cfg, "mongodb-sessions", repository.ErrRevisionConflict, repository.ErrSessionNotFound)
	logsCB := newCircuitBreaker(cfg, "mongodb-logs")

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                     db,
		LoggingService:         service.NewLoggingService(logsRepo),
		SettingsRepo:           repository.NewSettingsRepositoryWithCircuitBreaker(repository.NewSettingsRepository(db), settingsCB),
		SessionStore:           repository.NewSessionStoreWithCircuitBreaker(repository.NewMongoSessionStore(db, stateTTL), sessionsCB),
		SettingsCircuitBreaker: settingsCB,
		SessionsCircuitBreaker: sessionsCB,
		LogsCircuitBreaker:     logsCB,
	}
}

// Close disconnects from MongoDB. It is safe to call on nil.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
