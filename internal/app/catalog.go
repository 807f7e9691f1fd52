package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/grind-calculator/config"
	"github.com/guttosm/grind-calculator/internal/circuitbreaker"
	"github.com/guttosm/grind-calculator/internal/repository"
)

// Catalog backends selectable with CATALOG_BACKEND.
const (
	CatalogBackendMemory   = "memory"
	CatalogBackendMongo    = "mongo"
	CatalogBackendPostgres = "postgres"
)

// ErrMongoRequired is returned for the mongo catalog backend when MongoDB is disabled or unreachable.
var ErrMongoRequired = errors.New("catalog backend mongo requires MONGODB_ENABLED=true and a reachable database")

// ErrPostgresDSNRequired is returned for the postgres catalog backend without POSTGRES_DSN.
var ErrPostgresDSNRequired = errors.New("catalog backend postgres requires POSTGRES_DSN")

// CatalogComponents holds the catalog repository and its breaker.
type CatalogComponents struct {
	Backend        string
	Repo           repository.CatalogRepositoryInterface
	CircuitBreaker *circuitbreaker.CircuitBreaker
	postgres       *sql.DB
}

type seeder interface {
	Seed(ctx context.Context, catalog repository.CatalogSeed) error
}

// InitializeCatalog opens the configured catalog backend and imports
// CATALOG_SEED_FILE into it when set.
func InitializeCatalog(ctx context.Context, cfg config.Config, db *DatabaseComponents) (*CatalogComponents, error) {
	var seed *repository.CatalogSeed
	if cfg.Catalog.SeedFile != "" {
		s, err := repository.LoadCatalogSeed(cfg.Catalog.SeedFile)
		if err != nil {
			return nil, err
		}
		seed = &s
	}

	components := &CatalogComponents{Backend: cfg.Catalog.Backend}
	var repo repository.CatalogRepositoryInterface

	switch cfg.Catalog.Backend {
	case CatalogBackendMemory, "":
		components.Backend = CatalogBackendMemory
		if seed == nil {
			log.Warn().Msg("No CATALOG_SEED_FILE set, starting with an empty in-memory catalog")
			seed = &repository.CatalogSeed{}
		}
		// the memory repository is built from the seed
		repo, seed = repository.NewMemoryCatalogRepository(*seed), nil

	case CatalogBackendMongo:
		if db == nil {
			return nil, ErrMongoRequired
		}
		repo = repository.NewMongoCatalogRepository(db.DB)

	case CatalogBackendPostgres:
		if cfg.Database.PostgresDSN == "" {
			return nil, ErrPostgresDSNRequired
		}
		pg, err := repository.OpenPostgres(ctx, cfg.Database.PostgresDSN)
		if err != nil {
			return nil, err
		}
		pgRepo := repository.NewPostgresCatalogRepository(pg)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		components.postgres = pg
		repo = pgRepo

	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}

	if seed != nil {
		s, ok := repo.(seeder)
		if !ok {
			_ = components.Close()
			return nil, fmt.Errorf("catalog backend %s cannot import a seed", components.Backend)
		}
		if err := s.Seed(ctx, *seed); err != nil {
			_ = components.Close()
			return nil, fmt.Errorf("failed to import catalog seed: %w", err)
		}
		log.Info().
			Str("backend", components.Backend).
			Int("products", len(seed.Products)).
			Msg("Imported catalog seed")
	}

	components.CircuitBreaker = newCircuitBreaker(cfg.Database, "catalog-"+components.Backend)
	components.Repo = repository.NewCatalogRepositoryWithCircuitBreaker(repo, components.CircuitBreaker)

	log.Info().Str("backend", components.Backend).Msg("Catalog initialized")
	return components, nil
}

// Close releases the Postgres pool of the postgres backend.
func (c *CatalogComponents) Close() error {
	if c == nil || c.postgres == nil {
		return nil
	}
	return c.postgres.Close()
}
