//go:build integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/grind-calculator/config"
	"github.com/guttosm/grind-calculator/internal/testutil"
)

func integrationConfig(t *testing.T, backend string) config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:       "8080",
			RateLimit:  100,
			RateWindow: time.Minute,
		},
		Cache: config.CacheConfig{Size: 100, TTL: time.Minute},
		Session: config.SessionConfig{
			SecretKey: "test-secret",
			TokenTTL:  time.Hour,
			StateTTL:  time.Hour,
		},
		Catalog: config.CatalogConfig{
			Backend:               backend,
			SeedFile:              "testdata/catalog.json",
			Timeout:               5 * time.Second,
			DefaultLayerThickness: config.DefaultLayerThickness,
		},
		Database: config.DatabaseConfig{
			URI:                            getSharedContainerURI(),
			DatabaseName:                   sanitizeDBNameForApp(t.Name()),
			LogsTTL:                        30 * 24 * time.Hour,
			Enabled:                        true,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
	}
}

func TestInitializeApp_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("mongo catalog backend", func(t *testing.T) {
		cfg := integrationConfig(t, CatalogBackendMongo)

		a, err := InitializeApp(context.Background(), cfg)
		require.NoError(t, err)
		t.Cleanup(func() { assert.NoError(t, a.Close(context.Background())) })

		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)
		assert.Contains(t, w.Body.String(), `"catalog":"ok"`)

		product, err := a.catalog.Repo.GetProduct(context.Background(), 7)
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Len(t, product.Variations, 2)
	})

	t.Run("memory catalog with mongo sessions", func(t *testing.T) {
		cfg := integrationConfig(t, CatalogBackendMemory)

		a, err := InitializeApp(context.Background(), cfg)
		require.NoError(t, err)
		t.Cleanup(func() { assert.NoError(t, a.Close(context.Background())) })

		snap, err := a.services.Wizard.SelectCategory(context.Background(), "integration/default", 1)
		require.NoError(t, err)
		require.NotNil(t, snap.State.CategoryID)

		// a second app on the same database resumes the stored wizard
		other, err := InitializeApp(context.Background(), cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = other.Close(context.Background()) })

		resumed, err := other.services.Wizard.Get(context.Background(), "integration/default")
		require.NoError(t, err)
		require.NotNil(t, resumed.State.CategoryID)
		assert.Equal(t, 1, *resumed.State.CategoryID)
	})

	t.Run("unreachable database falls back to memory", func(t *testing.T) {
		cfg := integrationConfig(t, CatalogBackendMemory)
		cfg.Database.URI = "mongodb://127.0.0.1:1"

		a, err := InitializeApp(context.Background(), cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = a.Close(context.Background()) })
		assert.Nil(t, a.db)
	})
}

func TestInitializeCatalog_PostgresIntegration(t *testing.T) {
	ctx := context.Background()

	pg, err := testutil.SetupPostgres(ctx)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = pg.Cleanup(context.Background()) })

	cfg := integrationConfig(t, CatalogBackendPostgres)
	cfg.Database.PostgresDSN = pg.URI

	components, err := InitializeCatalog(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, components.Close()) })

	assert.Equal(t, "catalog-postgres", components.CircuitBreaker.Name())
	require.NoError(t, components.Repo.Ping(ctx))

	product, err := components.Repo.GetProduct(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Grind 8-16", product.Name)

	categories, err := components.Repo.ListCategories(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	// importing the seed again is idempotent
	again, err := InitializeCatalog(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.Close() })
	categories, err = again.Repo.ListCategories(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}
