//go:build !integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/grind-calculator/config"
	apphttp "github.com/guttosm/grind-calculator/internal/http"
)

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*config.Config)
		validate func(*testing.T, apphttp.RouterConfig)
	}{
		{
			name:   "copies server settings",
			modify: func(*config.Config) {},
			validate: func(t *testing.T, cfg apphttp.RouterConfig) {
				assert.Equal(t, 100, cfg.RateLimit)
				assert.Equal(t, time.Minute, cfg.RateWindow)
				assert.True(t, cfg.EnableIdempotency)
				assert.Equal(t, "/winkelwagen/", cfg.CartURL)
				assert.Nil(t, cfg.LoggingService)
				assert.NotNil(t, cfg.SessionTokens)
				assert.NotNil(t, cfg.Catalog)
				assert.NotNil(t, cfg.Quotes)
				assert.NotNil(t, cfg.Wizard)
				assert.NotNil(t, cfg.Settings)
			},
		},
		{
			name: "custom cart url and admin keys",
			modify: func(c *config.Config) {
				c.Server.CartURL = "/cart/"
				c.Server.CORSOrigins = []string{"https://shop.example"}
				c.Auth.APIKeyHashes = []string{"$2a$04$hash"}
			},
			validate: func(t *testing.T, cfg apphttp.RouterConfig) {
				assert.Equal(t, "/cart/", cfg.CartURL)
				assert.Equal(t, []string{"https://shop.example"}, cfg.CORSOrigins)
				assert.Equal(t, []string{"$2a$04$hash"}, cfg.APIKeyHashes)
			},
		},
		{
			name: "swagger credentials and timeouts",
			modify: func(c *config.Config) {
				c.Server.SwaggerUser = "docs"
				c.Server.SwaggerPass = "secret"
				c.Server.RequestTimeout = 3 * time.Second
			},
			validate: func(t *testing.T, cfg apphttp.RouterConfig) {
				assert.Equal(t, "docs", cfg.SwaggerUser)
				assert.Equal(t, "secret", cfg.SwaggerPass)
				assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(&cfg)

			catalog, err := InitializeCatalog(context.Background(), cfg, nil)
			require.NoError(t, err)
			services := InitializeServices(cfg, catalog, nil)
			t.Cleanup(services.Close)

			components := InitializeRouter(services, catalog, nil, cfg)
			require.NotNil(t, components.HealthHandler)
			tt.validate(t, components.Config)
		})
	}
}

func TestInitializeRouter_ReadinessChecksCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	a, err := InitializeApp(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	w := serve(t, a.Router, http.MethodGet, "/readyz", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, map[string]string{
		"catalog":         "ok",
		"catalog_circuit": "closed",
	}, body.Checks)
}
