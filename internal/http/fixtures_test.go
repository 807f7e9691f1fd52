package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/grind-calculator/config"
	"github.com/guttosm/grind-calculator/internal/domain/dto"
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/middleware"
	"github.com/guttosm/grind-calculator/internal/repository"
	"github.com/guttosm/grind-calculator/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testSeed holds two variable products and one simple product.
//
//	7 Grind 8-16  category 1, formats 8-16-mm and 16-32-mm, 4 cm
//	5 Split 0-32  categories 1 and 3, no formats
//	8 Zand los    category 9, simple
func testSeed() repository.CatalogSeed {
	return repository.CatalogSeed{
		Categories: []model.Category{
			{ID: 3, Name: "split"},
			{ID: 1, Name: "Grind"},
			{ID: 9, Name: "Zand"},
		},
		Products: []model.Product{
			{
				ID:             7,
				Name:           "Grind 8-16",
				Type:           model.ProductTypeVariable,
				CategoryIDs:    []int{1},
				LayerThickness: 4,
				Variations: []model.Variation{
					{ID: 11, Format: "8-16-mm", Quantity: "800-kg-bigbag-0-5m3"},
					{ID: 12, Format: "8-16-mm", Quantity: "1500-kg-bigbag-1m3"},
					{ID: 13, Format: "16-32-mm", Quantity: "1000-kg-bigbag-1m3"},
				},
			},
			{
				ID:          5,
				Name:        "Split 0-32",
				Type:        model.ProductTypeVariable,
				CategoryIDs: []int{1, 3},
				Variations: []model.Variation{
					{ID: 21, Quantity: "25-kg-zak-0-016m3"},
				},
			},
			{
				ID:          8,
				Name:        "Zand los",
				Type:        "simple",
				CategoryIDs: []int{9},
			},
		},
		Terms: []model.AttributeTerm{
			{Taxonomy: model.TaxonomyFormat, Slug: "8-16-mm", Name: "8-16 mm"},
			{Taxonomy: model.TaxonomyFormat, Slug: "16-32-mm", Name: "16-32 mm"},
			{Taxonomy: model.TaxonomyQuantity, Slug: "800-kg-bigbag-0-5m3", Name: "800 kg Bigbag 0,5m3"},
			{Taxonomy: model.TaxonomyQuantity, Slug: "1500-kg-bigbag-1m3", Name: "1500 kg Bigbag 1m3"},
			{Taxonomy: model.TaxonomyQuantity, Slug: "1000-kg-bigbag-1m3", Name: "1000 kg Bigbag 1m3"},
			{Taxonomy: model.TaxonomyQuantity, Slug: "25-kg-zak-0-016m3", Name: "25 kg Zak 0,016m3"},
		},
	}
}

// testEnv is a router wired to in-memory services.
type testEnv struct {
	router   *gin.Engine
	tokens   *service.SessionTokenServiceImpl
	settings service.SettingsService
}

func newTestEnv(t *testing.T, opts ...func(*RouterConfig)) *testEnv {
	t.Helper()

	settings := service.NewSettingsService(repository.NewMemorySettingsRepository(), model.Settings{DefaultLayerThickness: 5})
	catalog := service.NewCatalogService(repository.NewMemoryCatalogRepository(testSeed()), settings)
	t.Cleanup(catalog.Close)
	tokens := service.NewSessionTokenService(config.SessionConfig{SecretKey: "test-secret", TokenTTL: time.Hour})

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	cfg.SessionTokens = tokens
	cfg.Catalog = catalog
	cfg.Quotes = service.NewQuoteService(catalog)
	cfg.Wizard = service.NewWizardService(repository.NewMemorySessionStore(time.Hour), catalog, settings)
	cfg.Settings = settings
	for _, opt := range opts {
		opt(&cfg)
	}

	return &testEnv{
		router:   NewRouter(NewHealthHandler(), cfg),
		tokens:   tokens,
		settings: settings,
	}
}

// token issues a session token for sessionID.
func (e *testEnv) token(t *testing.T, sessionID string) string {
	t.Helper()
	tok, err := e.tokens.Issue(sessionID)
	require.NoError(t, err)
	return tok.Token
}

// do sends a JSON request. body may be nil, a string or a value to encode.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, e.router, method, path, body, headers)
}

func serve(t *testing.T, router http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionHeaders(token string) map[string]string {
	return map[string]string{middleware.SessionTokenHeader: token}
}

// decodeData unmarshals the data field of a success envelope into v.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) dto.SuccessResponse {
	t.Helper()
	var envelope struct {
		dto.SuccessResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	if v != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, v))
	}
	return envelope.SuccessResponse
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
