package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/grind-calculator/internal/circuitbreaker"
	"github.com/guttosm/grind-calculator/internal/domain/dto"
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/i18n"
	"github.com/guttosm/grind-calculator/internal/mocks"
	"github.com/guttosm/grind-calculator/internal/service"
)

func TestCalculate(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, "calc-session")

	tests := []struct {
		name          string
		body          string
		locale        string
		wantStatus    int
		wantSlug      string
		wantBags      int
		wantThickness float64
		wantMessage   string
		wantLabel     string
	}{
		{
			name:          "product thickness with dutch area",
			body:          `{"area_m2": "10", "product_id": 7, "format": "8-16-mm"}`,
			wantStatus:    http.StatusOK,
			wantSlug:      "800-kg-bigbag-0-5m3",
			wantBags:      1,
			wantThickness: 4,
			wantMessage:   "Calculation completed successfully",
			wantLabel:     "Add 1 Bigbag to cart",
		},
		{
			name:          "explicit thickness with decimal comma",
			body:          `{"area_m2": "20", "thickness_cm": "5,0", "product_id": 7, "format": "8-16 mm"}`,
			wantStatus:    http.StatusOK,
			wantSlug:      "1500-kg-bigbag-1m3",
			wantBags:      1,
			wantThickness: 5,
			wantMessage:   "Calculation completed successfully",
			wantLabel:     "Add 1 Bigbag to cart",
		},
		{
			name:          "dutch labels",
			body:          `{"area_m2": 1, "thickness_cm": 5, "product_id": 5}`,
			locale:        "nl",
			wantStatus:    http.StatusOK,
			wantSlug:      "25-kg-zak-0-016m3",
			wantBags:      4,
			wantThickness: 5,
			wantMessage:   "Berekening voltooid",
			wantLabel:     "Voeg 4 Zak toe aan winkelwagen",
		},
		{
			name:          "no packaging keeps a zero result",
			body:          `{"area_m2": 10, "product_id": 8}`,
			wantStatus:    http.StatusOK,
			wantThickness: 5,
			wantMessage:   "No packaging available for this selection.",
		},
		{
			name:       "negative area",
			body:       `{"area_m2": -1, "product_id": 7}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "huge finite area",
			body:       `{"area_m2": 1e300, "product_id": 7}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing product",
			body:       `{"area_m2": 10}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"area_m2":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := sessionHeaders(token)
			if tt.locale != "" {
				headers["Accept-Language"] = tt.locale
			}

			w := env.do(t, http.MethodPost, "/api/calculate", tt.body, headers)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, dto.ErrCodeInvalidRequest, decodeError(t, w).Error)
				return
			}

			var resp dto.CalculateResponse
			envelope := decodeData(t, w, &resp)
			assert.Equal(t, tt.wantMessage, envelope.Message)
			assert.Equal(t, tt.wantBags, resp.Result.BagsNeeded)
			assert.Equal(t, tt.wantThickness, resp.ThicknessCm)
			assert.Equal(t, tt.wantLabel, resp.AddToCart)
			assert.NotEmpty(t, resp.Note)
			if tt.wantSlug == "" {
				assert.Nil(t, resp.Option)
				assert.Empty(t, resp.Options)
				return
			}
			require.NotNil(t, resp.Option)
			assert.Equal(t, tt.wantSlug, resp.Option.Slug)
		})
	}
}

func TestCalculate_RequiresSessionToken(t *testing.T) {
	env := newTestEnv(t)

	for name, headers := range map[string]map[string]string{
		"missing": nil,
		"invalid": sessionHeaders("not-a-token"),
	} {
		t.Run(name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/calculate", `{"area_m2": 10, "product_id": 7}`, headers)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, w).Error)
		})
	}
}

func TestCalculate_WithMock(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKey    string
	}{
		{"circuit open", circuitbreaker.ErrCircuitOpen, http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable, i18n.ErrKeyCatalogUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, i18n.ErrKeyInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes := mocks.NewMockQuoteService(t)
			quotes.On("Quote", mock.Anything, service.QuoteRequest{AreaM2: 3, ProductID: 7}).
				Return(nil, tt.err).Once()

			env := newTestEnv(t, func(cfg *RouterConfig) { cfg.Quotes = quotes })
			w := env.do(t, http.MethodPost, "/api/calculate", `{"area_m2": 3, "product_id": 7}`, sessionHeaders(env.token(t, "s")))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, i18n.GetTranslator().Translate(tt.wantKey, "en"), decodeError(t, w).Message)
		})
	}
}

func TestCalculate_UsesQuoteResult(t *testing.T) {
	quotes := mocks.NewMockQuoteService(t)
	option := &model.QuantityOption{Slug: "zak", BagType: "", VariationID: 1, WeightPerBag: 25, VolumePerBag: 0.016}
	quotes.On("Quote", mock.Anything, mock.AnythingOfType("service.QuoteRequest")).Return(&service.Quote{
		Option:      option,
		Result:      model.CalculationResult{VolumeNeeded: 0.0456, BagsNeeded: 3},
		ThicknessCm: 4.5,
		Options:     []model.QuantityOption{*option},
	}, nil).Once()

	env := newTestEnv(t, func(cfg *RouterConfig) { cfg.Quotes = quotes })
	headers := sessionHeaders(env.token(t, "s"))
	headers["Accept-Language"] = "nl"
	w := env.do(t, http.MethodPost, "/api/calculate", `{"area_m2": 1, "product_id": 5}`, headers)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.CalculateResponse
	decodeData(t, w, &resp)
	assert.Equal(t, 0.05, resp.DisplayVolume)
	assert.Equal(t, "Voeg 3 zakken toe aan winkelwagen", resp.AddToCart)
	assert.Contains(t, resp.Note, "4,5 cm")
}
