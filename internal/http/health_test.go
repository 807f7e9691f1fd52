package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/grind-calculator/internal/circuitbreaker"
)

func openBreaker(t *testing.T) *circuitbreaker.CircuitBreaker {
	cb := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             "catalog",
	})
	err := cb.Execute(context.Background(), func() error { return errors.New("down") })
	require.Error(t, err)
	require.True(t, cb.IsOpen())
	return cb
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name           string
		setupHandler   func(t *testing.T) *HealthHandler
		expectedStatus int
		expectedChecks map[string]interface{}
	}{
		{
			name: "readiness check no checkers",
			setupHandler: func(*testing.T) *HealthHandler {
				return NewHealthHandler()
			},
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]interface{}{"service": "ok"},
		},
		{
			name: "readiness check with healthy circuit breaker",
			setupHandler: func(*testing.T) *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterCircuitBreaker("catalog", circuitbreaker.New(circuitbreaker.DefaultConfig()))
				return handler
			},
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]interface{}{"catalog_circuit": "closed"},
		},
		{
			name: "open circuit breaker",
			setupHandler: func(t *testing.T) *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterCircuitBreaker("catalog", openBreaker(t))
				return handler
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]interface{}{"catalog_circuit": "open"},
		},
		{
			name: "passing checker",
			setupHandler: func(*testing.T) *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterChecker("mongodb", CheckFunc(func(context.Context) error { return nil }))
				return handler
			},
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]interface{}{"mongodb": "ok"},
		},
		{
			name: "failing checker",
			setupHandler: func(*testing.T) *HealthHandler {
				handler := NewHealthHandler()
				handler.RegisterChecker("catalog", CheckFunc(func(context.Context) error { return errors.New("connection refused") }))
				handler.RegisterChecker("mongodb", CheckFunc(func(context.Context) error { return nil }))
				return handler
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]interface{}{"catalog": "connection refused", "mongodb": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			tt.setupHandler(t).Register(router)

			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			var body struct {
				Status string                 `json:"status"`
				Checks map[string]interface{} `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedChecks, body.Checks)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "ok", body.Status)
			} else {
				assert.Equal(t, "degraded", body.Status)
			}
		})
	}
}

func TestHealthHandler_ReadinessPassesDeadline(t *testing.T) {
	handler := NewHealthHandler()
	handler.RegisterChecker("slow", CheckFunc(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		if !ok {
			return errors.New("no deadline")
		}
		return nil
	}))

	router := gin.New()
	handler.Register(router)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_ReadinessRunsChecksConcurrently(t *testing.T) {
	started := make(chan struct{}, 2)
	// each check waits until the other one has started
	wait := CheckFunc(func(ctx context.Context) error {
		started <- struct{}{}
		for len(started) < 2 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Millisecond):
			}
		}
		return nil
	})

	handler := NewHealthHandler()
	handler.RegisterChecker("catalog", wait)
	handler.RegisterChecker("mongodb", wait)

	router := gin.New()
	handler.Register(router)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestHealthHandler_Liveness(t *testing.T) {
	router := gin.New()
	handler := NewHealthHandler()
	handler.RegisterCircuitBreaker("catalog", openBreaker(t))
	handler.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
