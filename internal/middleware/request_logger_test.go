package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/logger"
	"github.com/guttosm/grind-calculator/internal/mocks"
)

// captureLog sends the global logger to a buffer for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	logger.InitWithWriter("debug", false, &buf)
	t.Cleanup(func() { logger.Init("info", false) })
	return &buf
}

func TestStatusLevel(t *testing.T) {
	tests := map[int]zerolog.Level{
		200: zerolog.InfoLevel,
		304: zerolog.InfoLevel,
		404: zerolog.WarnLevel,
		409: zerolog.WarnLevel,
		500: zerolog.ErrorLevel,
		503: zerolog.ErrorLevel,
	}
	for status, want := range tests {
		assert.Equal(t, want, statusLevel(status), "status %d", status)
	}
}

func TestPersisted(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/calculate", true},
		{"/api/wizard/step", true},
		{"/healthz", false},
		{"/readyz", false},
		{"/metrics", false},
		{"/swagger/index.html", false},
		{"/api/logs", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, persisted(tt.path), tt.path)
	}
}

func TestRequestLogger_WritesLine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success", status: http.StatusOK, wantLevel: "info"},
		{name: "client error", status: http.StatusUnprocessableEntity, wantLevel: "warn"},
		{name: "server error", status: http.StatusBadGateway, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)

			router := gin.New()
			router.Use(RequestID(), RequestLogger(nil))
			router.GET("/api/catalog/products/:id/formats", func(c *gin.Context) { c.Status(tt.status) })

			req := httptest.NewRequest(http.MethodGet, "/api/catalog/products/7/formats", nil)
			req.Header.Set(RequestIDHeader, "req-abc")
			router.ServeHTTP(httptest.NewRecorder(), req)

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, "HTTP request", line["message"])
			assert.Equal(t, "req-abc", line["request_id"])
			assert.Equal(t, "/api/catalog/products/7/formats", line["path"])
			assert.Equal(t, "/api/catalog/products/:id/formats", line["route"])
			assert.EqualValues(t, tt.status, line["status_code"])
		})
	}
}

func TestRequestLogger_StoresEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	captureLog(t)

	stored := make(chan *model.LogEntry, 1)
	logging := mocks.NewMockLoggingService(t)
	logging.On("CreateLog", mock.Anything, mock.AnythingOfType("*model.LogEntry")).
		Run(func(args mock.Arguments) { stored <- args.Get(1).(*model.LogEntry) }).
		Return(nil).Once()

	router := gin.New()
	router.Use(RequestID(), RequestLogger(logging))
	router.Use(func(c *gin.Context) {
		c.Set(SessionIDKey, "sess-9")
		c.Next()
	})
	router.POST("/api/calculate", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusBadRequest)
	})
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/calculate", nil))

	select {
	case entry := <-stored:
		assert.Equal(t, "sess-9", entry.SessionID)
		assert.Equal(t, "/api/calculate", entry.Path)
		assert.Equal(t, http.StatusBadRequest, entry.StatusCode)
		assert.Equal(t, "warn", entry.Level)
		assert.Equal(t, assert.AnError.Error(), entry.Error)
		assert.NotEmpty(t, entry.RequestID)
		assert.False(t, entry.IsAudit())
	case <-time.After(2 * time.Second):
		t.Fatal("request entry was not stored")
	}
}
