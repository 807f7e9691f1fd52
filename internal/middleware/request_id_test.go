package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		header   string
		wantKept bool
	}{
		{name: "generated when missing", header: ""},
		{name: "client id kept", header: "checkout-7f3a", wantKept: true},
		{name: "id with spaces replaced", header: "add to cart"},
		{name: "control characters replaced", header: "abc\x1bdef"},
		{name: "oversized id replaced", header: strings.Repeat("a", maxRequestIDLength+1)},
		{name: "id at the size limit kept", header: strings.Repeat("b", maxRequestIDLength), wantKept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID())
			router.GET("/api/wizard", func(c *gin.Context) {
				c.String(http.StatusOK, GetRequestID(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/wizard", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			id := w.Body.String()
			assert.Equal(t, id, w.Header().Get(RequestIDHeader))
			if tt.wantKept {
				assert.Equal(t, tt.header, id)
				return
			}
			_, err := uuid.Parse(id)
			assert.NoError(t, err, "expected a generated UUID, got %q", id)
		})
	}
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*gin.Context)
		want  string
	}{
		{name: "missing", setup: func(*gin.Context) {}, want: ""},
		{name: "set", setup: func(c *gin.Context) { c.Set(string(RequestIDKey), "req-1") }, want: "req-1"},
		{name: "wrong type", setup: func(c *gin.Context) { c.Set(string(RequestIDKey), 42) }, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			tt.setup(c)
			assert.Equal(t, tt.want, GetRequestID(c))
		})
	}
}
