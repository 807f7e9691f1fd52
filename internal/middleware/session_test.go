package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/grind-calculator/config"
	"github.com/guttosm/grind-calculator/internal/mocks"
	"github.com/guttosm/grind-calculator/internal/service"
)

func TestSessionToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewSessionTokenService(config.SessionConfig{SecretKey: "test-secret", TokenTTL: time.Hour})
	issued, err := tokens.Issue("session-1")
	require.NoError(t, err)

	tests := []struct {
		name           string
		setupRequest   func(*http.Request)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "accepts token in session header",
			setupRequest:   func(req *http.Request) { req.Header.Set(SessionTokenHeader, issued.Token) },
			expectedStatus: http.StatusOK,
			expectedBody:   "session-1",
		},
		{
			name:           "accepts bearer token",
			setupRequest:   func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+issued.Token) },
			expectedStatus: http.StatusOK,
			expectedBody:   "session-1",
		},
		{
			name:           "rejects missing token",
			setupRequest:   func(req *http.Request) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Invalid security token",
		},
		{
			name:           "rejects tampered token",
			setupRequest:   func(req *http.Request) { req.Header.Set(SessionTokenHeader, issued.Token+"x") },
			expectedStatus: http.StatusForbidden,
			expectedBody:   "forbidden",
		},
		{
			name: "translates rejection",
			setupRequest: func(req *http.Request) {
				req.Header.Set("Accept-Language", "nl")
				req.Header.Set(SessionTokenHeader, "garbage")
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Ongeldige beveiligingstoken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(SessionToken(tokens))
			router.GET("/test", func(c *gin.Context) {
				c.String(http.StatusOK, GetSessionID(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.setupRequest(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestSessionToken_TrimsHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := mocks.NewMockSessionTokenService(t)
	tokens.On("Validate", "abc").Return("sid", nil).Once()

	router := gin.New()
	router.Use(SessionToken(tokens))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(SessionTokenHeader, " abc ")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sid", w.Body.String())
	tokens.AssertCalled(t, "Validate", mock.Anything)
}

func TestGetSessionID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetSessionID(c))

	c.Set(SessionIDKey, 42)
	assert.Empty(t, GetSessionID(c))

	c.Set(SessionIDKey, "abc")
	assert.Equal(t, "abc", GetSessionID(c))
}
