package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/mocks"
)

func serveAudited(t *testing.T, sessionID string, audit func(c *gin.Context)) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.POST("/api/calculate", func(c *gin.Context) {
		if sessionID != "" {
			c.Set(SessionIDKey, sessionID)
		}
		audit(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/calculate", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuditLog(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		fields    map[string]interface{}
		match     func(*model.LogEntry) bool
	}{
		{
			name:      "records session id",
			sessionID: "sess-1",
			fields:    map[string]interface{}{"product_id": 7},
			match: func(e *model.LogEntry) bool {
				return e.SessionID == "sess-1" && e.Fields["product_id"] == 7
			},
		},
		{
			name: "works without session",
			match: func(e *model.LogEntry) bool {
				return e.SessionID == ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan struct{})
			logging := mocks.NewMockLoggingService(t)
			logging.On("CreateLog", mock.Anything, mock.MatchedBy(func(e *model.LogEntry) bool {
				return e.ActionType == ActionCalculate &&
					e.Level == "info" &&
					e.Message == "calculation" &&
					e.Path == "/api/calculate" &&
					e.RequestID != "" &&
					tt.match(e)
			})).Run(func(mock.Arguments) { close(done) }).Return(nil).Once()

			serveAudited(t, tt.sessionID, func(c *gin.Context) {
				AuditLog(logging, c, ActionCalculate, "calculation", tt.fields)
			})

			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("audit entry was not written")
			}
		})
	}
}

func TestAuditLog_NilService(t *testing.T) {
	serveAudited(t, "sess-1", func(c *gin.Context) {
		AuditLog(nil, c, ActionCalculate, "calculation", nil)
		AuditLogError(nil, c, ActionCalculate, "calculation", assert.AnError, nil)
	})
}

func TestAuditLogError(t *testing.T) {
	done := make(chan struct{})
	logging := mocks.NewMockLoggingService(t)
	logging.On("CreateLog", mock.Anything, mock.MatchedBy(func(e *model.LogEntry) bool {
		return e.ActionType == ActionAddToCart &&
			e.Level == "error" &&
			e.Error == assert.AnError.Error() &&
			e.SessionID == "sess-2"
	})).Run(func(mock.Arguments) { close(done) }).Return(nil).Once()

	serveAudited(t, "sess-2", func(c *gin.Context) {
		AuditLogError(logging, c, ActionAddToCart, "variation missing", assert.AnError, nil)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit entry was not written")
	}
}

func TestAuditLog_UsesAsyncLogger(t *testing.T) {
	logging := mocks.NewMockLoggingService(t)
	logging.On("CreateLog", mock.Anything, mock.MatchedBy(func(e *model.LogEntry) bool {
		return e.ActionType == ActionUpdateSettings
	})).Return(nil).Once()

	InitAsyncLogger(logging, AsyncLoggerConfig{BufferSize: 4, NumWorkers: 1, WriteTimeout: time.Second})
	serveAudited(t, "", func(c *gin.Context) {
		AuditLog(logging, c, ActionUpdateSettings, "settings updated", nil)
	})
	StopAsyncLogger()

	assert.Nil(t, GetAsyncLogger())
}
