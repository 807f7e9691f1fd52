package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/logger"
	"github.com/guttosm/grind-calculator/internal/service"
)

// unpersistedPrefixes are logged but never stored. Reading the log does not
// append to it.
var unpersistedPrefixes = []string{"/healthz", "/readyz", "/metrics", "/swagger/", "/api/logs"}

const persistTimeout = 5 * time.Second

// RequestLogger writes one structured line per request and, when a logging
// service is given, stores a matching entry. Stored entries go through the
// async logger when it is running.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := &model.LogEntry{
			Timestamp:  start.UTC(),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			SessionID:  GetSessionID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: c.Writer.Status(),
			Duration:   time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}
		level := statusLevel(entry.StatusCode)
		entry.Level = level.String()
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}

		reqLog := logger.ForRequest(entry.RequestID, entry.SessionID)
		event := reqLog.WithLevel(level).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", entry.StatusCode).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP)
		if route := c.FullPath(); route != "" && route != entry.Path {
			event = event.Str("route", route)
		}
		event.Msg(entry.Message)

		if loggingService == nil || !persisted(entry.Path) {
			return
		}
		if async := GetAsyncLogger(); async != nil {
			async.Log(entry)
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			defer cancel()
			if err := loggingService.CreateLog(ctx, entry); err != nil {
				reqLog.Debug().Err(err).Msg("Failed to store request log")
			}
		}()
	}
}

func statusLevel(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func persisted(path string) bool {
	for _, prefix := range unpersistedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}
