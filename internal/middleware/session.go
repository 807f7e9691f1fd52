package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/grind-calculator/internal/domain/dto"
	"github.com/guttosm/grind-calculator/internal/i18n"
	"github.com/guttosm/grind-calculator/internal/service"
)

const (
	// SessionTokenHeader carries the token issued by POST /api/session.
	SessionTokenHeader = "X-Session-Token"
	// SessionIDKey is the gin context key holding the validated session id.
	SessionIDKey = "session_id"
)

// SessionToken returns a middleware that requires a valid session token.
// The token is read from X-Session-Token, or from a Bearer Authorization header.
// Missing, malformed and expired tokens are rejected with 403.
func SessionToken(tokens service.SessionTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := tokens.Validate(SessionTokenFromRequest(c))
		if err != nil {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInvalidSecurityToken, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewError(dto.ErrCodeForbidden, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id set by SessionToken, or "".
func GetSessionID(c *gin.Context) string {
	if v, ok := c.Get(SessionIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// SessionTokenFromRequest returns the raw session token of the request, or "".
func SessionTokenFromRequest(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(SessionTokenHeader)); token != "" {
		return token
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
