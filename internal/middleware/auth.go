package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/grind-calculator/internal/domain/dto"
	"github.com/guttosm/grind-calculator/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for admin API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for admin API key authentication.
	APIKeyQuery = "api_key"
	// AdminKeyIndex is the gin context key holding the index of the matched key hash.
	AdminKeyIndex = "admin_key_index"
)

// APIKeyAuth returns a middleware that checks the admin API key against bcrypt hashes.
// It reads the X-API-Key header first, then the api_key query parameter.
// If hashes is empty, authentication is disabled.
func APIKeyAuth(hashes []string) gin.HandlerFunc {
	encoded := make([][]byte, len(hashes))
	for i, h := range hashes {
		encoded[i] = []byte(h)
	}

	return func(c *gin.Context) {
		if len(encoded) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		locale := i18n.GetLocale(c)
		requestID := GetRequestID(c)

		if key == "" {
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, i18n.GetTranslator().Translate(i18n.ErrKeyAPIKeyRequired, locale)).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		for i, hash := range encoded {
			if bcrypt.CompareHashAndPassword(hash, []byte(key)) == nil {
				c.Set(AdminKeyIndex, i)
				c.Next()
				return
			}
		}

		errorResp := dto.NewError(dto.ErrCodeUnauthorized, i18n.GetTranslator().Translate(i18n.ErrKeyInvalidAPIKey, locale)).
			WithRequestID(requestID)
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
	}
}

// AdminIdentity names the caller authenticated by APIKeyAuth, for audit records.
func AdminIdentity(c *gin.Context) string {
	if v, ok := c.Get(AdminKeyIndex); ok {
		if i, ok := v.(int); ok {
			return "admin-key-" + strconv.Itoa(i)
		}
	}
	return "anonymous"
}
