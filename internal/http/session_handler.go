package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/grind-calculator/internal/domain/dto"
	"github.com/guttosm/grind-calculator/internal/i18n"
	"github.com/guttosm/grind-calculator/internal/middleware"
	"github.com/guttosm/grind-calculator/internal/service"
)

// SessionHandler issues session tokens.
type SessionHandler struct {
	tokens service.SessionTokenService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(tokens service.SessionTokenService) *SessionHandler {
	return &SessionHandler{tokens: tokens}
}

// CreateSession handles POST /api/session requests.
//
// @Summary      Start or renew a session
// @Description  Issues a signed session token. A request that already carries a valid token gets a fresh token for the same session, so stored wizards survive the renewal. The token must be sent as X-Session-Token on every other /api endpoint.
// @Tags         Session
// @Produce      json
// @Param        X-Session-Token header string false "Token to renew"
// @Success      200 {object} dto.SuccessResponse{data=dto.SessionResponse} "Session token"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/session [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	builder := NewResponseBuilder(c)

	sessionID, err := h.tokens.Validate(middleware.SessionTokenFromRequest(c))
	if err != nil {
		sessionID = uuid.NewString()
	}

	token, err := h.tokens.Issue(sessionID)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(dto.SessionResponse{
		Token:     token.Token,
		SessionID: token.SessionID,
		ExpiresAt: token.ExpiresAt,
	})
}
