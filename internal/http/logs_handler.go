package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/grind-calculator/internal/domain/dto"
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/i18n"
	"github.com/guttosm/grind-calculator/internal/service"
)

// LogsHandler serves the stored request and audit log.
type LogsHandler struct {
	logging service.LoggingService
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(logging service.LoggingService) *LogsHandler {
	return &LogsHandler{logging: logging}
}

// Query handles GET /api/logs requests.
//
// @Summary      Query logs
// @Description  Lists stored request and audit entries, newest first. The path filter matches case-insensitively anywhere in the path.
// @Tags         Logs
// @Produce      json
// @Param        X-API-Key header string false "Admin API key (required if configured)"
// @Param        request_id query string false "Request id"
// @Param        session_id query string false "Wizard session id"
// @Param        action_type query string false "Audit action, e.g. add_to_cart"
// @Param        level query string false "Log level" Enums(debug, info, warn, error, fatal, panic)
// @Param        method query string false "HTTP method"
// @Param        path query string false "Path fragment"
// @Param        from query string false "Earliest timestamp (RFC 3339)"
// @Param        to query string false "Latest timestamp (RFC 3339)"
// @Param        limit query int false "Page size" default(100) maximum(1000)
// @Param        skip query int false "Entries to skip" default(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.LogPage} "Log entries"
// @Failure      400 {object} dto.ErrorResponse "Invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Log storage not available"
// @Security     ApiKeyAuth
// @Router       /api/logs [get]
func (h *LogsHandler) Query(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildQueryAndValidate[dto.LogQueryRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}
	opts := service.NormalizeLogQuery(req.Options())

	ctx := c.Request.Context()
	entries, err := h.logging.QueryLogs(ctx, opts)
	if err != nil {
		respondError(builder, err, i18n.ErrKeyNotFound)
		return
	}
	total, err := h.logging.CountLogs(ctx, opts)
	if err != nil {
		respondError(builder, err, i18n.ErrKeyNotFound)
		return
	}
	if entries == nil {
		entries = []model.LogEntry{}
	}

	builder.SuccessOK(dto.LogPage{Entries: entries, Total: total, Limit: opts.Limit, Skip: opts.Skip})
}
