package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/grind-calculator/internal/domain/dto"
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/i18n"
	"github.com/guttosm/grind-calculator/internal/middleware"
	"github.com/guttosm/grind-calculator/internal/service"
)

// LoggingServiceKey is the gin context key of the audit logging service.
const LoggingServiceKey = "logging_service"

// audit records an audit entry when a logging service is set on the context.
func audit(c *gin.Context, action, message string, err error, fields map[string]interface{}) {
	v, exists := c.Get(LoggingServiceKey)
	if !exists {
		return
	}
	ls, ok := v.(service.LoggingService)
	if !ok || ls == nil {
		return
	}
	if err != nil {
		middleware.AuditLogError(ls, c, action, message, err, fields)
		return
	}
	middleware.AuditLog(ls, c, action, message, fields)
}

// Handler serves the standalone calculator.
type Handler struct {
	quotes service.QuoteService
}

// NewHandler creates a new Handler instance.
func NewHandler(quotes service.QuoteService) *Handler {
	return &Handler{quotes: quotes}
}

// Calculate handles POST /api/calculate requests.
//
// @Summary      Calculate bags for an area
// @Description  Picks the packaging option that covers the needed volume with the fewest bags, then the least overfill, and returns the bag count. Area and thickness accept Dutch or English notation ("1.234,5" or "1,234.5"). A thickness of 0 uses the product layer thickness. When the product has no usable packaging the result is zero and message explains why. Supports idempotency via Idempotency-Key header.
// @Tags         Calculator
// @Accept       json
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CalculateRequest true "Area, thickness and product"
// @Success      200 {object} dto.SuccessResponse{data=dto.CalculateResponse} "Successful calculation"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      403 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/calculate [post]
func (h *Handler) Calculate(c *gin.Context) {
	builder := NewResponseBuilder(c)
	locale := i18n.GetLocale(c)

	req, err := BuildRequestAndValidate[dto.CalculateRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	q, err := h.quotes.Quote(c.Request.Context(), service.QuoteRequest{
		AreaM2:      req.AreaM2.Float(),
		ThicknessCm: req.ThicknessCm.Float(),
		ProductID:   req.ProductID,
		Format:      req.Format,
	})
	noPackaging := errors.Is(err, service.ErrNoPackaging)
	if err != nil && !noPackaging {
		respondError(builder, err, i18n.ErrKeyVariationNotFound)
		return
	}

	resp := dto.CalculateResponse{
		Option:        q.Option,
		Result:        q.Result,
		DisplayVolume: q.Result.DisplayVolume(),
		ThicknessCm:   q.ThicknessCm,
		Options:       q.Options,
		Note:          calculationNote(locale, q.ThicknessCm),
	}
	if resp.Options == nil {
		resp.Options = []model.QuantityOption{}
	}
	if q.Option != nil && q.Result.BagsNeeded > 0 {
		resp.AddToCart = addToCartLabel(locale, q.Result.BagsNeeded, q.Option.BagType)
	}

	fields := map[string]interface{}{
		"product_id":   req.ProductID,
		"format":       req.Format,
		"area_m2":      req.AreaM2.Float(),
		"thickness_cm": q.ThicknessCm,
		"bags_needed":  q.Result.BagsNeeded,
	}
	if q.Option != nil {
		fields["quantity"] = q.Option.Slug
	}
	audit(c, middleware.ActionCalculate, "Calculation requested", nil, fields)

	if noPackaging {
		builder.SuccessWithMessage(http.StatusOK, resp, i18n.ErrKeyNoPackaging)
		return
	}
	builder.SuccessWithMessage(http.StatusOK, resp, i18n.SuccessKeyCalculated)
}
