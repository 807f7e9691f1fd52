package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/grind-calculator/internal/domain/dto"
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/i18n"
	"github.com/guttosm/grind-calculator/internal/middleware"
	"github.com/guttosm/grind-calculator/internal/repository"
	"github.com/guttosm/grind-calculator/internal/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// SettingsHandler manages the versioned calculator settings.
type SettingsHandler struct {
	settings service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func toSettingsResponse(doc repository.SettingsDocument) dto.SettingsResponse {
	return dto.SettingsResponse{
		Version:   doc.Version,
		Active:    doc.Active,
		Settings:  doc.Settings,
		CreatedBy: doc.CreatedBy,
		CreatedAt: doc.CreatedAt,
	}
}

// GetActive handles GET /api/settings requests.
//
// @Summary      Active settings
// @Description  Returns the active default layer thickness and wizard categories. The configured defaults are returned when no version was stored.
// @Tags         Settings
// @Produce      json
// @Param        X-API-Key header string false "Admin API key (required if configured)"
// @Success      200 {object} dto.SuccessResponse{data=model.Settings} "Active settings"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Security     ApiKeyAuth
// @Router       /api/settings [get]
func (h *SettingsHandler) GetActive(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.settings.GetActive(c.Request.Context()))
}

// Update handles PUT /api/settings requests.
//
// @Summary      Update settings
// @Description  Stores a new settings version and makes it active. A thickness of 0 or less falls back to the default, and category ids are deduplicated.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        X-API-Key header string false "Admin API key (required if configured)"
// @Param        request body dto.UpdateSettingsRequest true "Settings"
// @Success      200 {object} dto.SuccessResponse{data=dto.SettingsResponse} "Stored version"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Settings storage not available"
// @Security     ApiKeyAuth
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpdateSettingsRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	updatedBy := strings.TrimSpace(req.UpdatedBy)
	if updatedBy == "" {
		updatedBy = middleware.AdminIdentity(c)
	}

	doc, err := h.settings.Update(c.Request.Context(), model.Settings{
		DefaultLayerThickness: req.DefaultLayerThickness.Float(),
		WizardCategoryIDs:     req.WizardCategoryIDs,
	}, updatedBy)

	fields := map[string]interface{}{
		"default_layer_thickness": req.DefaultLayerThickness.Float(),
		"wizard_category_ids":     req.WizardCategoryIDs,
		"updated_by":              updatedBy,
	}
	if err != nil {
		audit(c, middleware.ActionUpdateSettings, "Settings update failed", err, fields)
		respondError(builder, err, i18n.ErrKeyNotFound)
		return
	}
	fields["version"] = doc.Version
	audit(c, middleware.ActionUpdateSettings, "Settings updated", nil, fields)

	builder.SuccessWithMessage(http.StatusOK, toSettingsResponse(*doc), i18n.SuccessKeySettingsUpdated)
}

// History handles GET /api/settings/history requests.
//
// @Summary      Settings history
// @Description  Lists stored settings versions, newest first.
// @Tags         Settings
// @Produce      json
// @Param        X-API-Key header string false "Admin API key (required if configured)"
// @Param        limit query int false "Maximum number of versions" default(20) maximum(100)
// @Success      200 {object} dto.SuccessResponse{data=[]dto.SettingsResponse} "Versions"
// @Failure      400 {object} dto.ErrorResponse "Invalid limit"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      503 {object} dto.ErrorResponse "Settings storage not available"
// @Security     ApiKeyAuth
// @Router       /api/settings/history [get]
func (h *SettingsHandler) History(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	docs, err := h.settings.History(c.Request.Context(), limit)
	if err != nil {
		respondError(builder, err, i18n.ErrKeyNotFound)
		return
	}

	versions := make([]dto.SettingsResponse, 0, len(docs))
	for _, doc := range docs {
		versions = append(versions, toSettingsResponse(doc))
	}
	builder.SuccessOK(versions)
}
