package http

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/grind-calculator/internal/domain/dto"
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/i18n"
	"github.com/guttosm/grind-calculator/internal/middleware"
	"github.com/guttosm/grind-calculator/internal/service"
)

// InstanceQuery selects one of several wizards of a session.
const InstanceQuery = "instance"

var instancePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// WizardHandler serves the step-by-step configurator.
type WizardHandler struct {
	wizard  service.WizardService
	cartURL string
}

// NewWizardHandler creates a new WizardHandler. cartURL is the page the
// add-to-cart query is appended to.
func NewWizardHandler(wizard service.WizardService, cartURL string) *WizardHandler {
	return &WizardHandler{wizard: wizard, cartURL: cartURL}
}

// wizardKey returns the store key of the requested wizard instance, or false
// after answering 400 for a malformed instance name.
func (h *WizardHandler) wizardKey(c *gin.Context, builder *ResponseBuilder) (string, string, bool) {
	instance := c.Query(InstanceQuery)
	if instance == "" {
		instance = service.DefaultWizardInstance
	}
	if !instancePattern.MatchString(instance) {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, nil)
		return "", "", false
	}
	return service.WizardKey(middleware.GetSessionID(c), instance), instance, true
}

func (h *WizardHandler) present(c *gin.Context, instance string, snap *service.WizardSnapshot) dto.WizardResponse {
	locale := i18n.GetLocale(c)
	st := snap.State
	resp := dto.WizardResponse{
		Instance:      instance,
		State:         st,
		Result:        snap.Result,
		DisplayVolume: snap.Result.DisplayVolume(),
	}
	if st.Step != model.StepResult {
		return resp
	}

	resp.Note = calculationNote(locale, st.ThicknessCm)
	if len(st.AvailableQuantities) == 0 {
		resp.Message = i18n.GetTranslator().Translate(i18n.MsgKeyNoQuantities, locale)
	}
	if st.QuantityData != nil && snap.Result.BagsNeeded > 0 {
		resp.AddToCart = addToCartLabel(locale, snap.Result.BagsNeeded, st.QuantityData.BagType)
	}
	return resp
}

// respond writes the outcome of a wizard call. Rejected changes carry the
// state they were checked against.
func (h *WizardHandler) respond(c *gin.Context, builder *ResponseBuilder, instance string, snap *service.WizardSnapshot, err error) {
	if err == nil {
		builder.SuccessOK(h.present(c, instance, snap))
		return
	}

	status, key := errorStatus(err, i18n.ErrKeyVariationMissing)
	if snap == nil {
		builder.Error(status, key, err)
		return
	}
	builder.ErrorWithData(status, key, err, h.present(c, instance, snap))
}

// Get handles GET /api/wizard requests.
//
// @Summary      Resume a wizard
// @Description  Returns the wizard on its furthest valid step and reloads the catalog data of that step.
// @Tags         Wizard
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        instance query string false "Wizard instance" default(default)
// @Success      200 {object} dto.SuccessResponse{data=dto.WizardResponse} "Wizard state"
// @Failure      403 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/wizard [get]
func (h *WizardHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)
	key, instance, ok := h.wizardKey(c, builder)
	if !ok {
		return
	}

	snap, err := h.wizard.Get(c.Request.Context(), key)
	h.respond(c, builder, instance, snap, err)
}

// SelectCategory handles POST /api/wizard/category requests.
//
// @Summary      Select a category
// @Description  Records the category and moves to the product step. Product, format and quantity are cleared when the category changes.
// @Tags         Wizard
// @Accept       json
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        instance query string false "Wizard instance" default(default)
// @Param        request body dto.WizardCategoryRequest true "Category"
// @Success      200 {object} dto.SuccessResponse{data=dto.WizardResponse} "Wizard state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Changed concurrently; data holds the current state"
// @Failure      422 {object} dto.ErrorResponse "Selection rejected"
// @Router       /api/wizard/category [post]
func (h *WizardHandler) SelectCategory(c *gin.Context) {
	builder := NewResponseBuilder(c)
	key, instance, ok := h.wizardKey(c, builder)
	if !ok {
		return
	}

	req, err := BuildRequestAndValidate[dto.WizardCategoryRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	snap, err := h.wizard.SelectCategory(c.Request.Context(), key, req.CategoryID)
	audit(c, middleware.ActionWizardStep, "Category selected", err, map[string]interface{}{
		"instance":    instance,
		"category_id": req.CategoryID,
	})
	h.respond(c, builder, instance, snap, err)
}

// SelectProduct handles POST /api/wizard/product requests.
//
// @Summary      Select a product
// @Description  Records the product and loads its formats. Products without formats skip straight to the result step.
// @Tags         Wizard
// @Accept       json
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        instance query string false "Wizard instance" default(default)
// @Param        request body dto.WizardProductRequest true "Product"
// @Success      200 {object} dto.SuccessResponse{data=dto.WizardResponse} "Wizard state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Changed concurrently; data holds the current state"
// @Failure      422 {object} dto.ErrorResponse "Selection rejected"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/wizard/product [post]
func (h *WizardHandler) SelectProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)
	key, instance, ok := h.wizardKey(c, builder)
	if !ok {
		return
	}

	req, err := BuildRequestAndValidate[dto.WizardProductRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	snap, err := h.wizard.SelectProduct(c.Request.Context(), key, req.ProductID)
	audit(c, middleware.ActionWizardStep, "Product selected", err, map[string]interface{}{
		"instance":   instance,
		"product_id": req.ProductID,
	})
	h.respond(c, builder, instance, snap, err)
}

// SelectFormat handles POST /api/wizard/format requests.
//
// @Summary      Select a format
// @Description  Records the format, loads its quantities and picks the best fitting option for the current area and thickness.
// @Tags         Wizard
// @Accept       json
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        instance query string false "Wizard instance" default(default)
// @Param        request body dto.WizardFormatRequest true "Format"
// @Success      200 {object} dto.SuccessResponse{data=dto.WizardResponse} "Wizard state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Changed concurrently; data holds the current state"
// @Failure      422 {object} dto.ErrorResponse "Selection rejected"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/wizard/format [post]
func (h *WizardHandler) SelectFormat(c *gin.Context) {
	builder := NewResponseBuilder(c)
	key, instance, ok := h.wizardKey(c, builder)
	if !ok {
		return
	}

	req, err := BuildRequestAndValidate[dto.WizardFormatRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	snap, err := h.wizard.SelectFormat(c.Request.Context(), key, req.Format)
	audit(c, middleware.ActionWizardStep, "Format selected", err, map[string]interface{}{
		"instance": instance,
		"format":   req.Format,
	})
	h.respond(c, builder, instance, snap, err)
}

// UpdateInputs handles POST /api/wizard/inputs requests.
//
// @Summary      Update area and thickness
// @Description  Stores the area and layer thickness. On the result step the best fitting option is chosen again.
// @Tags         Wizard
// @Accept       json
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        instance query string false "Wizard instance" default(default)
// @Param        request body dto.WizardInputsRequest true "Area and thickness"
// @Success      200 {object} dto.SuccessResponse{data=dto.WizardResponse} "Wizard state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Changed concurrently; data holds the current state"
// @Router       /api/wizard/inputs [post]
func (h *WizardHandler) UpdateInputs(c *gin.Context) {
	builder := NewResponseBuilder(c)
	key, instance, ok := h.wizardKey(c, builder)
	if !ok {
		return
	}

	req, err := BuildRequestAndValidate[dto.WizardInputsRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	snap, err := h.wizard.UpdateInputs(c.Request.Context(), key, req.AreaM2.Float(), req.ThicknessCm.Float())
	h.respond(c, builder, instance, snap, err)
}

// GoTo handles POST /api/wizard/step requests.
//
// @Summary      Navigate to a step
// @Description  Moves to step 1 (category), 2 (product), 3 (format) or 4 (result). Going back is always allowed; going forward needs the earlier selections.
// @Tags         Wizard
// @Accept       json
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        instance query string false "Wizard instance" default(default)
// @Param        request body dto.WizardStepRequest true "Target step"
// @Success      200 {object} dto.SuccessResponse{data=dto.WizardResponse} "Wizard state"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Changed concurrently; data holds the current state"
// @Failure      422 {object} dto.ErrorResponse "Step not reachable"
// @Router       /api/wizard/step [post]
func (h *WizardHandler) GoTo(c *gin.Context) {
	builder := NewResponseBuilder(c)
	key, instance, ok := h.wizardKey(c, builder)
	if !ok {
		return
	}

	req, err := BuildRequestAndValidate[dto.WizardStepRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	snap, err := h.wizard.GoTo(c.Request.Context(), key, model.Step(req.Step))
	h.respond(c, builder, instance, snap, err)
}

// Reset handles DELETE /api/wizard requests.
//
// @Summary      Reset a wizard
// @Description  Drops the stored wizard and returns an empty one.
// @Tags         Wizard
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        instance query string false "Wizard instance" default(default)
// @Success      200 {object} dto.SuccessResponse{data=dto.WizardResponse} "Empty wizard"
// @Failure      403 {object} dto.ErrorResponse "Missing or invalid session token"
// @Router       /api/wizard [delete]
func (h *WizardHandler) Reset(c *gin.Context) {
	builder := NewResponseBuilder(c)
	key, instance, ok := h.wizardKey(c, builder)
	if !ok {
		return
	}

	snap, err := h.wizard.Reset(c.Request.Context(), key)
	h.respond(c, builder, instance, snap, err)
}

// AddToCart handles POST /api/wizard/cart requests.
//
// @Summary      Add the result to the cart
// @Description  Confirms the selected variation with the catalog and returns the add-to-cart handoff, the navigation URL and the button label.
// @Tags         Wizard
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        instance query string false "Wizard instance" default(default)
// @Success      200 {object} dto.SuccessResponse{data=dto.CartResponse} "Cart handoff"
// @Failure      403 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure      404 {object} dto.ErrorResponse "Selected combination is not available"
// @Failure      422 {object} dto.ErrorResponse "Selections or inputs missing"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/wizard/cart [post]
func (h *WizardHandler) AddToCart(c *gin.Context) {
	builder := NewResponseBuilder(c)
	key, instance, ok := h.wizardKey(c, builder)
	if !ok {
		return
	}

	prep, err := h.wizard.PrepareCart(c.Request.Context(), key)
	if err != nil {
		audit(c, middleware.ActionAddToCart, "Add to cart rejected", err, map[string]interface{}{
			"instance": instance,
		})
		respondError(builder, err, i18n.ErrKeyVariationMissing)
		return
	}

	url, err := prep.Handoff.URL(h.cartURL)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, errors.Join(errors.New("invalid cart url"), err))
		return
	}

	audit(c, middleware.ActionAddToCart, "Added to cart", nil, map[string]interface{}{
		"instance":      instance,
		"product_id":    prep.Handoff.ProductID,
		"variation_id":  prep.Handoff.VariationID,
		"format":        prep.Handoff.Format,
		"quantity_slug": prep.Handoff.QuantitySlug,
		"bag_count":     prep.Handoff.BagCount,
	})

	builder.SuccessOK(dto.CartResponse{
		Handoff: prep.Handoff,
		BagType: prep.BagType,
		URL:     url,
		Label:   addToCartLabel(i18n.GetLocale(c), prep.Handoff.BagCount, prep.BagType),
	})
}
