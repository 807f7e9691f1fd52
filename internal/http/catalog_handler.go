package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/grind-calculator/internal/domain/dto"
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/i18n"
	"github.com/guttosm/grind-calculator/internal/service"
)

// CatalogHandler serves the catalog lookups used by the wizard and the product calculator.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetWizardCatalog handles GET /api/catalog/wizard requests.
//
// @Summary      Wizard catalog
// @Description  Lists the wizard categories, sorted by name, and the variable products of each category.
// @Tags         Catalog
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Success      200 {object} dto.SuccessResponse{data=model.WizardCatalog} "Categories and products"
// @Failure      403 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/catalog/wizard [get]
func (h *CatalogHandler) GetWizardCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	catalog, err := h.catalog.GetWizardCatalog(c.Request.Context())
	if err != nil {
		respondError(builder, err, i18n.ErrKeyVariationNotFound)
		return
	}

	message := ""
	if len(catalog.Categories) == 0 {
		message = i18n.MsgKeyNoCategories
	}
	builder.SuccessWithMessage(http.StatusOK, catalog, message)
}

// GetCalculatorData handles GET /api/catalog/products/:id/calculator requests.
//
// @Summary      Product calculator data
// @Description  Returns the formats, the quantities grouped by format and the layer thickness of one product. Products without formats list their quantities under the "" key. data is null when the product has neither.
// @Tags         Catalog
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        id path int true "Product id"
// @Success      200 {object} dto.SuccessResponse{data=model.CalculatorData} "Calculator data"
// @Failure      400 {object} dto.ErrorResponse "Invalid product id"
// @Failure      403 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/catalog/products/{id}/calculator [get]
func (h *CatalogHandler) GetCalculatorData(c *gin.Context) {
	builder := NewResponseBuilder(c)

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID <= 0 {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	data, err := h.catalog.GetCalculatorData(c.Request.Context(), productID)
	if err != nil {
		respondError(builder, err, i18n.ErrKeyVariationNotFound)
		return
	}
	if data == nil {
		builder.SuccessWithMessage(http.StatusOK, nil, i18n.ErrKeyNoPackaging)
		return
	}
	builder.SuccessOK(data)
}

// GetFormats handles POST /api/catalog/formats requests.
//
// @Summary      Product formats
// @Description  Lists the distinct formats of a variable product together with its layer thickness.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        request body dto.FormatsRequest true "Product"
// @Success      200 {object} dto.SuccessResponse{data=dto.FormatsResponse} "Formats"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      403 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/catalog/formats [post]
func (h *CatalogHandler) GetFormats(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.FormatsRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	formats, thickness, err := h.catalog.GetFormats(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(builder, err, i18n.ErrKeyVariationNotFound)
		return
	}
	if formats == nil {
		formats = []model.Format{}
	}

	message := ""
	if len(formats) == 0 {
		message = i18n.MsgKeyNoFormats
	}
	builder.SuccessWithMessage(http.StatusOK, dto.FormatsResponse{
		ProductID:      req.ProductID,
		Formats:        formats,
		HasFormats:     len(formats) > 0,
		LayerThickness: thickness,
	}, message)
}

// GetQuantities handles POST /api/catalog/quantities requests.
//
// @Summary      Quantity options
// @Description  Lists the usable quantity options of a product, restricted to a format when one is given. Options whose label cannot be parsed are left out.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        request body dto.QuantitiesRequest true "Product and format"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuantitiesResponse} "Quantity options"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      403 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/catalog/quantities [post]
func (h *CatalogHandler) GetQuantities(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.QuantitiesRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	options, thickness, err := h.catalog.GetQuantities(c.Request.Context(), req.ProductID, req.Format)
	if err != nil {
		respondError(builder, err, i18n.ErrKeyVariationNotFound)
		return
	}
	if options == nil {
		options = []model.QuantityOption{}
	}

	message := ""
	if len(options) == 0 {
		message = i18n.MsgKeyNoQuantities
	}
	builder.SuccessWithMessage(http.StatusOK, dto.QuantitiesResponse{
		ProductID:      req.ProductID,
		Format:         req.Format,
		Quantities:     options,
		LayerThickness: thickness,
	}, message)
}

// ResolveVariation handles POST /api/catalog/variation requests.
//
// @Summary      Resolve a variation
// @Description  Returns the variation id of a (format, quantity) pair. Slugs and display names are both accepted.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        X-Session-Token header string true "Session token"
// @Param        request body dto.VariationRequest true "Product, format and quantity"
// @Success      200 {object} dto.SuccessResponse{data=dto.VariationResponse} "Variation"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      403 {object} dto.ErrorResponse "Missing or invalid session token"
// @Failure      404 {object} dto.ErrorResponse "No variation matches"
// @Failure      503 {object} dto.ErrorResponse "Catalog unavailable"
// @Router       /api/catalog/variation [post]
func (h *CatalogHandler) ResolveVariation(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.VariationRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	id, err := h.catalog.ResolveVariation(c.Request.Context(), req.ProductID, req.Format, req.Quantity)
	if err != nil {
		respondError(builder, err, i18n.ErrKeyVariationNotFound)
		return
	}

	builder.SuccessOK(dto.VariationResponse{
		ProductID:   req.ProductID,
		Format:      req.Format,
		Quantity:    req.Quantity,
		VariationID: id,
	})
}
