// Package i18n provides internationalization support for the grind calculator.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyAPIKeyRequired indicates that an admin API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid admin API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates the wizard was changed concurrently.
	ErrKeyConflict = "error.conflict"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyInvalidSecurityToken indicates a missing, invalid or expired session token.
	ErrKeyInvalidSecurityToken = "error.invalid_security_token"
	// ErrKeyNeedSelections indicates that product, format and quantity must be chosen first.
	ErrKeyNeedSelections = "error.need_selections"
	// ErrKeyInvalidInput indicates an area that does not yield any bag.
	ErrKeyInvalidInput = "error.invalid_input"
	// ErrKeyVariationMissing indicates that the selected combination cannot be bought.
	ErrKeyVariationMissing = "error.variation_missing"
	// ErrKeyVariationNotFound is the catalog endpoint variant of ErrKeyVariationMissing.
	ErrKeyVariationNotFound = "error.variation_not_found"
	// ErrKeyProductNotFound indicates an unknown or non-variable product.
	ErrKeyProductNotFound = "error.product_not_found"
	// ErrKeyNoPackaging indicates that no packaging option is available.
	ErrKeyNoPackaging = "error.no_packaging"
	// ErrKeyInvalidStep indicates a step outside 1..4.
	ErrKeyInvalidStep = "error.invalid_step"
	// ErrKeyStepNotReachable indicates a forward move with missing selections.
	ErrKeyStepNotReachable = "error.step_not_reachable"
	// ErrKeyInvalidSelection indicates a category, product or format that cannot be chosen.
	ErrKeyInvalidSelection = "error.invalid_selection"
	// ErrKeyCatalogUnavailable indicates the catalog backend could not be reached.
	ErrKeyCatalogUnavailable = "error.catalog_unavailable"
)

// Wizard and calculator message keys.
const (
	// MsgKeyCalculationNote takes the layer thickness in cm.
	MsgKeyCalculationNote = "message.calculation_note"
	// MsgKeyAddToCart takes the bag count and the bag type.
	MsgKeyAddToCart = "message.add_to_cart"
	// MsgKeyBags is the plural used when an option has no bag type.
	MsgKeyBags = "message.bags"
	// MsgKeyNoFormats is shown when a product has no formats.
	MsgKeyNoFormats = "message.no_formats"
	// MsgKeyNoQuantities is shown when a format has no quantities.
	MsgKeyNoQuantities = "message.no_quantities"
	// MsgKeyNoCategories is shown when the wizard has no categories.
	MsgKeyNoCategories = "message.no_categories"
	// MsgKeySelectCategory asks to pick a category first.
	MsgKeySelectCategory = "message.select_category"
	// MsgKeyNoProducts is shown when a category has no variable products.
	MsgKeyNoProducts = "message.no_products"
)

// Success message translation keys.
const (
	// SuccessKeyCalculated indicates a successful calculation.
	SuccessKeyCalculated = "success.calculated"
	// SuccessKeySettingsUpdated indicates that a new settings version was stored.
	SuccessKeySettingsUpdated = "success.settings_updated"
)
