package dto

import (
	"time"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// SessionResponse carries a signed session token.
//
// @Description Session token to send as X-Session-Token
type SessionResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	SessionID string    `json:"session_id" example:"5b0c8f5e-3c9e-4a57-9a34-0bd0d1f5c0e1"`
	ExpiresAt time.Time `json:"expires_at" example:"2025-01-29T10:00:00Z"`
} // @name SessionResponse

// FormatsResponse lists the formats of a product.
type FormatsResponse struct {
	ProductID      int            `json:"product_id" example:"42"`
	Formats        []model.Format `json:"formats"`
	HasFormats     bool           `json:"has_formats" example:"true"`
	LayerThickness float64        `json:"layer_thickness" example:"5"`
} // @name FormatsResponse

// QuantitiesResponse lists the quantity options of a product and format.
type QuantitiesResponse struct {
	ProductID      int                    `json:"product_id" example:"42"`
	Format         string                 `json:"format,omitempty" example:"0-16-mm"`
	Quantities     []model.QuantityOption `json:"quantities"`
	LayerThickness float64                `json:"layer_thickness" example:"5"`
} // @name QuantitiesResponse

// VariationResponse is the resolved variation of a product.
type VariationResponse struct {
	ProductID   int    `json:"product_id" example:"42"`
	Format      string `json:"format,omitempty" example:"0-16-mm"`
	Quantity    string `json:"quantity" example:"1500-kg-bigbag-1-2m3"`
	VariationID int    `json:"variation_id" example:"501"`
} // @name VariationResponse

// CalculateResponse is the outcome of the standalone calculator.
//
// @Description Best fitting packaging and bag count for an area
type CalculateResponse struct {
	Option        *model.QuantityOption   `json:"option"`
	Result        model.CalculationResult `json:"result"`
	DisplayVolume float64                 `json:"display_volume" example:"1.15"`
	ThicknessCm   float64                 `json:"thickness_cm" example:"5"`
	Options       []model.QuantityOption  `json:"options"`
	Note          string                  `json:"note" example:"The calculation is based on a layer thickness of 5 cm. Adjust this to your situation."`
	AddToCart     string                  `json:"add_to_cart_label,omitempty" example:"Add 1 Bigbag to cart"`
} // @name CalculateResponse

// WizardResponse is the wizard state with its derived result.
//
// @Description Wizard state, derived result and display strings
type WizardResponse struct {
	Instance      string                  `json:"instance" example:"default"`
	State         model.WizardState       `json:"state"`
	Result        model.CalculationResult `json:"result"`
	DisplayVolume float64                 `json:"display_volume" example:"1.15"`
	Note          string                  `json:"note,omitempty"`
	AddToCart     string                  `json:"add_to_cart_label,omitempty" example:"Add 1 Bigbag to cart"`
	Message       string                  `json:"message,omitempty" example:"No quantities found for this format."`
} // @name WizardResponse

// CartResponse is the add-to-cart handoff of a finished wizard.
//
// @Description Add-to-cart handoff and navigation URL
type CartResponse struct {
	Handoff model.CartHandoff `json:"handoff"`
	BagType string            `json:"bag_type,omitempty" example:"Bigbag"`
	URL     string            `json:"url" example:"/winkelwagen/?add-to-cart=42&variation_id=501&quantity=1"`
	Label   string            `json:"label" example:"Add 1 Bigbag to cart"`
} // @name CartResponse

// SettingsResponse is one settings version.
type SettingsResponse struct {
	Version   int            `json:"version" example:"3"`
	Active    bool           `json:"active" example:"true"`
	Settings  model.Settings `json:"settings"`
	CreatedBy string         `json:"created_by,omitempty" example:"ops"`
	CreatedAt time.Time      `json:"created_at"`
} // @name SettingsResponse
