// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model and carry the
// binding rules of the API.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/guttosm/grind-calculator/internal/calculator"
)

// Number is a float that also accepts localized strings such as "1,5" or "1.234,5".
// Unparseable strings decode to 0.
//
// @Description Number, or a string in Dutch or English notation
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(calculator.NormalizeNumeric(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("number: %w", err)
	}
	*n = Number(f)
	return nil
}

// Float returns n as a float64.
func (n Number) Float() float64 {
	return float64(n)
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Upper bounds for calculator input. One square kilometre at ten metres deep
// is far beyond any order and keeps bag counts well inside int.
const (
	MaxAreaM2      = 1_000_000
	MaxThicknessCm = 1_000
)

var (
	// ErrInvalidArea is returned when area_m2 is negative, not finite or above MaxAreaM2.
	ErrInvalidArea = &ValidationError{Field: "area_m2", Message: "must be a number between 0 and 1000000"}
	// ErrInvalidThickness is returned when thickness_cm is negative, not finite or above MaxThicknessCm.
	ErrInvalidThickness = &ValidationError{Field: "thickness_cm", Message: "must be a number between 0 and 1000"}
	// ErrInvalidLayerThickness is returned when default_layer_thickness is not finite or above MaxThicknessCm.
	ErrInvalidLayerThickness = &ValidationError{Field: "default_layer_thickness", Message: "must be a number up to 1000"}
)

// validMeasure reports whether v lies in [0, limit]. NaN fails both comparisons.
func validMeasure(v Number, limit float64) bool {
	f := v.Float()
	return f >= 0 && f <= limit
}

// FormatsRequest asks for the formats of a product.
//
// @Description Request the formats of a variable product
// @Example {"product_id": 42}
type FormatsRequest struct {
	ProductID int `json:"product_id" binding:"required,gt=0" example:"42"`
} // @name FormatsRequest

// QuantitiesRequest asks for the quantity options of a product, optionally for one format.
//
// @Description Request the quantity options of a product
// @Example {"product_id": 42, "format": "0-16-mm"}
type QuantitiesRequest struct {
	ProductID int    `json:"product_id" binding:"required,gt=0" example:"42"`
	Format    string `json:"format" example:"0-16-mm"`
} // @name QuantitiesRequest

// VariationRequest asks for the variation id of a (format, quantity) pair.
//
// @Description Resolve a variation id
// @Example {"product_id": 42, "format": "0-16-mm", "quantity": "1500-kg-bigbag-1-2m3"}
type VariationRequest struct {
	ProductID int    `json:"product_id" binding:"required,gt=0" example:"42"`
	Format    string `json:"format" example:"0-16-mm"`
	Quantity  string `json:"quantity" binding:"required" example:"1500-kg-bigbag-1-2m3"`
} // @name VariationRequest

// CalculateRequest is the body of the standalone calculator endpoint.
// ThicknessCm is optional; the product or configured default is used when it is 0.
//
// @Description Calculate the bags needed for an area
// @Example {"area_m2": "12,5", "thickness_cm": 5, "product_id": 42, "format": "0-16-mm"}
type CalculateRequest struct {
	AreaM2      Number `json:"area_m2" swaggertype:"number" example:"12.5"`
	ThicknessCm Number `json:"thickness_cm" swaggertype:"number" example:"5"`
	ProductID   int    `json:"product_id" binding:"required,gt=0" example:"42"`
	Format      string `json:"format" example:"0-16-mm"`
} // @name CalculateRequest

// Validate performs custom validation on the request.
func (r *CalculateRequest) Validate() error {
	if !validMeasure(r.AreaM2, MaxAreaM2) {
		return ErrInvalidArea
	}
	if !validMeasure(r.ThicknessCm, MaxThicknessCm) {
		return ErrInvalidThickness
	}
	return nil
}

// WizardCategoryRequest selects a category.
type WizardCategoryRequest struct {
	CategoryID int `json:"category_id" binding:"required,gt=0" example:"12"`
} // @name WizardCategoryRequest

// WizardProductRequest selects a product.
type WizardProductRequest struct {
	ProductID int `json:"product_id" binding:"required,gt=0" example:"42"`
} // @name WizardProductRequest

// WizardFormatRequest selects a format by slug or display name.
type WizardFormatRequest struct {
	Format string `json:"format" example:"0-16-mm"`
} // @name WizardFormatRequest

// WizardInputsRequest updates area and thickness.
//
// @Example {"area_m2": "20", "thickness_cm": "4,5"}
type WizardInputsRequest struct {
	AreaM2      Number `json:"area_m2" swaggertype:"number" example:"20"`
	ThicknessCm Number `json:"thickness_cm" swaggertype:"number" example:"5"`
} // @name WizardInputsRequest

// Validate performs custom validation on the request.
func (r *WizardInputsRequest) Validate() error {
	if !validMeasure(r.AreaM2, MaxAreaM2) {
		return ErrInvalidArea
	}
	if !validMeasure(r.ThicknessCm, MaxThicknessCm) {
		return ErrInvalidThickness
	}
	return nil
}

// WizardStepRequest navigates to a step (1 category, 2 product, 3 format, 4 result).
type WizardStepRequest struct {
	Step int `json:"step" example:"2"`
} // @name WizardStepRequest

// UpdateSettingsRequest stores a new settings version.
//
// @Example {"default_layer_thickness": 5, "wizard_category_ids": [12, 14], "updated_by": "ops"}
type UpdateSettingsRequest struct {
	DefaultLayerThickness Number `json:"default_layer_thickness" swaggertype:"number" example:"5"`
	WizardCategoryIDs     []int  `json:"wizard_category_ids" example:"12,14"`
	UpdatedBy             string `json:"updated_by,omitempty" example:"ops"`
} // @name UpdateSettingsRequest

// Validate performs custom validation on the request.
func (r *UpdateSettingsRequest) Validate() error {
	f := r.DefaultLayerThickness.Float()
	if math.IsNaN(f) || f > MaxThicknessCm || math.IsInf(f, -1) {
		return ErrInvalidLayerThickness
	}
	return nil
}
