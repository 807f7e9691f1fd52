// Package model defines the core domain entities for the grind calculator.
package model

import "math"

// Format is a top-level packaging dimension of a product (e.g. a grain size).
//
// @Description Product format option
// @Example {"slug": "0-16-mm", "name": "0-16 mm"}
type Format struct {
	Slug string `json:"slug" example:"0-16-mm"`
	Name string `json:"name" example:"0-16 mm"`
}

// ParsedLabel holds the fields derived from a quantity label such as "800 kg Bigbag 1m3".
type ParsedLabel struct {
	WeightPerBag float64 `json:"weight_per_bag"`
	BagType      string  `json:"bag_type"`
	VolumePerBag float64 `json:"volume_per_bag"`
}

// RawQuantityRecord is a quantity entry as supplied by the catalog.
// Structured fields are optional; missing ones are backfilled from the label.
type RawQuantityRecord struct {
	Slug         string
	Label        string
	VariationID  int
	BagType      string
	WeightPerBag float64
	VolumePerBag float64
}

// QuantityOption is a purchasable package size that can take part in calculations.
//
// @Description Packaging unit with its weight and volume per bag
// @Example {"slug": "800-kg-bigbag-1m3", "label": "800 kg Bigbag 1m3", "variation_id": 501, "bag_type": "Bigbag", "weight_per_bag": 800, "volume_per_bag": 1}
type QuantityOption struct {
	Slug         string  `json:"slug" example:"800-kg-bigbag-1m3"`
	Label        string  `json:"label" example:"800 kg Bigbag 1m3"`
	VariationID  int     `json:"variation_id" example:"501"`
	BagType      string  `json:"bag_type" example:"Bigbag"`
	WeightPerBag float64 `json:"weight_per_bag" example:"800"`
	VolumePerBag float64 `json:"volume_per_bag" example:"1"`
}

// Valid reports whether the option can take part in calculations.
func (o QuantityOption) Valid() bool {
	return o.VariationID > 0 && o.WeightPerBag > 0 && o.VolumePerBag > 0
}

// CalculationResult is the material volume and bag count for a given input.
// It is derived on demand and never persisted.
//
// @Description Result of a quantity calculation
// @Example {"volume_needed": 1.15, "bags_needed": 1}
type CalculationResult struct {
	// VolumeNeeded is the required volume in m³
	VolumeNeeded float64 `json:"volume_needed" example:"1.15"`
	// BagsNeeded is the number of bags of the selected option
	BagsNeeded int `json:"bags_needed" example:"1"`
}

// DisplayVolume returns the volume rounded to two decimals for presentation.
func (r CalculationResult) DisplayVolume() float64 {
	return math.Round(r.VolumeNeeded*100) / 100
}

// ZeroResult returns the empty calculation result.
func ZeroResult() CalculationResult {
	return CalculationResult{}
}
