package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantityOption_Valid(t *testing.T) {
	tests := []struct {
		name     string
		option   QuantityOption
		expected bool
	}{
		{
			name:     "complete option",
			option:   QuantityOption{VariationID: 1, WeightPerBag: 800, VolumePerBag: 1},
			expected: true,
		},
		{
			name:     "missing variation",
			option:   QuantityOption{WeightPerBag: 800, VolumePerBag: 1},
			expected: false,
		},
		{
			name:     "zero volume",
			option:   QuantityOption{VariationID: 1, WeightPerBag: 800},
			expected: false,
		},
		{
			name:     "negative weight",
			option:   QuantityOption{VariationID: 1, WeightPerBag: -1, VolumePerBag: 1},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.option.Valid())
		})
	}
}

func TestCalculationResult_DisplayVolume(t *testing.T) {
	assert.Equal(t, 1.15, CalculationResult{VolumeNeeded: 1.1500000000000001}.DisplayVolume())
	assert.Equal(t, 0.33, CalculationResult{VolumeNeeded: 1.0 / 3}.DisplayVolume())
	assert.Equal(t, 0.0, ZeroResult().DisplayVolume())
}

func TestSettings_Sanitize(t *testing.T) {
	s := Settings{DefaultLayerThickness: 0, WizardCategoryIDs: []int{4, -1, 0, 4, 9}}.Sanitize(5)

	assert.Equal(t, 5.0, s.DefaultLayerThickness)
	assert.Equal(t, []int{4, 9}, s.WizardCategoryIDs)

	kept := Settings{DefaultLayerThickness: 7.5}.Sanitize(5)
	assert.Equal(t, 7.5, kept.DefaultLayerThickness)
	assert.Empty(t, kept.WizardCategoryIDs)
}

func TestCartHandoff_URL(t *testing.T) {
	tests := []struct {
		name     string
		handoff  CartHandoff
		cartURL  string
		expected string
	}{
		{
			name:     "with format",
			handoff:  CartHandoff{ProductID: 42, VariationID: 501, Format: "0-16-mm", QuantitySlug: "800-kg-bigbag-1m3", BagCount: 2},
			cartURL:  "https://shop.example/winkelwagen/",
			expected: "https://shop.example/winkelwagen/?add-to-cart=42&attribute_pa_formaat=0-16-mm&attribute_pa_hoeveelheid=800-kg-bigbag-1m3&quantity=2&variation_id=501",
		},
		{
			name:     "without format",
			handoff:  CartHandoff{ProductID: 7, VariationID: 9, QuantitySlug: "25-kg-zak-0-02m3", BagCount: 12},
			cartURL:  "/cart/",
			expected: "/cart/?add-to-cart=7&attribute_pa_hoeveelheid=25-kg-zak-0-02m3&quantity=12&variation_id=9",
		},
		{
			name:     "keeps existing query",
			handoff:  CartHandoff{ProductID: 1, VariationID: 2, QuantitySlug: "q", BagCount: 1},
			cartURL:  "/cart/?lang=nl",
			expected: "/cart/?add-to-cart=1&attribute_pa_hoeveelheid=q&lang=nl&quantity=1&variation_id=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.handoff.URL(tt.cartURL)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCartHandoff_URL_InvalidCartURL(t *testing.T) {
	_, err := CartHandoff{ProductID: 1}.URL("://bad")
	assert.Error(t, err)
}
