package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{name: "json number", input: `12.5`, expected: 12.5},
		{name: "decimal comma string", input: `"1,5"`, expected: 1.5},
		{name: "dutch thousands", input: `"1.234,56"`, expected: 1234.56},
		{name: "thousands dot", input: `"1.000"`, expected: 1000},
		{name: "spaces", input: `" 2 0 "`, expected: 20},
		{name: "garbage string", input: `"abc"`, expected: 0},
		{name: "null", input: `null`, expected: 0},
		{name: "boolean", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			err := json.Unmarshal([]byte(tt.input), &n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, n.Float(), 1e-9)
		})
	}
}

func TestCalculateRequest_Decode(t *testing.T) {
	var req CalculateRequest
	err := json.Unmarshal([]byte(`{"area_m2":"12,5","thickness_cm":4,"product_id":42,"format":"0-16-mm"}`), &req)
	require.NoError(t, err)

	assert.Equal(t, 12.5, req.AreaM2.Float())
	assert.Equal(t, 4.0, req.ThicknessCm.Float())
	assert.Equal(t, 42, req.ProductID)
	assert.NoError(t, req.Validate())
}

func TestCalculateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request CalculateRequest
		wantErr error
	}{
		{name: "valid", request: CalculateRequest{AreaM2: 10, ThicknessCm: 5, ProductID: 1}},
		{name: "zero area is allowed", request: CalculateRequest{ProductID: 1}},
		{name: "negative area", request: CalculateRequest{AreaM2: -1, ProductID: 1}, wantErr: ErrInvalidArea},
		{name: "negative thickness", request: CalculateRequest{AreaM2: 1, ThicknessCm: -2, ProductID: 1}, wantErr: ErrInvalidThickness},
		{name: "largest area", request: CalculateRequest{AreaM2: MaxAreaM2, ThicknessCm: MaxThicknessCm, ProductID: 1}},
		{name: "huge finite area", request: CalculateRequest{AreaM2: 1e300, ThicknessCm: 5, ProductID: 1}, wantErr: ErrInvalidArea},
		{name: "huge thickness", request: CalculateRequest{AreaM2: 1, ThicknessCm: MaxThicknessCm + 1, ProductID: 1}, wantErr: ErrInvalidThickness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestWizardInputsRequest_Validate(t *testing.T) {
	var req WizardInputsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"area_m2":"inf","thickness_cm":"5"}`), &req))
	assert.Equal(t, ErrInvalidArea, req.Validate())

	req = WizardInputsRequest{AreaM2: 1e300, ThicknessCm: 5}
	assert.Equal(t, ErrInvalidArea, req.Validate())

	req = WizardInputsRequest{AreaM2: 20, ThicknessCm: 5}
	assert.NoError(t, req.Validate())
}

func TestUpdateSettingsRequest_Validate(t *testing.T) {
	var req UpdateSettingsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"default_layer_thickness":"NaN","wizard_category_ids":[1]}`), &req))
	assert.Equal(t, ErrInvalidLayerThickness, req.Validate())

	req = UpdateSettingsRequest{DefaultLayerThickness: 1e300}
	assert.Equal(t, ErrInvalidLayerThickness, req.Validate())

	req = UpdateSettingsRequest{DefaultLayerThickness: -3}
	assert.NoError(t, req.Validate(), "non-positive values are sanitized by the settings service")
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "area_m2: must be a number between 0 and 1000000", ErrInvalidArea.Error())
}
