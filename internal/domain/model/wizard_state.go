package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// WizardStateVersion is the schema version of the persisted wizard blob.
const WizardStateVersion = 1

// ErrUnsupportedStateVersion is returned when a persisted blob has an unknown schema version.
var ErrUnsupportedStateVersion = errors.New("unsupported wizard state version")

// Step is a wizard step.
type Step int

const (
	// StepCategory is the category selection step.
	StepCategory Step = 1
	// StepProduct is the product selection step.
	StepProduct Step = 2
	// StepFormat is the format selection step.
	StepFormat Step = 3
	// StepResult is the calculation result step.
	StepResult Step = 4
)

// Valid reports whether s is one of the four wizard steps.
func (s Step) Valid() bool {
	return s >= StepCategory && s <= StepResult
}

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepCategory:
		return "category"
	case StepProduct:
		return "product"
	case StepFormat:
		return "format"
	case StepResult:
		return "result"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// WizardState is the persisted state of one wizard instance.
//
// Invariant: Quantity != nil implies QuantityData != nil, and QuantityData
// is one of AvailableQuantities.
type WizardState struct {
	Version             int              `json:"version"`
	Step                Step             `json:"step"`
	CategoryID          *int             `json:"categoryId"`
	ProductID           *int             `json:"productId"`
	Format              FormatChoice     `json:"format"`
	Quantity            *string          `json:"quantity"`
	QuantityData        *QuantityOption  `json:"quantityData"`
	AvailableQuantities []QuantityOption `json:"availableQuantities"`
	AvailableFormats    []Format         `json:"availableFormats,omitempty"`
	AreaM2              float64          `json:"areaM2"`
	ThicknessCm         float64          `json:"thicknessCm"`
	// Generation is bumped for every catalog fetch a transition issues.
	Generation uint64 `json:"generation"`
	// Revision is owned by the session store and is not part of the blob.
	Revision int64 `json:"-"`
}

// NewWizardState returns an empty wizard positioned at the first step.
func NewWizardState(thicknessCm float64) WizardState {
	return WizardState{
		Version:             WizardStateVersion,
		Step:                StepCategory,
		Format:              UnsetFormat(),
		AvailableQuantities: []QuantityOption{},
		ThicknessCm:         thicknessCm,
	}
}

// Clone returns a deep copy of the state.
func (s WizardState) Clone() WizardState {
	out := s
	if s.CategoryID != nil {
		v := *s.CategoryID
		out.CategoryID = &v
	}
	if s.ProductID != nil {
		v := *s.ProductID
		out.ProductID = &v
	}
	if s.Quantity != nil {
		v := *s.Quantity
		out.Quantity = &v
	}
	if s.QuantityData != nil {
		v := *s.QuantityData
		out.QuantityData = &v
	}
	if s.AvailableQuantities != nil {
		out.AvailableQuantities = append([]QuantityOption(nil), s.AvailableQuantities...)
	}
	if s.AvailableFormats != nil {
		out.AvailableFormats = append([]Format(nil), s.AvailableFormats...)
	}
	return out
}

// EncodeWizardState serializes the state into its persisted blob.
func EncodeWizardState(s WizardState) ([]byte, error) {
	s.Version = WizardStateVersion
	return json.Marshal(s)
}

// DecodeWizardState parses a persisted blob. Blobs of another schema version
// are rejected with ErrUnsupportedStateVersion.
func DecodeWizardState(blob []byte) (WizardState, error) {
	var s WizardState
	if err := json.Unmarshal(blob, &s); err != nil {
		return WizardState{}, fmt.Errorf("decode wizard state: %w", err)
	}
	if s.Version != WizardStateVersion {
		return WizardState{}, fmt.Errorf("%w: %d", ErrUnsupportedStateVersion, s.Version)
	}
	if !s.Step.Valid() {
		s.Step = StepCategory
	}
	if s.AvailableQuantities == nil {
		s.AvailableQuantities = []QuantityOption{}
	}
	return s, nil
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }
