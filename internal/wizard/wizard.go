// Package wizard implements the four step selection flow
// (category, product, format, result) as pure transitions on model.WizardState.
//
// Transitions never mutate their input; they return the next state and, when
// the next step needs catalog data, a FetchRequest. The caller performs the
// lookup and feeds the response back through ApplyFormats or ApplyQuantities.
package wizard

import (
	"slices"

	"github.com/guttosm/grind-calculator/internal/calculator"
	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// SelectCategory moves to the product step for categoryID and clears everything below it.
func SelectCategory(s model.WizardState, categoryID int) (model.WizardState, error) {
	if categoryID <= 0 {
		return s, ErrInvalidSelection
	}

	next := s.Clone()
	next.CategoryID = model.IntPtr(categoryID)
	next.ProductID = nil
	resetFormat(&next)
	// Invalidates any lookup still in flight for the previous product.
	next.Generation++
	next.Step = model.StepProduct
	return next, nil
}

// SelectProduct records productID and asks for its formats. The wizard stays
// on the product step until ApplyFormats decides between step 3 and 4.
func SelectProduct(s model.WizardState, productID int) (model.WizardState, *FetchRequest, error) {
	if productID <= 0 {
		return s, nil, ErrInvalidSelection
	}
	if s.CategoryID == nil {
		return s, nil, ErrStepNotReachable
	}

	next := s.Clone()
	next.ProductID = model.IntPtr(productID)
	resetFormat(&next)
	next.Step = model.StepProduct
	return next, issue(&next, FetchFormats), nil
}

// ApplyFormats consumes the formats response for req. A product without
// formats skips the format step and goes straight to the result step with a
// quantities lookup; otherwise the wizard shows the format choices.
// A positive thicknessCm replaces the current layer thickness.
func ApplyFormats(s model.WizardState, req FetchRequest, formats []model.Format, thicknessCm float64) (model.WizardState, *FetchRequest, error) {
	if req.Kind != FetchFormats || !req.Matches(s) {
		return s, nil, ErrStaleResponse
	}

	next := s.Clone()
	if thicknessCm > 0 {
		next.ThicknessCm = thicknessCm
	}

	if len(formats) == 0 {
		next.Format = model.NoFormat()
		next.AvailableFormats = nil
		next.Step = model.StepResult
		return next, issue(&next, FetchQuantities), nil
	}

	next.AvailableFormats = slices.Clone(formats)
	next.Step = model.StepFormat
	return next, nil, nil
}

// SelectFormat records slug and asks for the quantities of the chosen format.
func SelectFormat(s model.WizardState, slug string) (model.WizardState, *FetchRequest, error) {
	if s.ProductID == nil {
		return s, nil, ErrStepNotReachable
	}
	if slug == "" {
		return s, nil, ErrInvalidSelection
	}
	if len(s.AvailableFormats) > 0 && !slices.ContainsFunc(s.AvailableFormats, func(f model.Format) bool {
		return f.Slug == slug
	}) {
		return s, nil, ErrInvalidSelection
	}

	next := s.Clone()
	next.Format = model.SelectedFormat(slug)
	clearQuantity(&next)
	next.Step = model.StepResult
	return next, issue(&next, FetchQuantities), nil
}

// ApplyQuantities stores the options returned for req and picks the best fit
// for the current inputs. thicknessCm is only used when the state has none.
func ApplyQuantities(s model.WizardState, req FetchRequest, options []model.QuantityOption, thicknessCm float64) (model.WizardState, error) {
	if req.Kind != FetchQuantities || !req.Matches(s) {
		return s, ErrStaleResponse
	}

	next := s.Clone()
	if next.ThicknessCm <= 0 && thicknessCm > 0 {
		next.ThicknessCm = thicknessCm
	}
	next.AvailableQuantities = slices.Clone(options)
	if next.AvailableQuantities == nil {
		next.AvailableQuantities = []model.QuantityOption{}
	}
	next.Step = model.StepResult
	selectBestFit(&next)
	return next, nil
}

// UpdateInputs sets area and thickness. On the result step the best fit is
// selected again for the new inputs; elsewhere only the values are stored.
func UpdateInputs(s model.WizardState, areaM2, thicknessCm float64) model.WizardState {
	next := s.Clone()
	next.AreaM2 = areaM2
	next.ThicknessCm = thicknessCm
	if next.Step == model.StepResult {
		selectBestFit(&next)
	}
	return next
}

// Recalculate re-runs best-fit selection with unchanged inputs and returns the result.
func Recalculate(s model.WizardState) (model.WizardState, model.CalculationResult) {
	next := s.Clone()
	if next.Step == model.StepResult {
		selectBestFit(&next)
	}
	return next, Result(next)
}

// Result computes the calculation for the current selection.
func Result(s model.WizardState) model.CalculationResult {
	return calculator.Calculate(s.AreaM2, s.ThicknessCm, s.QuantityData)
}

// GoTo navigates to target. Going back is always allowed; going forward
// requires the selections of every skipped step. The format step is skipped
// in both directions for products without formats. A lookup is returned when
// the target step has no data loaded yet.
func GoTo(s model.WizardState, target model.Step) (model.WizardState, *FetchRequest, error) {
	if !target.Valid() {
		return s, nil, ErrInvalidStep
	}

	next := s.Clone()
	if target == model.StepFormat && next.Format.IsNone() {
		if target > s.Step {
			target = model.StepResult
		} else {
			target = model.StepProduct
		}
	}

	if target > s.Step && !Reachable(next, target) {
		return s, nil, ErrStepNotReachable
	}
	next.Step = target

	switch {
	case target == model.StepFormat && len(next.AvailableFormats) == 0:
		return next, issue(&next, FetchFormats), nil
	case target == model.StepResult && len(next.AvailableQuantities) == 0:
		return next, issue(&next, FetchQuantities), nil
	}
	return next, nil, nil
}

// Reachable reports whether every selection required to show target is present.
func Reachable(s model.WizardState, target model.Step) bool {
	switch {
	case target >= model.StepResult && !s.Format.IsSet():
		return false
	case target >= model.StepFormat && s.ProductID == nil:
		return false
	case target >= model.StepProduct && s.CategoryID == nil:
		return false
	}
	return target.Valid()
}

// Resume positions a rehydrated state on its furthest valid step and returns
// the lookup needed to render it. The persisted step is not trusted.
func Resume(s model.WizardState) (model.WizardState, *FetchRequest) {
	next := s.Clone()
	if next.Quantity != nil && next.QuantityData == nil {
		next.Quantity = nil
	}

	switch {
	case next.ProductID != nil && next.Format.IsSet():
		next.Step = model.StepResult
		return next, issue(&next, FetchQuantities)
	case next.ProductID != nil:
		next.Step = model.StepProduct
		return next, issue(&next, FetchFormats)
	case next.CategoryID != nil:
		next.Step = model.StepProduct
	default:
		next.Step = model.StepCategory
	}
	return next, nil
}

// Checkout validates the state for the cart handoff and returns the tuple to
// resolve. The variation id is the one from the selected option; callers
// confirm it against the catalog before using it.
func Checkout(s model.WizardState) (model.CartHandoff, error) {
	if s.ProductID == nil || !s.Format.IsSet() || s.Quantity == nil || s.QuantityData == nil {
		return model.CartHandoff{}, ErrNeedSelections
	}

	result := Result(s)
	if result.BagsNeeded <= 0 {
		return model.CartHandoff{}, ErrInvalidInput
	}

	return model.CartHandoff{
		ProductID:    *s.ProductID,
		VariationID:  s.QuantityData.VariationID,
		Format:       s.Format.Value(),
		QuantitySlug: *s.Quantity,
		BagCount:     result.BagsNeeded,
	}, nil
}

func selectBestFit(s *model.WizardState) {
	volume := calculator.VolumeNeeded(s.AreaM2, s.ThicknessCm)
	best := calculator.SelectBest(volume, s.AvailableQuantities)
	if best == nil {
		s.Quantity = nil
		s.QuantityData = nil
		return
	}
	chosen := *best
	s.Quantity = model.StringPtr(chosen.Slug)
	s.QuantityData = &chosen
}

func resetFormat(s *model.WizardState) {
	s.Format = model.UnsetFormat()
	s.AvailableFormats = nil
	clearQuantity(s)
}

func clearQuantity(s *model.WizardState) {
	s.Quantity = nil
	s.QuantityData = nil
	s.AvailableQuantities = []model.QuantityOption{}
}
