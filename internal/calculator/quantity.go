package calculator

import (
	"math"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// MaxBags caps a bag count. Volumes needing more bags of an option are not
// quoted with that option.
const MaxBags = math.MaxInt32

// bagCount returns the bags of volumePerBag needed for volume, and false when
// that count exceeds MaxBags or is not a number.
func bagCount(volume, volumePerBag float64) (int, bool) {
	n := math.Ceil(volume / volumePerBag)
	if !(n <= MaxBags) {
		return 0, false
	}
	return int(n), true
}

// Calculate returns the volume in m³ for areaM2 at thicknessCm and the number of
// bags of option needed to cover it. A nil option, non-positive input or a
// count above MaxBags yields the zero result.
func Calculate(areaM2, thicknessCm float64, option *model.QuantityOption) model.CalculationResult {
	if option == nil || areaM2 <= 0 || thicknessCm <= 0 || option.VolumePerBag <= 0 {
		return model.ZeroResult()
	}

	volume := areaM2 * (thicknessCm / 100)
	bags, ok := bagCount(volume, option.VolumePerBag)
	if !ok {
		return model.ZeroResult()
	}
	return model.CalculationResult{VolumeNeeded: volume, BagsNeeded: bags}
}

// VolumeNeeded returns the volume in m³ for areaM2 at thicknessCm, or 0 for non-positive input.
func VolumeNeeded(areaM2, thicknessCm float64) float64 {
	if areaM2 <= 0 || thicknessCm <= 0 {
		return 0
	}
	return areaM2 * (thicknessCm / 100)
}

// Quote runs best-fit selection and the bag calculation in one step.
// The returned option is nil when options is empty.
func Quote(areaM2, thicknessCm float64, options []model.QuantityOption) (*model.QuantityOption, model.CalculationResult) {
	best := SelectBest(VolumeNeeded(areaM2, thicknessCm), options)
	return best, Calculate(areaM2, thicknessCm, best)
}
