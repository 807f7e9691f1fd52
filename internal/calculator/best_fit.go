package calculator

import (
	"math"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// ExcessTolerance is the excess difference under which two options count as tied.
const ExcessTolerance = 0.001

// SelectBest picks the option that wastes the least volume for volumeNeeded,
// preferring fewer bags when the waste ties within ExcessTolerance.
//
// Options are scanned in the given order and the first strict improvement wins.
// Options whose bag count would exceed MaxBags are skipped.
// It returns nil for an empty list and the first option when volumeNeeded <= 0.
// The returned pointer refers to an element of options.
func SelectBest(volumeNeeded float64, options []model.QuantityOption) *model.QuantityOption {
	if len(options) == 0 {
		return nil
	}
	if volumeNeeded <= 0 {
		return &options[0]
	}

	var best *model.QuantityOption
	minExcess := math.Inf(1)
	minBags := math.MaxInt

	for i := range options {
		opt := &options[i]
		if opt.VolumePerBag <= 0 {
			continue
		}
		bags, ok := bagCount(volumeNeeded, opt.VolumePerBag)
		if !ok {
			continue
		}
		excess := float64(bags)*opt.VolumePerBag - volumeNeeded

		switch {
		case excess < minExcess:
			best, minExcess, minBags = opt, excess, bags
		case math.Abs(excess-minExcess) < ExcessTolerance && bags < minBags:
			// minExcess stays anchored to the first candidate of the tie band.
			best, minBags = opt, bags
		}
	}
	return best
}
