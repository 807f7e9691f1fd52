package calculator

import (
	"regexp"
	"strings"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// labelPattern matches labels such as "800 kg Bigbag 1m3" or "1.500 KG bigbag 1,2m3".
var labelPattern = regexp.MustCompile(`(?i)^([\d.,]+)\s*kg\s+(\w+)\s+([\d.,]+)m3$`)

// ParseLabel extracts weight, bag type and volume from a quantity label.
// ok is false when the label does not match or weight or volume is not positive.
func ParseLabel(label string) (parsed model.ParsedLabel, ok bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.ParsedLabel{}, false
	}

	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return model.ParsedLabel{}, false
	}

	weight := NormalizeNumeric(m[1])
	volume := NormalizeNumeric(m[3])
	if weight <= 0 || volume <= 0 {
		return model.ParsedLabel{}, false
	}

	return model.ParsedLabel{
		WeightPerBag: weight,
		BagType:      m[2],
		VolumePerBag: volume,
	}, true
}

// LabelParseFunc parses a quantity label. It lets callers plug in a cached parser.
type LabelParseFunc func(label string) (model.ParsedLabel, bool)

// BuildOption turns a catalog record into a QuantityOption.
//
// Structured fields supplied by the catalog win; only missing ones are taken
// from the parsed label. The label is parsed only when a field is missing.
// ok is false when the result cannot take part in calculations.
func BuildOption(rec model.RawQuantityRecord, parse LabelParseFunc) (model.QuantityOption, bool) {
	if parse == nil {
		parse = ParseLabel
	}

	opt := model.QuantityOption{
		Slug:         rec.Slug,
		Label:        rec.Label,
		VariationID:  rec.VariationID,
		BagType:      rec.BagType,
		WeightPerBag: rec.WeightPerBag,
		VolumePerBag: rec.VolumePerBag,
	}

	if opt.BagType == "" || opt.WeightPerBag <= 0 || opt.VolumePerBag <= 0 {
		parsed, ok := parse(rec.Label)
		if !ok {
			return model.QuantityOption{}, false
		}
		if opt.BagType == "" {
			opt.BagType = parsed.BagType
		}
		if opt.WeightPerBag <= 0 {
			opt.WeightPerBag = parsed.WeightPerBag
		}
		if opt.VolumePerBag <= 0 {
			opt.VolumePerBag = parsed.VolumePerBag
		}
	}

	if !opt.Valid() {
		return model.QuantityOption{}, false
	}
	return opt, true
}
