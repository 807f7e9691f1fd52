// Package calculator holds the pure packaging math: number normalization,
// quantity label parsing, best-fit selection and bag calculation.
package calculator

import (
	"strconv"
	"strings"
	"unicode"
)

// NormalizeNumeric converts a localized number such as "1.234,56" or "1,5" to a float.
//
// Rules, in order: whitespace is stripped; with both ',' and '.' present the dots
// are thousands separators and the comma is the decimal separator; a lone ','
// is the decimal separator; a lone '.' followed by exactly three digits (and
// nothing else) is a thousands separator. Unparseable input yields 0.
func NormalizeNumeric(raw string) float64 {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	case hasDot:
		// "1.000" is read as one thousand; "1.500" is ambiguous and reads as 1500 too.
		if parts := strings.Split(s, "."); len(parts) == 2 && len(parts[1]) == 3 {
			s = parts[0] + parts[1]
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
