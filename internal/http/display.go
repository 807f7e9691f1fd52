package http

import (
	"github.com/guttosm/grind-calculator/internal/i18n"
)

// calculationNote returns the translated layer thickness note of a result.
func calculationNote(locale string, thicknessCm float64) string {
	t := i18n.GetTranslator()
	return t.Translatef(i18n.MsgKeyCalculationNote, locale, i18n.FormatNumber(thicknessCm, locale))
}

// addToCartLabel returns the button label for bags of bagType.
// Options without a bag type fall back to the translated plural "bags".
func addToCartLabel(locale string, bags int, bagType string) string {
	t := i18n.GetTranslator()
	if bagType == "" {
		bagType = t.Translate(i18n.MsgKeyBags, locale)
	}
	return t.Translatef(i18n.MsgKeyAddToCart, locale, bags, bagType)
}
