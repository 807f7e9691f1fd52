package i18n

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: defaultMessages,
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to
// DefaultLocale and finally to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Translatef translates key and formats it with args.
func (t *Translator) Translatef(key, locale string, args ...any) string {
	return fmt.Sprintf(t.Translate(key, locale), args...)
}

// FormatNumber renders v without trailing zeros, with a decimal comma for
// locales that use one.
func FormatNumber(v float64, locale string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	switch locale {
	case "nl", "pt":
		return strings.Replace(s, ".", ",", 1)
	}
	return s
}

// IsSupported reports whether locale has a message table.
func IsSupported(locale string) bool {
	_, ok := defaultMessages[locale]
	return ok
}

// GetLocale picks the supported language with the highest q-value from the
// Accept-Language header. Region subtags are ignored. Ties keep header order.
func GetLocale(c *gin.Context) string {
	best, bestQ := DefaultLocale, 0.0
	for _, part := range strings.Split(c.GetHeader(AcceptLanguageHeader), ",") {
		lang, q := parseLanguageRange(part)
		if q > bestQ && IsSupported(lang) {
			best, bestQ = lang, q
		}
	}
	return best
}

// parseLanguageRange splits "nl-BE;q=0.8" into "nl" and 0.8. A missing or
// malformed weight counts as 1.
func parseLanguageRange(part string) (string, float64) {
	tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
	lang, _, _ := strings.Cut(tag, "-")

	q := 1.0
	if weight, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
		if v, err := strconv.ParseFloat(weight, 64); err == nil && v >= 0 && v <= 1 {
			q = v
		}
	}
	return strings.ToLower(strings.TrimSpace(lang)), q
}
