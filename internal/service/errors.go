package service

import (
	"errors"

	"github.com/guttosm/grind-calculator/internal/i18n"
	"github.com/guttosm/grind-calculator/internal/wizard"
)

var (
	// ErrRepositoryNotConfigured is returned when a write needs a repository that was not wired.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrProductNotFound is returned for unknown or non-variable products.
	ErrProductNotFound = errors.New("product not found")
	// ErrVariationNotFound is returned when no variation matches a (format, quantity) pair.
	ErrVariationNotFound = errors.New("variation not found")
	// ErrNoPackaging is returned when a product offers no usable quantity option.
	ErrNoPackaging = errors.New("no packaging option available")
	// ErrInvalidSessionToken is returned for missing, malformed or expired session tokens.
	ErrInvalidSessionToken = errors.New("invalid or expired session token")
)

// ValidationError is a rejected user action. Key is the i18n message key.
type ValidationError struct {
	Key string
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// wizardValidationKeys maps wizard rejections to their user facing message.
var wizardValidationKeys = []struct {
	err error
	key string
}{
	{wizard.ErrNeedSelections, i18n.ErrKeyNeedSelections},
	{wizard.ErrInvalidInput, i18n.ErrKeyInvalidInput},
	{wizard.ErrInvalidSelection, i18n.ErrKeyInvalidSelection},
	{wizard.ErrStepNotReachable, i18n.ErrKeyStepNotReachable},
	{wizard.ErrInvalidStep, i18n.ErrKeyInvalidStep},
}

// asValidationError wraps wizard rejections in a ValidationError and returns other errors unchanged.
func asValidationError(err error) error {
	for _, m := range wizardValidationKeys {
		if errors.Is(err, m.err) {
			return &ValidationError{Key: m.key, Err: err}
		}
	}
	return err
}
