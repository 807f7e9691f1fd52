package model

import (
	"bytes"
	"encoding/json"
)

// FormatKind discriminates the states of a FormatChoice.
type FormatKind uint8

const (
	// FormatUnset means no format has been chosen yet.
	FormatUnset FormatKind = iota
	// FormatNone means the product has no formats at all.
	FormatNone
	// FormatSelected means a concrete format slug was chosen.
	FormatSelected
)

// FormatChoice is the format selection of a wizard.
//
// On the wire it keeps the historical encoding: null for unset,
// "" for a product without formats and the slug otherwise.
type FormatChoice struct {
	Kind FormatKind
	Slug string
}

// UnsetFormat returns the "not chosen yet" choice.
func UnsetFormat() FormatChoice { return FormatChoice{Kind: FormatUnset} }

// NoFormat returns the choice for products without formats.
func NoFormat() FormatChoice { return FormatChoice{Kind: FormatNone} }

// SelectedFormat returns the choice for a concrete slug. An empty slug yields NoFormat.
func SelectedFormat(slug string) FormatChoice {
	if slug == "" {
		return NoFormat()
	}
	return FormatChoice{Kind: FormatSelected, Slug: slug}
}

// IsSet reports whether the choice is either NoFormat or a selected slug.
func (f FormatChoice) IsSet() bool { return f.Kind != FormatUnset }

// IsNone reports whether the product has no formats.
func (f FormatChoice) IsNone() bool { return f.Kind == FormatNone }

// Value returns the slug used in catalog lookups; empty for unset and none.
func (f FormatChoice) Value() string {
	if f.Kind == FormatSelected {
		return f.Slug
	}
	return ""
}

// Equal reports whether two choices are identical.
func (f FormatChoice) Equal(o FormatChoice) bool {
	return f.Kind == o.Kind && f.Value() == o.Value()
}

// MarshalJSON implements json.Marshaler.
func (f FormatChoice) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case FormatNone:
		return []byte(`""`), nil
	case FormatSelected:
		return json.Marshal(f.Slug)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FormatChoice) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = UnsetFormat()
		return nil
	}
	var slug string
	if err := json.Unmarshal(data, &slug); err != nil {
		return err
	}
	*f = SelectedFormat(slug)
	return nil
}
