package wizard

import (
	"fmt"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// FetchKind identifies which catalog lookup a transition needs.
type FetchKind int

const (
	// FetchFormats asks for the formats of FetchRequest.ProductID.
	FetchFormats FetchKind = iota + 1
	// FetchQuantities asks for the quantities of (ProductID, Format).
	FetchQuantities
)

// String returns the lookup name used in logs and metrics.
func (k FetchKind) String() string {
	switch k {
	case FetchFormats:
		return "formats"
	case FetchQuantities:
		return "quantities"
	default:
		return fmt.Sprintf("fetch(%d)", int(k))
	}
}

// FetchRequest is a catalog lookup issued by a transition. It carries the
// generation and selection it was issued for so that a late response can be
// recognized and dropped.
type FetchRequest struct {
	Kind       FetchKind
	Generation uint64
	ProductID  int
	Format     model.FormatChoice
}

// Matches reports whether the response to r still applies to s.
func (r FetchRequest) Matches(s model.WizardState) bool {
	if r.Generation != s.Generation || s.ProductID == nil || *s.ProductID != r.ProductID {
		return false
	}
	if r.Kind == FetchQuantities {
		return s.Format.Equal(r.Format)
	}
	return true
}

// issue bumps the generation of s and returns the request for kind.
func issue(s *model.WizardState, kind FetchKind) *FetchRequest {
	s.Generation++
	req := &FetchRequest{
		Kind:       kind,
		Generation: s.Generation,
		ProductID:  *s.ProductID,
	}
	if kind == FetchQuantities {
		req.Format = s.Format
	}
	return req
}
