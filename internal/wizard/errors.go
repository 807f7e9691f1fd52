package wizard

import "errors"

var (
	// ErrStaleResponse is returned when a catalog response no longer matches the state it was requested for.
	ErrStaleResponse = errors.New("stale catalog response")
	// ErrStepNotReachable is returned for a forward jump whose prerequisites are missing.
	ErrStepNotReachable = errors.New("wizard step not reachable")
	// ErrInvalidStep is returned for a step outside 1..4.
	ErrInvalidStep = errors.New("invalid wizard step")
	// ErrInvalidSelection is returned for a non-positive id or an unknown format.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrNeedSelections is returned when product, format or quantity is missing at checkout.
	ErrNeedSelections = errors.New("product, format and quantity must be selected")
	// ErrInvalidInput is returned when the current inputs need no bags at all.
	ErrInvalidInput = errors.New("area and thickness must yield at least one bag")
)
