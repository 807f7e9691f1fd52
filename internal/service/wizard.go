package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/metrics"
	"github.com/guttosm/grind-calculator/internal/repository"
	"github.com/guttosm/grind-calculator/internal/wizard"
)

// DefaultWizardInstance names the wizard of a session when the caller does not pick one.
const DefaultWizardInstance = "default"

// maxApplyAttempts bounds how often a catalog response is re-applied after a revision conflict.
const maxApplyAttempts = 3

// WizardKey returns the session store key of one wizard instance.
func WizardKey(sessionID, instance string) string {
	instance = strings.TrimSpace(instance)
	if instance == "" {
		instance = DefaultWizardInstance
	}
	return sessionID + "/" + instance
}

// WizardSnapshot is a wizard state together with its current calculation.
type WizardSnapshot struct {
	State  model.WizardState
	Result model.CalculationResult
}

func snapshot(s model.WizardState) *WizardSnapshot {
	return &WizardSnapshot{State: s, Result: wizard.Result(s)}
}

// CartPreparation is a confirmed add-to-cart handoff.
type CartPreparation struct {
	Handoff model.CartHandoff
	BagType string
}

// WizardService persists wizard instances and runs the catalog lookups their transitions ask for.
//
// Every mutating call returns the snapshot that was stored. When another
// writer changed the wizard in between, the call fails with
// repository.ErrRevisionConflict and the snapshot holds the latest stored state.
type WizardService interface {
	// Get resumes the wizard on its furthest valid step and reloads the catalog data of that step.
	Get(ctx context.Context, key string) (*WizardSnapshot, error)
	SelectCategory(ctx context.Context, key string, categoryID int) (*WizardSnapshot, error)
	SelectProduct(ctx context.Context, key string, productID int) (*WizardSnapshot, error)
	SelectFormat(ctx context.Context, key string, format string) (*WizardSnapshot, error)
	UpdateInputs(ctx context.Context, key string, areaM2, thicknessCm float64) (*WizardSnapshot, error)
	GoTo(ctx context.Context, key string, step model.Step) (*WizardSnapshot, error)
	// Reset drops the stored wizard and returns an empty one.
	Reset(ctx context.Context, key string) (*WizardSnapshot, error)
	// PrepareCart validates the selection and confirms the variation with the catalog.
	PrepareCart(ctx context.Context, key string) (*CartPreparation, error)
}

type transition func(model.WizardState) (model.WizardState, *wizard.FetchRequest, error)

// WizardServiceImpl implements WizardService.
type WizardServiceImpl struct {
	store    repository.SessionStoreInterface
	gateway  CatalogGateway
	settings SettingsService
}

// NewWizardService creates a wizard service.
func NewWizardService(store repository.SessionStoreInterface, gateway CatalogGateway, settings SettingsService) *WizardServiceImpl {
	return &WizardServiceImpl{
		store:    store,
		gateway:  gateway,
		settings: settings,
	}
}

func (s *WizardServiceImpl) Get(ctx context.Context, key string) (*WizardSnapshot, error) {
	current, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	resumed, req := wizard.Resume(current)
	if req == nil && (current.Revision == 0 || resumed.Step == current.Step) {
		return snapshot(resumed), nil
	}

	saved, err := s.save(ctx, key, resumed)
	if errors.Is(err, repository.ErrRevisionConflict) {
		latest, lerr := s.load(ctx, key)
		if lerr != nil {
			return nil, lerr
		}
		return snapshot(latest), nil
	}
	if err != nil {
		return nil, err
	}

	saved, err = s.runFetch(ctx, key, saved, req)
	return snapshot(saved), err
}

func (s *WizardServiceImpl) SelectCategory(ctx context.Context, key string, categoryID int) (*WizardSnapshot, error) {
	return s.mutate(ctx, key, "select_category", func(st model.WizardState) (model.WizardState, *wizard.FetchRequest, error) {
		next, err := wizard.SelectCategory(st, categoryID)
		return next, nil, err
	})
}

func (s *WizardServiceImpl) SelectProduct(ctx context.Context, key string, productID int) (*WizardSnapshot, error) {
	return s.mutate(ctx, key, "select_product", func(st model.WizardState) (model.WizardState, *wizard.FetchRequest, error) {
		return wizard.SelectProduct(st, productID)
	})
}

func (s *WizardServiceImpl) SelectFormat(ctx context.Context, key string, format string) (*WizardSnapshot, error) {
	return s.mutate(ctx, key, "select_format", func(st model.WizardState) (model.WizardState, *wizard.FetchRequest, error) {
		return wizard.SelectFormat(st, strings.TrimSpace(format))
	})
}

func (s *WizardServiceImpl) UpdateInputs(ctx context.Context, key string, areaM2, thicknessCm float64) (*WizardSnapshot, error) {
	snap, err := s.mutate(ctx, key, "update_inputs", func(st model.WizardState) (model.WizardState, *wizard.FetchRequest, error) {
		return wizard.UpdateInputs(st, areaM2, thicknessCm), nil, nil
	})
	if err == nil && snap.State.QuantityData != nil {
		metrics.RecordBestFitSelection(snap.State.QuantityData.BagType)
	}
	return snap, err
}

func (s *WizardServiceImpl) GoTo(ctx context.Context, key string, step model.Step) (*WizardSnapshot, error) {
	return s.mutate(ctx, key, "go_to", func(st model.WizardState) (model.WizardState, *wizard.FetchRequest, error) {
		return wizard.GoTo(st, step)
	})
}

func (s *WizardServiceImpl) Reset(ctx context.Context, key string) (*WizardSnapshot, error) {
	if err := s.store.Delete(ctx, key); err != nil {
		metrics.RecordWizardTransition("reset", "error")
		return nil, fmt.Errorf("failed to reset wizard: %w", err)
	}
	metrics.RecordWizardTransition("reset", "ok")
	return snapshot(s.fresh(ctx)), nil
}

func (s *WizardServiceImpl) PrepareCart(ctx context.Context, key string) (*CartPreparation, error) {
	st, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	handoff, err := wizard.Checkout(st)
	if err != nil {
		metrics.RecordWizardTransition("add_to_cart", "rejected")
		return nil, asValidationError(err)
	}

	id, err := s.gateway.ResolveVariation(ctx, handoff.ProductID, handoff.Format, handoff.QuantitySlug)
	if err != nil {
		metrics.RecordWizardTransition("add_to_cart", "unresolved")
		return nil, err
	}
	if id != handoff.VariationID {
		log.Debug().
			Int("stored", handoff.VariationID).
			Int("resolved", id).
			Msg("Variation id changed since quantities were loaded")
	}
	handoff.VariationID = id

	metrics.RecordWizardTransition("add_to_cart", "ok")
	return &CartPreparation{
		Handoff: handoff,
		BagType: st.QuantityData.BagType,
	}, nil
}

// mutate applies fn to the stored state, persists it and runs the lookups it asks for.
func (s *WizardServiceImpl) mutate(ctx context.Context, key, action string, fn transition) (*WizardSnapshot, error) {
	current, err := s.load(ctx, key)
	if err != nil {
		metrics.RecordWizardTransition(action, "error")
		return nil, err
	}

	next, req, err := fn(current)
	if err != nil {
		metrics.RecordWizardTransition(action, "rejected")
		return snapshot(current), asValidationError(err)
	}

	saved, err := s.save(ctx, key, next)
	if errors.Is(err, repository.ErrRevisionConflict) {
		metrics.RecordWizardTransition(action, "conflict")
		latest, lerr := s.load(ctx, key)
		if lerr != nil {
			return nil, lerr
		}
		return snapshot(latest), err
	}
	if err != nil {
		metrics.RecordWizardTransition(action, "error")
		return nil, err
	}

	saved, err = s.runFetch(ctx, key, saved, req)
	if err != nil {
		metrics.RecordWizardTransition(action, "error")
		return snapshot(saved), err
	}
	metrics.RecordWizardTransition(action, "ok")
	return snapshot(saved), nil
}

// runFetch performs req and every follow-up lookup, persisting each applied response.
func (s *WizardServiceImpl) runFetch(ctx context.Context, key string, st model.WizardState, req *wizard.FetchRequest) (model.WizardState, error) {
	for req != nil {
		r := *req
		var apply transition

		switch r.Kind {
		case wizard.FetchFormats:
			formats, thickness, err := s.gateway.GetFormats(ctx, r.ProductID)
			if err != nil {
				return st, fmt.Errorf("failed to load formats: %w", err)
			}
			apply = func(cur model.WizardState) (model.WizardState, *wizard.FetchRequest, error) {
				return wizard.ApplyFormats(cur, r, formats, thickness)
			}
		case wizard.FetchQuantities:
			options, thickness, err := s.gateway.GetQuantities(ctx, r.ProductID, r.Format.Value())
			if err != nil {
				return st, fmt.Errorf("failed to load quantities: %w", err)
			}
			apply = func(cur model.WizardState) (model.WizardState, *wizard.FetchRequest, error) {
				next, err := wizard.ApplyQuantities(cur, r, options, thickness)
				if err == nil && next.QuantityData != nil {
					metrics.RecordBestFitSelection(next.QuantityData.BagType)
				}
				return next, nil, err
			}
		default:
			return st, fmt.Errorf("unknown catalog lookup %s", r.Kind)
		}

		var err error
		st, req, err = s.applyFetched(ctx, key, st, r, apply)
		if err != nil {
			return st, err
		}
	}
	return st, nil
}

// applyFetched applies a catalog response and saves the result. A revision
// conflict reloads the state and applies the response again; a response that
// no longer matches the reloaded state is dropped.
func (s *WizardServiceImpl) applyFetched(ctx context.Context, key string, st model.WizardState, req wizard.FetchRequest, apply transition) (model.WizardState, *wizard.FetchRequest, error) {
	for attempt := 1; ; attempt++ {
		next, follow, err := apply(st)
		if errors.Is(err, wizard.ErrStaleResponse) {
			log.Debug().
				Str("lookup", req.Kind.String()).
				Uint64("generation", req.Generation).
				Msg("Dropping stale catalog response")
			return st, nil, nil
		}
		if err != nil {
			return st, nil, err
		}

		saved, err := s.save(ctx, key, next)
		if err == nil {
			return saved, follow, nil
		}
		if !errors.Is(err, repository.ErrRevisionConflict) || attempt >= maxApplyAttempts {
			return st, nil, err
		}

		if st, err = s.load(ctx, key); err != nil {
			return st, nil, err
		}
	}
}

// load returns the stored state, or an empty wizard when nothing usable is stored.
// An unreadable blob keeps its revision so that the next save replaces it.
func (s *WizardServiceImpl) load(ctx context.Context, key string) (model.WizardState, error) {
	blob, revision, err := s.store.Load(ctx, key)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return s.fresh(ctx), nil
	}
	if err != nil {
		return model.WizardState{}, fmt.Errorf("failed to load wizard: %w", err)
	}

	st, err := model.DecodeWizardState(blob)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding unreadable wizard state")
		st = s.fresh(ctx)
	}
	st.Revision = revision
	return st, nil
}

func (s *WizardServiceImpl) save(ctx context.Context, key string, st model.WizardState) (model.WizardState, error) {
	blob, err := model.EncodeWizardState(st)
	if err != nil {
		return st, fmt.Errorf("failed to encode wizard: %w", err)
	}
	revision, err := s.store.Save(ctx, key, blob, st.Revision)
	if err != nil {
		if errors.Is(err, repository.ErrRevisionConflict) {
			return st, err
		}
		return st, fmt.Errorf("failed to save wizard: %w", err)
	}
	st.Revision = revision
	return st, nil
}

func (s *WizardServiceImpl) fresh(ctx context.Context) model.WizardState {
	return model.NewWizardState(s.settings.GetActive(ctx).DefaultLayerThickness)
}
