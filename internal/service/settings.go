package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/grind-calculator/config"
	"github.com/guttosm/grind-calculator/internal/domain/model"
	"github.com/guttosm/grind-calculator/internal/repository"
)

// SettingsService provides the runtime calculator settings.
type SettingsService interface {
	// GetActive returns the active settings, or the configured defaults when none were stored.
	GetActive(ctx context.Context) model.Settings
	// Update stores a sanitized copy of settings as the new active version.
	Update(ctx context.Context, settings model.Settings, updatedBy string) (*repository.SettingsDocument, error)
	History(ctx context.Context, limit int) ([]repository.SettingsDocument, error)
	// LayerThickness returns the thickness for product: its own value when positive,
	// else the configured default.
	LayerThickness(ctx context.Context, product *model.Product) float64
}

// SettingsServiceImpl implements SettingsService.
type SettingsServiceImpl struct {
	repo     repository.SettingsRepositoryInterface
	defaults model.Settings
}

// NewSettingsService creates a settings service. repo may be nil, in which
// case the defaults are always active and updates are rejected.
func NewSettingsService(repo repository.SettingsRepositoryInterface, defaults model.Settings) SettingsService {
	return &SettingsServiceImpl{
		repo:     repo,
		defaults: defaults.Sanitize(config.DefaultLayerThickness),
	}
}

func (s *SettingsServiceImpl) GetActive(ctx context.Context) model.Settings {
	if s.repo == nil {
		return s.defaults
	}
	doc, err := s.repo.GetActive(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load settings, using defaults")
		return s.defaults
	}
	if doc == nil {
		return s.defaults
	}
	return doc.Settings.Sanitize(s.defaults.DefaultLayerThickness)
}

func (s *SettingsServiceImpl) Update(ctx context.Context, settings model.Settings, updatedBy string) (*repository.SettingsDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.Create(ctx, settings.Sanitize(s.defaults.DefaultLayerThickness), updatedBy)
}

func (s *SettingsServiceImpl) History(ctx context.Context, limit int) ([]repository.SettingsDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit)
}

func (s *SettingsServiceImpl) LayerThickness(ctx context.Context, product *model.Product) float64 {
	if product != nil && product.LayerThickness > 0 {
		return product.LayerThickness
	}
	if t := s.GetActive(ctx).DefaultLayerThickness; t > 0 {
		return t
	}
	return config.DefaultLayerThickness
}
