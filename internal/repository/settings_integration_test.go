//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/grind-calculator/internal/circuitbreaker"
	"github.com/guttosm/grind-calculator/internal/domain/model"
)

func TestSettingsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewSettingsRepositoryWithCircuitBreaker(
		NewSettingsRepository(db),
		circuitbreaker.New(circuitbreaker.DefaultConfig()),
	)

	t.Run("get active when none exists", func(t *testing.T) {
		active, err := repo.GetActive(ctx)
		assert.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("create settings", func(t *testing.T) {
		doc, err := repo.Create(ctx, model.Settings{DefaultLayerThickness: 5, WizardCategoryIDs: []int{1, 3}}, "admin")
		require.NoError(t, err)
		assert.True(t, doc.Active)
		assert.Equal(t, 1, doc.Version)
		assert.False(t, doc.ID.IsZero())
	})

	t.Run("new version deactivates the old one", func(t *testing.T) {
		doc, err := repo.Create(ctx, model.Settings{DefaultLayerThickness: 8}, "admin-2")
		require.NoError(t, err)
		assert.Equal(t, 2, doc.Version)

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, 8.0, active.Settings.DefaultLayerThickness)
		assert.Equal(t, "admin-2", active.CreatedBy)
	})

	t.Run("list newest first", func(t *testing.T) {
		docs, err := repo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, 2, docs[0].Version)
		assert.False(t, docs[1].Active)
		assert.Equal(t, []int{1, 3}, docs[1].Settings.WizardCategoryIDs)
	})
}
