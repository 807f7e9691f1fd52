//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/grind-calculator/internal/circuitbreaker"
	"github.com/guttosm/grind-calculator/internal/domain/model"
)

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()
	require.NoError(t, db.SetLogsTTL(ctx, 30))

	repo := NewLogsRepository(db)
	base := time.Now().UTC().Truncate(time.Millisecond)

	audit := &model.LogEntry{
		ID:         primitive.NewObjectID(),
		Timestamp:  base,
		Level:      "info",
		Message:    "format selected",
		RequestID:  "req-audit",
		Method:     "POST",
		Path:       "/api/wizard/format",
		StatusCode: 200,
		SessionID:  "session-1",
		ActionType: "wizard.select_format",
		Fields:     map[string]interface{}{"format": "8-16-mm"},
	}
	require.NoError(t, repo.Create(ctx, audit))

	require.NoError(t, repo.CreateMany(ctx, []*model.LogEntry{
		{Timestamp: base.Add(-time.Hour), Level: "info", Message: "calculate", RequestID: "req-1", Path: "/api/calculate"},
		{Timestamp: base.Add(-2 * time.Hour), Level: "error", Message: "catalog down", RequestID: "req-2", Path: "/api/catalog/wizard"},
		{Timestamp: base.Add(-3 * time.Hour), Level: "warn", Message: "slow", RequestID: "req-3", Path: "/api/calculate"},
	}))
	require.NoError(t, repo.CreateMany(ctx, nil))

	start := base.Add(-90 * time.Minute)

	tests := []struct {
		name       string
		opts       model.LogQueryOptions
		wantCount  int64
		wantFirstR string
	}{
		{name: "all newest first", opts: model.LogQueryOptions{}, wantCount: 4, wantFirstR: "req-audit"},
		{name: "by request id", opts: model.LogQueryOptions{RequestID: "req-2"}, wantCount: 1, wantFirstR: "req-2"},
		{name: "by level", opts: model.LogQueryOptions{Level: "error"}, wantCount: 1, wantFirstR: "req-2"},
		{name: "by session and action", opts: model.LogQueryOptions{SessionID: "session-1", ActionType: "wizard.select_format"}, wantCount: 1, wantFirstR: "req-audit"},
		{name: "path substring ignores case", opts: model.LogQueryOptions{Path: "CALCULATE"}, wantCount: 2, wantFirstR: "req-1"},
		{name: "path is not a pattern", opts: model.LogQueryOptions{Path: "/api/calc.late"}, wantCount: 0},
		{name: "time window", opts: model.LogQueryOptions{StartTime: &start}, wantCount: 2, wantFirstR: "req-audit"},
		{name: "skip", opts: model.LogQueryOptions{Skip: 3}, wantCount: 4, wantFirstR: "req-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := repo.Count(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)

			entries, err := repo.Query(ctx, tt.opts)
			require.NoError(t, err)
			if tt.wantFirstR == "" {
				assert.Empty(t, entries)
				return
			}
			require.NotEmpty(t, entries)
			assert.Equal(t, tt.wantFirstR, entries[0].RequestID)
		})
	}

	t.Run("limit", func(t *testing.T) {
		entries, err := repo.Query(ctx, model.LogQueryOptions{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("audit fields round trip", func(t *testing.T) {
		entries, err := repo.Query(ctx, model.LogQueryOptions{RequestID: "req-audit"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, audit.ID, entries[0].ID)
		assert.True(t, entries[0].IsAudit())
		assert.Equal(t, "8-16-mm", entries[0].Fields["format"])
	})
}

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	repo := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(db), cb)

	require.NoError(t, repo.Create(ctx, &model.LogEntry{Level: "info", Message: "through breaker"}))

	count, err := repo.Count(ctx, model.LogQueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stats := cb.GetStats()
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
}
