//go:build !integration

package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load missing key", func(t *testing.T) {
		store := NewMemorySessionStore(time.Hour)
		_, _, err := store.Load(ctx, "s1/default")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("create then update with revision", func(t *testing.T) {
		store := NewMemorySessionStore(time.Hour)

		rev, err := store.Save(ctx, "s1/default", []byte("a"), 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rev)

		rev, err = store.Save(ctx, "s1/default", []byte("b"), rev)
		require.NoError(t, err)
		assert.Equal(t, int64(2), rev)

		blob, loaded, err := store.Load(ctx, "s1/default")
		require.NoError(t, err)
		assert.Equal(t, []byte("b"), blob)
		assert.Equal(t, int64(2), loaded)
	})

	t.Run("stale revision conflicts", func(t *testing.T) {
		store := NewMemorySessionStore(time.Hour)
		_, err := store.Save(ctx, "k", []byte("a"), 0)
		require.NoError(t, err)

		_, err = store.Save(ctx, "k", []byte("b"), 0)
		assert.ErrorIs(t, err, ErrRevisionConflict)

		_, err = store.Save(ctx, "k", []byte("b"), 5)
		assert.ErrorIs(t, err, ErrRevisionConflict)
	})

	t.Run("blob is copied on save and load", func(t *testing.T) {
		store := NewMemorySessionStore(time.Hour)
		blob := []byte("abc")
		_, err := store.Save(ctx, "k", blob, 0)
		require.NoError(t, err)
		blob[0] = 'x'

		loaded, _, err := store.Load(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), loaded)
		loaded[1] = 'y'

		again, _, err := store.Load(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("expired session is gone and can be recreated", func(t *testing.T) {
		store := NewMemorySessionStore(time.Minute)
		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }

		_, err := store.Save(ctx, "k", []byte("a"), 0)
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)
		_, _, err = store.Load(ctx, "k")
		assert.ErrorIs(t, err, ErrSessionNotFound)

		rev, err := store.Save(ctx, "k", []byte("b"), 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rev)
	})

	t.Run("delete", func(t *testing.T) {
		store := NewMemorySessionStore(time.Hour)
		_, err := store.Save(ctx, "k", []byte("a"), 0)
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, "k"))
		require.NoError(t, store.Delete(ctx, "k"))

		_, _, err = store.Load(ctx, "k")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("sweep removes expired sessions only", func(t *testing.T) {
		store := NewMemorySessionStore(time.Minute)
		now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }

		_, err := store.Save(ctx, "old", []byte("a"), 0)
		require.NoError(t, err)
		now = now.Add(50 * time.Second)
		_, err = store.Save(ctx, "new", []byte("b"), 0)
		require.NoError(t, err)
		now = now.Add(20 * time.Second)

		assert.Equal(t, 2, store.Len())
		assert.Equal(t, 1, store.Sweep())
		assert.Equal(t, 1, store.Len())
		_, _, err = store.Load(ctx, "new")
		assert.NoError(t, err)
	})
}

func TestMemorySessionStore_ConcurrentWritersOneWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)
	rev, err := store.Save(ctx, "k", []byte("base"), 0)
	require.NoError(t, err)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Save(ctx, "k", []byte("w"), rev); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
