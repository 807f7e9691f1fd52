package repository

import (
	"context"
	"errors"

	"github.com/guttosm/grind-calculator/internal/circuitbreaker"
	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// guard runs fn through cb and hands back its result.
func guard[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var out T
	err := cb.Execute(ctx, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}

// openAsZero turns an open circuit into the zero value with no error, for
// reads whose absence the caller already handles.
func openAsZero[T any](v T, err error) (T, error) {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		var zero T
		return zero, nil
	}
	return v, err
}

// CatalogRepositoryWithCircuitBreaker guards a catalog backend.
type CatalogRepositoryWithCircuitBreaker struct {
	repo CatalogRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

func NewCatalogRepositoryWithCircuitBreaker(repo CatalogRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CatalogRepositoryWithCircuitBreaker {
	return &CatalogRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *CatalogRepositoryWithCircuitBreaker) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	return guard(ctx, r.cb, func() (*model.Product, error) { return r.repo.GetProduct(ctx, id) })
}

func (r *CatalogRepositoryWithCircuitBreaker) ListProducts(ctx context.Context, categoryIDs []int) ([]model.Product, error) {
	return guard(ctx, r.cb, func() ([]model.Product, error) { return r.repo.ListProducts(ctx, categoryIDs) })
}

func (r *CatalogRepositoryWithCircuitBreaker) ListCategories(ctx context.Context, ids []int) ([]model.Category, error) {
	return guard(ctx, r.cb, func() ([]model.Category, error) { return r.repo.ListCategories(ctx, ids) })
}

// FindTermBySlug reports no term while the circuit is open, so labels fall
// back to the raw attribute value.
func (r *CatalogRepositoryWithCircuitBreaker) FindTermBySlug(ctx context.Context, taxonomy, slug string) (*model.AttributeTerm, error) {
	return openAsZero(guard(ctx, r.cb, func() (*model.AttributeTerm, error) {
		return r.repo.FindTermBySlug(ctx, taxonomy, slug)
	}))
}

// FindTermByName behaves like FindTermBySlug.
func (r *CatalogRepositoryWithCircuitBreaker) FindTermByName(ctx context.Context, taxonomy, name string) (*model.AttributeTerm, error) {
	return openAsZero(guard(ctx, r.cb, func() (*model.AttributeTerm, error) {
		return r.repo.FindTermByName(ctx, taxonomy, name)
	}))
}

func (r *CatalogRepositoryWithCircuitBreaker) Ping(ctx context.Context) error {
	return r.cb.Execute(ctx, func() error { return r.repo.Ping(ctx) })
}

// GetCircuitBreaker exposes the breaker to the readiness probe.
func (r *CatalogRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// SessionStoreWithCircuitBreaker guards the wizard session store. Its breaker
// should ignore ErrRevisionConflict and ErrSessionNotFound, which are normal
// outcomes rather than backend failures.
type SessionStoreWithCircuitBreaker struct {
	store SessionStoreInterface
	cb    *circuitbreaker.CircuitBreaker
}

func NewSessionStoreWithCircuitBreaker(store SessionStoreInterface, cb *circuitbreaker.CircuitBreaker) *SessionStoreWithCircuitBreaker {
	return &SessionStoreWithCircuitBreaker{store: store, cb: cb}
}

func (s *SessionStoreWithCircuitBreaker) Load(ctx context.Context, key string) ([]byte, int64, error) {
	var (
		blob     []byte
		revision int64
	)
	err := s.cb.Execute(ctx, func() error {
		var err error
		blob, revision, err = s.store.Load(ctx, key)
		return err
	})
	return blob, revision, err
}

func (s *SessionStoreWithCircuitBreaker) Save(ctx context.Context, key string, blob []byte, expectedRevision int64) (int64, error) {
	return guard(ctx, s.cb, func() (int64, error) { return s.store.Save(ctx, key, blob, expectedRevision) })
}

func (s *SessionStoreWithCircuitBreaker) Delete(ctx context.Context, key string) error {
	return s.cb.Execute(ctx, func() error { return s.store.Delete(ctx, key) })
}

func (s *SessionStoreWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return s.cb
}

// SettingsRepositoryWithCircuitBreaker guards the settings collection.
type SettingsRepositoryWithCircuitBreaker struct {
	repo SettingsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

func NewSettingsRepositoryWithCircuitBreaker(repo SettingsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *SettingsRepositoryWithCircuitBreaker {
	return &SettingsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

// GetActive returns nil while the circuit is open and the configured
// defaults apply.
func (r *SettingsRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*SettingsDocument, error) {
	return openAsZero(guard(ctx, r.cb, func() (*SettingsDocument, error) { return r.repo.GetActive(ctx) }))
}

func (r *SettingsRepositoryWithCircuitBreaker) Create(ctx context.Context, settings model.Settings, createdBy string) (*SettingsDocument, error) {
	return guard(ctx, r.cb, func() (*SettingsDocument, error) { return r.repo.Create(ctx, settings, createdBy) })
}

func (r *SettingsRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]SettingsDocument, error) {
	return guard(ctx, r.cb, func() ([]SettingsDocument, error) { return r.repo.List(ctx, limit) })
}

func (r *SettingsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// LogsRepositoryWithCircuitBreaker guards the audit log collection. Writes
// are dropped while the circuit is open; request handling never waits on it.
type LogsRepositoryWithCircuitBreaker struct {
	repo LogsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.LogEntry) error {
	return r.write(ctx, func() error { return r.repo.Create(ctx, entry) })
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return r.write(ctx, func() error { return r.repo.CreateMany(ctx, entries) })
}

func (r *LogsRepositoryWithCircuitBreaker) write(ctx context.Context, fn func() error) error {
	if err := r.cb.Execute(ctx, fn); err != nil && !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return err
	}
	return nil
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	return guard(ctx, r.cb, func() ([]model.LogEntry, error) { return r.repo.Query(ctx, opts) })
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return guard(ctx, r.cb, func() (int64, error) { return r.repo.Count(ctx, opts) })
}

func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}
