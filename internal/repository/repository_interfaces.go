// Package repository provides the storage backends of the grind calculator:
// the product catalog, wizard sessions, settings history and audit logs.
package repository

import (
	"context"
	"errors"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

var (
	// ErrRevisionConflict is returned when a session was written by someone else since it was loaded.
	ErrRevisionConflict = errors.New("wizard session revision conflict")
	// ErrSessionNotFound is returned when no wizard session is stored under a key.
	ErrSessionNotFound = errors.New("wizard session not found")
)

// CatalogRepositoryInterface is read-only access to products, categories and attribute terms.
type CatalogRepositoryInterface interface {
	// GetProduct returns nil without error when the product does not exist.
	GetProduct(ctx context.Context, id int) (*model.Product, error)
	// ListProducts returns the products of any of the given categories; all products when empty.
	ListProducts(ctx context.Context, categoryIDs []int) ([]model.Product, error)
	// ListCategories returns the given categories; all categories when empty.
	ListCategories(ctx context.Context, ids []int) ([]model.Category, error)
	// FindTermBySlug returns nil without error when no term matches.
	FindTermBySlug(ctx context.Context, taxonomy, slug string) (*model.AttributeTerm, error)
	// FindTermByName returns nil without error when no term matches.
	FindTermByName(ctx context.Context, taxonomy, name string) (*model.AttributeTerm, error)
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// SessionStoreInterface persists wizard state blobs with optimistic concurrency.
type SessionStoreInterface interface {
	// Load returns the blob and its revision, or ErrSessionNotFound.
	Load(ctx context.Context, key string) ([]byte, int64, error)
	// Save replaces the blob when the stored revision equals expectedRevision
	// (0 means the key must not exist yet) and returns the new revision.
	// A mismatch yields ErrRevisionConflict.
	Save(ctx context.Context, key string, blob []byte, expectedRevision int64) (int64, error)
	// Delete removes the session; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// SettingsRepositoryInterface stores versioned calculator settings.
type SettingsRepositoryInterface interface {
	// GetActive returns nil without error when no settings were saved yet.
	GetActive(ctx context.Context) (*SettingsDocument, error)
	Create(ctx context.Context, settings model.Settings, createdBy string) (*SettingsDocument, error)
	List(ctx context.Context, limit int) ([]SettingsDocument, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}
