package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sort"
	"sync"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// CatalogSeed is the file format used to load or import a catalog.
type CatalogSeed struct {
	Categories []model.Category      `json:"categories"`
	Products   []model.Product       `json:"products"`
	Terms      []model.AttributeTerm `json:"terms"`
}

// LoadCatalogSeed reads a catalog seed from a JSON file.
func LoadCatalogSeed(path string) (CatalogSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CatalogSeed{}, fmt.Errorf("read catalog seed: %w", err)
	}
	var seed CatalogSeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return CatalogSeed{}, fmt.Errorf("decode catalog seed %s: %w", path, err)
	}
	return seed, nil
}

type termKey struct {
	taxonomy string
	value    string
}

// MemoryCatalogRepository serves a catalog held in memory.
type MemoryCatalogRepository struct {
	mu         sync.RWMutex
	products   map[int]model.Product
	categories map[int]model.Category
	bySlug     map[termKey]model.AttributeTerm
	byName     map[termKey]model.AttributeTerm
}

// NewMemoryCatalogRepository creates an in-memory catalog from seed.
func NewMemoryCatalogRepository(seed CatalogSeed) *MemoryCatalogRepository {
	r := &MemoryCatalogRepository{}
	r.Replace(seed)
	return r
}

// Replace swaps the whole catalog.
func (r *MemoryCatalogRepository) Replace(seed CatalogSeed) {
	products := make(map[int]model.Product, len(seed.Products))
	for _, p := range seed.Products {
		products[p.ID] = p
	}
	categories := make(map[int]model.Category, len(seed.Categories))
	for _, c := range seed.Categories {
		categories[c.ID] = c
	}
	bySlug := make(map[termKey]model.AttributeTerm, len(seed.Terms))
	byName := make(map[termKey]model.AttributeTerm, len(seed.Terms))
	for _, t := range seed.Terms {
		bySlug[termKey{t.Taxonomy, t.Slug}] = t
		if _, exists := byName[termKey{t.Taxonomy, t.Name}]; !exists {
			byName[termKey{t.Taxonomy, t.Name}] = t
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = products
	r.categories = categories
	r.bySlug = bySlug
	r.byName = byName
}

// GetProduct returns a copy of the product with the given id.
func (r *MemoryCatalogRepository) GetProduct(_ context.Context, id int) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	p = cloneProduct(p)
	return &p, nil
}

// ListProducts returns the products of the given categories ordered by id.
func (r *MemoryCatalogRepository) ListProducts(_ context.Context, categoryIDs []int) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Product{}
	for _, p := range r.products {
		if len(categoryIDs) == 0 || slices.ContainsFunc(categoryIDs, p.InCategory) {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListCategories returns the given categories ordered by id.
func (r *MemoryCatalogRepository) ListCategories(_ context.Context, ids []int) ([]model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Category{}
	for id, c := range r.categories {
		if len(ids) == 0 || slices.Contains(ids, id) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindTermBySlug looks up an attribute term by slug.
func (r *MemoryCatalogRepository) FindTermBySlug(_ context.Context, taxonomy, slug string) (*model.AttributeTerm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.bySlug[termKey{taxonomy, slug}]; ok {
		return &t, nil
	}
	return nil, nil
}

// FindTermByName looks up an attribute term by display name.
func (r *MemoryCatalogRepository) FindTermByName(_ context.Context, taxonomy, name string) (*model.AttributeTerm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.byName[termKey{taxonomy, name}]; ok {
		return &t, nil
	}
	return nil, nil
}

// Ping always succeeds.
func (r *MemoryCatalogRepository) Ping(context.Context) error {
	return nil
}

func cloneProduct(p model.Product) model.Product {
	p.CategoryIDs = slices.Clone(p.CategoryIDs)
	p.Variations = slices.Clone(p.Variations)
	return p
}
