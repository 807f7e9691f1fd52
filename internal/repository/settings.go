package repository

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// SettingsDocument is one version of the calculator settings.
// Exactly one document is active at a time.
type SettingsDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Settings  model.Settings     `bson:"settings" json:"settings"`
	Active    bool               `bson:"active" json:"active"`
	Version   int                `bson:"version" json:"version"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	CreatedBy string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// SettingsRepository stores settings versions in MongoDB.
type SettingsRepository struct {
	collection *mongo.Collection
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *MongoDB) *SettingsRepository {
	return &SettingsRepository{
		collection: db.Settings,
	}
}

// GetActive returns the active settings version.
func (r *SettingsRepository) GetActive(ctx context.Context) (*SettingsDocument, error) {
	var doc SettingsDocument
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create stores settings as a new active version and deactivates the previous one.
func (r *SettingsRepository) Create(ctx context.Context, settings model.Settings, createdBy string) (*SettingsDocument, error) {
	version := 1
	var latest SettingsDocument
	err := r.collection.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})).Decode(&latest)
	switch {
	case err == nil:
		version = latest.Version + 1
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, err
	}

	now := time.Now()
	if _, err := r.collection.UpdateMany(
		ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	); err != nil {
		return nil, err
	}

	doc := SettingsDocument{
		ID:        primitive.NewObjectID(),
		Settings:  settings,
		Active:    true,
		Version:   version,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: createdBy,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns settings versions, newest first.
func (r *SettingsRepository) List(ctx context.Context, limit int) ([]SettingsDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	docs := []SettingsDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// MemorySettingsRepository keeps settings versions in memory.
type MemorySettingsRepository struct {
	mu       sync.RWMutex
	versions []SettingsDocument
}

// NewMemorySettingsRepository creates an empty in-memory settings repository.
func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{}
}

// GetActive returns the active settings version.
func (r *MemorySettingsRepository) GetActive(context.Context) (*SettingsDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.versions) == 0 {
		return nil, nil
	}
	doc := cloneSettingsDocument(r.versions[len(r.versions)-1])
	return &doc, nil
}

// Create stores settings as a new active version.
func (r *MemorySettingsRepository) Create(_ context.Context, settings model.Settings, createdBy string) (*SettingsDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for i := range r.versions {
		if r.versions[i].Active {
			r.versions[i].Active = false
			r.versions[i].UpdatedAt = now
		}
	}
	doc := SettingsDocument{
		ID:        primitive.NewObjectID(),
		Settings:  settings,
		Active:    true,
		Version:   len(r.versions) + 1,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: createdBy,
	}
	r.versions = append(r.versions, cloneSettingsDocument(doc))
	return &doc, nil
}

// List returns settings versions, newest first.
func (r *MemorySettingsRepository) List(_ context.Context, limit int) ([]SettingsDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := []SettingsDocument{}
	for i := len(r.versions) - 1; i >= 0; i-- {
		if limit > 0 && len(docs) == limit {
			break
		}
		docs = append(docs, cloneSettingsDocument(r.versions[i]))
	}
	return docs, nil
}

func cloneSettingsDocument(doc SettingsDocument) SettingsDocument {
	doc.Settings.WizardCategoryIDs = slices.Clone(doc.Settings.WizardCategoryIDs)
	return doc
}
