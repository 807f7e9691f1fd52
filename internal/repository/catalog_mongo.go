package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// MongoCatalogRepository reads the catalog from the products, categories
// and attribute_terms collections.
type MongoCatalogRepository struct {
	db         *MongoDB
	products   *mongo.Collection
	categories *mongo.Collection
	terms      *mongo.Collection
}

// NewMongoCatalogRepository creates a catalog repository backed by MongoDB.
func NewMongoCatalogRepository(db *MongoDB) *MongoCatalogRepository {
	return &MongoCatalogRepository{
		db:         db,
		products:   db.Products,
		categories: db.Categories,
		terms:      db.AttributeTerms,
	}
}

// GetProduct returns the product with the given id.
func (r *MongoCatalogRepository) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	var product model.Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns the products of the given categories ordered by id.
func (r *MongoCatalogRepository) ListProducts(ctx context.Context, categoryIDs []int) ([]model.Product, error) {
	filter := bson.M{}
	if len(categoryIDs) > 0 {
		filter["category_ids"] = bson.M{"$in": categoryIDs}
	}

	cursor, err := r.products.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	products := []model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories returns the given categories ordered by id.
func (r *MongoCatalogRepository) ListCategories(ctx context.Context, ids []int) ([]model.Category, error) {
	filter := bson.M{}
	if len(ids) > 0 {
		filter["_id"] = bson.M{"$in": ids}
	}

	cursor, err := r.categories.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	categories := []model.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// FindTermBySlug looks up an attribute term by slug.
func (r *MongoCatalogRepository) FindTermBySlug(ctx context.Context, taxonomy, slug string) (*model.AttributeTerm, error) {
	return r.findTerm(ctx, bson.M{"taxonomy": taxonomy, "slug": slug})
}

// FindTermByName looks up an attribute term by display name.
func (r *MongoCatalogRepository) FindTermByName(ctx context.Context, taxonomy, name string) (*model.AttributeTerm, error) {
	return r.findTerm(ctx, bson.M{"taxonomy": taxonomy, "name": name})
}

func (r *MongoCatalogRepository) findTerm(ctx context.Context, filter bson.M) (*model.AttributeTerm, error) {
	var term model.AttributeTerm
	err := r.terms.FindOne(ctx, filter).Decode(&term)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &term, nil
}

// Ping checks the MongoDB connection.
func (r *MongoCatalogRepository) Ping(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

// Seed replaces the catalog contents. It is used to import a catalog file.
func (r *MongoCatalogRepository) Seed(ctx context.Context, catalog CatalogSeed) error {
	if _, err := r.products.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if _, err := r.categories.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if _, err := r.terms.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	if len(catalog.Products) > 0 {
		docs := make([]interface{}, len(catalog.Products))
		for i := range catalog.Products {
			docs[i] = catalog.Products[i]
		}
		if _, err := r.products.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	if len(catalog.Categories) > 0 {
		docs := make([]interface{}, len(catalog.Categories))
		for i := range catalog.Categories {
			docs[i] = catalog.Categories[i]
		}
		if _, err := r.categories.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	if len(catalog.Terms) > 0 {
		docs := make([]interface{}, len(catalog.Terms))
		for i := range catalog.Terms {
			docs[i] = catalog.Terms[i]
		}
		if _, err := r.terms.InsertMany(ctx, docs); err != nil {
			return err
		}
	}
	return nil
}
