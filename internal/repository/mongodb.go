package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collProducts       = "products"
	collCategories     = "categories"
	collAttributeTerms = "attribute_terms"
	collWizardSessions = "wizard_sessions"
	collSettings       = "settings"
	collLogs           = "logs"

	logsTTLIndexName = "timestamp_1"
)

// MongoConfig tunes the driver's connection pool and timeouts.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	// Compressors are offered to the server in order. Empty disables compression.
	Compressors []string
}

// DefaultMongoConfig is sized for a single calculator instance. Catalog reads
// are mostly served from cache, so the pool stays small.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		Compressors:            []string{"zstd", "snappy", "zlib"},
	}
}

func (c MongoConfig) clientOptions(uri string) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(c.MaxPoolSize).
		SetMinPoolSize(c.MinPoolSize).
		SetMaxConnIdleTime(c.MaxConnIdleTime).
		SetConnectTimeout(c.ConnectTimeout).
		SetServerSelectionTimeout(c.ServerSelectionTimeout).
		SetSocketTimeout(c.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if len(c.Compressors) > 0 {
		opts.SetCompressors(c.Compressors)
	}
	return opts
}

// MongoDB holds the client and the collections used by the calculator.
type MongoDB struct {
	Client         *mongo.Client
	Database       *mongo.Database
	Products       *mongo.Collection
	Categories     *mongo.Collection
	AttributeTerms *mongo.Collection
	WizardSessions *mongo.Collection
	Settings       *mongo.Collection
	Logs           *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings the server and makes sure the
// collection indexes exist.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.clientOptions(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:         client,
		Database:       db,
		Products:       db.Collection(collProducts),
		Categories:     db.Collection(collCategories),
		AttributeTerms: db.Collection(collAttributeTerms),
		WizardSessions: db.Collection(collWizardSessions),
		Settings:       db.Collection(collSettings),
		Logs:           db.Collection(collLogs),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

type indexSpec struct {
	coll     *mongo.Collection
	model    mongo.IndexModel
	required bool
}

func (m *MongoDB) indexSpecs() []indexSpec {
	return []indexSpec{
		{coll: m.Settings, model: mongo.IndexModel{Keys: bson.D{{Key: "active", Value: 1}}}, required: true},
		{coll: m.Products, model: mongo.IndexModel{Keys: bson.D{{Key: "category_ids", Value: 1}}}},
		{coll: m.AttributeTerms, model: mongo.IndexModel{
			Keys:    bson.D{{Key: "taxonomy", Value: 1}, {Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{coll: m.AttributeTerms, model: mongo.IndexModel{Keys: bson.D{{Key: "taxonomy", Value: 1}, {Key: "name", Value: 1}}}},
		// documents past expires_at are reaped by the server
		{coll: m.WizardSessions, model: mongo.IndexModel{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		}},
		{coll: m.Logs, model: mongo.IndexModel{Keys: bson.D{{Key: "request_id", Value: 1}}}},
		{coll: m.Logs, model: mongo.IndexModel{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "timestamp", Value: -1}}}},
	}
}

// ensureIndexes creates the known indexes. Only required ones fail the
// connection; the rest may already exist with different options.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	for _, spec := range m.indexSpecs() {
		_, err := spec.coll.Indexes().CreateOne(ctx, spec.model)
		if err != nil && spec.required && !isIndexConflict(err) {
			return err
		}
	}
	return nil
}

func isIndexConflict(err error) bool {
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) &&
		(cmdErr.Name == "IndexOptionsConflict" || cmdErr.Name == "IndexKeySpecsConflict")
}

// SetLogsTTL replaces the expiry index on logs.timestamp.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttlDays int) error {
	// dropping a missing index is not an error worth reporting
	_, _ = m.Logs.Indexes().DropOne(ctx, logsTTLIndexName)

	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttlDays * 24 * 60 * 60)),
	})
	if err != nil && isIndexConflict(err) {
		return nil
	}
	return err
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary with a 2s cap.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
