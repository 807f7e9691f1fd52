package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WizardSessionDocument is a persisted wizard state blob.
type WizardSessionDocument struct {
	Key       string    `bson:"_id"`
	Blob      []byte    `bson:"blob"`
	Revision  int64     `bson:"revision"`
	UpdatedAt time.Time `bson:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// MongoSessionStore keeps wizard sessions in the wizard_sessions collection.
// Documents expire through a TTL index on expires_at.
type MongoSessionStore struct {
	collection *mongo.Collection
	ttl        time.Duration
}

// NewMongoSessionStore creates a session store whose entries live for ttl after the last write.
func NewMongoSessionStore(db *MongoDB, ttl time.Duration) *MongoSessionStore {
	return &MongoSessionStore{
		collection: db.WizardSessions,
		ttl:        ttl,
	}
}

// Load returns the stored blob and revision.
func (s *MongoSessionStore) Load(ctx context.Context, key string) ([]byte, int64, error) {
	var doc WizardSessionDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, 0, ErrSessionNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	// the TTL monitor runs about once a minute
	if time.Now().After(doc.ExpiresAt) {
		return nil, 0, ErrSessionNotFound
	}
	return doc.Blob, doc.Revision, nil
}

// Save replaces the blob if the stored revision still equals expectedRevision.
func (s *MongoSessionStore) Save(ctx context.Context, key string, blob []byte, expectedRevision int64) (int64, error) {
	now := time.Now()
	next := expectedRevision + 1

	if expectedRevision == 0 {
		doc := WizardSessionDocument{
			Key:       key,
			Blob:      blob,
			Revision:  next,
			UpdatedAt: now,
			ExpiresAt: now.Add(s.ttl),
		}
		_, err := s.collection.InsertOne(ctx, doc)
		if mongo.IsDuplicateKeyError(err) {
			if err := s.conflictOrReplaceExpired(ctx, doc); err != nil {
				return 0, err
			}
			return next, nil
		}
		if err != nil {
			return 0, err
		}
		return next, nil
	}

	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": key, "revision": expectedRevision},
		bson.M{"$set": bson.M{
			"blob":       blob,
			"revision":   next,
			"updated_at": now,
			"expires_at": now.Add(s.ttl),
		}},
	)
	if err != nil {
		return 0, err
	}
	if res.MatchedCount == 0 {
		return 0, ErrRevisionConflict
	}
	return next, nil
}

// conflictOrReplaceExpired handles an insert that hit an existing document.
// An expired document the TTL monitor has not removed yet is overwritten.
func (s *MongoSessionStore) conflictOrReplaceExpired(ctx context.Context, doc WizardSessionDocument) error {
	res, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": doc.Key, "expires_at": bson.M{"$lt": doc.UpdatedAt}},
		doc,
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRevisionConflict
	}
	return nil
}

// Delete removes the session.
func (s *MongoSessionStore) Delete(ctx context.Context, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

type memorySession struct {
	blob      []byte
	revision  int64
	expiresAt time.Time
}

// MemorySessionStore keeps wizard sessions in process memory.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore creates an in-memory session store.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Load returns the stored blob and revision.
func (s *MemorySessionStore) Load(_ context.Context, key string) ([]byte, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok || s.now().After(sess.expiresAt) {
		delete(s.sessions, key)
		return nil, 0, ErrSessionNotFound
	}
	return append([]byte(nil), sess.blob...), sess.revision, nil
}

// Save replaces the blob if the stored revision still equals expectedRevision.
func (s *MemorySessionStore) Save(_ context.Context, key string, blob []byte, expectedRevision int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var current int64
	if sess, ok := s.sessions[key]; ok && !now.After(sess.expiresAt) {
		current = sess.revision
	}
	if current != expectedRevision {
		return 0, ErrRevisionConflict
	}

	s.sessions[key] = memorySession{
		blob:      append([]byte(nil), blob...),
		revision:  current + 1,
		expiresAt: now.Add(s.ttl),
	}
	return current + 1, nil
}

// Delete removes the session.
func (s *MemorySessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (s *MemorySessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
