package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// APIKeyStore validates API keys and provides a health ping.
type APIKeyStore interface {
	Validate(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

// APIKeyCreator exposes creation/upsert of API keys for the admin handler.
type APIKeyCreator interface {
	Create(ctx context.Context, key string, active bool, owner string) error
}

type cacheEntry struct {
	active    bool
	expiresAt time.Time
}

// MongoAPIKeyStore backs key validation with a Mongo collection, fronted by
// an in-memory TTL cache so hot keys don't hit the database per request.
type MongoAPIKeyStore struct {
	coll     *mongo.Collection
	cacheTTL time.Duration
	mu       sync.RWMutex
	cache    map[string]cacheEntry
}

type apiKeyDoc struct {
	Key       string    `bson:"key"`
	Active    bool      `bson:"active"`
	Owner     string    `bson:"owner,omitempty"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoAPIKeyStore sets up the collection and a unique index on key.
func NewMongoAPIKeyStore(ctx context.Context, client *mongo.Client, dbName string, ttl time.Duration) (*MongoAPIKeyStore, error) {
	coll := client.Database(dbName).Collection("api_keys")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	return &MongoAPIKeyStore{
		coll:     coll,
		cacheTTL: ttl,
		cache:    make(map[string]cacheEntry),
	}, nil
}

func (s *MongoAPIKeyStore) Validate(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("missing key")
	}
	s.mu.RLock()
	ce, ok := s.cache[key]
	s.mu.RUnlock()
	if ok && time.Now().Before(ce.expiresAt) {
		return ce.active, nil
	}

	var doc apiKeyDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "key", Value: key}}).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		// Cache the miss briefly so unknown keys can't hammer the DB.
		s.remember(key, false)
		return false, nil
	case err != nil:
		return false, err
	}
	s.remember(key, doc.Active)
	return doc.Active, nil
}

func (s *MongoAPIKeyStore) remember(key string, active bool) {
	s.mu.Lock()
	s.cache[key] = cacheEntry{active: active, expiresAt: time.Now().Add(s.cacheTTL)}
	s.mu.Unlock()
}

func (s *MongoAPIKeyStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

// Create inserts or updates an API key entry. Not part of APIKeyStore; used
// by the admin flow.
func (s *MongoAPIKeyStore) Create(ctx context.Context, key string, active bool, owner string) error {
	if key == "" {
		return errors.New("missing key")
	}
	_, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "key", Value: key}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "active", Value: active},
			{Key: "owner", Value: owner},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	s.remember(key, active)
	return nil
}

// HashPrefix returns the first 8 hex chars of SHA-256(key), safe to log.
func HashPrefix(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:8]
}
