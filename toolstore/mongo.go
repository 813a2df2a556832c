package toolstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig contains MongoDB connection configuration.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string
	// Database is the database name.
	Database string
	// Collection defaults to "tools".
	Collection string
	// ConnectTimeout bounds the initial connection and ping.
	ConnectTimeout time.Duration
	// QueryTimeout bounds each store operation.
	QueryTimeout time.Duration
}

// DefaultMongoConfig returns a local development configuration.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		URI:            "mongodb://localhost:27017",
		Database:       "it_tools",
		Collection:     "tools",
		ConnectTimeout: 10 * time.Second,
		QueryTimeout:   5 * time.Second,
	}
}

func (c MongoConfig) withDefaults() MongoConfig {
	def := DefaultMongoConfig()
	if c.URI == "" {
		c.URI = def.URI
	}
	if c.Database == "" {
		c.Database = def.Database
	}
	if c.Collection == "" {
		c.Collection = def.Collection
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = def.QueryTimeout
	}
	return c
}

// MongoStore is a MongoDB-backed Store.
type MongoStore struct {
	client       *mongo.Client
	collection   *mongo.Collection
	queryTimeout time.Duration
}

// OpenMongoStore connects, verifies the connection and ensures a unique
// index on path.
func OpenMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	cfg = cfg.withDefaults()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := NewMongoStore(client.Database(cfg.Database).Collection(cfg.Collection), cfg.QueryTimeout)
	s.client = client
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// NewMongoStore wraps an existing collection.
func NewMongoStore(collection *mongo.Collection, queryTimeout time.Duration) *MongoStore {
	if queryTimeout <= 0 {
		queryTimeout = DefaultMongoConfig().QueryTimeout
	}
	return &MongoStore{
		collection:   collection,
		queryTimeout: queryTimeout,
	}
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "path", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("path_unique"),
	})
	if err != nil {
		return fmt.Errorf("create path index: %w", err)
	}
	return nil
}

// Close disconnects the client opened by OpenMongoStore. Stores built with
// NewMongoStore leave the client to their owner.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// List implements Store.
func (s *MongoStore) List(ctx context.Context) ([]ToolRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, s.wrapError(err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	out := []ToolRecord{}
	for cursor.Next(ctx) {
		var rec ToolRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, s.wrapError(err)
		}
		out = append(out, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, s.wrapError(err)
	}

	// Mongo collation differs from Go string ordering; keep one ordering.
	sortRecords(out)
	return out, nil
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, id string) (ToolRecord, error) {
	if id == "" {
		return ToolRecord{}, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var rec ToolRecord
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		return ToolRecord{}, s.wrapError(err)
	}
	return rec, nil
}

// Create implements Store. A collision on either the ID or the unique path
// index is reported as ErrDuplicatePath.
func (s *MongoStore) Create(ctx context.Context, rec ToolRecord) (ToolRecord, error) {
	rec, err := prepare(rec)
	if err != nil {
		return ToolRecord{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if _, err := s.collection.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ToolRecord{}, ErrDuplicatePath
		}
		return ToolRecord{}, s.wrapError(err)
	}
	return rec, nil
}

// Toggle implements Store.
func (s *MongoStore) Toggle(ctx context.Context, id string, enabled, premium *bool) (ToolRecord, error) {
	if id == "" {
		return ToolRecord{}, ErrNotFound
	}

	set := bson.M{}
	if enabled != nil {
		set["enabled"] = *enabled
	}
	if premium != nil {
		set["premium"] = *premium
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var rec ToolRecord
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rec)
	if err != nil {
		return ToolRecord{}, s.wrapError(err)
	}
	return rec, nil
}

// Delete implements Store.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return s.wrapError(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// wrapError maps driver errors onto store errors.
func (s *MongoStore) wrapError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("mongodb query timed out: %w", err)
	}
	return fmt.Errorf("mongodb: %w", err)
}
