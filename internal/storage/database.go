package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

// MongoStorage mirrors run results into a MongoDB collection. It is an
// optional sink next to the file Writer; records are stored with their
// category and a scrape timestamp so multiple runs share one collection.
type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
	mu         sync.Mutex
	count      int
	logger     *slog.Logger
}

// NewMongoStorage connects and pings the configured MongoDB instance.
func NewMongoStorage(uri, database, collection string, logger *slog.Logger) (*MongoStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, &types.StorageError{Backend: "mongodb", Op: "connect", Err: err}
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, &types.StorageError{Backend: "mongodb", Op: "ping", Err: err}
	}

	return &MongoStorage{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_storage"),
	}, nil
}

// Store inserts one document per record under the given category.
func (s *MongoStorage) Store(ctx context.Context, category string, records ...any) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	docs := make([]any, len(records))
	for i, rec := range records {
		docs[i] = mongoDoc{
			Category:  category,
			ScrapedAt: now,
			Record:    rec,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return &types.StorageError{Backend: "mongodb", Op: fmt.Sprintf("insert %s", category), Err: err}
	}

	s.count += len(records)
	s.logger.Debug("records stored in mongodb", "category", category, "count", len(records), "total", s.count)
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStorage) Close() error {
	s.logger.Info("mongodb storage closing", "total_records", s.count)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

type mongoDoc struct {
	Category  string    `bson:"category"`
	ScrapedAt time.Time `bson:"scraped_at"`
	Record    any       `bson:"record"`
}
