package storage

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/omi5656/scraper-zozo/internal/types"
)

// MongoStorage mirrors the crawl into a MongoDB collection for
// deployments that feed the records into downstream services. The
// collection is cleared first so it matches the file exports.
type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewMongoStorage(ctx context.Context, uri, database, collection string, logger *slog.Logger) (*MongoStorage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, &types.StorageError{Backend: "mongo", Err: err}
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &types.StorageError{Backend: "mongo", Err: err}
	}

	return &MongoStorage{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "storage", "backend", "mongo"),
	}, nil
}

func (s *MongoStorage) Name() string { return "mongo" }

func (s *MongoStorage) Store(ctx context.Context, records []types.ProductRecord) error {
	if _, err := s.collection.DeleteMany(ctx, bson.D{}); err != nil {
		return &types.StorageError{Backend: "mongo", Err: err}
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(records))
	for i := range records {
		rec := &records[i]
		docs = append(docs, bson.M{
			"brand":          rec.Brand,
			"product_url":    rec.ProductURL,
			"name":           rec.Name,
			"current_price":  rec.CurrentPrice,
			"original_price": rec.OriginalPrice,
			"rating":         rec.Rating,
			"review_count":   rec.ReviewCount,
			"image_url":      rec.ImageURL,
			"scraped_at":     rec.ScrapedAt,
		})
	}

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return &types.StorageError{Backend: "mongo", Err: err}
	}

	s.logger.Debug("mongo written", "collection", s.collection.Name(), "records", len(records))
	return nil
}

func (s *MongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
