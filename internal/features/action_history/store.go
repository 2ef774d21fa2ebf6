package action_history

import (
	"context"

	"go-marketing/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ActionHistoryStore persists the whole log as a single blob, atomically
// replaced on every write. A corrupt stored blob degrades to an empty list
// rather than failing the caller.
type ActionHistoryStore interface {
	Load(ctx context.Context) ([]ActionHistoryItem, error)
	Save(ctx context.Context, items []ActionHistoryItem) error
	Clear(ctx context.Context) error
}

const historyKey = "action_history"

type historyBlob struct {
	Key   string              `bson:"_id"`
	Items []ActionHistoryItem `bson:"items"`
}

type MongoActionHistoryStore struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewActionHistoryStore(db *database.MongodbDB, logger *zap.Logger) ActionHistoryStore {
	return &MongoActionHistoryStore{
		collection: db.DB.Collection("app_state"),
		logger:     logger,
	}
}

func (s *MongoActionHistoryStore) Load(ctx context.Context) ([]ActionHistoryItem, error) {
	var blob historyBlob
	err := s.collection.FindOne(ctx, bson.M{"_id": historyKey}).Decode(&blob)
	if err == mongo.ErrNoDocuments {
		return []ActionHistoryItem{}, nil
	}
	if err != nil {
		// corrupt or unreadable blob: log and start over with an empty log
		if s.logger != nil {
			s.logger.Warn("action history blob unreadable, treating as empty", zap.Error(err))
		}
		return []ActionHistoryItem{}, nil
	}
	return blob.Items, nil
}

func (s *MongoActionHistoryStore) Save(ctx context.Context, items []ActionHistoryItem) error {
	blob := historyBlob{Key: historyKey, Items: items}
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": historyKey}, blob, opts)
	return err
}

func (s *MongoActionHistoryStore) Clear(ctx context.Context) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": historyKey})
	return err
}
