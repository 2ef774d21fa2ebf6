package segment

import (
	"context"
	"time"

	"go-marketing/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SegmentRepository keeps the service storage-agnostic; tests use an
// in-memory implementation.
type SegmentRepository interface {
	Create(ctx context.Context, segment *SavedSegment) error
	Get(ctx context.Context, id string) (*SavedSegment, error)
	Update(ctx context.Context, id string, set bson.M) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindAll(ctx context.Context) ([]SavedSegment, error)
}

type SegmentRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSegmentRepository(db *database.MongodbDB) SegmentRepository {
	return &SegmentRepositoryImpl{
		collection: db.DB.Collection("saved_segments"),
	}
}

func (r *SegmentRepositoryImpl) Create(ctx context.Context, segment *SavedSegment) error {
	if segment.ID.IsZero() {
		segment.ID = primitive.NewObjectID()
	}
	segment.CreatedAt = time.Now()
	segment.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, segment)
	return err
}

func (r *SegmentRepositoryImpl) Get(ctx context.Context, id string) (*SavedSegment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var segment SavedSegment
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&segment); err != nil {
		return nil, err
	}
	return &segment, nil
}

func (r *SegmentRepositoryImpl) Update(ctx context.Context, id string, set bson.M) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	set["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *SegmentRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *SegmentRepositoryImpl) FindAll(ctx context.Context) ([]SavedSegment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var segments []SavedSegment
	if err := cursor.All(ctx, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}
