package campaign

import (
	"context"
	"errors"
	"time"

	"go-marketing/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCampaignNotFound = errors.New("campaign not found")

type CampaignRepository interface {
	Create(ctx context.Context, campaign *Campaign) error
	Get(ctx context.Context, id string) (*Campaign, error)
	Update(ctx context.Context, campaign *Campaign) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]Campaign, error)
	FindActiveScheduled(ctx context.Context) ([]Campaign, error)
	RecordRun(ctx context.Context, id string, sent int, ranAt time.Time, nextRun *time.Time, status CampaignStatus) error
}

type CampaignRepositoryImpl struct {
	collection *mongo.Collection
}

func NewCampaignRepository(db *database.MongodbDB) CampaignRepository {
	return &CampaignRepositoryImpl{
		collection: db.DB.Collection("campaigns"),
	}
}

func (r *CampaignRepositoryImpl) Create(ctx context.Context, campaign *Campaign) error {
	if campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
	}
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, campaign)
	return err
}

func (r *CampaignRepositoryImpl) Get(ctx context.Context, id string) (*Campaign, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var campaign Campaign
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&campaign); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *CampaignRepositoryImpl) Update(ctx context.Context, campaign *Campaign) error {
	existing, err := r.Get(ctx, campaign.ID.Hex())
	if err != nil {
		return err
	}
	campaign.CreatedAt = existing.CreatedAt
	campaign.SentCount = existing.SentCount
	campaign.LastRunAt = existing.LastRunAt
	campaign.UpdatedAt = time.Now()

	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": campaign.ID}, campaign)
	return err
}

func (r *CampaignRepositoryImpl) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

func (r *CampaignRepositoryImpl) FindAll(ctx context.Context) ([]Campaign, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var campaigns []Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *CampaignRepositoryImpl) FindActiveScheduled(ctx context.Context) ([]Campaign, error) {
	query := bson.M{
		"active":   true,
		"schedule": bson.M{"$nin": bson.A{"", nil}},
	}
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var campaigns []Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *CampaignRepositoryImpl) RecordRun(ctx context.Context, id string, sent int, ranAt time.Time, nextRun *time.Time, status CampaignStatus) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$inc": bson.M{"sent_count": sent},
		"$set": bson.M{
			"last_run_at": ranAt,
			"next_run_at": nextRun,
			"status":      status,
			"updated_at":  time.Now(),
		},
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	return err
}
