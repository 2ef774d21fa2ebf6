package template

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

var ErrTemplateNotFound = errors.New("template not found")

type TemplateRepository interface {
	Create(ctx context.Context, template *MessageTemplate) error
	Get(ctx context.Context, id string) (*MessageTemplate, error)
	Update(ctx context.Context, template *MessageTemplate) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context, channel Channel) ([]MessageTemplate, error)
}

type TemplateRepositoryImpl struct {
	collection *mongo.Collection
}

func NewTemplateRepository(db *database.MongodbDB) TemplateRepository {
	return &TemplateRepositoryImpl{
		collection: db.DB.Collection("message_templates"),
	}
}

func (r *TemplateRepositoryImpl) Create(ctx context.Context, template *MessageTemplate) error {
	if template.ID.IsZero() {
		template.ID = primitive.NewObjectID()
	}
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, template)
	return err
}

func (r *TemplateRepositoryImpl) Get(ctx context.Context, id string) (*MessageTemplate, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var template MessageTemplate
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&template); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepositoryImpl) Update(ctx context.Context, template *MessageTemplate) error {
	existing, err := r.Get(ctx, template.ID.Hex())
	if err != nil {
		return err
	}
	template.CreatedAt = existing.CreatedAt
	template.UpdatedAt = time.Now()

	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": template.ID}, template)
	return err
}

func (r *TemplateRepositoryImpl) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

func (r *TemplateRepositoryImpl) FindAll(ctx context.Context, channel Channel) ([]MessageTemplate, error) {
	query := bson.M{}
	if channel != "" {
		query["channel"] = channel
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []MessageTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}
