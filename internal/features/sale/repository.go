package sale

import (
	"context"
	"time"

	"go-marketing/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *Sale) error
	FindAll(ctx context.Context) ([]Sale, error)
	FindByCustomer(ctx context.Context, customerID string) ([]Sale, error)
	UpsertByCode(ctx context.Context, sale *Sale) error
}

type SaleRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSaleRepository(db *database.MongodbDB) SaleRepository {
	return &SaleRepositoryImpl{
		collection: db.DB.Collection("sales"),
	}
}

func (r *SaleRepositoryImpl) Create(ctx context.Context, sale *Sale) error {
	if sale.ID.IsZero() {
		sale.ID = primitive.NewObjectID()
	}
	sale.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, sale)
	return err
}

func (r *SaleRepositoryImpl) FindAll(ctx context.Context) ([]Sale, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sales []Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *SaleRepositoryImpl) FindByCustomer(ctx context.Context, customerID string) ([]Sale, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sales []Sale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *SaleRepositoryImpl) UpsertByCode(ctx context.Context, sale *Sale) error {
	update := bson.M{
		"$set": bson.M{
			"customer_id": sale.CustomerID,
			"product_ids": sale.ProductIDs,
			"amount":      sale.Amount,
			"date":        sale.Date,
			"status":      sale.Status,
			"channel":     sale.Channel,
			"branch":      sale.Branch,
		},
		"$setOnInsert": bson.M{
			"code":       sale.Code,
			"created_at": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"code": sale.Code}, update, opts)
	return err
}
