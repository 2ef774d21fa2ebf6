package product

import (
	"context"
	"time"

	"go-marketing/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindAll(ctx context.Context) ([]Product, error)
	UpsertBySKU(ctx context.Context, product *Product) error
}

type ProductRepositoryImpl struct {
	collection *mongo.Collection
}

func NewProductRepository(db *database.MongodbDB) ProductRepository {
	return &ProductRepositoryImpl{
		collection: db.DB.Collection("products"),
	}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, product)
	return err
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context) ([]Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepositoryImpl) UpsertBySKU(ctx context.Context, product *Product) error {
	update := bson.M{
		"$set": bson.M{
			"name":     product.Name,
			"category": product.Category,
			"brand":    product.Brand,
			"price":    product.Price,
		},
		"$setOnInsert": bson.M{
			"sku":        product.SKU,
			"created_at": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"sku": product.SKU}, update, opts)
	return err
}
