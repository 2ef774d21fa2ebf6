package customer

import (
	"context"
	"time"

	"go-marketing/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]Customer, error)
	UpsertByCode(ctx context.Context, customer *Customer) error
}

type CustomerRepositoryImpl struct {
	collection *mongo.Collection
}

func NewCustomerRepository(db *database.MongodbDB) CustomerRepository {
	return &CustomerRepositoryImpl{
		collection: db.DB.Collection("customers"),
	}
}

func (r *CustomerRepositoryImpl) Create(ctx context.Context, customer *Customer) error {
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, customer)
	return err
}

func (r *CustomerRepositoryImpl) Get(ctx context.Context, id string) (*Customer, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var customer Customer
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepositoryImpl) Update(ctx context.Context, customer *Customer) error {
	customer.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": customer.ID}, customer)
	return err
}

func (r *CustomerRepositoryImpl) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

func (r *CustomerRepositoryImpl) FindAll(ctx context.Context) ([]Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// UpsertByCode inserts or refreshes one customer keyed by its ERP code.
func (r *CustomerRepositoryImpl) UpsertByCode(ctx context.Context, customer *Customer) error {
	customer.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":           customer.Name,
			"group":          customer.Group,
			"phone":          customer.Phone,
			"email":          customer.Email,
			"address":        customer.Address,
			"delivery_area":  customer.DeliveryArea,
			"total_spent":    customer.TotalSpent,
			"loyalty_points": customer.LoyaltyPoints,
			"total_debt":     customer.TotalDebt,
			"status":         customer.Status,
			"updated_at":     customer.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"code":       customer.Code,
			"created_at": time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"code": customer.Code}, update, opts)
	return err
}
