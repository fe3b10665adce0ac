package customerRepo

import (
	"context"

	"kleanzilla/database"
	"kleanzilla/database/repository"
	"kleanzilla/models"
	"kleanzilla/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository provides access to customer records.
type Repository interface {
	// Upsert merge-writes a customer keyed by email. Fields left empty in the
	// input do not clobber existing values; createdAt is set only on insert.
	Upsert(ctx context.Context, customer models.Customer) error
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
}

type mongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo returns a Repository backed by MongoDB.
func NewMongoCustomerRepo() Repository {
	return &mongoCustomerRepo{coll: database.DB().Collection(database.CollCustomers)}
}

func (r *mongoCustomerRepo) Upsert(ctx context.Context, customer models.Customer) error {
	set := bson.M{
		"email":     customer.Email,
		"updatedAt": utils.NowISO(),
	}
	if customer.FirstName != "" {
		set["firstName"] = customer.FirstName
	}
	if customer.LastName != "" {
		set["lastName"] = customer.LastName
	}
	if customer.Phone != "" {
		set["phone"] = customer.Phone
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": utils.NowISO()},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"email": customer.Email}, update,
		options.Update().SetUpsert(true))
	return err
}

func (r *mongoCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
