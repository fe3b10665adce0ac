package bookingRepo

import (
	"context"

	"kleanzilla/database"
	"kleanzilla/database/repository"
	"kleanzilla/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository provides access to booking records keyed by
// (customer email, booking id).
type Repository interface {
	Create(ctx context.Context, booking models.Booking) error
	Get(ctx context.Context, email, bookingID string) (*models.Booking, error)
	// ListByEmail returns every booking under a customer's partition.
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)
	// MergeUpdate overwrites only the named fields, preserving all others.
	MergeUpdate(ctx context.Context, email, bookingID string, fields map[string]interface{}) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a Repository backed by MongoDB.
func NewMongoBookingRepo() Repository {
	return &mongoBookingRepo{coll: database.DB().Collection(database.CollBookings)}
}

func (r *mongoBookingRepo) Create(ctx context.Context, booking models.Booking) error {
	_, err := r.coll.InsertOne(ctx, booking)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrConflict
	}
	return err
}

func (r *mongoBookingRepo) Get(ctx context.Context, email, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"email": email, "bookingId": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *mongoBookingRepo) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"email": email},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) MergeUpdate(ctx context.Context, email, bookingID string, fields map[string]interface{}) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email, "bookingId": bookingID},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
