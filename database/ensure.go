package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names for the three record kinds.
const (
	CollCustomers = "customers"
	CollBookings  = "bookings"
	CollTokens    = "tokens"
)

// EnsureCollections creates the record collections and their unique indexes.
// It is idempotent and safe under concurrent startup: an already-existing
// collection is not an error, and index creation is a no-op when the index
// is already in place. Invoke once from main before serving requests.
func EnsureCollections(ctx context.Context) error {
	db := DB()

	for _, name := range []string{CollCustomers, CollBookings, CollTokens} {
		if err := db.CreateCollection(ctx, name); err != nil {
			var cmdErr mongo.CommandError
			// 48 = NamespaceExists; racing initializers are tolerated.
			if errors.As(err, &cmdErr) && cmdErr.Code == 48 {
				continue
			}
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}

	indexes := []struct {
		coll string
		keys bson.D
	}{
		{CollCustomers, bson.D{{Key: "email", Value: 1}}},
		{CollBookings, bson.D{{Key: "email", Value: 1}, {Key: "bookingId", Value: 1}}},
		{CollTokens, bson.D{{Key: "token", Value: 1}}},
	}
	for _, idx := range indexes {
		_, err := db.Collection(idx.coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    idx.keys,
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create index on %s: %w", idx.coll, err)
		}
	}
	return nil
}
