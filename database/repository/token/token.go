package tokenRepo

import (
	"context"

	"kleanzilla/database"
	"kleanzilla/database/repository"
	"kleanzilla/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository provides access to token records. The opaque token value is the
// key; records are created once and never mutated or deleted.
type Repository interface {
	Create(ctx context.Context, token models.Token) error
	Get(ctx context.Context, token string) (*models.Token, error)
}

type mongoTokenRepo struct {
	coll *mongo.Collection
}

// NewMongoTokenRepo returns a Repository backed by MongoDB.
func NewMongoTokenRepo() Repository {
	return &mongoTokenRepo{coll: database.DB().Collection(database.CollTokens)}
}

func (r *mongoTokenRepo) Create(ctx context.Context, token models.Token) error {
	_, err := r.coll.InsertOne(ctx, token)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrConflict
	}
	return err
}

func (r *mongoTokenRepo) Get(ctx context.Context, token string) (*models.Token, error) {
	var record models.Token
	err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
