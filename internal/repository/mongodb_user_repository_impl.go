package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/shopsphere/catalog-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBUserRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBUserRepository(db *mongo.Database) MongoDBUserRepository {
	return &MongoDBUserRepositoryImpl{db: db}
}

// AddFavorite appends the SKU with $addToSet so favoriting an already
// favorited product stays a no-op. The upsert creates the user document on
// the first favorite.
func (r *MongoDBUserRepositoryImpl) AddFavorite(ctx context.Context, userID string, sku string) (err error) {
	filter := bson.D{{Key: "user_id", Value: userID}}
	update := bson.D{{Key: "$addToSet", Value: bson.D{{Key: "favorites", Value: sku}}}}
	opts := options.Update().SetUpsert(true)

	_, err = r.db.Collection("users").UpdateOne(ctx, filter, update, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddFavorite").Msg("")
		return
	}

	return
}

func (r *MongoDBUserRepositoryImpl) GetFavorites(ctx context.Context, userID string) (skus []string, err error) {
	filter := bson.D{{Key: "user_id", Value: userID}}

	var user domain.User
	err = r.db.Collection("users").FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []string{}, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetFavorites").Msg("")

		return
	}

	return user.Favorites, nil
}
