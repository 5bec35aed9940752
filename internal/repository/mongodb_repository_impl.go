package repository

import (
	"context"
	"errors"
	"regexp"

	"github.com/rs/zerolog/log"
	"github.com/shopsphere/catalog-service/internal/domain"
	pkgdto "github.com/shopsphere/catalog-service/pkg/dto"
	"github.com/shopsphere/catalog-service/pkg/errs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBRepository(db *mongo.Database) MongoDBProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	result, err := r.db.Collection("products").InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		if mongo.IsDuplicateKeyError(err) {
			return id, errs.ErrDuplicateSKU
		}
		return
	}

	return result.InsertedID.(primitive.ObjectID), err
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	cursor, err := r.db.Collection("products").Find(ctx, bson.D{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductBySKU(ctx context.Context, sku string) (product domain.Product, err error) {
	filter := bson.D{{Key: "sku", Value: sku}}

	err = r.db.Collection("products").FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductBySKU").Msg("")

		return product, err
	}
	return product, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductsBySKUs(ctx context.Context, skus []string) (data []domain.Product, err error) {
	if len(skus) == 0 {
		return []domain.Product{}, nil
	}

	filter := bson.D{{Key: "sku", Value: bson.D{{Key: "$in", Value: skus}}}}

	cursor, err := r.db.Collection("products").Find(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductsBySKUs").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductsBySKUs").Msg("")
		return
	}

	return data, nil
}

// SearchProducts matches the pattern case-insensitively against both the SKU
// and the product name. Results are ordered by _id ascending, which for
// generated ObjectIDs is creation order.
func (r *MongoDBProductRepositoryImpl) SearchProducts(ctx context.Context, param pkgdto.Filter) (data []domain.Product, total int64, err error) {
	pattern := regexp.QuoteMeta(param.Q)
	regex := bson.D{{Key: "$regex", Value: pattern}, {Key: "$options", Value: "i"}}
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "sku", Value: regex}},
		bson.D{{Key: "name", Value: regex}},
	}}}

	total, err = r.db.Collection("products").CountDocuments(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SearchProducts").Msg("")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip((int64(param.Page) - 1) * int64(param.Limit)).
		SetLimit(int64(param.Limit))

	cursor, err := r.db.Collection("products").Find(ctx, filter, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SearchProducts").Msg("")
		return
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SearchProducts").Msg("")
		return
	}

	return data, total, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "quantity", Value: data.Quantity},
		{Key: "price", Value: data.Price},
		{Key: "images", Value: data.Images},
		{Key: "description", Value: data.Description},
	}}}

	result, err := r.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProductBySKU(ctx context.Context, sku string) (product domain.Product, err error) {
	filter := bson.D{{Key: "sku", Value: sku}}

	err = r.db.Collection("products").FindOneAndDelete(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProductBySKU").Msg("")

		return
	}

	return product, nil
}

// AdjustProductQuantity applies delta with $inc in a single update. Negative
// deltas carry a stock guard so quantity can never go below zero.
func (r *MongoDBProductRepositoryImpl) AdjustProductQuantity(ctx context.Context, sku string, delta int64) (err error) {
	filter := bson.D{{Key: "sku", Value: sku}}
	if delta < 0 {
		filter = append(filter, bson.E{Key: "quantity", Value: bson.D{{Key: "$gte", Value: -delta}}})
	}

	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "quantity", Value: delta}}}}

	result, err := r.db.Collection("products").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AdjustProductQuantity").Msg("Failed to update product quantity")
		return
	}

	if result.MatchedCount == 0 {
		count, countErr := r.db.Collection("products").CountDocuments(ctx, bson.D{{Key: "sku", Value: sku}})
		if countErr == nil && count > 0 {
			return errs.ErrInsufficientStock
		}
		return errs.ErrNotFound
	}

	return
}
