package repository

import (
	"context"
	"io"

	"github.com/shopsphere/catalog-service/internal/domain"
	pkgdto "github.com/shopsphere/catalog-service/pkg/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MongoDBProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProducts(ctx context.Context) (data []domain.Product, err error)
	GetProductBySKU(ctx context.Context, sku string) (product domain.Product, err error)
	GetProductsBySKUs(ctx context.Context, skus []string) (data []domain.Product, err error)
	SearchProducts(ctx context.Context, param pkgdto.Filter) (data []domain.Product, total int64, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProductBySKU(ctx context.Context, sku string) (product domain.Product, err error)
	AdjustProductQuantity(ctx context.Context, sku string, delta int64) (err error)
}

type MongoDBUserRepository interface {
	AddFavorite(ctx context.Context, userID string, sku string) (err error)
	GetFavorites(ctx context.Context, userID string) (skus []string, err error)
}

type ObjectStorageRepository interface {
	UploadFile(ctx context.Context, key string, contentType string, body io.Reader) (location string, err error)
}

type MessageQueueRepository interface {
	Publish(ctx context.Context, key string, value []byte) (err error)
}
