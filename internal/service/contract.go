package service

import (
	"context"

	"github.com/shopsphere/catalog-service/internal/dto"
	pkgdto "github.com/shopsphere/catalog-service/pkg/dto"
)

type ProductService interface {
	AddProduct(ctx context.Context, data dto.ProductRequest) (product dto.ProductResponse, err error)
	GetProducts(ctx context.Context) (products []dto.ProductResponse, err error)
	GetProductBySKU(ctx context.Context, sku string) (product dto.ProductResponse, err error)
	UpdateProduct(ctx context.Context, sku string, data dto.UpdateProductRequest) (product dto.ProductResponse, err error)
	DeleteProduct(ctx context.Context, sku string) (product dto.ProductResponse, err error)
	SearchProducts(ctx context.Context, filter pkgdto.Filter) (responsePayload pkgdto.PaginationResponse, err error)
	AddToFavorites(ctx context.Context, userID string, sku string) (err error)
	GetFavorites(ctx context.Context, userID string) (products []dto.ProductResponse, err error)
	UploadProductImages(ctx context.Context, userID string, files []dto.FileUpload) (locations []string, err error)
	ConsumeEvent()
}
