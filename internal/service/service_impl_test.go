package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopsphere/catalog-service/config"
	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/shopsphere/catalog-service/internal/dto"
	pkgdto "github.com/shopsphere/catalog-service/pkg/dto"
	"github.com/shopsphere/catalog-service/pkg/errs"
)

type fakeProductRepo struct {
	products []domain.Product
}

func (r *fakeProductRepo) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	for _, p := range r.products {
		if p.SKU == data.SKU {
			return primitive.NilObjectID, errs.ErrDuplicateSKU
		}
	}
	data.ID = primitive.NewObjectID()
	r.products = append(r.products, data)
	return data.ID, nil
}

func (r *fakeProductRepo) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product{}, r.products...), nil
}

func (r *fakeProductRepo) GetProductBySKU(ctx context.Context, sku string) (domain.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return domain.Product{}, errs.ErrNotFound
}

func (r *fakeProductRepo) GetProductsBySKUs(ctx context.Context, skus []string) ([]domain.Product, error) {
	wanted := make(map[string]bool, len(skus))
	for _, sku := range skus {
		wanted[sku] = true
	}
	var data []domain.Product
	for _, p := range r.products {
		if wanted[p.SKU] {
			data = append(data, p)
		}
	}
	return data, nil
}

func (r *fakeProductRepo) SearchProducts(ctx context.Context, param pkgdto.Filter) ([]domain.Product, int64, error) {
	q := strings.ToLower(param.Q)
	var matches []domain.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.SKU), q) || strings.Contains(strings.ToLower(p.Name), q) {
			matches = append(matches, p)
		}
	}

	total := int64(len(matches))
	offset := (param.Page - 1) * param.Limit
	if offset >= len(matches) {
		return nil, total, nil
	}
	end := offset + param.Limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, data domain.Product) error {
	for i, p := range r.products {
		if p.ID == data.ID {
			r.products[i] = data
			return nil
		}
	}
	return errs.ErrNotFound
}

func (r *fakeProductRepo) DeleteProductBySKU(ctx context.Context, sku string) (domain.Product, error) {
	for i, p := range r.products {
		if p.SKU == sku {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return p, nil
		}
	}
	return domain.Product{}, errs.ErrNotFound
}

func (r *fakeProductRepo) AdjustProductQuantity(ctx context.Context, sku string, delta int64) error {
	for i, p := range r.products {
		if p.SKU == sku {
			if p.Quantity+delta < 0 {
				return errs.ErrInsufficientStock
			}
			r.products[i].Quantity += delta
			return nil
		}
	}
	return errs.ErrNotFound
}

type fakeUserRepo struct {
	favorites map[string][]string
}

func (r *fakeUserRepo) AddFavorite(ctx context.Context, userID string, sku string) error {
	if r.favorites == nil {
		r.favorites = map[string][]string{}
	}
	for _, existing := range r.favorites[userID] {
		if existing == sku {
			return nil
		}
	}
	r.favorites[userID] = append(r.favorites[userID], sku)
	return nil
}

func (r *fakeUserRepo) GetFavorites(ctx context.Context, userID string) ([]string, error) {
	return r.favorites[userID], nil
}

type fakeObjectStorage struct {
	mu      sync.Mutex
	keys    []string
	failFor int // fail the n-th upload (1-based), 0 disables
	calls   int
}

func (r *fakeObjectStorage) UploadFile(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if r.failFor != 0 && r.calls == r.failFor {
		return "", fmt.Errorf("upload rejected")
	}
	r.keys = append(r.keys, key)
	return "https://bucket.test/" + key, nil
}

type fakeMessageQueue struct {
	events []string
}

func (r *fakeMessageQueue) Publish(ctx context.Context, key string, value []byte) error {
	r.events = append(r.events, string(value))
	return nil
}

func newTestService(productRepo *fakeProductRepo) (*ProductServiceImpl, *fakeUserRepo, *fakeObjectStorage, *fakeMessageQueue) {
	userRepo := &fakeUserRepo{}
	objectStorage := &fakeObjectStorage{}
	messageQueue := &fakeMessageQueue{}
	svc := CreateProductService(productRepo, userRepo, objectStorage, messageQueue, config.Config{}, nil)
	return svc.(*ProductServiceImpl), userRepo, objectStorage, messageQueue
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }
func strPtr(v string) *string       { return &v }

func productRequest(sku string) dto.ProductRequest {
	return dto.ProductRequest{
		SKU:         sku,
		Name:        "Mechanical Keyboard",
		Quantity:    int64Ptr(12),
		Price:       float64Ptr(149.99),
		Images:      []string{"https://bucket.test/u1/img-1.png"},
		Description: "87-key, brown switches",
	}
}

func TestAddProduct(t *testing.T) {
	svc, _, _, messageQueue := newTestService(&fakeProductRepo{})

	created, err := svc.AddProduct(context.Background(), productRequest("KB-001"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "KB-001", created.SKU)

	fetched, err := svc.GetProductBySKU(context.Background(), "KB-001")
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	require.Len(t, messageQueue.events, 1)
	assert.Contains(t, messageQueue.events[0], "product_created")
}

func TestAddProduct_DuplicateSKU(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeProductRepo{})

	original, err := svc.AddProduct(context.Background(), productRequest("KB-001"))
	require.NoError(t, err)

	duplicate := productRequest("KB-001")
	duplicate.Name = "Another Keyboard"
	_, err = svc.AddProduct(context.Background(), duplicate)
	assert.ErrorIs(t, err, errs.ErrDuplicateSKU)

	// the original record is left untouched
	fetched, err := svc.GetProductBySKU(context.Background(), "KB-001")
	require.NoError(t, err)
	assert.Equal(t, original, fetched)
}

func TestUpdateProduct_PartialPatch(t *testing.T) {
	svc, _, _, messageQueue := newTestService(&fakeProductRepo{})

	created, err := svc.AddProduct(context.Background(), productRequest("KB-001"))
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), "KB-001", dto.UpdateProductRequest{
		Price: float64Ptr(129.99),
	})
	require.NoError(t, err)

	assert.Equal(t, 129.99, updated.Price)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Quantity, updated.Quantity)
	assert.Equal(t, created.Images, updated.Images)
	assert.Equal(t, created.Description, updated.Description)

	fetched, err := svc.GetProductBySKU(context.Background(), "KB-001")
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)

	assert.Contains(t, messageQueue.events[len(messageQueue.events)-1], "product_updated")
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeProductRepo{})

	_, err := svc.UpdateProduct(context.Background(), "missing", dto.UpdateProductRequest{
		Name: strPtr("whatever"),
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateProduct_RejectsEmptyImages(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeProductRepo{})

	_, err := svc.AddProduct(context.Background(), productRequest("KB-001"))
	require.NoError(t, err)

	empty := []string{}
	_, err = svc.UpdateProduct(context.Background(), "KB-001", dto.UpdateProductRequest{
		Images: &empty,
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestDeleteProduct(t *testing.T) {
	svc, _, _, messageQueue := newTestService(&fakeProductRepo{})

	created, err := svc.AddProduct(context.Background(), productRequest("KB-001"))
	require.NoError(t, err)

	removed, err := svc.DeleteProduct(context.Background(), "KB-001")
	require.NoError(t, err)
	assert.Equal(t, created, removed)

	_, err = svc.GetProductBySKU(context.Background(), "KB-001")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.DeleteProduct(context.Background(), "KB-001")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.Contains(t, messageQueue.events[len(messageQueue.events)-1], "product_deleted")
}

func TestSearchProducts_Pagination(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeProductRepo{})

	for i := 1; i <= 25; i++ {
		req := productRequest(fmt.Sprintf("KB-%03d", i))
		_, err := svc.AddProduct(context.Background(), req)
		require.NoError(t, err)
	}

	responsePayload, err := svc.SearchProducts(context.Background(), pkgdto.Filter{Page: 2, Limit: 10, Q: "kb"})
	require.NoError(t, err)

	records := responsePayload.Records.([]dto.ProductResponse)
	require.Len(t, records, 10)
	assert.Equal(t, "KB-011", records[0].SKU)
	assert.Equal(t, "KB-020", records[9].SKU)
	assert.Equal(t, uint64(25), responsePayload.Metadata.TotalCount)
	assert.Equal(t, uint64(2), responsePayload.Metadata.Page)
	assert.Equal(t, 10, responsePayload.Metadata.Limit)
}

func TestSearchProducts_NoMatches(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeProductRepo{})

	_, err := svc.AddProduct(context.Background(), productRequest("KB-001"))
	require.NoError(t, err)

	responsePayload, err := svc.SearchProducts(context.Background(), pkgdto.Filter{Q: "nothing-matches-this"})
	require.NoError(t, err)

	records := responsePayload.Records.([]dto.ProductResponse)
	assert.Empty(t, records)
	// total reflects the real match count, not the page size
	assert.Equal(t, uint64(0), responsePayload.Metadata.TotalCount)
	assert.Equal(t, uint64(1), responsePayload.Metadata.Page)
	assert.Equal(t, 10, responsePayload.Metadata.Limit)
}

func TestFavorites(t *testing.T) {
	svc, userRepo, _, _ := newTestService(&fakeProductRepo{})

	for _, sku := range []string{"KB-001", "KB-002", "KB-003"} {
		_, err := svc.AddProduct(context.Background(), productRequest(sku))
		require.NoError(t, err)
	}

	err := svc.AddToFavorites(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, svc.AddToFavorites(context.Background(), "user-1", "KB-002"))
	require.NoError(t, svc.AddToFavorites(context.Background(), "user-1", "KB-001"))
	require.NoError(t, svc.AddToFavorites(context.Background(), "user-1", "KB-002"))

	assert.Equal(t, []string{"KB-002", "KB-001"}, userRepo.favorites["user-1"])

	products, err := svc.GetFavorites(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "KB-002", products[0].SKU)
	assert.Equal(t, "KB-001", products[1].SKU)
}

func TestGetFavorites_SkipsDeletedProducts(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeProductRepo{})

	for _, sku := range []string{"KB-001", "KB-002"} {
		_, err := svc.AddProduct(context.Background(), productRequest(sku))
		require.NoError(t, err)
		require.NoError(t, svc.AddToFavorites(context.Background(), "user-1", sku))
	}

	_, err := svc.DeleteProduct(context.Background(), "KB-001")
	require.NoError(t, err)

	products, err := svc.GetFavorites(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "KB-002", products[0].SKU)
}

func TestUploadProductImages(t *testing.T) {
	svc, _, objectStorage, _ := newTestService(&fakeProductRepo{})

	files := []dto.FileUpload{
		{Filename: "a.png", ContentType: "image/png", Data: []byte("a")},
		{Filename: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")},
		{Filename: "c.png", ContentType: "image/png", Data: []byte("c")},
	}

	locations, err := svc.UploadProductImages(context.Background(), "user-1", files)
	require.NoError(t, err)
	require.Len(t, locations, 3)

	seen := map[string]bool{}
	for _, location := range locations {
		assert.Contains(t, location, "https://bucket.test/user-1/")
		assert.False(t, seen[location], "locations must not collide")
		seen[location] = true
	}

	for _, key := range objectStorage.keys {
		assert.True(t, strings.HasPrefix(key, "user-1/"))
	}
}

func TestUploadProductImages_FailureIsAllOrNothing(t *testing.T) {
	productRepo := &fakeProductRepo{}
	userRepo := &fakeUserRepo{}
	objectStorage := &fakeObjectStorage{failFor: 2}
	messageQueue := &fakeMessageQueue{}
	svc := CreateProductService(productRepo, userRepo, objectStorage, messageQueue, config.Config{}, nil)

	files := []dto.FileUpload{
		{Filename: "a.png", ContentType: "image/png", Data: []byte("a")},
		{Filename: "b.png", ContentType: "image/png", Data: []byte("b")},
	}

	locations, err := svc.UploadProductImages(context.Background(), "user-1", files)
	assert.ErrorIs(t, err, errs.ErrUploadFailed)
	assert.Nil(t, locations)
}

func TestUpdateProductsQuantity(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeProductRepo{})

	_, err := svc.AddProduct(context.Background(), productRequest("KB-001"))
	require.NoError(t, err)

	err = svc.UpdateProductsQuantity(context.Background(), dto.OrderRequest{
		TransactionNumber: "trx-1",
		OrderItems:        []dto.OrderItem{{SKU: "KB-001", Quantity: 5}},
	})
	require.NoError(t, err)

	product, err := svc.GetProductBySKU(context.Background(), "KB-001")
	require.NoError(t, err)
	assert.Equal(t, int64(7), product.Quantity)

	err = svc.UpdateProductsQuantity(context.Background(), dto.OrderRequest{
		TransactionNumber: "trx-2",
		OrderItems:        []dto.OrderItem{{SKU: "KB-001", Quantity: 100}},
	})
	assert.ErrorIs(t, err, errs.ErrInsufficientStock)
}
