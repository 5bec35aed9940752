package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	"github.com/shopsphere/catalog-service/config"
	"github.com/shopsphere/catalog-service/internal/domain"
	"github.com/shopsphere/catalog-service/internal/dto"
	"github.com/shopsphere/catalog-service/internal/repository"
	pkgdto "github.com/shopsphere/catalog-service/pkg/dto"
	"github.com/shopsphere/catalog-service/pkg/errs"
)

type ProductServiceImpl struct {
	productRepo       repository.MongoDBProductRepository
	userRepo          repository.MongoDBUserRepository
	objectStorageRepo repository.ObjectStorageRepository
	messageQueueRepo  repository.MessageQueueRepository
	config            config.Config
	kafkaReader       *kafka.Reader
}

func CreateProductService(
	productRepo repository.MongoDBProductRepository,
	userRepo repository.MongoDBUserRepository,
	objectStorageRepo repository.ObjectStorageRepository,
	messageQueueRepo repository.MessageQueueRepository,
	config config.Config,
	kafkaReader *kafka.Reader,
) ProductService {
	return &ProductServiceImpl{
		productRepo:       productRepo,
		userRepo:          userRepo,
		objectStorageRepo: objectStorageRepo,
		messageQueueRepo:  messageQueueRepo,
		config:            config,
		kafkaReader:       kafkaReader,
	}
}

func convertToProductResponse(product domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          product.ID.Hex(),
		SKU:         product.SKU,
		Name:        product.Name,
		Quantity:    product.Quantity,
		Price:       product.Price,
		Images:      product.Images,
		Description: product.Description,
	}
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductRequest) (product dto.ProductResponse, err error) {
	_, err = s.productRepo.GetProductBySKU(ctx, data.SKU)
	if err == nil {
		return product, errs.ErrDuplicateSKU
	}
	if err != errs.ErrNotFound {
		return
	}

	record := domain.Product{
		SKU:         data.SKU,
		Name:        data.Name,
		Quantity:    *data.Quantity,
		Price:       *data.Price,
		Images:      data.Images,
		Description: data.Description,
	}

	productID, err := s.productRepo.AddProduct(ctx, record)
	if err != nil {
		return
	}

	record.ID = productID
	product = convertToProductResponse(record)

	s.publishEvent(ctx, "product_created", product.SKU, product)

	return product, nil
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context) (products []dto.ProductResponse, err error) {
	data, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return
	}

	products = make([]dto.ProductResponse, 0, len(data))
	for _, record := range data {
		products = append(products, convertToProductResponse(record))
	}

	return products, nil
}

func (s *ProductServiceImpl) GetProductBySKU(ctx context.Context, sku string) (product dto.ProductResponse, err error) {
	record, err := s.productRepo.GetProductBySKU(ctx, sku)
	if err != nil {
		return
	}

	return convertToProductResponse(record), nil
}

// UpdateProduct merges the patch onto the stored record: fields absent from
// the payload keep their prior values. The SKU itself is immutable.
func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, sku string, data dto.UpdateProductRequest) (product dto.ProductResponse, err error) {
	record, err := s.productRepo.GetProductBySKU(ctx, sku)
	if err != nil {
		return
	}

	if data.Name != nil {
		record.Name = *data.Name
	}
	if data.Quantity != nil {
		record.Quantity = *data.Quantity
	}
	if data.Price != nil {
		record.Price = *data.Price
	}
	if data.Images != nil {
		record.Images = *data.Images
	}
	if data.Description != nil {
		record.Description = *data.Description
	}

	if len(record.Images) == 0 || record.Quantity < 0 || record.Price < 0 {
		return product, errs.ErrValidation
	}

	err = s.productRepo.UpdateProduct(ctx, record)
	if err != nil {
		return
	}

	product = convertToProductResponse(record)

	s.publishEvent(ctx, "product_updated", product.SKU, product)

	return product, nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, sku string) (product dto.ProductResponse, err error) {
	record, err := s.productRepo.DeleteProductBySKU(ctx, sku)
	if err != nil {
		return
	}

	product = convertToProductResponse(record)

	s.publishEvent(ctx, "product_deleted", product.SKU, product)

	return product, nil
}

func (s *ProductServiceImpl) SearchProducts(ctx context.Context, filter pkgdto.Filter) (responsePayload pkgdto.PaginationResponse, err error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	data, total, err := s.productRepo.SearchProducts(ctx, filter)
	if err != nil {
		return
	}

	records := make([]dto.ProductResponse, 0, len(data))
	for _, record := range data {
		records = append(records, convertToProductResponse(record))
	}

	responsePayload.Records = records
	responsePayload.Metadata.TotalCount = uint64(total)
	responsePayload.Metadata.Page = uint64(filter.Page)
	responsePayload.Metadata.Limit = filter.Limit
	return responsePayload, nil
}

func (s *ProductServiceImpl) AddToFavorites(ctx context.Context, userID string, sku string) (err error) {
	_, err = s.productRepo.GetProductBySKU(ctx, sku)
	if err != nil {
		return
	}

	return s.userRepo.AddFavorite(ctx, userID, sku)
}

// GetFavorites resolves the stored SKUs to current product records. SKUs
// whose product has been deleted are dropped from the result, favorites
// order is preserved.
func (s *ProductServiceImpl) GetFavorites(ctx context.Context, userID string) (products []dto.ProductResponse, err error) {
	skus, err := s.userRepo.GetFavorites(ctx, userID)
	if err != nil {
		return
	}

	data, err := s.productRepo.GetProductsBySKUs(ctx, skus)
	if err != nil {
		return
	}

	bySKU := make(map[string]domain.Product, len(data))
	for _, record := range data {
		bySKU[record.SKU] = record
	}

	products = make([]dto.ProductResponse, 0, len(skus))
	for _, sku := range skus {
		record, ok := bySKU[sku]
		if !ok {
			continue
		}
		products = append(products, convertToProductResponse(record))
	}

	return products, nil
}

// UploadProductImages stores every file under {userID}/{uuid} and returns the
// public locations in input order. Uploads run concurrently; a single failure
// fails the whole call without reporting partial results. Already-stored
// objects are not rolled back.
func (s *ProductServiceImpl) UploadProductImages(ctx context.Context, userID string, files []dto.FileUpload) (locations []string, err error) {
	locations = make([]string, len(files))

	g, groupCtx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			key := fmt.Sprintf("%s/%s", userID, uuid.NewString())
			location, uploadErr := s.objectStorageRepo.UploadFile(groupCtx, key, file.ContentType, bytes.NewReader(file.Data))
			if uploadErr != nil {
				return uploadErr
			}
			locations[i] = location
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UploadProductImages").Msg("")
		return nil, errs.ErrUploadFailed
	}

	return locations, nil
}

func (s *ProductServiceImpl) publishEvent(ctx context.Context, eventType string, key string, data interface{}) {
	kafkaMsg := dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Msg("")
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		err = s.messageQueueRepo.Publish(ctx, key, jsonMsg)
		if err == nil {
			return
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}

	log.Ctx(ctx).Error().Err(err).Str("component", "publishEvent").Str("event_type", eventType).Msg("giving up publishing event")
}

func (s *ProductServiceImpl) UpdateProductsQuantity(ctx context.Context, req dto.OrderRequest) (err error) {
	for _, orderItem := range req.OrderItems {
		err = s.productRepo.AdjustProductQuantity(ctx, orderItem.SKU, -orderItem.Quantity)
		if err != nil {
			return
		}
	}

	return
}

func (s *ProductServiceImpl) RestoreProductStock(ctx context.Context, req dto.OrderRequest) (err error) {
	for _, orderItem := range req.OrderItems {
		err = s.productRepo.AdjustProductQuantity(ctx, orderItem.SKU, orderItem.Quantity)
		if err != nil {
			return
		}
	}

	return
}

func (s *ProductServiceImpl) ConsumeEvent() {
	for {
		msg, err := s.kafkaReader.ReadMessage(context.Background())
		if err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		var receivedMsg dto.KafkaMessage
		if err := json.Unmarshal(msg.Value, &receivedMsg); err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		switch receivedMsg.EventType {
		case "order_created":
			var orderRequest dto.OrderRequest
			dataBytes, err := json.Marshal(receivedMsg.Data)
			if err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			if err := json.Unmarshal(dataBytes, &orderRequest); err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			stockUpdate := dto.StockUpdate{
				TransactionNumber: orderRequest.TransactionNumber,
				Status:            true,
			}

			err = s.UpdateProductsQuantity(context.Background(), orderRequest)
			if err != nil {
				stockUpdate.Status = false
			}

			s.publishEvent(context.Background(), "stock_updated", orderRequest.TransactionNumber, stockUpdate)
		case "restore_product_stock":
			var orderRequest dto.OrderRequest
			dataBytes, err := json.Marshal(receivedMsg.Data)
			if err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			if err := json.Unmarshal(dataBytes, &orderRequest); err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}

			if err := s.RestoreProductStock(context.Background(), orderRequest); err != nil {
				log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
				continue
			}
		case "product_created", "product_updated", "product_deleted", "stock_updated":
			// our own events echoed back on the shared topic
		default:
			log.Warn().Str("component", "ConsumeEvent").Str("event_type", receivedMsg.EventType).Msg("unknown event type")
		}
	}
}
