package controller

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/shopsphere/catalog-service/internal/dto"
	"github.com/shopsphere/catalog-service/internal/service"
	pkgdto "github.com/shopsphere/catalog-service/pkg/dto"
	"github.com/shopsphere/catalog-service/pkg/errs"
	"github.com/shopsphere/catalog-service/pkg/utils"
)

const maxImageSize = 1000000 // 1000000 Bytes = 1 MB

type Controller struct {
	service  service.ProductService
	validate *validator.Validate
}

func CreateProductController(e *echo.Group, service service.ProductService, isLoggedIn echo.MiddlewareFunc) {
	c := Controller{
		service:  service,
		validate: validator.New(),
	}
	e.POST("/products", c.AddProduct)
	e.GET("/products", c.GetProducts)
	e.GET("/products/search", c.SearchProducts)
	e.GET("/products/favorites", c.GetFavorites, isLoggedIn)
	e.GET("/products/:sku", c.GetProductBySKU)
	e.PUT("/products/:sku", c.UpdateProduct)
	e.DELETE("/products/:sku", c.DeleteProduct)
	e.POST("/products/:sku/favorite", c.AddToFavorites, isLoggedIn)
	e.POST("/products/upload-images", c.UploadProductImages, isLoggedIn)
}

func (c *Controller) validationErrors(err error) []pkgdto.ValidationError {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	validationErrors := make([]pkgdto.ValidationError, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		validationErrors = append(validationErrors, pkgdto.ValidationError{
			Field: fieldError.Field(),
			Tag:   fieldError.Tag(),
		})
	}
	return validationErrors
}

func (c *Controller) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddProduct").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := c.validate.Struct(payload); err != nil {
		return pkgdto.WriteErrorResponse(e, errs.ErrValidation, c.validationErrors(err))
	}

	product, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteCreatedResponse(e, "Product created successfully", product)
}

func (c *Controller) GetProducts(e echo.Context) error {
	products, err := c.service.GetProducts(e.Request().Context())
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", products)
}

func (c *Controller) GetProductBySKU(e echo.Context) error {
	sku := e.Param("sku")

	product, err := c.service.GetProductBySKU(e.Request().Context(), sku)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", product)
}

func (c *Controller) UpdateProduct(e echo.Context) error {
	sku := e.Param("sku")
	payload := dto.UpdateProductRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := c.validate.Struct(payload); err != nil {
		return pkgdto.WriteErrorResponse(e, errs.ErrValidation, c.validationErrors(err))
	}

	product, err := c.service.UpdateProduct(e.Request().Context(), sku, payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "Product updated successfully", product)
}

func (c *Controller) DeleteProduct(e echo.Context) error {
	sku := e.Param("sku")

	product, err := c.service.DeleteProduct(e.Request().Context(), sku)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "Product deleted successfully", product)
}

func (c *Controller) SearchProducts(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "SearchProducts").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	responsePayload, err := c.service.SearchProducts(e.Request().Context(), filter)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", responsePayload)
}

func (c *Controller) AddToFavorites(e echo.Context) error {
	sku := e.Param("sku")
	userID, _ := utils.ExtractTokenUser(e)
	if userID == "" {
		return pkgdto.WriteErrorResponse(e, errs.ErrNotLoggedIn, nil)
	}

	err := c.service.AddToFavorites(e.Request().Context(), userID, sku)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "Product added to favorites", nil)
}

func (c *Controller) GetFavorites(e echo.Context) error {
	userID, _ := utils.ExtractTokenUser(e)
	if userID == "" {
		return pkgdto.WriteErrorResponse(e, errs.ErrNotLoggedIn, nil)
	}

	products, err := c.service.GetFavorites(e.Request().Context(), userID)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", products)
}

// UploadProductImages accepts multipart files under the "images" field. Only
// .png and .jpg files of at most 1 MB each make it past the boundary.
func (c *Controller) UploadProductImages(e echo.Context) error {
	userID, _ := utils.ExtractTokenUser(e)
	if userID == "" {
		return pkgdto.WriteErrorResponse(e, errs.ErrNotLoggedIn, nil)
	}

	form, err := e.MultipartForm()
	if err != nil {
		log.Error().Err(err).Str("component", "UploadProductImages").Msg("")
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	fileHeaders := form.File["images"]
	if len(fileHeaders) == 0 {
		return pkgdto.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	files := make([]dto.FileUpload, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if ext != ".png" && ext != ".jpg" {
			return pkgdto.WriteErrorResponse(e, errs.ErrNotAnImage, nil)
		}
		if fileHeader.Size > maxImageSize {
			return pkgdto.WriteErrorResponse(e, errs.ErrFileSizeExceedsLimit, nil)
		}

		src, err := fileHeader.Open()
		if err != nil {
			log.Error().Err(err).Str("component", "UploadProductImages").Msg("")
			return pkgdto.WriteErrorResponse(e, errs.ErrInternalServer, nil)
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			log.Error().Err(err).Str("component", "UploadProductImages").Msg("")
			return pkgdto.WriteErrorResponse(e, errs.ErrInternalServer, nil)
		}

		files = append(files, dto.FileUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	locations, err := c.service.UploadProductImages(e.Request().Context(), userID, files)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "Images uploaded successfully", locations)
}
