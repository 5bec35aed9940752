package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer         = http.StatusInternalServerError
	ErrStatusClient                 = http.StatusBadRequest
	ErrStatusUnauthorized           = http.StatusUnauthorized
	ErrStatusNotFound               = http.StatusNotFound
	ErrStatusConflict               = http.StatusConflict
	ErrStatusFileSizeExceedingLimit = http.StatusRequestEntityTooLarge
)

var (
	ErrInternalServer       = errors.New("Internal server error")
	ErrClient               = errors.New("Bad request")
	ErrValidation           = errors.New("Request validation failed")
	ErrNotLoggedIn          = errors.New("Unauthorized access")
	ErrNotFound             = errors.New("Resource not found")
	ErrDuplicateSKU         = errors.New("A product with this SKU already exists")
	ErrInsufficientStock    = errors.New("Insufficient product stock")
	ErrNotAnImage           = errors.New("Please upload PNG and JPG only")
	ErrFileSizeExceedsLimit = errors.New("Uploaded file exceeds the 1 MB limit")
	ErrUploadFailed         = errors.New("Failed to upload images")
)

var errorMap = map[error]int{
	ErrInternalServer:       ErrStatusInternalServer,
	ErrClient:               ErrStatusClient,
	ErrValidation:           ErrStatusClient,
	ErrNotLoggedIn:          ErrStatusUnauthorized,
	ErrNotFound:             ErrStatusNotFound,
	ErrDuplicateSKU:         ErrStatusConflict,
	ErrInsufficientStock:    ErrStatusClient,
	ErrNotAnImage:           ErrStatusClient,
	ErrFileSizeExceedsLimit: ErrStatusFileSizeExceedingLimit,
	ErrUploadFailed:         ErrStatusInternalServer,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
