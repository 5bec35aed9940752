package dto

type ProductRequest struct {
	SKU         string   `json:"sku" validate:"required"`
	Name        string   `json:"productName" validate:"required"`
	Quantity    *int64   `json:"productQuantity" validate:"required,gte=0"`
	Price       *float64 `json:"productPrice" validate:"required,gte=0"`
	Images      []string `json:"productImages" validate:"required,min=1,dive,required"`
	Description string   `json:"productDescription"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"productName" validate:"omitempty,min=1"`
	Quantity    *int64    `json:"productQuantity" validate:"omitempty,gte=0"`
	Price       *float64  `json:"productPrice" validate:"omitempty,gte=0"`
	Images      *[]string `json:"productImages" validate:"omitempty,min=1,dive,required"`
	Description *string   `json:"productDescription"`
}
