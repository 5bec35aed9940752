package dto

type ProductResponse struct {
	ID          string   `json:"id"`
	SKU         string   `json:"sku"`
	Name        string   `json:"productName"`
	Quantity    int64    `json:"productQuantity"`
	Price       float64  `json:"productPrice"`
	Images      []string `json:"productImages"`
	Description string   `json:"productDescription,omitempty"`
}
