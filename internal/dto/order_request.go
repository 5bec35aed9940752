package dto

type OrderItem struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

type OrderRequest struct {
	TransactionNumber string      `json:"transaction_number"`
	OrderItems        []OrderItem `json:"order_items"`
}
