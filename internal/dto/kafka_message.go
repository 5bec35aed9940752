package dto

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type StockUpdate struct {
	TransactionNumber string `json:"transaction_number"`
	Status            bool   `json:"status"`
}
