package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SKU         string             `bson:"sku"`
	Name        string             `bson:"name"`
	Quantity    int64              `bson:"quantity"`
	Price       float64            `bson:"price"`
	Images      []string           `bson:"images"`
	Description string             `bson:"description,omitempty"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Favorites []string           `bson:"favorites"`
}
