package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale is immutable once created
type Sale struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiptNo  string             `bson:"receiptNo" json:"receiptNo"`
	MarketerID primitive.ObjectID `bson:"marketerId" json:"marketerId"`
	ProductID  primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Total      float64            `bson:"total" json:"total"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

// CreateSaleRequest is the payload for recording a sale
type CreateSaleRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
