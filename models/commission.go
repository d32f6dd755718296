package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Commission is immutable once created; produced by the commission-posting
// process when a downline sale occurs.
type Commission struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID primitive.ObjectID `bson:"receiverId" json:"receiverId"`
	SourceID   primitive.ObjectID `bson:"sourceId,omitempty" json:"sourceId,omitempty"` // sale that produced it
	Amount     float64            `bson:"amount" json:"amount"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
