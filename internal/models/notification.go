package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an in-app alert produced by the reposition due scan.
type Notification struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResidentID      primitive.ObjectID `bson:"resident_id" json:"resident_id"`
	Status          string             `bson:"status" json:"status"` // overdue or dueSoon
	MinutesUntilDue int                `bson:"minutes_until_due" json:"minutes_until_due"`
	Title           string             `bson:"title" json:"title"`
	Body            string             `bson:"body" json:"body"`
	Read            bool               `bson:"read" json:"read"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}
