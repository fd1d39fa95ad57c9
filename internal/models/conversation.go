package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is one assistant exchange: the incoming message and the
// scripted reply that was produced for it.
type Conversation struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Role  string             `bson:"role" json:"role"` // resident or caregiver
	Text  string             `bson:"text" json:"text"`
	Reply string             `bson:"reply" json:"reply"`
	At    time.Time          `bson:"at" json:"at"`
}
