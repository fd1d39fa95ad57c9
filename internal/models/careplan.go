package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarePlan is a recurring care item for a resident, e.g. a q2h turn schedule.
// Frequency uses nursing shorthand: "q2h" (every 2 hours), "q30m", etc.
type CarePlan struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResidentID      primitive.ObjectID `bson:"resident_id" json:"resident_id"`
	Title           string             `bson:"title" json:"title"`
	Frequency       string             `bson:"frequency" json:"frequency"`
	LastCompletedAt time.Time          `bson:"last_completed_at,omitempty" json:"last_completed_at,omitempty"`
}

// CarePlanEvent records a completion of a care plan item with an optional note.
type CarePlanEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CarePlanID primitive.ObjectID `bson:"care_plan_id" json:"care_plan_id"`
	ResidentID primitive.ObjectID `bson:"resident_id" json:"resident_id"`
	Note       string             `bson:"note" json:"note"`
	At         time.Time          `bson:"at" json:"at"`
}
