package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RepositionPreference holds the configured repositioning interval for one
// resident. At most one document exists per resident; the repository enforces
// this with a lookup-before-write upsert.
type RepositionPreference struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResidentID   primitive.ObjectID `bson:"resident_id" json:"resident_id"`
	IntervalMins int                `bson:"interval_mins" json:"interval_mins"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// RepositionEvent is an append-only record of a completed repositioning.
// The timestamp is assigned at creation and never revised.
type RepositionEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResidentID primitive.ObjectID `bson:"resident_id" json:"resident_id"`
	Params     RepositionParams   `bson:"params" json:"params"`
	Guidance   RepositionGuidance `bson:"guidance" json:"guidance"`
	At         time.Time          `bson:"at" json:"at"`
}

// RepositionParams captures the inputs the caregiver entered when requesting
// guidance. Empty for quick completions.
type RepositionParams struct {
	WeightKg float64  `bson:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	Mobility string   `bson:"mobility,omitempty" json:"mobility,omitempty"`
	Pain     []string `bson:"pain,omitempty" json:"pain,omitempty"`
}

// RepositionGuidance is the technique recommendation recorded with an event.
type RepositionGuidance struct {
	Technique string   `bson:"technique" json:"technique"`
	Steps     []string `bson:"steps,omitempty" json:"steps,omitempty"`
}
