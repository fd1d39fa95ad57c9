package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mobility levels a resident can have.
const (
	MobilityLow    = "low"
	MobilityMedium = "medium"
	MobilityHigh   = "high"
)

// Resident represents a person under care at the facility.
type Resident struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Mobility    string              `bson:"mobility" json:"mobility"` // low, medium, high
	Preferences ResidentPreferences `bson:"preferences" json:"preferences"`
	Allergies   []string            `bson:"allergies" json:"allergies"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}

type ResidentPreferences struct {
	Diet string `bson:"diet" json:"diet"`
}

// ValidMobility reports whether m is one of the known mobility levels.
func ValidMobility(m string) bool {
	return m == MobilityLow || m == MobilityMedium || m == MobilityHigh
}
