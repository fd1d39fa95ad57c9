package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal represents a meal served at the facility.
type Meal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Nutrition MealNutrition      `bson:"nutrition" json:"nutrition"`
	Allergens []string           `bson:"allergens" json:"allergens"`
	ServedAt  time.Time          `bson:"served_at" json:"served_at"`
}

type MealNutrition struct {
	Kcal int `bson:"kcal" json:"kcal"`
}

// MealFeedback is a resident's rating of a served meal. Analysis is a naive
// keyword-derived sentiment: positive, negative or neutral.
type MealFeedback struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MealID     primitive.ObjectID `bson:"meal_id" json:"meal_id"`
	ResidentID primitive.ObjectID `bson:"resident_id" json:"resident_id"`
	Rating     int                `bson:"rating" json:"rating"`
	Comment    string             `bson:"comment" json:"comment"`
	Analysis   string             `bson:"analysis" json:"analysis"`
	At         time.Time          `bson:"at" json:"at"`
}
