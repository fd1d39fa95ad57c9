package repository

import (
	"context"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MealRepository handles the meal and meal feedback collections.
type MealRepository struct {
	meals    *mongo.Collection
	feedback *mongo.Collection
}

// NewMealRepository creates a new instance of MealRepository.
func NewMealRepository(db *mongo.Database) *MealRepository {
	return &MealRepository{
		meals:    db.Collection("meals"),
		feedback: db.Collection("meal_feedback"),
	}
}

// CreateMeal inserts a new meal.
func (r *MealRepository) CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if meal.ServedAt.IsZero() {
		meal.ServedAt = time.Now()
	}

	result, err := r.meals.InsertOne(ctx, meal)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert meal")
		return nil, err
	}
	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		meal.ID = insertedID
	}

	logger.Log.WithField("meal_id", meal.ID.Hex()).Info("Meal created successfully")
	return meal, nil
}

// GetMealByID fetches a meal by its ID.
func (r *MealRepository) GetMealByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error) {
	var meal models.Meal
	err := r.meals.FindOne(ctx, bson.M{"_id": id}).Decode(&meal)
	if err != nil {
		logger.Log.WithError(err).WithField("meal_id", id.Hex()).Error("Failed to find meal by ID")
		return nil, err
	}
	return &meal, nil
}

// GetAllMeals fetches all meals sorted by serving time, newest first.
func (r *MealRepository) GetAllMeals(ctx context.Context) ([]models.Meal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "served_at", Value: -1}})
	cursor, err := r.meals.Find(ctx, bson.M{}, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch meals")
		return nil, err
	}
	defer cursor.Close(ctx)

	var meals []models.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// DeleteMeal deletes a meal by its ID.
func (r *MealRepository) DeleteMeal(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.meals.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("meal_id", id.Hex()).Error("Failed to delete meal")
		return err
	}
	return nil
}

// CreateFeedback inserts a feedback record for a served meal.
func (r *MealRepository) CreateFeedback(ctx context.Context, fb *models.MealFeedback) (*models.MealFeedback, error) {
	fb.At = time.Now()

	result, err := r.feedback.InsertOne(ctx, fb)
	if err != nil {
		logger.Log.WithError(err).WithField("meal_id", fb.MealID.Hex()).Error("Failed to insert meal feedback")
		return nil, err
	}
	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		fb.ID = insertedID
	}

	logger.Log.WithField("meal_id", fb.MealID.Hex()).Info("Meal feedback recorded")
	return fb, nil
}

// GetAllFeedback fetches all meal feedback records.
func (r *MealRepository) GetAllFeedback(ctx context.Context) ([]models.MealFeedback, error) {
	cursor, err := r.feedback.Find(ctx, bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch meal feedback")
		return nil, err
	}
	defer cursor.Close(ctx)

	var feedback []models.MealFeedback
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}
