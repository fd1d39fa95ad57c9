package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/repository"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackResult is a stored feedback record plus the allergy cross-check the
// presentation layer surfaces as a warning.
type FeedbackResult struct {
	Feedback     *models.MealFeedback `json:"feedback"`
	AllergyAlert bool                 `json:"allergy_alert"`
}

// MealService encapsulates meal and feedback logic.
type MealService struct {
	repo         *repository.MealRepository
	residentRepo *repository.ResidentRepository
}

// NewMealService creates a new instance of MealService.
func NewMealService(repo *repository.MealRepository, residentRepo *repository.ResidentRepository) *MealService {
	return &MealService{repo: repo, residentRepo: residentRepo}
}

// CreateMeal validates and stores a new meal.
func (s *MealService) CreateMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	meal.Name = strings.TrimSpace(meal.Name)
	if meal.Name == "" {
		return nil, fmt.Errorf("meal name is required")
	}

	created, err := s.repo.CreateMeal(ctx, meal)
	if err != nil {
		return nil, fmt.Errorf("failed to create meal: %v", err)
	}
	return created, nil
}

// GetMeals returns all meals, newest first.
func (s *MealService) GetMeals(ctx context.Context) ([]models.Meal, error) {
	return s.repo.GetAllMeals(ctx)
}

// DeleteMeal removes a meal.
func (s *MealService) DeleteMeal(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid meal ID: %v", err)
	}
	return s.repo.DeleteMeal(ctx, objID)
}

// SubmitFeedback scores a resident's comment, stores the feedback and checks
// the meal's allergens against the resident's allergy list.
func (s *MealService) SubmitFeedback(ctx context.Context, mealID, residentID string, rating int, comment string) (*FeedbackResult, error) {
	mealObjID, err := primitive.ObjectIDFromHex(mealID)
	if err != nil {
		return nil, fmt.Errorf("invalid meal ID: %v", err)
	}
	residentObjID, err := primitive.ObjectIDFromHex(residentID)
	if err != nil {
		return nil, fmt.Errorf("invalid resident ID: %v", err)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	meal, err := s.repo.GetMealByID(ctx, mealObjID)
	if err != nil {
		return nil, fmt.Errorf("meal not found: %v", err)
	}
	resident, err := s.residentRepo.GetResidentByID(ctx, residentObjID)
	if err != nil {
		return nil, fmt.Errorf("resident not found: %v", err)
	}

	fb := &models.MealFeedback{
		MealID:     mealObjID,
		ResidentID: residentObjID,
		Rating:     rating,
		Comment:    comment,
		Analysis:   AnalyzeSentiment(comment, rating),
	}
	stored, err := s.repo.CreateFeedback(ctx, fb)
	if err != nil {
		return nil, fmt.Errorf("failed to store feedback: %v", err)
	}

	alert := allergyConflict(resident.Allergies, meal.Allergens)
	if alert {
		logger.Log.WithFields(map[string]interface{}{
			"meal_id":     mealID,
			"resident_id": residentID,
		}).Warn("Potential allergy conflict on meal feedback")
	}

	return &FeedbackResult{Feedback: stored, AllergyAlert: alert}, nil
}

// GetFeedback returns all feedback records.
func (s *MealService) GetFeedback(ctx context.Context) ([]models.MealFeedback, error) {
	return s.repo.GetAllFeedback(ctx)
}

// AnalyzeSentiment is a fixed keyword lookup, the same flavor of scripted
// analysis the assistant uses. The rating breaks ties when no keyword hits.
func AnalyzeSentiment(comment string, rating int) string {
	c := strings.ToLower(comment)
	positives := []string{"good", "great", "tasty", "delicious", "love", "enjoy"}
	negatives := []string{"bad", "cold", "bland", "awful", "hate", "salty", "dislike"}

	for _, w := range negatives {
		if strings.Contains(c, w) {
			return "negative"
		}
	}
	for _, w := range positives {
		if strings.Contains(c, w) {
			return "positive"
		}
	}

	switch {
	case rating >= 4:
		return "positive"
	case rating <= 2:
		return "negative"
	default:
		return "neutral"
	}
}
