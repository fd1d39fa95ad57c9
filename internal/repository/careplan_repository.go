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

// CarePlanRepository handles the care plan and care plan event collections.
type CarePlanRepository struct {
	plans  *mongo.Collection
	events *mongo.Collection
}

// NewCarePlanRepository creates a new instance of CarePlanRepository.
func NewCarePlanRepository(db *mongo.Database) *CarePlanRepository {
	return &CarePlanRepository{
		plans:  db.Collection("care_plans"),
		events: db.Collection("care_plan_events"),
	}
}

// CreateCarePlan inserts a new care plan.
func (r *CarePlanRepository) CreateCarePlan(ctx context.Context, plan *models.CarePlan) (*models.CarePlan, error) {
	result, err := r.plans.InsertOne(ctx, plan)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert care plan")
		return nil, err
	}
	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		plan.ID = insertedID
	}

	logger.Log.WithField("care_plan_id", plan.ID.Hex()).Info("Care plan created successfully")
	return plan, nil
}

// GetCarePlanByID fetches a care plan by its ID.
func (r *CarePlanRepository) GetCarePlanByID(ctx context.Context, id primitive.ObjectID) (*models.CarePlan, error) {
	var plan models.CarePlan
	err := r.plans.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		logger.Log.WithError(err).WithField("care_plan_id", id.Hex()).Error("Failed to find care plan by ID")
		return nil, err
	}
	return &plan, nil
}

// GetCarePlans fetches care plans, optionally restricted to one resident.
func (r *CarePlanRepository) GetCarePlans(ctx context.Context, residentID *primitive.ObjectID) ([]models.CarePlan, error) {
	filter := bson.M{}
	if residentID != nil {
		filter["resident_id"] = *residentID
	}

	cursor, err := r.plans.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch care plans")
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []models.CarePlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// SetLastCompleted stamps the care plan's last completion time.
func (r *CarePlanRepository) SetLastCompleted(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.plans.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_completed_at": at}})
	if err != nil {
		logger.Log.WithError(err).WithField("care_plan_id", id.Hex()).Error("Failed to stamp care plan completion")
		return err
	}
	return nil
}

// CreateCarePlanEvent appends a completion note for a care plan.
func (r *CarePlanRepository) CreateCarePlanEvent(ctx context.Context, event *models.CarePlanEvent) error {
	_, err := r.events.InsertOne(ctx, event)
	if err != nil {
		logger.Log.WithError(err).WithField("care_plan_id", event.CarePlanID.Hex()).Error("Failed to insert care plan event")
		return err
	}
	return nil
}

// GetEventsByPlan fetches the most recent completion events for a plan.
func (r *CarePlanRepository) GetEventsByPlan(ctx context.Context, planID primitive.ObjectID, limit int64) ([]models.CarePlanEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)

	cursor, err := r.events.Find(ctx, bson.M{"care_plan_id": planID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("care_plan_id", planID.Hex()).Error("Failed to fetch care plan events")
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.CarePlanEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
