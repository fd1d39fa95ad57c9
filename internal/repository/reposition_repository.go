package repository

import (
	"context"
	"errors"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RepositionRepository handles the reposition preference and event collections.
type RepositionRepository struct {
	prefs  *mongo.Collection
	events *mongo.Collection
}

// NewRepositionRepository creates a new instance of RepositionRepository.
func NewRepositionRepository(db *mongo.Database) *RepositionRepository {
	return &RepositionRepository{
		prefs:  db.Collection("reposition_prefs"),
		events: db.Collection("reposition_events"),
	}
}

// GetPreferenceByResident returns the preference for a resident, or nil when
// the resident has no configured interval.
func (r *RepositionRepository) GetPreferenceByResident(ctx context.Context, residentID primitive.ObjectID) (*models.RepositionPreference, error) {
	var pref models.RepositionPreference
	err := r.prefs.FindOne(ctx, bson.M{"resident_id": residentID}).Decode(&pref)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Log.WithError(err).WithField("resident_id", residentID.Hex()).Error("Failed to fetch reposition preference")
		return nil, err
	}
	return &pref, nil
}

// UpsertPreference stores the interval for a resident, keeping at most one
// preference document per resident. Mongo has no uniqueness constraint here,
// so the upsert is a lookup-before-write on resident_id.
func (r *RepositionRepository) UpsertPreference(ctx context.Context, residentID primitive.ObjectID, intervalMins int) (*models.RepositionPreference, error) {
	existing, err := r.GetPreferenceByResident(ctx, residentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if existing != nil {
		existing.IntervalMins = intervalMins
		existing.UpdatedAt = now
		_, err := r.prefs.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": bson.M{
			"interval_mins": intervalMins,
			"updated_at":    now,
		}})
		if err != nil {
			logger.Log.WithError(err).WithField("resident_id", residentID.Hex()).Error("Failed to update reposition preference")
			return nil, err
		}
		logger.Log.WithField("resident_id", residentID.Hex()).Info("Reposition preference updated")
		return existing, nil
	}

	pref := &models.RepositionPreference{
		ResidentID:   residentID,
		IntervalMins: intervalMins,
		UpdatedAt:    now,
	}
	result, err := r.prefs.InsertOne(ctx, pref)
	if err != nil {
		logger.Log.WithError(err).WithField("resident_id", residentID.Hex()).Error("Failed to insert reposition preference")
		return nil, err
	}
	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		pref.ID = insertedID
	}

	logger.Log.WithField("resident_id", residentID.Hex()).Info("Reposition preference created")
	return pref, nil
}

// GetAllPreferences fetches all reposition preferences.
func (r *RepositionRepository) GetAllPreferences(ctx context.Context) ([]models.RepositionPreference, error) {
	cursor, err := r.prefs.Find(ctx, bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch reposition preferences")
		return nil, err
	}
	defer cursor.Close(ctx)

	var prefs []models.RepositionPreference
	if err := cursor.All(ctx, &prefs); err != nil {
		logger.Log.WithError(err).Error("Failed to decode reposition preferences")
		return nil, err
	}
	return prefs, nil
}

// CreateEvent appends a completed reposition event. Events are immutable: the
// timestamp is assigned here and never revised.
func (r *RepositionRepository) CreateEvent(ctx context.Context, event *models.RepositionEvent) (*models.RepositionEvent, error) {
	event.At = time.Now()

	result, err := r.events.InsertOne(ctx, event)
	if err != nil {
		logger.Log.WithError(err).WithField("resident_id", event.ResidentID.Hex()).Error("Failed to insert reposition event")
		return nil, err
	}
	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = insertedID
	}

	logger.Log.WithField("resident_id", event.ResidentID.Hex()).Info("Reposition event logged")
	return event, nil
}

// GetAllEvents fetches all reposition events.
func (r *RepositionRepository) GetAllEvents(ctx context.Context) ([]models.RepositionEvent, error) {
	cursor, err := r.events.Find(ctx, bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch reposition events")
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.RepositionEvent
	if err := cursor.All(ctx, &events); err != nil {
		logger.Log.WithError(err).Error("Failed to decode reposition events")
		return nil, err
	}
	return events, nil
}

// GetLatestEventByResident returns the most recent event for a resident, or
// nil when the resident has never been repositioned.
func (r *RepositionRepository) GetLatestEventByResident(ctx context.Context, residentID primitive.ObjectID) (*models.RepositionEvent, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "at", Value: -1}})

	var event models.RepositionEvent
	err := r.events.FindOne(ctx, bson.M{"resident_id": residentID}, opts).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Log.WithError(err).WithField("resident_id", residentID.Hex()).Error("Failed to fetch latest reposition event")
		return nil, err
	}
	return &event, nil
}

// GetEventsByResident fetches a resident's events sorted most recent first.
func (r *RepositionRepository) GetEventsByResident(ctx context.Context, residentID primitive.ObjectID) ([]models.RepositionEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}})

	cursor, err := r.events.Find(ctx, bson.M{"resident_id": residentID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("resident_id", residentID.Hex()).Error("Failed to fetch reposition events for resident")
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.RepositionEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
