package repository

import (
	"context"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ResidentRepository handles database operations related to residents.
type ResidentRepository struct {
	collection *mongo.Collection
}

// NewResidentRepository creates a new instance of ResidentRepository.
func NewResidentRepository(db *mongo.Database) *ResidentRepository {
	return &ResidentRepository{
		collection: db.Collection("residents"),
	}
}

// CreateResident inserts a new resident into the database.
func (r *ResidentRepository) CreateResident(ctx context.Context, resident *models.Resident) (*models.Resident, error) {
	resident.CreatedAt = time.Now()
	resident.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, resident)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert resident")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted resident ID")
		return nil, err
	}
	resident.ID = insertedID

	logger.Log.WithField("resident_id", resident.ID.Hex()).Info("Resident created successfully")
	return resident, nil
}

// GetResidentByID fetches a resident by its ID.
func (r *ResidentRepository) GetResidentByID(ctx context.Context, id primitive.ObjectID) (*models.Resident, error) {
	var resident models.Resident

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&resident)
	if err != nil {
		logger.Log.WithError(err).WithField("resident_id", id.Hex()).Error("Failed to find resident by ID")
		return nil, err
	}

	return &resident, nil
}

// UpdateResident updates an existing resident in the database.
func (r *ResidentRepository) UpdateResident(ctx context.Context, id primitive.ObjectID, resident *models.Resident) (*models.Resident, error) {
	resident.UpdatedAt = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":        resident.Name,
			"mobility":    resident.Mobility,
			"preferences": resident.Preferences,
			"allergies":   resident.Allergies,
			"updated_at":  resident.UpdatedAt,
		}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("resident_id", id.Hex()).Error("Failed to update resident")
		return nil, err
	}

	resident.ID = id
	logger.Log.WithField("resident_id", id.Hex()).Info("Resident updated successfully")
	return resident, nil
}

// DeleteResident deletes a resident from the database by its ID.
func (r *ResidentRepository) DeleteResident(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("resident_id", id.Hex()).Error("Failed to delete resident")
		return err
	}

	logger.Log.WithField("resident_id", id.Hex()).Info("Resident deleted successfully")
	return nil
}

// GetAllResidents fetches all residents from the database.
func (r *ResidentRepository) GetAllResidents(ctx context.Context) ([]models.Resident, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch all residents")
		return nil, err
	}
	defer cursor.Close(ctx)

	var residents []models.Resident
	if err := cursor.All(ctx, &residents); err != nil {
		logger.Log.WithError(err).Error("Failed to decode residents")
		return nil, err
	}

	return residents, nil
}
