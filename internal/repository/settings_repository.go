package repository

import (
	"context"
	"errors"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsDocID = "settings"

// SettingsRepository stores the singleton facility settings document.
type SettingsRepository struct {
	collection *mongo.Collection
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{
		collection: db.Collection("settings"),
	}
}

// GetSettings returns the facility settings, falling back to defaults when
// the document has never been saved.
func (r *SettingsRepository) GetSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := r.collection.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Settings{ID: settingsDocID, TenantID: "tenant-demo", Facility: "Main Facility"}, nil
		}
		logger.Log.WithError(err).Error("Failed to fetch settings")
		return nil, err
	}
	return &settings, nil
}

// SaveSettings upserts the facility settings document.
func (r *SettingsRepository) SaveSettings(ctx context.Context, settings *models.Settings) error {
	settings.ID = settingsDocID

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, settings, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to save settings")
		return err
	}

	logger.Log.WithField("facility", settings.Facility).Info("Settings saved")
	return nil
}
