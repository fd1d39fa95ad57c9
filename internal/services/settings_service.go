package services

import (
	"context"
	"strings"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/repository"
)

// SettingsService manages the singleton facility settings.
type SettingsService struct {
	repo *repository.SettingsRepository
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetSettings returns the current facility settings.
func (s *SettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	return s.repo.GetSettings(ctx)
}

// SaveSettings stores the facility settings, filling defaults for blanks.
func (s *SettingsService) SaveSettings(ctx context.Context, settings *models.Settings) error {
	if strings.TrimSpace(settings.TenantID) == "" {
		settings.TenantID = "tenant-demo"
	}
	if strings.TrimSpace(settings.Facility) == "" {
		settings.Facility = "Main Facility"
	}
	return s.repo.SaveSettings(ctx, settings)
}
