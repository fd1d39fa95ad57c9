package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/repository"
	"github.com/serwaa467/ElderCare_Manager/internal/scheduling"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GuideStep is one stage of the guided reposition flow with its safety checks.
type GuideStep struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Text   string       `json:"text"`
	Checks []GuideCheck `json:"checks"`
}

type GuideCheck struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// GuideSteps is the guided flow caregivers walk through on a device before
// logging a completion.
var GuideSteps = []GuideStep{
	{
		ID:    "prep",
		Title: "Preparation",
		Text:  "Prepare area and confirm safety.",
		Checks: []GuideCheck{
			{ID: "brakes", Label: "Bed or chair brakes locked"},
			{ID: "height", Label: "Bed height at caregiver hip level"},
			{ID: "clear", Label: "Environment clear of obstacles"},
		},
	},
	{
		ID:    "body_mech",
		Title: "Body Mechanics",
		Text:  "Use neutral spine and bend at knees.",
		Checks: []GuideCheck{
			{ID: "slide", Label: "Slide sheet or draw sheet in place"},
			{ID: "neutral", Label: "Back neutral; avoid twisting"},
		},
	},
	{
		ID:    "complete",
		Title: "Completion",
		Text:  "Confirm comfort and document.",
		Checks: []GuideCheck{
			{ID: "comfort", Label: "Resident comfortable and supported"},
			{ID: "pain", Label: "Any pain reported is addressed"},
		},
	},
}

// RepositionService encapsulates interval configuration, completion logging
// and due status computation for the repositioning schedule.
type RepositionService struct {
	repo         *repository.RepositionRepository
	residentRepo *repository.ResidentRepository
	now          func() time.Time
}

// NewRepositionService creates a new instance of RepositionService.
func NewRepositionService(repo *repository.RepositionRepository, residentRepo *repository.ResidentRepository) *RepositionService {
	return &RepositionService{
		repo:         repo,
		residentRepo: residentRepo,
		now:          time.Now,
	}
}

// SaveInterval validates and upserts the repositioning interval for a
// resident. The interval must be a positive number of minutes; this is the
// boundary where invalid configuration is rejected.
func (s *RepositionService) SaveInterval(ctx context.Context, residentID string, intervalMins int) (*models.RepositionPreference, error) {
	objID, err := primitive.ObjectIDFromHex(residentID)
	if err != nil {
		return nil, fmt.Errorf("invalid resident ID: %v", err)
	}
	if intervalMins <= 0 {
		logger.Log.WithField("resident_id", residentID).Warn("Rejected non-positive reposition interval")
		return nil, scheduling.ErrInvalidInterval
	}

	if _, err := s.residentRepo.GetResidentByID(ctx, objID); err != nil {
		return nil, fmt.Errorf("resident not found: %v", err)
	}

	pref, err := s.repo.UpsertPreference(ctx, objID, intervalMins)
	if err != nil {
		return nil, fmt.Errorf("failed to save interval: %v", err)
	}
	return pref, nil
}

// LogCompletion appends a reposition event for a resident. Used by the form
// submission, the quick-complete action and the guided flow alike.
func (s *RepositionService) LogCompletion(ctx context.Context, residentID string, params models.RepositionParams, guidance models.RepositionGuidance) (*models.RepositionEvent, error) {
	objID, err := primitive.ObjectIDFromHex(residentID)
	if err != nil {
		return nil, fmt.Errorf("invalid resident ID: %v", err)
	}
	if guidance.Technique == "" {
		guidance.Technique = "Logged completion"
	}

	event, err := s.repo.CreateEvent(ctx, &models.RepositionEvent{
		ResidentID: objID,
		Params:     params,
		Guidance:   guidance,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to log completion: %v", err)
	}
	return event, nil
}

// DueStatus computes the current due status for one resident. Returns an
// error when the resident has no configured interval.
func (s *RepositionService) DueStatus(ctx context.Context, residentID string) (*scheduling.DueStatus, error) {
	objID, err := primitive.ObjectIDFromHex(residentID)
	if err != nil {
		return nil, fmt.Errorf("invalid resident ID: %v", err)
	}

	pref, err := s.repo.GetPreferenceByResident(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preference: %v", err)
	}
	if pref == nil {
		return nil, fmt.Errorf("no reposition interval configured for resident")
	}

	latest, err := s.repo.GetLatestEventByResident(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest event: %v", err)
	}

	var lastAt *time.Time
	if latest != nil {
		lastAt = &latest.At
	}

	status, err := scheduling.ComputeDueStatus(lastAt, pref.IntervalMins, s.now())
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Guidance applies the repositioning technique rules to the caregiver's
// inputs and returns a recommendation.
func (s *RepositionService) Guidance(weightKg float64, mobility string, pain []string) models.RepositionGuidance {
	technique := "Two-person log roll with knee support"
	if weightKg > 0 && weightKg < 60 && mobility == models.MobilityHigh {
		technique = "Single caregiver assist with slide sheet"
	}
	if weightKg > 100 || mobility == models.MobilityLow {
		technique = "Use mechanical lift; avoid twisting; neutral spine."
	}

	painTxt := "none reported"
	if len(pain) > 0 {
		painTxt = strings.Join(pain, ", ")
	}

	return models.RepositionGuidance{
		Technique: technique,
		Steps: []string{
			"Prepare area, lock bed brakes, adjust height to hips level",
			"Use slide sheet; keep back neutral; bend at knees",
			fmt.Sprintf("Address pain points: %s", painTxt),
		},
	}
}

// History returns a resident's reposition events, newest first.
func (s *RepositionService) History(ctx context.Context, residentID string) ([]models.RepositionEvent, error) {
	objID, err := primitive.ObjectIDFromHex(residentID)
	if err != nil {
		return nil, fmt.Errorf("invalid resident ID: %v", err)
	}
	return s.repo.GetEventsByResident(ctx, objID)
}
