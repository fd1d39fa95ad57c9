package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/repository"
	"github.com/serwaa467/ElderCare_Manager/internal/scheduling"
	"github.com/serwaa467/ElderCare_Manager/pkg/kvstore"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ThrottleStateKey is where the due scan keeps its throttle map in the
// key-value store.
const ThrottleStateKey = "mNotifyThrottle"

// NotificationService runs the reposition due scan and manages the in-app
// notification feed.
type NotificationService struct {
	repo           *repository.NotificationRepository
	residentRepo   *repository.ResidentRepository
	repositionRepo *repository.RepositionRepository
	state          kvstore.Store
	opts           scheduling.TickOptions
	now            func() time.Time
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(
	repo *repository.NotificationRepository,
	residentRepo *repository.ResidentRepository,
	repositionRepo *repository.RepositionRepository,
	state kvstore.Store,
	opts scheduling.TickOptions,
) *NotificationService {
	return &NotificationService{
		repo:           repo,
		residentRepo:   residentRepo,
		repositionRepo: repositionRepo,
		state:          state,
		opts:           opts,
		now:            time.Now,
	}
}

// RunDueScan performs one tick of the notification scan: snapshot the store,
// classify every resident with a preference, throttle repeats, persist the
// updated throttle state and record the notifications that fired. Store
// failures are logged and swallowed; the scan retries on its next tick.
func (s *NotificationService) RunDueScan(ctx context.Context) error {
	residents, err := s.residentRepo.GetAllResidents(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch residents: %w", err)
	}
	prefs, err := s.repositionRepo.GetAllPreferences(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch preferences: %w", err)
	}
	events, err := s.repositionRepo.GetAllEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	state := s.loadThrottleState()
	fired, updated := scheduling.Tick(residents, prefs, events, state, s.now(), s.opts)
	if len(fired) == 0 {
		return nil
	}

	// The scan is the only writer of the throttle state; the cron driver
	// never overlaps ticks, so a plain read-modify-write is safe here.
	if err := s.saveThrottleState(updated); err != nil {
		logger.Log.WithError(err).Error("Failed to persist throttle state")
	}

	for _, n := range fired {
		err := s.repo.CreateNotification(ctx, &models.Notification{
			ResidentID:      n.ResidentID,
			Status:          n.Status,
			MinutesUntilDue: n.MinutesUntilDue,
			Title:           n.Title,
			Body:            n.Body,
		})
		if err != nil {
			logger.Log.WithError(err).WithField("resident_id", n.ResidentID.Hex()).Warn("Failed to store notification")
		}
	}

	logger.Log.WithField("count", len(fired)).Info("Due scan completed")
	return nil
}

func (s *NotificationService) loadThrottleState() scheduling.ThrottleState {
	raw, err := s.state.Get(ThrottleStateKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			logger.Log.WithError(err).Warn("Failed to load throttle state, starting empty")
		}
		return scheduling.ThrottleState{}
	}

	state := scheduling.ThrottleState{}
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		logger.Log.WithError(err).Warn("Corrupt throttle state, starting empty")
		return scheduling.ThrottleState{}
	}
	return state
}

func (s *NotificationService) saveThrottleState(state scheduling.ThrottleState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.state.Set(ThrottleStateKey, string(data))
}

// GetNotifications returns the most recent notifications for the in-app feed.
func (s *NotificationService) GetNotifications(ctx context.Context) ([]models.Notification, error) {
	return s.repo.GetNotifications(ctx, 100)
}

// MarkNotificationAsRead sets the read flag of a notification.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID: %v", err)
	}
	return s.repo.MarkAsRead(ctx, objID)
}

// DeleteNotification deletes a notification.
func (s *NotificationService) DeleteNotification(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID: %v", err)
	}
	return s.repo.DeleteNotification(ctx, objID)
}
