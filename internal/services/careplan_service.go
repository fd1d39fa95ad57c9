package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// carePlanDueSoonHorizon is how far ahead of the next due time a care plan
// shows a "due soon" badge.
const carePlanDueSoonHorizon = 15 * time.Minute

// frequencyPattern matches nursing shorthand like q2h or q30m.
var frequencyPattern = regexp.MustCompile(`^q(\d+)([hm])$`)

// CarePlanDueInfo describes where a care plan stands against its frequency.
type CarePlanDueInfo struct {
	Overdue bool `json:"overdue"`
	DueSoon bool `json:"due_soon"`
}

// CarePlanView is a care plan with its computed due info.
type CarePlanView struct {
	models.CarePlan
	Due CarePlanDueInfo `json:"due"`
}

// CarePlanService encapsulates care plan logic.
type CarePlanService struct {
	repo *repository.CarePlanRepository
	now  func() time.Time
}

// NewCarePlanService creates a new instance of CarePlanService.
func NewCarePlanService(repo *repository.CarePlanRepository) *CarePlanService {
	return &CarePlanService{repo: repo, now: time.Now}
}

// CreateCarePlan validates and stores a new care plan.
func (s *CarePlanService) CreateCarePlan(ctx context.Context, plan *models.CarePlan) (*models.CarePlan, error) {
	plan.Title = strings.TrimSpace(plan.Title)
	if plan.Title == "" {
		return nil, fmt.Errorf("care plan title is required")
	}
	if plan.Frequency != "" {
		if _, err := ParseFrequency(plan.Frequency); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.CreateCarePlan(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to create care plan: %v", err)
	}
	return created, nil
}

// ListCarePlans returns care plans with due info, optionally restricted to
// one resident.
func (s *CarePlanService) ListCarePlans(ctx context.Context, residentID string) ([]CarePlanView, error) {
	var filter *primitive.ObjectID
	if residentID != "" {
		objID, err := primitive.ObjectIDFromHex(residentID)
		if err != nil {
			return nil, fmt.Errorf("invalid resident ID: %v", err)
		}
		filter = &objID
	}

	plans, err := s.repo.GetCarePlans(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch care plans: %v", err)
	}

	views := make([]CarePlanView, 0, len(plans))
	for _, plan := range plans {
		views = append(views, CarePlanView{
			CarePlan: plan,
			Due:      s.dueInfo(plan),
		})
	}
	return views, nil
}

// CompleteNow records a completion event with an optional note and stamps the
// plan's last completion time.
func (s *CarePlanService) CompleteNow(ctx context.Context, planID, note string) error {
	objID, err := primitive.ObjectIDFromHex(planID)
	if err != nil {
		return fmt.Errorf("invalid care plan ID: %v", err)
	}

	plan, err := s.repo.GetCarePlanByID(ctx, objID)
	if err != nil {
		return fmt.Errorf("care plan not found: %v", err)
	}

	at := s.now()
	err = s.repo.CreateCarePlanEvent(ctx, &models.CarePlanEvent{
		CarePlanID: plan.ID,
		ResidentID: plan.ResidentID,
		Note:       note,
		At:         at,
	})
	if err != nil {
		return fmt.Errorf("failed to record completion: %v", err)
	}
	return s.repo.SetLastCompleted(ctx, plan.ID, at)
}

// RecentNotes returns the latest completion notes for a care plan.
func (s *CarePlanService) RecentNotes(ctx context.Context, planID string) ([]models.CarePlanEvent, error) {
	objID, err := primitive.ObjectIDFromHex(planID)
	if err != nil {
		return nil, fmt.Errorf("invalid care plan ID: %v", err)
	}
	return s.repo.GetEventsByPlan(ctx, objID, 10)
}

func (s *CarePlanService) dueInfo(plan models.CarePlan) CarePlanDueInfo {
	interval, err := ParseFrequency(plan.Frequency)
	if err != nil {
		return CarePlanDueInfo{}
	}

	// Never completed counts as due now, mirroring the reposition policy.
	if plan.LastCompletedAt.IsZero() {
		return CarePlanDueInfo{Overdue: true}
	}

	nextDue := plan.LastCompletedAt.Add(interval)
	now := s.now()
	if now.After(nextDue) {
		return CarePlanDueInfo{Overdue: true}
	}
	if nextDue.Sub(now) <= carePlanDueSoonHorizon {
		return CarePlanDueInfo{DueSoon: true}
	}
	return CarePlanDueInfo{}
}

// ParseFrequency converts nursing shorthand ("q2h", "q30m") into a duration.
func ParseFrequency(freq string) (time.Duration, error) {
	m := frequencyPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(freq)))
	if m == nil {
		return 0, fmt.Errorf("invalid frequency %q: expected qNh or qNm", freq)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid frequency %q: expected qNh or qNm", freq)
	}

	if m[2] == "h" {
		return time.Duration(n) * time.Hour, nil
	}
	return time.Duration(n) * time.Minute, nil
}
