package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/repository"
	"github.com/serwaa467/ElderCare_Manager/internal/scheduling"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
)

// AdherenceWindow is the trailing window of the standard adherence report.
const AdherenceWindow = 24 * time.Hour

// TopRiskCount is how many worst-adherence rows the truncated view keeps.
const TopRiskCount = 5

// AdherenceOptions restricts and truncates the report for presentation.
// Filtering is layered over the computed rows, not part of aggregation.
type AdherenceOptions struct {
	ResidentID string // restrict to one resident when non-empty
	Full       bool   // false keeps only the TopRiskCount worst rows
}

// AdherenceReport is the rows plus per-resident hourly trend counts.
type AdherenceReport struct {
	Rows        []scheduling.AdherenceRow `json:"rows"`
	Trends      map[string][]int          `json:"trends"` // resident hex ID -> hourly counts
	WindowStart time.Time                 `json:"window_start"`
	WindowEnd   time.Time                 `json:"window_end"`
	Total       int                       `json:"total"`
}

// SummaryCard is one headline figure for the analytics dashboard.
type SummaryCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// AnalyticsService computes facility-wide reports from store snapshots. Store
// failures degrade to empty results rather than propagating: the dashboard
// renders "no data" instead of crashing.
type AnalyticsService struct {
	residentRepo   *repository.ResidentRepository
	repositionRepo *repository.RepositionRepository
	mealRepo       *repository.MealRepository
	taskRepo       *repository.TaskRepository
	carePlanRepo   *repository.CarePlanRepository
	convRepo       *repository.ConversationRepository
	now            func() time.Time
}

// NewAnalyticsService creates a new instance of AnalyticsService.
func NewAnalyticsService(
	residentRepo *repository.ResidentRepository,
	repositionRepo *repository.RepositionRepository,
	mealRepo *repository.MealRepository,
	taskRepo *repository.TaskRepository,
	carePlanRepo *repository.CarePlanRepository,
	convRepo *repository.ConversationRepository,
) *AnalyticsService {
	return &AnalyticsService{
		residentRepo:   residentRepo,
		repositionRepo: repositionRepo,
		mealRepo:       mealRepo,
		taskRepo:       taskRepo,
		carePlanRepo:   carePlanRepo,
		convRepo:       convRepo,
		now:            time.Now,
	}
}

// Adherence computes the trailing 24h adherence report. The snapshot reads
// are independent fetches; the report tolerates them being slightly out of
// sync with each other.
func (s *AnalyticsService) Adherence(ctx context.Context, opts AdherenceOptions) (*AdherenceReport, error) {
	windowEnd := s.now()
	windowStart := windowEnd.Add(-AdherenceWindow)

	residents, prefs, events, err := s.snapshot(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("Adherence snapshot failed, returning empty report")
		return &AdherenceReport{Trends: map[string][]int{}, WindowStart: windowStart, WindowEnd: windowEnd}, nil
	}

	rows := scheduling.ComputeAdherenceReport(residents, prefs, events, windowStart, windowEnd)

	if opts.ResidentID != "" {
		filtered := rows[:0]
		for _, row := range rows {
			if row.ResidentID.Hex() == opts.ResidentID {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	total := len(rows)
	if !opts.Full && len(rows) > TopRiskCount {
		rows = rows[:TopRiskCount]
	}

	trends := make(map[string][]int, len(rows))
	for _, row := range rows {
		trends[row.ResidentID.Hex()] = scheduling.ComputeTrend(events, row.ResidentID, windowStart, windowEnd, scheduling.DefaultTrendBuckets)
	}

	return &AdherenceReport{
		Rows:        rows,
		Trends:      trends,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Total:       total,
	}, nil
}

// ExportAdherenceCSV writes the adherence report as CSV with the summary
// columns followed by raw hourly counts.
func (s *AnalyticsService) ExportAdherenceCSV(ctx context.Context, opts AdherenceOptions, w io.Writer) error {
	report, err := s.Adherence(ctx, opts)
	if err != nil {
		return err
	}

	header := []string{"Resident", "Adherence", "OnTimePct"}
	for i := 0; i < scheduling.DefaultTrendBuckets; i++ {
		header = append(header, fmt.Sprintf("Hour%02d", i))
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range report.Rows {
		record := []string{
			row.Name,
			fmt.Sprintf("%d%%", int(math.Round(row.Adherence*100))),
			fmt.Sprintf("%d%%", row.OnTimePercent),
		}
		counts := report.Trends[row.ResidentID.Hex()]
		for i := 0; i < scheduling.DefaultTrendBuckets; i++ {
			n := 0
			if i < len(counts) {
				n = counts[i]
			}
			record = append(record, fmt.Sprintf("%d", n))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Summary builds the headline cards for the analytics dashboard.
func (s *AnalyticsService) Summary(ctx context.Context) []SummaryCard {
	var cards []SummaryCard

	residents, err := s.residentRepo.GetAllResidents(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("Summary failed to fetch residents")
		residents = nil
	}
	cards = append(cards, SummaryCard{Title: "Residents", Value: fmt.Sprintf("%d", len(residents))})

	if tasks, err := s.taskRepo.GetTasks(ctx, "", ""); err == nil {
		open := 0
		for _, t := range tasks {
			if t.Status != models.TaskStatusDone {
				open++
			}
		}
		cards = append(cards, SummaryCard{Title: "Open Tasks", Value: fmt.Sprintf("%d", open)})
	}

	cards = append(cards, s.mealCards(ctx, residents)...)

	if convs, err := s.convRepo.GetTranscript(ctx); err == nil {
		cards = append(cards, SummaryCard{Title: "Conversations Logged", Value: fmt.Sprintf("%d", len(convs))})
	}

	cards = append(cards, s.repositionCards(ctx, residents)...)
	cards = append(cards, s.carePlanCards(ctx)...)

	if nudges, err := s.taskRepo.CountEventsSince(ctx, "nudge", startOfDay(s.now())); err == nil {
		cards = append(cards, SummaryCard{Title: "Task Nudges Today", Value: fmt.Sprintf("%d", nudges)})
	}

	return cards
}

func (s *AnalyticsService) mealCards(ctx context.Context, residents []models.Resident) []SummaryCard {
	meals, err := s.mealRepo.GetAllMeals(ctx)
	if err != nil {
		return nil
	}
	feedback, err := s.mealRepo.GetAllFeedback(ctx)
	if err != nil {
		return nil
	}

	cards := []SummaryCard{{Title: "Meals", Value: fmt.Sprintf("%d", len(meals))}}

	avg := "—"
	if len(feedback) > 0 {
		sum := 0
		for _, fb := range feedback {
			sum += fb.Rating
		}
		avg = fmt.Sprintf("%.1f", float64(sum)/float64(len(feedback)))
	}
	cards = append(cards, SummaryCard{Title: "Avg Meal Rating", Value: avg})

	pos, neg := 0, 0
	for _, fb := range feedback {
		switch fb.Analysis {
		case "positive":
			pos++
		case "negative":
			neg++
		}
	}
	pct := func(n int) string {
		if len(feedback) == 0 {
			return "—"
		}
		return fmt.Sprintf("%d (%d%%)", n, int(math.Round(float64(n)/float64(len(feedback))*100)))
	}
	cards = append(cards,
		SummaryCard{Title: "Positive Feedback", Value: pct(pos)},
		SummaryCard{Title: "Negative Feedback", Value: pct(neg)},
	)

	// Potential allergy alerts: feedback on meals whose allergens intersect
	// the resident's allergy list.
	mealByID := make(map[string]models.Meal, len(meals))
	for _, m := range meals {
		mealByID[m.ID.Hex()] = m
	}
	residentByID := make(map[string]models.Resident, len(residents))
	for _, r := range residents {
		residentByID[r.ID.Hex()] = r
	}

	hits := 0
	for _, fb := range feedback {
		meal, okM := mealByID[fb.MealID.Hex()]
		resident, okR := residentByID[fb.ResidentID.Hex()]
		if !okM || !okR {
			continue
		}
		if allergyConflict(resident.Allergies, meal.Allergens) {
			hits++
		}
	}
	cards = append(cards, SummaryCard{Title: "Allergy Alerts (potential)", Value: fmt.Sprintf("%d", hits)})

	return cards
}

func (s *AnalyticsService) repositionCards(ctx context.Context, residents []models.Resident) []SummaryCard {
	prefs, err := s.repositionRepo.GetAllPreferences(ctx)
	if err != nil {
		return nil
	}
	events, err := s.repositionRepo.GetAllEvents(ctx)
	if err != nil {
		return nil
	}

	cards := []SummaryCard{{Title: "Reposition Events", Value: fmt.Sprintf("%d", len(events))}}

	now := s.now()
	latestByResident := make(map[string]time.Time)
	for _, ev := range events {
		key := ev.ResidentID.Hex()
		if last, ok := latestByResident[key]; !ok || ev.At.After(last) {
			latestByResident[key] = ev.At
		}
	}

	dueNow, tracked := 0, 0
	for _, pref := range prefs {
		var lastAt *time.Time
		if t, ok := latestByResident[pref.ResidentID.Hex()]; ok {
			lt := t
			lastAt = &lt
		}
		ds, err := scheduling.ComputeDueStatus(lastAt, pref.IntervalMins, now)
		if err != nil {
			continue
		}
		tracked++
		if ds.MinutesUntilDue <= 0 {
			dueNow++
		}
	}
	value := "—"
	if tracked > 0 {
		value = fmt.Sprintf("%d/%d (%d%%)", dueNow, tracked, int(math.Round(float64(dueNow)/float64(tracked)*100)))
	}
	cards = append(cards, SummaryCard{Title: "Reposition Due Now", Value: value})

	rows := scheduling.ComputeAdherenceReport(residents, prefs, events, now.Add(-AdherenceWindow), now)
	avg := "—"
	if len(rows) > 0 {
		sum := 0.0
		for _, row := range rows {
			sum += row.Adherence
		}
		avg = fmt.Sprintf("%d%%", int(math.Round(sum/float64(len(rows))*100)))
	}
	cards = append(cards, SummaryCard{Title: "Avg Reposition Adherence (24h)", Value: avg})

	return cards
}

func (s *AnalyticsService) carePlanCards(ctx context.Context) []SummaryCard {
	plans, err := s.carePlanRepo.GetCarePlans(ctx, nil)
	if err != nil {
		return nil
	}

	dayStart := startOfDay(s.now())
	completedToday := 0
	for _, plan := range plans {
		if !plan.LastCompletedAt.IsZero() && !plan.LastCompletedAt.Before(dayStart) {
			completedToday++
		}
	}

	cards := []SummaryCard{
		{Title: "Care Plans Completed Today", Value: fmt.Sprintf("%d/%d", completedToday, len(plans))},
	}
	adherence := "—"
	if len(plans) > 0 {
		adherence = fmt.Sprintf("%d%%", int(math.Round(float64(completedToday)/float64(len(plans))*100)))
	}
	cards = append(cards, SummaryCard{Title: "Care Plan Adherence Today", Value: adherence})
	return cards
}

func (s *AnalyticsService) snapshot(ctx context.Context) ([]models.Resident, []models.RepositionPreference, []models.RepositionEvent, error) {
	residents, err := s.residentRepo.GetAllResidents(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	prefs, err := s.repositionRepo.GetAllPreferences(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	events, err := s.repositionRepo.GetAllEvents(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return residents, prefs, events, nil
}

func allergyConflict(allergies, allergens []string) bool {
	set := make(map[string]bool, len(allergies))
	for _, a := range allergies {
		set[strings.ToLower(strings.TrimSpace(a))] = true
	}
	for _, a := range allergens {
		if set[strings.ToLower(strings.TrimSpace(a))] {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
