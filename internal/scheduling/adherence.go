package scheduling

import (
	"math"
	"sort"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OnTimeGraceMins is the tolerance added to the configured interval when
// judging whether a gap between two consecutive repositions was on time.
// Fixed pending a product decision on making it tenant-configurable.
const OnTimeGraceMins = 5

// DefaultTrendBuckets is the bucket count for trend sparklines: one bucket
// per hour of the standard 24h window.
const DefaultTrendBuckets = 24

// AdherenceRow is one resident's adherence figures over a window. Adherence
// is actual/expected occurrences capped at 1.0; OnTimePercent is the share of
// consecutive gaps within interval+grace, 100 when fewer than two events.
type AdherenceRow struct {
	ResidentID    primitive.ObjectID `json:"resident_id"`
	Name          string             `json:"name"`
	IntervalMins  int                `json:"interval_mins"`
	Expected      int                `json:"expected"`
	Actual        int                `json:"actual"`
	Adherence     float64            `json:"adherence"`
	OnTimePercent int                `json:"on_time_percent"`
}

// ComputeAdherenceReport builds a row for every resident that has a
// repositioning preference, including residents with zero in-window events
// (adherence 0). Rows are sorted ascending by adherence so the worst
// performers surface first. An empty or inverted window yields no rows.
//
// A preference whose resident is missing from the snapshot is skipped: the
// report tolerates partially inconsistent reads rather than failing whole.
func ComputeAdherenceReport(residents []models.Resident, prefs []models.RepositionPreference, events []models.RepositionEvent, windowStart, windowEnd time.Time) []AdherenceRow {
	if !windowEnd.After(windowStart) {
		return nil
	}

	byResident := make(map[primitive.ObjectID]models.Resident, len(residents))
	for _, r := range residents {
		byResident[r.ID] = r
	}

	inWindow := make(map[primitive.ObjectID][]time.Time)
	for _, ev := range events {
		if ev.At.Before(windowStart) || ev.At.After(windowEnd) {
			continue
		}
		inWindow[ev.ResidentID] = append(inWindow[ev.ResidentID], ev.At)
	}

	var rows []AdherenceRow
	for _, pref := range prefs {
		if pref.IntervalMins <= 0 {
			continue
		}
		resident, ok := byResident[pref.ResidentID]
		if !ok {
			continue
		}

		interval := time.Duration(pref.IntervalMins) * time.Minute
		expected := int(math.Ceil(float64(windowEnd.Sub(windowStart)) / float64(interval)))
		if expected < 1 {
			expected = 1
		}

		times := inWindow[pref.ResidentID]
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

		adherence := float64(len(times)) / float64(expected)
		if adherence > 1 {
			adherence = 1
		}

		rows = append(rows, AdherenceRow{
			ResidentID:    pref.ResidentID,
			Name:          resident.Name,
			IntervalMins:  pref.IntervalMins,
			Expected:      expected,
			Actual:        len(times),
			Adherence:     adherence,
			OnTimePercent: onTimePercent(times, pref.IntervalMins),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Adherence < rows[j].Adherence })
	return rows
}

// onTimePercent scores consecutive gaps between sorted event times. Fewer
// than two events is vacuously on time.
func onTimePercent(times []time.Time, intervalMins int) int {
	if len(times) < 2 {
		return 100
	}

	onTime := 0
	for i := 1; i < len(times); i++ {
		gapMins := int(math.Round(times[i].Sub(times[i-1]).Minutes()))
		if gapMins <= intervalMins+OnTimeGraceMins {
			onTime++
		}
	}
	return int(math.Round(float64(onTime) / float64(len(times)-1) * 100))
}

// ComputeTrend buckets a resident's in-window event times into fixed-width
// bins for sparkline rendering. Indices outside the range are
// clamped, so events landing exactly on windowEnd count in the last bucket.
func ComputeTrend(events []models.RepositionEvent, residentID primitive.ObjectID, windowStart, windowEnd time.Time, buckets int) []int {
	counts := make([]int, buckets)
	if buckets <= 0 || !windowEnd.After(windowStart) {
		return counts
	}

	width := windowEnd.Sub(windowStart) / time.Duration(buckets)
	if width <= 0 {
		return counts
	}

	for _, ev := range events {
		if ev.ResidentID != residentID || ev.At.Before(windowStart) || ev.At.After(windowEnd) {
			continue
		}
		idx := int(ev.At.Sub(windowStart) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= buckets {
			idx = buckets - 1
		}
		counts[idx]++
	}
	return counts
}
