package scheduling

import (
	"testing"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newResident(name string) models.Resident {
	return models.Resident{ID: primitive.NewObjectID(), Name: name, Mobility: models.MobilityLow}
}

func prefFor(r models.Resident, intervalMins int) models.RepositionPreference {
	return models.RepositionPreference{
		ID:           primitive.NewObjectID(),
		ResidentID:   r.ID,
		IntervalMins: intervalMins,
	}
}

func eventAt(r models.Resident, at time.Time) models.RepositionEvent {
	return models.RepositionEvent{
		ID:         primitive.NewObjectID(),
		ResidentID: r.ID,
		At:         at,
	}
}

func TestAdherenceReportExpectedAndCap(t *testing.T) {
	// 24h window, 360 min interval: 4 expected; 3 actual gives 0.75.
	end := baseTime
	start := end.Add(-24 * time.Hour)
	r := newResident("Ama Mensah")

	events := []models.RepositionEvent{
		eventAt(r, start.Add(2*time.Hour)),
		eventAt(r, start.Add(8*time.Hour)),
		eventAt(r, start.Add(14*time.Hour)),
	}

	rows := ComputeAdherenceReport([]models.Resident{r}, []models.RepositionPreference{prefFor(r, 360)}, events, start, end)
	require.Len(t, rows, 1)

	assert.Equal(t, 4, rows[0].Expected)
	assert.Equal(t, 3, rows[0].Actual)
	assert.InDelta(t, 0.75, rows[0].Adherence, 1e-9)
}

func TestAdherenceNeverExceedsOne(t *testing.T) {
	end := baseTime
	start := end.Add(-24 * time.Hour)
	r := newResident("Kwesi Boateng")

	var events []models.RepositionEvent
	for i := 0; i < 50; i++ {
		events = append(events, eventAt(r, start.Add(time.Duration(i)*25*time.Minute)))
	}

	rows := ComputeAdherenceReport([]models.Resident{r}, []models.RepositionPreference{prefFor(r, 360)}, events, start, end)
	require.Len(t, rows, 1)
	assert.Equal(t, 1.0, rows[0].Adherence)
}

func TestAdherenceMonotonicUnderMoreEvents(t *testing.T) {
	end := baseTime
	start := end.Add(-24 * time.Hour)
	r := newResident("Ama Mensah")
	prefs := []models.RepositionPreference{prefFor(r, 120)}

	var events []models.RepositionEvent
	prev := 0.0
	for i := 0; i < 20; i++ {
		events = append(events, eventAt(r, start.Add(time.Duration(i)*70*time.Minute)))
		rows := ComputeAdherenceReport([]models.Resident{r}, prefs, events, start, end)
		require.Len(t, rows, 1)
		assert.GreaterOrEqual(t, rows[0].Adherence, prev)
		assert.LessOrEqual(t, rows[0].Adherence, 1.0)
		prev = rows[0].Adherence
	}
}

func TestAdherenceZeroEventsStillProducesRow(t *testing.T) {
	end := baseTime
	start := end.Add(-24 * time.Hour)
	r := newResident("Ama Mensah")

	rows := ComputeAdherenceReport([]models.Resident{r}, []models.RepositionPreference{prefFor(r, 120)}, nil, start, end)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].Adherence)
	assert.Equal(t, 0, rows[0].Actual)
	assert.Equal(t, 100, rows[0].OnTimePercent)
}

func TestAdherenceSortsWorstFirst(t *testing.T) {
	end := baseTime
	start := end.Add(-24 * time.Hour)
	good := newResident("Good")
	bad := newResident("Bad")

	events := []models.RepositionEvent{
		eventAt(good, start.Add(2*time.Hour)),
		eventAt(good, start.Add(8*time.Hour)),
		eventAt(good, start.Add(14*time.Hour)),
		eventAt(good, start.Add(20*time.Hour)),
		eventAt(bad, start.Add(3*time.Hour)),
	}
	prefs := []models.RepositionPreference{prefFor(good, 360), prefFor(bad, 360)}

	rows := ComputeAdherenceReport([]models.Resident{good, bad}, prefs, events, start, end)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bad", rows[0].Name)
	assert.Equal(t, "Good", rows[1].Name)
}

func TestAdherenceEmptyOrInvertedWindow(t *testing.T) {
	r := newResident("Ama Mensah")
	prefs := []models.RepositionPreference{prefFor(r, 60)}

	assert.Empty(t, ComputeAdherenceReport([]models.Resident{r}, prefs, nil, baseTime, baseTime))
	assert.Empty(t, ComputeAdherenceReport([]models.Resident{r}, prefs, nil, baseTime, baseTime.Add(-time.Hour)))
}

func TestAdherenceSkipsPrefWithoutResident(t *testing.T) {
	end := baseTime
	start := end.Add(-24 * time.Hour)
	orphan := models.RepositionPreference{
		ID:           primitive.NewObjectID(),
		ResidentID:   primitive.NewObjectID(),
		IntervalMins: 60,
	}

	rows := ComputeAdherenceReport(nil, []models.RepositionPreference{orphan}, nil, start, end)
	assert.Empty(t, rows)
}

func TestOnTimePercentSingleEventIsVacuouslyOnTime(t *testing.T) {
	end := baseTime
	start := end.Add(-24 * time.Hour)
	r := newResident("Ama Mensah")

	rows := ComputeAdherenceReport(
		[]models.Resident{r},
		[]models.RepositionPreference{prefFor(r, 60)},
		[]models.RepositionEvent{eventAt(r, start.Add(time.Hour))},
		start, end,
	)
	require.Len(t, rows, 1)
	assert.Equal(t, 100, rows[0].OnTimePercent)
}

func TestOnTimePercentGapBeyondGrace(t *testing.T) {
	// Two events 70 minutes apart with a 60 minute interval: 70 > 65, late.
	end := baseTime
	start := end.Add(-24 * time.Hour)
	r := newResident("Ama Mensah")

	events := []models.RepositionEvent{
		eventAt(r, start.Add(time.Hour)),
		eventAt(r, start.Add(time.Hour+70*time.Minute)),
	}

	rows := ComputeAdherenceReport([]models.Resident{r}, []models.RepositionPreference{prefFor(r, 60)}, events, start, end)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].OnTimePercent)
}

func TestOnTimePercentGapWithinGrace(t *testing.T) {
	end := baseTime
	start := end.Add(-24 * time.Hour)
	r := newResident("Ama Mensah")

	events := []models.RepositionEvent{
		eventAt(r, start.Add(time.Hour)),
		eventAt(r, start.Add(time.Hour+65*time.Minute)),
		eventAt(r, start.Add(time.Hour+135*time.Minute)),
	}

	rows := ComputeAdherenceReport([]models.Resident{r}, []models.RepositionPreference{prefFor(r, 60)}, events, start, end)
	require.Len(t, rows, 1)
	// First gap 65 (on time at the grace boundary), second gap 70 (late).
	assert.Equal(t, 50, rows[0].OnTimePercent)
}

func TestComputeTrendBucketsAndClamping(t *testing.T) {
	end := baseTime
	start := end.Add(-24 * time.Hour)
	r := newResident("Ama Mensah")

	events := []models.RepositionEvent{
		eventAt(r, start),                    // bucket 0
		eventAt(r, start.Add(30*time.Minute)), // bucket 0
		eventAt(r, start.Add(90*time.Minute)), // bucket 1
		eventAt(r, end),                      // clamped into bucket 23
		eventAt(r, start.Add(-time.Hour)),    // outside the window
	}

	counts := ComputeTrend(events, r.ID, start, end, DefaultTrendBuckets)
	require.Len(t, counts, 24)
	assert.Equal(t, 2, counts[0])
	assert.Equal(t, 1, counts[1])
	assert.Equal(t, 1, counts[23])

	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 4, total)
}

func TestComputeTrendIgnoresOtherResidents(t *testing.T) {
	end := baseTime
	start := end.Add(-24 * time.Hour)
	a := newResident("A")
	b := newResident("B")

	events := []models.RepositionEvent{
		eventAt(a, start.Add(time.Hour)),
		eventAt(b, start.Add(time.Hour)),
	}

	counts := ComputeTrend(events, a.ID, start, end, DefaultTrendBuckets)
	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 1, total)
}
