package scheduling

import (
	"testing"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tickOnce(t *testing.T, r models.Resident, pref models.RepositionPreference, events []models.RepositionEvent, state ThrottleState, now time.Time) ([]TickNotification, ThrottleState) {
	t.Helper()
	return Tick([]models.Resident{r}, []models.RepositionPreference{pref}, events, state, now, TickOptions{})
}

func TestTickEmitsForOverdueResident(t *testing.T) {
	r := newResident("Ama Mensah")
	pref := prefFor(r, 120)
	events := []models.RepositionEvent{eventAt(r, baseTime.Add(-150*time.Minute))}

	notes, state := tickOnce(t, r, pref, events, nil, baseTime)
	require.Len(t, notes, 1)

	assert.Equal(t, StatusOverdue, notes[0].Status)
	assert.Equal(t, -30, notes[0].MinutesUntilDue)
	assert.Equal(t, "Reposition overdue: Ama Mensah", notes[0].Title)
	assert.Equal(t, "Overdue by 30 min", notes[0].Body)
	assert.Contains(t, state, ThrottleKey(r.ID, StatusOverdue))
}

func TestTickEmitsForDueSoonResident(t *testing.T) {
	r := newResident("Kwesi Boateng")
	pref := prefFor(r, 120)
	events := []models.RepositionEvent{eventAt(r, baseTime.Add(-117*time.Minute))}

	notes, _ := tickOnce(t, r, pref, events, nil, baseTime)
	require.Len(t, notes, 1)
	assert.Equal(t, StatusDueSoon, notes[0].Status)
	assert.Equal(t, 3, notes[0].MinutesUntilDue)
	assert.Equal(t, "Due in 3 min", notes[0].Body)
}

func TestTickSkipsResidentNotYetDue(t *testing.T) {
	r := newResident("Ama Mensah")
	pref := prefFor(r, 120)
	events := []models.RepositionEvent{eventAt(r, baseTime.Add(-30*time.Minute))}

	notes, state := tickOnce(t, r, pref, events, nil, baseTime)
	assert.Empty(t, notes)
	assert.Empty(t, state)
}

func TestTickSkipsResidentWithoutPreference(t *testing.T) {
	r := newResident("Ama Mensah")
	notes, _ := Tick([]models.Resident{r}, nil, nil, nil, baseTime, TickOptions{})
	assert.Empty(t, notes)
}

func TestTickThrottlesRepeatNotifications(t *testing.T) {
	r := newResident("Ama Mensah")
	pref := prefFor(r, 120)
	events := []models.RepositionEvent{eventAt(r, baseTime.Add(-150*time.Minute))}

	notes, state := tickOnce(t, r, pref, events, nil, baseTime)
	require.Len(t, notes, 1)

	// Every tick inside the cooldown stays quiet.
	for _, offset := range []time.Duration{time.Minute, 5 * time.Minute, 14 * time.Minute} {
		again, next := tickOnce(t, r, pref, events, state, baseTime.Add(offset))
		assert.Empty(t, again, "offset %s", offset)
		state = next
	}

	// Past the cooldown the notification fires again.
	later, _ := tickOnce(t, r, pref, events, state, baseTime.Add(15*time.Minute))
	require.Len(t, later, 1)
}

func TestTickStatusesThrottleIndependently(t *testing.T) {
	r := newResident("Ama Mensah")
	pref := prefFor(r, 120)

	// Due in 2 minutes: emits dueSoon.
	events := []models.RepositionEvent{eventAt(r, baseTime.Add(-118*time.Minute))}
	notes, state := tickOnce(t, r, pref, events, nil, baseTime)
	require.Len(t, notes, 1)
	require.Equal(t, StatusDueSoon, notes[0].Status)

	// Five minutes later the resident has crossed into overdue. A different
	// throttle key applies, so the alert fires despite the recent dueSoon.
	notes, state = tickOnce(t, r, pref, events, state, baseTime.Add(5*time.Minute))
	require.Len(t, notes, 1)
	assert.Equal(t, StatusOverdue, notes[0].Status)

	assert.Contains(t, state, ThrottleKey(r.ID, StatusDueSoon))
	assert.Contains(t, state, ThrottleKey(r.ID, StatusOverdue))
}

func TestTickDoesNotMutateInputState(t *testing.T) {
	r := newResident("Ama Mensah")
	pref := prefFor(r, 120)
	events := []models.RepositionEvent{eventAt(r, baseTime.Add(-150*time.Minute))}

	original := ThrottleState{"other:overdue": 42}
	_, updated := tickOnce(t, r, pref, events, original, baseTime)

	assert.Equal(t, ThrottleState{"other:overdue": 42}, original)
	assert.Len(t, updated, 2)
}

func TestTickNoHistoryNotifiesImmediately(t *testing.T) {
	r := newResident("Ama Mensah")
	pref := prefFor(r, 60)

	notes, _ := tickOnce(t, r, pref, nil, nil, baseTime)
	require.Len(t, notes, 1)
	assert.Equal(t, StatusOverdue, notes[0].Status)
	assert.Equal(t, 0, notes[0].MinutesUntilDue)
}

func TestTickSkipsInvalidInterval(t *testing.T) {
	r := newResident("Ama Mensah")
	pref := prefFor(r, 0)

	notes, _ := tickOnce(t, r, pref, nil, nil, baseTime)
	assert.Empty(t, notes)
}

func TestTickOrdersNotificationsByName(t *testing.T) {
	a := newResident("Abena")
	b := newResident("Yaw")
	prefs := []models.RepositionPreference{prefFor(a, 60), prefFor(b, 60)}

	notes, _ := Tick([]models.Resident{b, a}, prefs, nil, nil, baseTime, TickOptions{})
	require.Len(t, notes, 2)
	assert.Equal(t, "Abena", notes[0].ResidentName)
	assert.Equal(t, "Yaw", notes[1].ResidentName)
}
