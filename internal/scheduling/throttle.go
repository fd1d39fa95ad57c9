package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Throttle statuses for one resident's schedule, as classified by the tick.
const (
	StatusOverdue = "overdue"
	StatusDueSoon = "dueSoon"
	StatusOK      = "ok"
)

// DefaultDueSoonMins is the horizon within which an upcoming reposition
// counts as "due soon".
const DefaultDueSoonMins = 5

// DefaultReNotifyAfter is the minimum time between repeat notifications for
// the same resident/status pair.
const DefaultReNotifyAfter = 15 * time.Minute

// ThrottleState maps "<residentID>:<status>" to the epoch milliseconds a
// notification for that pair last fired. It is persisted between ticks in
// the key-value store under the mNotifyThrottle key.
type ThrottleState map[string]int64

// ThrottleKey builds the state key for a resident/status pair. Overdue and
// dueSoon are throttled independently, so a resident crossing from dueSoon
// into overdue is notified again right away.
func ThrottleKey(residentID primitive.ObjectID, status string) string {
	return residentID.Hex() + ":" + status
}

// TickNotification is a pending alert produced by one tick of the due scan.
type TickNotification struct {
	ResidentID      primitive.ObjectID
	ResidentName    string
	Status          string
	MinutesUntilDue int
	Title           string
	Body            string
}

// TickOptions tunes the scan. Zero values fall back to the defaults above.
type TickOptions struct {
	DueSoonMins   int
	ReNotifyAfter time.Duration
}

// Classify maps a due status onto a notification status.
func Classify(ds DueStatus, dueSoonMins int) string {
	if ds.Overdue {
		return StatusOverdue
	}
	if ds.MinutesUntilDue >= 0 && ds.MinutesUntilDue <= dueSoonMins {
		return StatusDueSoon
	}
	return StatusOK
}

// Tick runs one pass of the notification scan over a snapshot of residents,
// preferences and events. It returns the notifications that should fire now
// and the updated throttle state; the input state is not mutated. Residents
// without a preference, with an invalid interval, or in the ok state are
// skipped. Repeat notifications for the same resident/status pair within the
// cooldown are suppressed.
func Tick(residents []models.Resident, prefs []models.RepositionPreference, events []models.RepositionEvent, state ThrottleState, now time.Time, opts TickOptions) ([]TickNotification, ThrottleState) {
	if opts.DueSoonMins <= 0 {
		opts.DueSoonMins = DefaultDueSoonMins
	}
	if opts.ReNotifyAfter <= 0 {
		opts.ReNotifyAfter = DefaultReNotifyAfter
	}

	prefByResident := make(map[primitive.ObjectID]models.RepositionPreference, len(prefs))
	for _, p := range prefs {
		prefByResident[p.ResidentID] = p
	}

	latestByResident := make(map[primitive.ObjectID]time.Time)
	for _, ev := range events {
		if last, ok := latestByResident[ev.ResidentID]; !ok || ev.At.After(last) {
			latestByResident[ev.ResidentID] = ev.At
		}
	}

	updated := make(ThrottleState, len(state))
	for k, v := range state {
		updated[k] = v
	}

	// Residents are sorted by name so that notification order is stable
	// across ticks with identical snapshots.
	sorted := make([]models.Resident, len(residents))
	copy(sorted, residents)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var out []TickNotification
	nowMs := now.UnixMilli()
	for _, r := range sorted {
		pref, ok := prefByResident[r.ID]
		if !ok {
			continue
		}

		var last *time.Time
		if t, ok := latestByResident[r.ID]; ok {
			lt := t
			last = &lt
		}

		ds, err := ComputeDueStatus(last, pref.IntervalMins, now)
		if err != nil {
			continue
		}

		status := Classify(ds, opts.DueSoonMins)
		if status == StatusOK {
			continue
		}

		key := ThrottleKey(r.ID, status)
		if firedAt, ok := updated[key]; ok && nowMs-firedAt < opts.ReNotifyAfter.Milliseconds() {
			continue
		}
		updated[key] = nowMs

		out = append(out, buildNotification(r, status, ds.MinutesUntilDue))
	}

	return out, updated
}

func buildNotification(r models.Resident, status string, minutesUntilDue int) TickNotification {
	n := TickNotification{
		ResidentID:      r.ID,
		ResidentName:    r.Name,
		Status:          status,
		MinutesUntilDue: minutesUntilDue,
	}
	if status == StatusOverdue {
		n.Title = fmt.Sprintf("Reposition overdue: %s", r.Name)
		n.Body = fmt.Sprintf("Overdue by %d min", -minutesUntilDue)
	} else {
		n.Title = fmt.Sprintf("Reposition due soon: %s", r.Name)
		n.Body = fmt.Sprintf("Due in %d min", minutesUntilDue)
	}
	return n
}
