package scheduling

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidInterval is returned when a repositioning interval is zero or
// negative. Callers validate intervals before persisting a preference, so
// hitting this at compute time means bad data got past the boundary.
var ErrInvalidInterval = errors.New("reposition interval must be a positive number of minutes")

// DueStatus describes where one resident stands against their repositioning
// schedule at a given instant.
type DueStatus struct {
	Overdue         bool       `json:"overdue"`
	MinutesUntilDue int        `json:"minutes_until_due"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
}

// ComputeDueStatus computes how far a resident is from their next required
// repositioning. A resident with a configured interval but no completion
// history is immediately due rather than unscheduled, so a nil
// lastCompletedAt yields an overdue status with zero minutes remaining.
//
// The caller supplies now, which keeps the function deterministic and lets
// tests pin the clock.
func ComputeDueStatus(lastCompletedAt *time.Time, intervalMins int, now time.Time) (DueStatus, error) {
	if intervalMins <= 0 {
		return DueStatus{}, ErrInvalidInterval
	}

	if lastCompletedAt == nil {
		return DueStatus{Overdue: true, MinutesUntilDue: 0}, nil
	}

	nextDue := lastCompletedAt.Add(time.Duration(intervalMins) * time.Minute)
	minutes := int(math.Round(nextDue.Sub(now).Minutes()))

	return DueStatus{
		Overdue:         minutes < 0,
		MinutesUntilDue: minutes,
		LastCompletedAt: lastCompletedAt,
	}, nil
}
