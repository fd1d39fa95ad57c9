package services

import (
	"testing"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"q2h", 2 * time.Hour},
		{"Q2H", 2 * time.Hour},
		{" q30m ", 30 * time.Minute},
		{"q1h", time.Hour},
		{"q90m", 90 * time.Minute},
	}
	for _, tt := range tests {
		got, err := ParseFrequency(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseFrequencyRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "2h", "q", "qh", "q-2h", "q2d", "every 2 hours", "q0h"} {
		_, err := ParseFrequency(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCarePlanDueInfo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := &CarePlanService{now: func() time.Time { return now }}

	plan := func(freq string, lastAgo time.Duration) models.CarePlan {
		p := models.CarePlan{Frequency: freq}
		if lastAgo >= 0 {
			p.LastCompletedAt = now.Add(-lastAgo)
		}
		return p
	}

	// Completed recently: neither overdue nor due soon.
	info := s.dueInfo(plan("q2h", 30*time.Minute))
	assert.False(t, info.Overdue)
	assert.False(t, info.DueSoon)

	// Next due inside the 15 minute horizon.
	info = s.dueInfo(plan("q2h", 110*time.Minute))
	assert.False(t, info.Overdue)
	assert.True(t, info.DueSoon)

	// Past due.
	info = s.dueInfo(plan("q2h", 3*time.Hour))
	assert.True(t, info.Overdue)

	// Never completed counts as due now.
	info = s.dueInfo(plan("q2h", -1))
	assert.True(t, info.Overdue)

	// Unparseable frequency yields no badges.
	info = s.dueInfo(plan("weekly", 3*time.Hour))
	assert.False(t, info.Overdue)
	assert.False(t, info.DueSoon)
}
