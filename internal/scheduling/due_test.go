package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestComputeDueStatusRejectsBadInterval(t *testing.T) {
	for _, interval := range []int{0, -1, -120} {
		_, err := ComputeDueStatus(nil, interval, baseTime)
		assert.ErrorIs(t, err, ErrInvalidInterval, "interval %d", interval)
	}
}

func TestComputeDueStatusNoHistoryIsImmediatelyDue(t *testing.T) {
	ds, err := ComputeDueStatus(nil, 60, baseTime)
	require.NoError(t, err)

	assert.True(t, ds.Overdue)
	assert.Equal(t, 0, ds.MinutesUntilDue)
	assert.Nil(t, ds.LastCompletedAt)
}

func TestComputeDueStatusOverdueScenario(t *testing.T) {
	// Interval 120, last event 150 minutes ago: 30 minutes overdue.
	last := baseTime.Add(-150 * time.Minute)
	ds, err := ComputeDueStatus(&last, 120, baseTime)
	require.NoError(t, err)

	assert.True(t, ds.Overdue)
	assert.Equal(t, -30, ds.MinutesUntilDue)
	require.NotNil(t, ds.LastCompletedAt)
	assert.Equal(t, last, *ds.LastCompletedAt)
}

func TestComputeDueStatusNotYetDue(t *testing.T) {
	last := baseTime.Add(-45 * time.Minute)
	ds, err := ComputeDueStatus(&last, 120, baseTime)
	require.NoError(t, err)

	assert.False(t, ds.Overdue)
	assert.Equal(t, 75, ds.MinutesUntilDue)
}

func TestComputeDueStatusOverdueMatchesSign(t *testing.T) {
	for offset := -300; offset <= 300; offset += 7 {
		last := baseTime.Add(time.Duration(offset) * time.Minute)
		ds, err := ComputeDueStatus(&last, 90, baseTime)
		require.NoError(t, err)
		assert.Equal(t, ds.MinutesUntilDue < 0, ds.Overdue, "offset %d", offset)
	}
}

func TestComputeDueStatusIsDeterministic(t *testing.T) {
	last := baseTime.Add(-73 * time.Minute)
	first, err := ComputeDueStatus(&last, 60, baseTime)
	require.NoError(t, err)
	second, err := ComputeDueStatus(&last, 60, baseTime)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeDueStatusRoundsToNearestMinute(t *testing.T) {
	// 29.4 minutes until due rounds down to 29.
	last := baseTime.Add(-30*time.Minute - 36*time.Second)
	ds, err := ComputeDueStatus(&last, 60, baseTime)
	require.NoError(t, err)
	assert.Equal(t, 29, ds.MinutesUntilDue)

	// 29.6 minutes until due rounds up to 30.
	last = baseTime.Add(-30*time.Minute - 24*time.Second)
	ds, err = ComputeDueStatus(&last, 60, baseTime)
	require.NoError(t, err)
	assert.Equal(t, 30, ds.MinutesUntilDue)
}
