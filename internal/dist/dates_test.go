package dist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWeights = DueDateWeights{
	WithinWeek:    0.25,
	WithinMonth:   0.40,
	WithinQuarter: 0.20,
	None:          0.10,
	Overdue:       0.05,
}

func TestSampleDueBucketProportions(t *testing.T) {
	r := newRand(10)
	counts := map[DueBucket]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		counts[SampleDueBucket(r, testWeights)]++
	}
	assert.InDelta(t, 0.25, float64(counts[DueWithinWeek])/n, 0.02)
	assert.InDelta(t, 0.40, float64(counts[DueWithinMonth])/n, 0.02)
	assert.InDelta(t, 0.20, float64(counts[DueWithinQuarter])/n, 0.02)
	assert.InDelta(t, 0.10, float64(counts[DueNone])/n, 0.02)
	assert.InDelta(t, 0.05, float64(counts[DueOverdue])/n, 0.02)
}

func TestSampleDueDateBucketSemantics(t *testing.T) {
	r := newRand(11)
	created := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5000; i++ {
		due, bucket := SampleDueDate(r, created, now, testWeights, 0.85)
		switch bucket {
		case DueNone:
			require.Nil(t, due)
		case DueOverdue:
			require.NotNil(t, due)
			require.True(t, due.Before(created), "overdue due date %s should precede creation %s", due, created)
		default:
			require.NotNil(t, due)
			require.False(t, due.After(now), "non-overdue due date %s past simulation end", due)
		}
	}
}

func TestSampleDueDateWeekendAvoidance(t *testing.T) {
	r := newRand(12)
	created := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	weekend, total := 0, 0
	for i := 0; i < 20000; i++ {
		due, bucket := SampleDueDate(r, created, now, testWeights, 1.0)
		if due == nil || bucket == DueOverdue {
			continue
		}
		total++
		if wd := due.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekend++
		}
	}
	require.Positive(t, total)
	assert.Zero(t, weekend, "full avoidance must leave no weekend due dates")
}

func TestSampleDueDatePartialWeekendAvoidance(t *testing.T) {
	r := newRand(15)
	created := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	weekend, total := 0, 0
	for i := 0; i < 20000; i++ {
		due, bucket := SampleDueDate(r, created, now, testWeights, 0.85)
		if due == nil || bucket == DueOverdue {
			continue
		}
		total++
		if wd := due.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekend++
		}
	}
	require.Positive(t, total)
	// 15% of weekend draws keep their day, so a small residual weekend
	// fraction must survive. Uniform days put ~2/7 on weekends, leaving
	// roughly 0.15 * 2/7 after the shift.
	frac := float64(weekend) / float64(total)
	assert.Greater(t, frac, 0.0, "partial avoidance must leave some weekend due dates")
	assert.Less(t, frac, 0.1, "weekend fraction %.3f too high for 0.85 avoidance", frac)
}

func TestAvoidWeekendShiftsToMonday(t *testing.T) {
	r := newRand(13)
	sat := time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)
	mon := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, mon, AvoidWeekend(r, sat, 1.0))
	assert.Equal(t, mon, AvoidWeekend(r, sun, 1.0))
	assert.Equal(t, mon, AvoidWeekend(r, mon, 1.0))
	assert.Equal(t, sat, AvoidWeekend(r, sat, 0.0))
}

func TestCompletionProbabilityModifiers(t *testing.T) {
	now := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	fresh := now.Add(-24 * time.Hour)
	old := now.AddDate(0, 0, -60)
	pastDue := now.AddDate(0, 0, -30)

	assert.InDelta(t, 0.5*0.6, CompletionProbability(0.5, fresh, nil, now), 1e-9)
	assert.InDelta(t, 0.5, CompletionProbability(0.5, old, nil, now), 1e-9)
	assert.InDelta(t, 0.5*1.15, CompletionProbability(0.5, old, &pastDue, now), 1e-9)
	assert.Equal(t, 0.98, CompletionProbability(0.95, old, &pastDue, now))
}

func TestSampleCompletionTimeStaysInRange(t *testing.T) {
	r := newRand(14)
	created := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
	due := created.AddDate(0, 0, 5)
	for i := 0; i < 5000; i++ {
		done := SampleCompletionTime(r, created, &due, now)
		require.False(t, done.Before(created), "completion %s precedes creation", done)
		require.False(t, done.After(due), "completion %s past due cap %s", done, due)
	}
	for i := 0; i < 5000; i++ {
		done := SampleCompletionTime(r, created, nil, now)
		require.False(t, done.Before(created))
		require.False(t, done.After(now))
	}
}
