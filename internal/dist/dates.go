package dist

import (
	"math"
	"math/rand/v2"
	"time"
)

// DueBucket classifies a task's sampled due date.
type DueBucket int

const (
	DueWithinWeek DueBucket = iota
	DueWithinMonth
	DueWithinQuarter
	DueNone
	DueOverdue
)

func (b DueBucket) String() string {
	switch b {
	case DueWithinWeek:
		return "within_1_week"
	case DueWithinMonth:
		return "within_1_month"
	case DueWithinQuarter:
		return "within_3_months"
	case DueNone:
		return "no_due_date"
	case DueOverdue:
		return "overdue"
	}
	return "unknown"
}

// DueDateWeights carries the categorical bucket probabilities.
type DueDateWeights struct {
	WithinWeek    float64 `yaml:"within_1_week"`
	WithinMonth   float64 `yaml:"within_1_month"`
	WithinQuarter float64 `yaml:"within_3_months"`
	None          float64 `yaml:"no_due_date"`
	Overdue       float64 `yaml:"overdue"`
}

func (w DueDateWeights) Sum() float64 {
	return w.WithinWeek + w.WithinMonth + w.WithinQuarter + w.None + w.Overdue
}

// SampleDueBucket draws the bucket only; resolution to a concrete date is
// SampleDueDate's job. Split out so conformance tests can hit the
// categorical directly.
func SampleDueBucket(r *rand.Rand, w DueDateWeights) DueBucket {
	buckets := []DueBucket{DueWithinWeek, DueWithinMonth, DueWithinQuarter, DueNone, DueOverdue}
	weights := []float64{w.WithinWeek, w.WithinMonth, w.WithinQuarter, w.None, w.Overdue}
	return ChooseWeighted(r, buckets, weights)
}

// SampleDueDate resolves a due date for a task created at createdAt. The
// "within" buckets pick a uniform day offset inside the bucket range;
// overdue picks 1-30 days in the past. Weekend avoidance applies only to
// dates drawn from the non-overdue buckets; overdue and absent due dates are
// outside that denominator.
func SampleDueDate(r *rand.Rand, createdAt, now time.Time, w DueDateWeights, weekendAvoidance float64) (*time.Time, DueBucket) {
	bucket := SampleDueBucket(r, w)
	var days int
	switch bucket {
	case DueWithinWeek:
		days = IntBetween(r, 1, 7)
	case DueWithinMonth:
		days = IntBetween(r, 8, 30)
	case DueWithinQuarter:
		days = IntBetween(r, 31, 90)
	case DueNone:
		return nil, bucket
	case DueOverdue:
		days = -IntBetween(r, 1, 30)
	}
	due := createdAt.AddDate(0, 0, days)
	if bucket != DueOverdue {
		due = AvoidWeekend(r, due, weekendAvoidance)
		// Clamp after the weekend shift so the due date can neither pass the
		// simulation end nor slip behind its own creation day.
		if due.After(now) {
			due = now
		}
	}
	due = truncateDay(due)
	return &due, bucket
}

// AvoidWeekend shifts a weekend date to the following Monday with the given
// probability; the remainder stays put, modeling real weekend deadlines.
func AvoidWeekend(r *rand.Rand, d time.Time, probability float64) time.Time {
	if r.Float64() > probability {
		return d
	}
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

// CompletionProbability adjusts a base completion rate by task age relative
// to its due date: tasks well past due trend completed, freshly created
// tasks trend open.
func CompletionProbability(base float64, createdAt time.Time, due *time.Time, now time.Time) float64 {
	p := base
	age := now.Sub(createdAt)
	if age < 72*time.Hour {
		p *= 0.6
	}
	if due != nil && now.Sub(*due) > 7*24*time.Hour {
		p *= 1.15
	}
	return math.Min(p, 0.98)
}

// SampleCompletionTime draws a cycle time from a log-normal (median around
// 4-5 days, long tail) and clamps it between creation and min(due, now).
func SampleCompletionTime(r *rand.Rand, createdAt time.Time, due *time.Time, now time.Time) time.Time {
	days := math.Exp(r.NormFloat64()*0.8 + 1.5)
	if days < 1 {
		days = 1
	}
	if days > 14 {
		days = 14
	}
	completed := createdAt.Add(time.Duration(days * 24 * float64(time.Hour)))
	upper := now
	if due != nil && due.After(createdAt) && due.Before(now) {
		upper = *due
	}
	if !completed.Before(upper) {
		span := upper.Sub(createdAt)
		if span <= 0 {
			return createdAt
		}
		completed = createdAt.Add(time.Duration(r.Int64N(int64(span))))
	}
	return completed
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
