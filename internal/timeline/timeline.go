// Package timeline supplies causally-ordered timestamps. Every instant it
// returns is >= all of an entity's predecessors and <= the simulation end,
// so downstream consumers never observe a child created before its parent.
package timeline

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Window is the simulation time range. End doubles as the run's "now".
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w Window) Valid() bool {
	return w.Start.Before(w.End)
}

// TemporalError reports that no valid instant exists: some predecessor
// already sits at or past the window end. The orchestrator treats it as a
// signal to resample that one entity's inputs, not to abort the run.
type TemporalError struct {
	Predecessor time.Time
	Window      Window
}

func (e *TemporalError) Error() string {
	return fmt.Sprintf("no instant after %s inside window [%s, %s]",
		e.Predecessor.Format(time.RFC3339), e.Window.Start.Format(time.RFC3339), e.Window.End.Format(time.RFC3339))
}

type Engine struct {
	Window Window
}

// After returns max(predecessors) nudged forward by a jitter uniform in
// (0, maxJitter], clamped into the window.
func (e Engine) After(r *rand.Rand, preds []time.Time, maxJitter time.Duration) (time.Time, error) {
	base := e.Window.Start
	for _, p := range preds {
		if p.After(base) {
			base = p
		}
	}
	if !base.Before(e.Window.End) {
		return time.Time{}, &TemporalError{Predecessor: base, Window: e.Window}
	}
	room := e.Window.End.Sub(base)
	if maxJitter <= 0 || maxJitter > room {
		maxJitter = room
	}
	jitter := time.Duration(1 + r.Int64N(int64(maxJitter)))
	return base.Add(jitter), nil
}

// Between returns a uniform instant in [lo, hi], clamped into the window.
func (e Engine) Between(r *rand.Rand, lo, hi time.Time) (time.Time, error) {
	if lo.Before(e.Window.Start) {
		lo = e.Window.Start
	}
	if hi.After(e.Window.End) {
		hi = e.Window.End
	}
	if hi.Before(lo) {
		return time.Time{}, &TemporalError{Predecessor: lo, Window: e.Window}
	}
	span := hi.Sub(lo)
	if span == 0 {
		return lo, nil
	}
	return lo.Add(time.Duration(r.Int64N(int64(span)))), nil
}

// WorkdayBetween behaves like Between but biases toward Mon-Wed (roughly
// 60% of creation activity) and lands inside business hours. The hour
// re-roll never moves the result outside [lo, hi], so causal ordering
// against the predecessors that produced lo is preserved.
func (e Engine) WorkdayBetween(r *rand.Rand, lo, hi time.Time) (time.Time, error) {
	if lo.Before(e.Window.Start) {
		lo = e.Window.Start
	}
	if hi.After(e.Window.End) {
		hi = e.Window.End
	}
	t, err := e.Between(r, lo, hi)
	if err != nil {
		return time.Time{}, err
	}
	if r.Float64() < 0.6 {
		offPeak := func(t time.Time) bool {
			wd := t.Weekday()
			return wd < time.Monday || wd > time.Wednesday
		}
		for i := 0; i < 8 && offPeak(t); i++ {
			t, err = e.Between(r, lo, hi)
			if err != nil {
				return time.Time{}, err
			}
		}
	}
	t = BusinessHours(r, t)
	if t.Before(lo) {
		t = lo
	}
	if t.After(hi) {
		t = hi
	}
	return t, nil
}

// BusinessHours moves an instant to 09:00-18:59 on its own day.
func BusinessHours(r *rand.Rand, t time.Time) time.Time {
	y, m, d := t.Date()
	hour := 9 + r.IntN(10)
	minute := r.IntN(60)
	return time.Date(y, m, d, hour, minute, 0, 0, t.Location())
}
