// Package content produces the prose attached to generated entities: task
// names, task descriptions, and comment bodies. A Provider may be backed by
// anything (including a remote text generator); the run only depends on it
// for prose quality, never for correctness, because every call path ends in
// the deterministic template provider.
package content

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"
)

type Kind string

const (
	TaskName        Kind = "task_name"
	TaskDescription Kind = "task_description"
	CommentBody     Kind = "comment"
)

// Request carries the structured context a provider needs to phrase a
// string that fits its surroundings.
type Request struct {
	Kind           Kind
	TeamType       string
	WorkflowType   string
	ProjectName    string
	ParentTaskName string
}

type Provider interface {
	GenerateText(ctx context.Context, req Request) (string, error)
}

// UnavailableError wraps a provider failure; it is always recovered locally
// by the fallback path and never escalates to a run failure.
type UnavailableError struct {
	Attempts int
	Last     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("content provider unavailable after %d attempts: %v", e.Attempts, e.Last)
}

func (e *UnavailableError) Unwrap() error { return e.Last }

// Expand fills {placeholder} slots in a pattern from the word pools.
// Unknown placeholders are left in place so a bad pattern is visible in the
// output rather than silently dropped.
func Expand(r *rand.Rand, pattern string, pools map[string][]string) string {
	keys := make([]string, 0, len(pools))
	for k := range pools {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := pattern
	for _, k := range keys {
		slot := "{" + k + "}"
		for strings.Contains(out, slot) {
			choices := pools[k]
			out = strings.Replace(out, slot, choices[r.IntN(len(choices))], 1)
		}
	}
	return out
}

// Retrying wraps a primary provider with a bounded retry (exponential
// backoff) and a deterministic fallback. GenerateText never returns an
// error: on retry exhaustion the fallback answer is used and the failure is
// reported through OnUnavailable if set.
type Retrying struct {
	Primary       Provider
	Fallback      Provider
	Attempts      int
	Backoff       time.Duration
	Timeout       time.Duration
	OnUnavailable func(err *UnavailableError)
}

func (p *Retrying) GenerateText(ctx context.Context, req Request) (string, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var last error
loop:
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if err := ctx.Err(); err != nil {
				last = err
				break loop
			}
			if p.Backoff > 0 {
				select {
				case <-time.After(p.Backoff << (i - 1)):
				case <-ctx.Done():
					last = ctx.Err()
					break loop
				}
			}
		}
		callCtx := ctx
		cancel := func() {}
		if p.Timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		}
		text, err := p.Primary.GenerateText(callCtx, req)
		cancel()
		if err == nil {
			return text, nil
		}
		last = err
	}
	if p.OnUnavailable != nil {
		p.OnUnavailable(&UnavailableError{Attempts: attempts, Last: last})
	}
	return p.Fallback.GenerateText(ctx, req)
}
