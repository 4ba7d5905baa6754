// Package sink persists a finished graph. A sink receives the complete
// dataset in one call and either commits all of it or none of it.
package sink

import (
	"context"
	"fmt"

	"workseed/internal/graph"
)

type Sink interface {
	Persist(ctx context.Context, g *graph.Graph) error
}

// CommitError reports a failed write. Nothing has been persisted when it is
// returned; the transaction was rolled back.
type CommitError struct {
	Table string
	Err   error
}

func (e *CommitError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("persist: %v", e.Err)
	}
	return fmt.Sprintf("persist %s: %v", e.Table, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
