// Package gen is the generation orchestration engine. It walks the entity
// kinds in a fixed topological order, invoking one factory per kind with
// resolved parent references, and accumulates the result in an in-memory
// graph. Runs are deterministic for a fixed seed: every factory owns named
// random sub-streams and within a kind instances are produced sequentially.
package gen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"workseed/internal/config"
	"workseed/internal/content"
	"workseed/internal/dist"
	"workseed/internal/graph"
	"workseed/internal/randstream"
	"workseed/internal/refdata"
	"workseed/internal/timeline"
)

type Generator struct {
	cfg      *config.Config
	ref      refdata.Provider
	provider content.Provider
	tl       timeline.Engine
	ns       uuid.UUID
	seq      map[string]int
	s        streams

	g *graph.Graph

	// resolved parent context, filled as kinds are produced
	usersByDept   map[string][]string
	membersByTeam map[string][]string
	seniorByTeam  map[string][]bool
	leadByTeam    map[string]string
	sectionsByPrj map[string][]string
	tasksByPrj    map[string][]string
	optionsByFld  map[string][]string
	fieldByName   map[string]string
	admins        []string
}

// streams are the purpose-keyed random sources. Each is requested exactly
// once from the provider and owned by one factory or sampler for the run.
type streams struct {
	org, team, user, membership         *rand.Rand
	field, tag, project, section        *rand.Rand
	task, taskDue, taskAssign, taskDone *rand.Rand
	subtask, dependency, comment        *rand.Rand
	fieldValue, taskTag, attachment     *rand.Rand
	portfolio, template                 *rand.Rand
}

// Options carries the external collaborators. Zero values select the
// shipped static tables and the deterministic template provider.
type Options struct {
	Ref     refdata.Provider
	Content content.Provider
}

func New(cfg *config.Config, opts Options) *Generator {
	p := randstream.NewProvider(cfg.Seed)
	g := &Generator{
		cfg: cfg,
		ref: opts.Ref,
		tl:  timeline.Engine{Window: cfg.Window()},
		ns:  uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("workseed/%d", cfg.Seed))),
		seq: map[string]int{},
		s: streams{
			org:        p.Stream("org"),
			team:       p.Stream("team"),
			user:       p.Stream("user"),
			membership: p.Stream("team.membership"),
			field:      p.Stream("custom_field"),
			tag:        p.Stream("tag"),
			project:    p.Stream("project"),
			section:    p.Stream("section"),
			task:       p.Stream("task"),
			taskDue:    p.Stream("task.due_date"),
			taskAssign: p.Stream("task.assignment"),
			taskDone:   p.Stream("task.completion"),
			subtask:    p.Stream("subtask"),
			dependency: p.Stream("task.dependency"),
			comment:    p.Stream("comment"),
			fieldValue: p.Stream("custom_field.value"),
			taskTag:    p.Stream("task.tag"),
			attachment: p.Stream("attachment"),
			portfolio:  p.Stream("portfolio"),
			template:   p.Stream("content.template"),
		},
	}
	if g.ref == nil {
		g.ref = refdata.Static{}
	}
	fallback := content.NewTemplate(g.s.template)
	if opts.Content != nil {
		// External providers always sit behind the bounded retry and the
		// deterministic fallback, so prose generation can fail without
		// failing the run.
		g.provider = &content.Retrying{
			Primary:  opts.Content,
			Fallback: fallback,
			Attempts: cfg.Retry.Content,
		}
	} else {
		g.provider = fallback
	}
	return g
}

// text fetches prose for an entity; the provider chain never fails the run.
func (g *Generator) text(ctx context.Context, req content.Request) string {
	s, err := g.provider.GenerateText(ctx, req)
	if err != nil {
		return ""
	}
	return s
}

// RetryExhaustedError escalates a per-entity temporal retry that ran out of
// attempts; it carries enough context to replay the failure from the seed.
type RetryExhaustedError struct {
	Kind     string
	Attempts int
	Last     error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("gen: %s: giving up after %d attempts: %v", e.Kind, e.Attempts, e.Last)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Last }

// withRetry resamples one entity's inputs on temporal failure, up to the
// configured cap. Non-temporal errors abort immediately.
func (g *Generator) withRetry(kind string, fn func() error) error {
	var last error
	for i := 0; i < g.cfg.Retry.Entity; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		var te *timeline.TemporalError
		if !errors.As(err, &te) {
			return err
		}
		last = err
	}
	return &RetryExhaustedError{Kind: kind, Attempts: g.cfg.Retry.Entity, Last: last}
}

// id derives a stable identifier for the next instance of a kind.
// Identifiers are a pure function of (seed, kind, ordinal), so a run's IDs
// are reproducible independently of how much randomness factories consumed.
func (g *Generator) id(kind string) string {
	n := g.seq[kind]
	g.seq[kind]++
	return uuid.NewSHA1(g.ns, []byte(fmt.Sprintf("%s/%d", kind, n))).String()
}

func (g *Generator) now() time.Time { return g.tl.Window.End }

// countIn samples an instance count around the middle of a configured range,
// clipped to both the tolerance band and the range itself.
func (g *Generator) countIn(r *rand.Rand, rng config.Range) int {
	target := (rng.Min + rng.Max) / 2
	n := dist.CountAround(r, target, g.cfg.Volumes.CountTolerance)
	if n < rng.Min {
		n = rng.Min
	}
	if n > rng.Max {
		n = rng.Max
	}
	return n
}

// Generate runs the full topological pass and returns the populated graph.
// The configuration is validated before any entity is generated.
func (g *Generator) Generate(ctx context.Context) (*graph.Graph, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	g.g = graph.New()
	g.usersByDept = map[string][]string{}
	g.membersByTeam = map[string][]string{}
	g.seniorByTeam = map[string][]bool{}
	g.leadByTeam = map[string]string{}
	g.sectionsByPrj = map[string][]string{}
	g.tasksByPrj = map[string][]string{}
	g.optionsByFld = map[string][]string{}
	g.fieldByName = map[string]string{}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"organization", g.genOrganization},
		{"teams", g.genTeams},
		{"users", g.genUsers},
		{"team_memberships", g.genMemberships},
		{"custom_fields", g.genCustomFields},
		{"tags", g.genTags},
		{"projects", g.genProjects},
		{"sections", g.genSections},
		{"tasks", g.genTasks},
		{"subtasks", g.genSubtasks},
		{"task_dependencies", g.genDependencies},
		{"comments", g.genComments},
		{"custom_field_values", g.genFieldValues},
		{"task_tags", g.genTaskTags},
		{"attachments", g.genAttachments},
		{"portfolios", g.genPortfolios},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step.fn(ctx); err != nil {
			return nil, fmt.Errorf("generate %s: %w", step.name, err)
		}
	}
	return g.g, nil
}
