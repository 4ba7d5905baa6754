// Package config models the run configuration for a generation run:
// workspace size, simulation window, per-kind volume ratios, and the
// distribution parameters every sampler consumes. A config that passes
// Validate is guaranteed not to force a child kind before any parent exists.
package config

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"workseed/internal/dist"
	"workseed/internal/timeline"
)

// Range is an inclusive integer range.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type Config struct {
	Seed           int64     `yaml:"seed"`
	Employees      int       `yaml:"employees"`
	SimulationEnd  time.Time `yaml:"simulation_end"`
	SimulationDays int       `yaml:"simulation_days"`

	Volumes struct {
		ProjectsPerTeam Range   `yaml:"projects_per_team"`
		TasksPerProject Range   `yaml:"tasks_per_project"`
		SubtasksPerTask Range   `yaml:"subtasks_per_task"`
		CommentsPerTask Range   `yaml:"comments_per_task"`
		Portfolios      int     `yaml:"portfolios"`
		CountTolerance  float64 `yaml:"count_tolerance"`
	} `yaml:"volumes"`

	Rates struct {
		Unassigned       float64 `yaml:"unassigned"`
		Subtask          float64 `yaml:"subtask"`
		Comment          float64 `yaml:"comment"`
		Attachment       float64 `yaml:"attachment"`
		Tagged           float64 `yaml:"tagged"`
		Dependency       float64 `yaml:"dependency"`
		WeekendAvoidance float64 `yaml:"weekend_avoidance"`
		TeamScoped       float64 `yaml:"team_scoped"`
	} `yaml:"rates"`

	DueDates dist.DueDateWeights `yaml:"due_dates"`

	Teams struct {
		Distribution map[string]float64 `yaml:"distribution"`
		SizeRanges   map[string]Range   `yaml:"size_ranges"`
		SizeMu       float64            `yaml:"size_mu"`
		SizeSigma    float64            `yaml:"size_sigma"`
	} `yaml:"teams"`

	Assignment struct {
		Exponent    float64 `yaml:"exponent"`
		SeniorBoost float64 `yaml:"senior_boost"`
	} `yaml:"assignment"`

	// CompletionRates maps project type to a base completion rate range.
	CompletionRates map[string]FloatRange `yaml:"completion_rates"`

	// ProjectTypes maps team type to a project-type weight map.
	ProjectTypes map[string]map[string]float64 `yaml:"project_types"`

	ProjectStatus map[string]float64 `yaml:"project_status"`
	UserRoles     map[string]float64 `yaml:"user_roles"`

	Retry struct {
		Entity  int `yaml:"entity"`
		Content int `yaml:"content"`
	} `yaml:"retry"`
}

// ValidationError marks a configuration the orchestrator must reject before
// generating anything.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Default returns the baseline configuration: a 7500-person organization
// over a six month window.
func Default() *Config {
	c := &Config{
		Seed:           1,
		Employees:      7500,
		SimulationEnd:  time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC),
		SimulationDays: 180,
	}
	c.Volumes.ProjectsPerTeam = Range{Min: 3, Max: 5}
	c.Volumes.TasksPerProject = Range{Min: 15, Max: 40}
	c.Volumes.SubtasksPerTask = Range{Min: 1, Max: 5}
	c.Volumes.CommentsPerTask = Range{Min: 1, Max: 8}
	c.Volumes.Portfolios = 5
	c.Volumes.CountTolerance = 0.2

	c.Rates.Unassigned = 0.15
	c.Rates.Subtask = 0.30
	c.Rates.Comment = 0.45
	c.Rates.Attachment = 0.20
	c.Rates.Tagged = 0.30
	c.Rates.Dependency = 0.10
	c.Rates.WeekendAvoidance = 0.85
	c.Rates.TeamScoped = 1.0

	c.DueDates = dist.DueDateWeights{
		WithinWeek:    0.25,
		WithinMonth:   0.40,
		WithinQuarter: 0.20,
		None:          0.10,
		Overdue:       0.05,
	}

	c.Teams.Distribution = map[string]float64{
		"Engineering": 0.40,
		"Product":     0.10,
		"Design":      0.08,
		"Marketing":   0.12,
		"Sales":       0.15,
		"Operations":  0.08,
		"HR":          0.04,
		"Finance":     0.03,
	}
	c.Teams.SizeRanges = map[string]Range{
		"Engineering": {8, 15},
		"Product":     {5, 10},
		"Design":      {5, 8},
		"Marketing":   {6, 12},
		"Sales":       {8, 15},
		"Operations":  {5, 10},
		"HR":          {4, 8},
		"Finance":     {3, 6},
	}
	c.Teams.SizeMu = 2.2
	c.Teams.SizeSigma = 0.35

	c.Assignment.Exponent = 1.5
	c.Assignment.SeniorBoost = 1.75

	c.CompletionRates = map[string]FloatRange{
		"Sprint":   {0.70, 0.85},
		"Kanban":   {0.60, 0.70},
		"Timeline": {0.50, 0.65},
		"List":     {0.40, 0.55},
		"Calendar": {0.65, 0.75},
	}
	c.ProjectTypes = map[string]map[string]float64{
		"Engineering": {"Sprint": 0.60, "Kanban": 0.30, "List": 0.10},
		"Product":     {"Timeline": 0.50, "List": 0.30, "Kanban": 0.20},
		"Design":      {"Kanban": 0.50, "Timeline": 0.30, "List": 0.20},
		"Marketing":   {"Timeline": 0.40, "Calendar": 0.30, "List": 0.30},
		"Sales":       {"List": 0.60, "Kanban": 0.30, "Timeline": 0.10},
		"Operations":  {"List": 0.50, "Kanban": 0.40, "Timeline": 0.10},
		"HR":          {"List": 0.70, "Timeline": 0.20, "Kanban": 0.10},
		"Finance":     {"List": 0.80, "Timeline": 0.20},
	}
	c.ProjectStatus = map[string]float64{
		"active":    0.70,
		"on_hold":   0.10,
		"completed": 0.15,
		"archived":  0.05,
	}
	c.UserRoles = map[string]float64{
		"admin":          0.05,
		"member":         0.85,
		"limited_access": 0.08,
		"guest":          0.02,
	}
	c.Retry.Entity = 5
	c.Retry.Content = 3
	return c
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// WriteYAML renders the effective configuration.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Window derives the simulation window; End is the run's "now".
func (c *Config) Window() timeline.Window {
	return timeline.Window{
		Start: c.SimulationEnd.AddDate(0, 0, -c.SimulationDays),
		End:   c.SimulationEnd,
	}
}

// ExpectedTeams computes how many teams the team factory will produce for
// this config, before any sampling. Zero means no project can ever be
// team-scoped.
func (c *Config) ExpectedTeams() int {
	total := 0
	for dept, pct := range c.Teams.Distribution {
		headcount := int(float64(c.Employees) * pct)
		if headcount == 0 {
			continue
		}
		sz, ok := c.Teams.SizeRanges[dept]
		if !ok {
			sz = Range{5, 10}
		}
		avg := float64(sz.Min+sz.Max) / 2
		n := int(float64(headcount) / avg)
		if n < 1 {
			n = 1
		}
		total += n
	}
	return total
}

// Validate rejects contradictory or degenerate configurations before any
// entity is generated.
func (c *Config) Validate() error {
	if c.Employees < 0 {
		return invalid("employees", "must be >= 0, got %d", c.Employees)
	}
	if c.SimulationDays <= 0 {
		return invalid("simulation_days", "must be > 0, got %d", c.SimulationDays)
	}
	if c.SimulationEnd.IsZero() {
		return invalid("simulation_end", "is required")
	}
	if !c.Window().Valid() {
		return invalid("simulation_end", "window start is not before end")
	}
	for name, v := range map[string]float64{
		"rates.unassigned":        c.Rates.Unassigned,
		"rates.subtask":           c.Rates.Subtask,
		"rates.comment":           c.Rates.Comment,
		"rates.attachment":        c.Rates.Attachment,
		"rates.tagged":            c.Rates.Tagged,
		"rates.dependency":        c.Rates.Dependency,
		"rates.weekend_avoidance": c.Rates.WeekendAvoidance,
		"rates.team_scoped":       c.Rates.TeamScoped,
	} {
		if v < 0 || v > 1 {
			return invalid(name, "must be in [0,1], got %g", v)
		}
	}
	if s := c.DueDates.Sum(); math.Abs(s-1) > 0.01 {
		return invalid("due_dates", "bucket weights must sum to 1, got %g", s)
	}
	for _, rng := range []struct {
		name string
		r    Range
	}{
		{"volumes.projects_per_team", c.Volumes.ProjectsPerTeam},
		{"volumes.tasks_per_project", c.Volumes.TasksPerProject},
		{"volumes.subtasks_per_task", c.Volumes.SubtasksPerTask},
		{"volumes.comments_per_task", c.Volumes.CommentsPerTask},
	} {
		if rng.r.Min < 0 || rng.r.Max < rng.r.Min {
			return invalid(rng.name, "requires 0 <= min <= max, got [%d,%d]", rng.r.Min, rng.r.Max)
		}
	}
	if c.Volumes.CountTolerance < 0 || c.Volumes.CountTolerance > 1 {
		return invalid("volumes.count_tolerance", "must be in [0,1], got %g", c.Volumes.CountTolerance)
	}
	for dept, sz := range c.Teams.SizeRanges {
		if sz.Min < 2 {
			return invalid("teams.size_ranges", "%s min size %d would allow single-member teams", dept, sz.Min)
		}
		if sz.Max < sz.Min {
			return invalid("teams.size_ranges", "%s has max %d < min %d", dept, sz.Max, sz.Min)
		}
	}
	// The one genuinely contradictory shape: projects that must be
	// team-scoped while the team factory cannot produce a single team.
	if c.ExpectedTeams() == 0 && c.Rates.TeamScoped > 0 && c.Volumes.ProjectsPerTeam.Max > 0 {
		return invalid("volumes.projects_per_team",
			"config yields zero teams but team-scoped projects are required (rates.team_scoped=%g)", c.Rates.TeamScoped)
	}
	if c.Retry.Entity < 1 {
		return invalid("retry.entity", "must be >= 1, got %d", c.Retry.Entity)
	}
	if c.Retry.Content < 1 {
		return invalid("retry.content", "must be >= 1, got %d", c.Retry.Content)
	}
	return nil
}
