// Package graph holds the in-memory entity graph accumulated during a
// generation run. Records are append-only; the only post-append mutation is
// the derived task counters the orchestrator recomputes from actual children.
package graph

import (
	"encoding/json"
	"io"

	"workseed/internal/domain"
)

type Graph struct {
	Organization     *domain.Organization           `json:"organization"`
	Teams            []domain.Team                  `json:"teams"`
	Users            []domain.User                  `json:"users"`
	Memberships      []domain.TeamMembership        `json:"team_memberships"`
	Fields           []domain.CustomFieldDefinition `json:"custom_field_definitions"`
	FieldOptions     []domain.CustomFieldEnumOption `json:"custom_field_enum_options"`
	Tags             []domain.Tag                   `json:"tags"`
	Projects         []domain.Project               `json:"projects"`
	Sections         []domain.Section               `json:"sections"`
	Tasks            []domain.Task                  `json:"tasks"`
	Dependencies     []domain.TaskDependency        `json:"task_dependencies"`
	Comments         []domain.Comment               `json:"comments"`
	FieldValues      []domain.CustomFieldValue      `json:"custom_field_values"`
	TaskTags         []domain.TaskTag               `json:"task_tags"`
	Attachments      []domain.Attachment            `json:"attachments"`
	Portfolios       []domain.Portfolio             `json:"portfolios"`
	PortfolioEntries []domain.PortfolioProject      `json:"portfolio_projects"`

	taskIndex map[string]int
	userIndex map[string]int
}

func New() *Graph {
	return &Graph{
		taskIndex: map[string]int{},
		userIndex: map[string]int{},
	}
}

func (g *Graph) AddUser(u domain.User) {
	g.userIndex[u.ID] = len(g.Users)
	g.Users = append(g.Users, u)
}

func (g *Graph) AddTask(t domain.Task) {
	g.taskIndex[t.ID] = len(g.Tasks)
	g.Tasks = append(g.Tasks, t)
}

// Task returns a copy of a task record. The arena may still grow; callers
// that need to write derived counters go through TaskIndex instead of
// holding pointers across appends.
func (g *Graph) Task(id string) (domain.Task, bool) {
	i, ok := g.taskIndex[id]
	if !ok {
		return domain.Task{}, false
	}
	return g.Tasks[i], true
}

// TaskIndex resolves a task ID to its arena position.
func (g *Graph) TaskIndex(id string) (int, bool) {
	i, ok := g.taskIndex[id]
	return i, ok
}

func (g *Graph) User(id string) (domain.User, bool) {
	i, ok := g.userIndex[id]
	if !ok {
		return domain.User{}, false
	}
	return g.Users[i], true
}

type KindCount struct {
	Kind  string
	Count int
}

// Counts reports record totals per kind in generation order.
func (g *Graph) Counts() []KindCount {
	orgs := 0
	if g.Organization != nil {
		orgs = 1
	}
	return []KindCount{
		{"organizations", orgs},
		{"teams", len(g.Teams)},
		{"users", len(g.Users)},
		{"team_memberships", len(g.Memberships)},
		{"custom_field_definitions", len(g.Fields)},
		{"custom_field_enum_options", len(g.FieldOptions)},
		{"tags", len(g.Tags)},
		{"projects", len(g.Projects)},
		{"sections", len(g.Sections)},
		{"tasks", len(g.Tasks)},
		{"task_dependencies", len(g.Dependencies)},
		{"comments", len(g.Comments)},
		{"custom_field_values", len(g.FieldValues)},
		{"task_tags", len(g.TaskTags)},
		{"attachments", len(g.Attachments)},
		{"portfolios", len(g.Portfolios)},
		{"portfolio_projects", len(g.PortfolioEntries)},
	}
}

// Dump writes the graph as indented JSON. Field order is fixed by the struct,
// record order by generation order, so identical runs dump identical bytes.
func (g *Graph) Dump(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}
