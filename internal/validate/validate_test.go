package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workseed/internal/domain"
	"workseed/internal/graph"
)

var (
	epoch = time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T { return &v }

// smallGraph builds a minimal clean graph: one org, one team, two users, one
// project with a section and one complete task.
func smallGraph() *graph.Graph {
	g := graph.New()
	g.Organization = &domain.Organization{ID: "o1", Name: "Acme", Domain: "acme.test", IsOrganization: true, CreatedAt: epoch}
	g.Teams = []domain.Team{{ID: "team1", OrgID: "o1", Name: "Platform", TeamType: "Engineering", CreatedAt: epoch.AddDate(0, 0, 1)}}
	g.AddUser(domain.User{ID: "u1", OrgID: "o1", Email: "ada@acme.test", FirstName: "Ada", LastName: "Park", Role: "member", IsActive: true, CreatedAt: epoch.AddDate(0, 0, 2)})
	g.AddUser(domain.User{ID: "u2", OrgID: "o1", Email: "ben@acme.test", FirstName: "Ben", LastName: "Ruiz", Role: "admin", IsActive: true, CreatedAt: epoch.AddDate(0, 0, 2)})
	g.Memberships = []domain.TeamMembership{
		{ID: "m1", TeamID: "team1", UserID: "u1", JoinedAt: epoch.AddDate(0, 0, 3)},
		{ID: "m2", TeamID: "team1", UserID: "u2", IsTeamLead: true, JoinedAt: epoch.AddDate(0, 0, 3)},
	}
	g.Projects = []domain.Project{{
		ID: "p1", OrgID: "o1", TeamID: ptr("team1"), Name: "API Platform",
		ProjectType: "Sprint", WorkflowType: "Engineering", Status: domain.ProjectActive,
		OwnerID: ptr("u1"), IsPublic: true, CreatedAt: epoch.AddDate(0, 0, 5),
	}}
	g.Sections = []domain.Section{{ID: "s1", ProjectID: "p1", Name: "To Do", Position: 0, CreatedAt: epoch.AddDate(0, 0, 5)}}
	created := epoch.AddDate(0, 0, 10)
	done := created.AddDate(0, 0, 3)
	g.AddTask(domain.Task{
		ID: "t1", ProjectID: ptr("p1"), SectionID: ptr("s1"), Name: "Fix auth",
		AssigneeID: ptr("u1"), CreatedBy: "u2", Status: domain.TaskComplete,
		CreatedAt: created, ModifiedAt: done, CompletedAt: &done, CompletedBy: ptr("u1"),
	})
	return g
}

func TestCleanGraphPasses(t *testing.T) {
	assert.Empty(t, Check(smallGraph(), end))
}

func rules(vs []Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Rule
	}
	return out
}

func TestDuplicateMembership(t *testing.T) {
	g := smallGraph()
	g.Memberships = append(g.Memberships, domain.TeamMembership{ID: "m3", TeamID: "team1", UserID: "u1", JoinedAt: epoch.AddDate(0, 0, 4)})
	assert.Contains(t, rules(Check(g, end)), "unique_pair")
}

func TestDanglingForeignKeys(t *testing.T) {
	g := smallGraph()
	g.AddTask(domain.Task{ID: "t2", ProjectID: ptr("ghost"), Name: "Orphan", CreatedBy: "nobody", Status: domain.TaskIncomplete, CreatedAt: epoch.AddDate(0, 0, 10), ModifiedAt: epoch.AddDate(0, 0, 10)})
	got := rules(Check(g, end))
	assert.Contains(t, got, "project_fk")
	assert.Contains(t, got, "created_by_fk")
}

func TestCompletionPairRule(t *testing.T) {
	g := smallGraph()
	created := epoch.AddDate(0, 0, 10)
	// Complete without completed_by.
	doneAt := created.AddDate(0, 0, 1)
	g.AddTask(domain.Task{ID: "t2", ProjectID: ptr("p1"), SectionID: ptr("s1"), Name: "Half done", CreatedBy: "u1", Status: domain.TaskComplete, CreatedAt: created, ModifiedAt: doneAt, CompletedAt: &doneAt})
	// Incomplete carrying a completion timestamp.
	g.AddTask(domain.Task{ID: "t3", ProjectID: ptr("p1"), SectionID: ptr("s1"), Name: "Confused", CreatedBy: "u1", Status: domain.TaskIncomplete, CreatedAt: created, ModifiedAt: doneAt, CompletedAt: &doneAt, CompletedBy: ptr("u1")})
	got := Check(g, end)
	count := 0
	for _, v := range got {
		if v.Rule == "completion_pair" {
			count++
		}
	}
	assert.Equal(t, 2, count, "violations: %v", got)
}

func TestSubtaskDepthLimit(t *testing.T) {
	g := smallGraph()
	created := epoch.AddDate(0, 0, 11)
	g.AddTask(domain.Task{ID: "sub1", ProjectID: ptr("p1"), SectionID: ptr("s1"), ParentTaskID: ptr("t1"), Name: "Subtask", CreatedBy: "u1", Status: domain.TaskIncomplete, CreatedAt: created, ModifiedAt: created})
	g.AddTask(domain.Task{ID: "sub2", ProjectID: ptr("p1"), SectionID: ptr("s1"), ParentTaskID: ptr("sub1"), Name: "Too deep", CreatedBy: "u1", Status: domain.TaskIncomplete, CreatedAt: created.Add(time.Hour), ModifiedAt: created.Add(time.Hour)})
	fixCounters(g)
	assert.Contains(t, rules(Check(g, end)), "max_depth")
}

func TestSubtaskCrossProject(t *testing.T) {
	g := smallGraph()
	g.Projects = append(g.Projects, domain.Project{ID: "p2", OrgID: "o1", Name: "Other", ProjectType: "List", WorkflowType: "Operations", Status: domain.ProjectActive, CreatedAt: epoch.AddDate(0, 0, 5)})
	created := epoch.AddDate(0, 0, 11)
	g.AddTask(domain.Task{ID: "sub1", ProjectID: ptr("p2"), ParentTaskID: ptr("t1"), Name: "Stray", CreatedBy: "u1", Status: domain.TaskIncomplete, CreatedAt: created, ModifiedAt: created})
	fixCounters(g)
	assert.Contains(t, rules(Check(g, end)), "parent_project")
}

func TestDependencyRules(t *testing.T) {
	g := smallGraph()
	created := epoch.AddDate(0, 0, 12)
	g.AddTask(domain.Task{ID: "t2", ProjectID: ptr("p1"), SectionID: ptr("s1"), Name: "Later", CreatedBy: "u1", Status: domain.TaskIncomplete, CreatedAt: created, ModifiedAt: created})
	g.Dependencies = []domain.TaskDependency{
		{ID: "d1", TaskID: "t2", DependsOnTaskID: "t2", CreatedAt: created},
		{ID: "d2", TaskID: "t2", DependsOnTaskID: "t1", CreatedAt: created},
		{ID: "d3", TaskID: "t2", DependsOnTaskID: "t1", CreatedAt: created},
	}
	got := rules(Check(g, end))
	assert.Contains(t, got, "self_loop")
	assert.Contains(t, got, "unique_pair")
}

func TestFieldValueTypeMismatch(t *testing.T) {
	g := smallGraph()
	g.Fields = []domain.CustomFieldDefinition{{ID: "f1", OrgID: "o1", Name: "Priority", FieldType: domain.FieldEnum, IsGlobal: true, CreatedAt: epoch}}
	g.FieldOptions = []domain.CustomFieldEnumOption{{ID: "opt1", FieldID: "f1", Name: "High", Position: 0, Enabled: true}}
	at := epoch.AddDate(0, 0, 11)
	g.FieldValues = []domain.CustomFieldValue{
		{ID: "v1", TaskID: "t1", FieldID: "f1", Value: domain.NumberValue(3), CreatedAt: at, ModifiedAt: at},
		{ID: "v2", TaskID: "t1", FieldID: "f1", Value: domain.EnumValue("opt1"), CreatedAt: at, ModifiedAt: at},
		{ID: "v3", TaskID: "t1", FieldID: "f1", Value: domain.EnumValue("opt-ghost"), CreatedAt: at, ModifiedAt: at},
	}
	got := rules(Check(g, end))
	assert.Contains(t, got, "value_type")
	assert.Contains(t, got, "unique_pair")
	assert.Contains(t, got, "option_fk")
}

func TestCounterMismatch(t *testing.T) {
	g := smallGraph()
	i, ok := g.TaskIndex("t1")
	require.True(t, ok)
	g.Tasks[i].NumComments = 4
	assert.Contains(t, rules(Check(g, end)), "num_comments")
}

func TestTaskPredatesProject(t *testing.T) {
	g := smallGraph()
	before := g.Projects[0].CreatedAt.Add(-2 * time.Hour)
	g.AddTask(domain.Task{ID: "t2", ProjectID: ptr("p1"), SectionID: ptr("s1"), Name: "Too early", CreatedBy: "u1", Status: domain.TaskIncomplete, CreatedAt: before, ModifiedAt: before})
	assert.Contains(t, rules(Check(g, end)), "created_after_project")
}

func TestProjectPredatesTeam(t *testing.T) {
	g := smallGraph()
	g.Projects[0].CreatedAt = g.Teams[0].CreatedAt.Add(-time.Hour)
	assert.Contains(t, rules(Check(g, end)), "created_after_team")
}

func TestMembershipPredatesMembers(t *testing.T) {
	g := smallGraph()
	g.Memberships[0].JoinedAt = g.Users[0].CreatedAt.Add(-time.Hour)
	got := rules(Check(g, end))
	assert.Contains(t, got, "joined_after_user")
	g2 := smallGraph()
	g2.Memberships[0].JoinedAt = g2.Teams[0].CreatedAt.Add(-time.Hour)
	assert.Contains(t, rules(Check(g2, end)), "joined_after_team")
}

func TestFutureTimestampRejected(t *testing.T) {
	g := smallGraph()
	g.Tags = []domain.Tag{{ID: "tag1", OrgID: "o1", Name: "bug", CreatedAt: end.AddDate(0, 0, 2)}}
	g.TaskTags = []domain.TaskTag{{ID: "tt1", TaskID: "t1", TagID: "tag1", CreatedAt: end.AddDate(0, 0, 3)}}
	assert.Contains(t, rules(Check(g, end)), "created_in_window")
}

func TestOwnerOutsideTeam(t *testing.T) {
	g := smallGraph()
	g.AddUser(domain.User{ID: "u3", OrgID: "o1", Email: "eve@acme.test", FirstName: "Eve", LastName: "Cho", Role: "member", IsActive: true, CreatedAt: epoch.AddDate(0, 0, 2)})
	g.Projects[0].OwnerID = ptr("u3")
	assert.Contains(t, rules(Check(g, end)), "owner_membership")
}

// fixCounters recomputes num_subtasks so depth tests exercise only the rule
// under test.
func fixCounters(g *graph.Graph) {
	counts := map[string]int{}
	for _, t := range g.Tasks {
		if t.ParentTaskID != nil {
			counts[*t.ParentTaskID]++
		}
	}
	for i := range g.Tasks {
		g.Tasks[i].NumSubtasks = counts[g.Tasks[i].ID]
	}
}
