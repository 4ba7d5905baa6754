// Package validate runs structural checks over a finished graph before it
// reaches a sink. A violation here means the generator itself produced bad
// data, so callers abort the run instead of persisting a corrupt dataset.
package validate

import (
	"fmt"
	"time"

	"workseed/internal/domain"
	"workseed/internal/graph"
)

// Violation is one failed check on one entity.
type Violation struct {
	Kind   string
	ID     string
	Rule   string
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %s: %s: %s", v.Kind, v.ID, v.Rule, v.Detail)
}

// Error aggregates violations for callers that want a single error value.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	return fmt.Sprintf("integrity check failed: %d violations (first: %s)", len(e.Violations), e.Violations[0])
}

type checker struct {
	g   *graph.Graph
	now time.Time
	out []Violation

	users    map[string]domain.User
	teams    map[string]domain.Team
	projects map[string]domain.Project
	sections map[string]domain.Section
	tasks    map[string]domain.Task
	fields   map[string]domain.CustomFieldDefinition
	options  map[string]domain.CustomFieldEnumOption
	tags     map[string]bool
}

// Check validates every relationship and temporal rule in the graph and
// returns all violations found. now is the simulation end; nothing may be
// created after it.
func Check(g *graph.Graph, now time.Time) []Violation {
	c := &checker{g: g, now: now}
	c.index()
	c.checkOrganization()
	c.checkTeams()
	c.checkUsers()
	c.checkMemberships()
	c.checkTags()
	c.checkProjects()
	c.checkSections()
	c.checkTasks()
	c.checkDependencies()
	c.checkComments()
	c.checkFieldValues()
	c.checkTaskTags()
	c.checkAttachments()
	c.checkPortfolios()
	return c.out
}

func (c *checker) add(kind, id, rule, format string, args ...any) {
	c.out = append(c.out, Violation{Kind: kind, ID: id, Rule: rule, Detail: fmt.Sprintf(format, args...)})
}

func (c *checker) index() {
	c.users = map[string]domain.User{}
	for _, u := range c.g.Users {
		c.users[u.ID] = u
	}
	c.teams = map[string]domain.Team{}
	for _, t := range c.g.Teams {
		c.teams[t.ID] = t
	}
	c.projects = map[string]domain.Project{}
	for _, p := range c.g.Projects {
		c.projects[p.ID] = p
	}
	c.sections = map[string]domain.Section{}
	for _, s := range c.g.Sections {
		c.sections[s.ID] = s
	}
	c.tasks = map[string]domain.Task{}
	for _, t := range c.g.Tasks {
		c.tasks[t.ID] = t
	}
	c.fields = map[string]domain.CustomFieldDefinition{}
	for _, f := range c.g.Fields {
		c.fields[f.ID] = f
	}
	c.options = map[string]domain.CustomFieldEnumOption{}
	for _, o := range c.g.FieldOptions {
		c.options[o.ID] = o
	}
	c.tags = map[string]bool{}
	for _, t := range c.g.Tags {
		c.tags[t.ID] = true
	}
}

func (c *checker) userExists(id string) bool {
	_, ok := c.users[id]
	return ok
}

func (c *checker) within(kind, id string, created time.Time) {
	if created.After(c.now) {
		c.add(kind, id, "created_in_window", "created_at %s is after simulation end %s", created.Format(time.RFC3339), c.now.Format(time.RFC3339))
	}
}

func (c *checker) checkOrganization() {
	if c.g.Organization == nil {
		c.add("organization", "", "exists", "graph has no organization")
		return
	}
	c.within("organization", c.g.Organization.ID, c.g.Organization.CreatedAt)
}

func (c *checker) checkTeams() {
	orgID := ""
	if c.g.Organization != nil {
		orgID = c.g.Organization.ID
	}
	for _, t := range c.g.Teams {
		if t.OrgID != orgID {
			c.add("team", t.ID, "org_fk", "org %s not found", t.OrgID)
		}
		if c.g.Organization != nil && t.CreatedAt.Before(c.g.Organization.CreatedAt) {
			c.add("team", t.ID, "created_after_org", "team predates organization")
		}
		c.within("team", t.ID, t.CreatedAt)
	}
}

func (c *checker) checkUsers() {
	seenEmail := map[string]string{}
	for _, u := range c.g.Users {
		if prev, ok := seenEmail[u.Email]; ok {
			c.add("user", u.ID, "unique_email", "email %s already used by %s", u.Email, prev)
		}
		seenEmail[u.Email] = u.ID
		if u.LastActiveAt != nil && u.LastActiveAt.Before(u.CreatedAt) {
			c.add("user", u.ID, "last_active_after_created", "last_active_at precedes created_at")
		}
		c.within("user", u.ID, u.CreatedAt)
	}
}

func (c *checker) checkMemberships() {
	seen := map[[2]string]bool{}
	for _, m := range c.g.Memberships {
		if t, ok := c.teams[m.TeamID]; !ok {
			c.add("team_membership", m.ID, "team_fk", "team %s not found", m.TeamID)
		} else if m.JoinedAt.Before(t.CreatedAt) {
			c.add("team_membership", m.ID, "joined_after_team", "membership predates team")
		}
		if u, ok := c.users[m.UserID]; !ok {
			c.add("team_membership", m.ID, "user_fk", "user %s not found", m.UserID)
		} else if m.JoinedAt.Before(u.CreatedAt) {
			c.add("team_membership", m.ID, "joined_after_user", "membership predates user")
		}
		key := [2]string{m.TeamID, m.UserID}
		if seen[key] {
			c.add("team_membership", m.ID, "unique_pair", "user %s already in team %s", m.UserID, m.TeamID)
		}
		seen[key] = true
		c.within("team_membership", m.ID, m.JoinedAt)
	}
}

func (c *checker) checkTags() {
	seen := map[[2]string]bool{}
	for _, t := range c.g.Tags {
		key := [2]string{t.OrgID, t.Name}
		if seen[key] {
			c.add("tag", t.ID, "unique_name", "name %q repeated in org %s", t.Name, t.OrgID)
		}
		seen[key] = true
		c.within("tag", t.ID, t.CreatedAt)
	}
}

func (c *checker) checkProjects() {
	members := map[string]map[string]bool{}
	for _, m := range c.g.Memberships {
		if members[m.TeamID] == nil {
			members[m.TeamID] = map[string]bool{}
		}
		members[m.TeamID][m.UserID] = true
	}
	for _, p := range c.g.Projects {
		if p.TeamID != nil {
			if t, ok := c.teams[*p.TeamID]; !ok {
				c.add("project", p.ID, "team_fk", "team %s not found", *p.TeamID)
			} else if p.CreatedAt.Before(t.CreatedAt) {
				c.add("project", p.ID, "created_after_team", "project predates its team")
			}
		}
		if p.OwnerID != nil {
			if !c.userExists(*p.OwnerID) {
				c.add("project", p.ID, "owner_fk", "user %s not found", *p.OwnerID)
			} else if p.TeamID != nil && !members[*p.TeamID][*p.OwnerID] {
				c.add("project", p.ID, "owner_membership", "owner %s is not a member of team %s", *p.OwnerID, *p.TeamID)
			}
		}
		if !domain.ValidProjectStatus(p.Status) {
			c.add("project", p.ID, "status", "unknown status %q", p.Status)
		}
		if p.Status == domain.ProjectCompleted && p.CompletedAt == nil {
			c.add("project", p.ID, "completed_at", "completed project without completed_at")
		}
		if p.CompletedAt != nil && p.CompletedAt.Before(p.CreatedAt) {
			c.add("project", p.ID, "completed_after_created", "completed_at precedes created_at")
		}
		if p.ArchivedAt != nil && p.ArchivedAt.Before(p.CreatedAt) {
			c.add("project", p.ID, "archived_after_created", "archived_at precedes created_at")
		}
		if p.Status == domain.ProjectArchived && p.ArchivedAt == nil {
			c.add("project", p.ID, "archived_at", "archived project without archived_at")
		}
		c.within("project", p.ID, p.CreatedAt)
	}
}

func (c *checker) checkSections() {
	positions := map[[2]string]bool{}
	for _, s := range c.g.Sections {
		p, ok := c.projects[s.ProjectID]
		if !ok {
			c.add("section", s.ID, "project_fk", "project %s not found", s.ProjectID)
			continue
		}
		if s.CreatedAt.Before(p.CreatedAt) {
			c.add("section", s.ID, "created_after_project", "section predates project")
		}
		key := [2]string{s.ProjectID, fmt.Sprint(s.Position)}
		if positions[key] {
			c.add("section", s.ID, "unique_position", "position %d repeated in project %s", s.Position, s.ProjectID)
		}
		positions[key] = true
		c.within("section", s.ID, s.CreatedAt)
	}
}

func (c *checker) checkTasks() {
	for _, t := range c.g.Tasks {
		if t.ProjectID != nil {
			if p, ok := c.projects[*t.ProjectID]; !ok {
				c.add("task", t.ID, "project_fk", "project %s not found", *t.ProjectID)
			} else if t.CreatedAt.Before(p.CreatedAt) {
				c.add("task", t.ID, "created_after_project", "task predates its project")
			}
		}
		if t.SectionID != nil {
			s, ok := c.sections[*t.SectionID]
			if !ok {
				c.add("task", t.ID, "section_fk", "section %s not found", *t.SectionID)
			} else if t.ProjectID != nil && s.ProjectID != *t.ProjectID {
				c.add("task", t.ID, "section_project", "section belongs to project %s, task to %s", s.ProjectID, *t.ProjectID)
			}
		}
		if t.AssigneeID != nil && !c.userExists(*t.AssigneeID) {
			c.add("task", t.ID, "assignee_fk", "user %s not found", *t.AssigneeID)
		}
		if !c.userExists(t.CreatedBy) {
			c.add("task", t.ID, "created_by_fk", "user %s not found", t.CreatedBy)
		}
		if t.ParentTaskID != nil {
			parent, ok := c.tasks[*t.ParentTaskID]
			switch {
			case !ok:
				c.add("task", t.ID, "parent_fk", "parent %s not found", *t.ParentTaskID)
			case parent.ParentTaskID != nil:
				c.add("task", t.ID, "max_depth", "parent %s is itself a subtask", parent.ID)
			default:
				if t.ProjectID != nil && parent.ProjectID != nil && *t.ProjectID != *parent.ProjectID {
					c.add("task", t.ID, "parent_project", "subtask and parent in different projects")
				}
				if t.CreatedAt.Before(parent.CreatedAt) {
					c.add("task", t.ID, "created_after_parent", "subtask predates parent")
				}
			}
		}
		done := t.Status == domain.TaskComplete
		if done != (t.CompletedAt != nil) || done != (t.CompletedBy != nil) {
			c.add("task", t.ID, "completion_pair", "status %q with completed_at=%v completed_by=%v", t.Status, t.CompletedAt != nil, t.CompletedBy != nil)
		}
		if t.CompletedAt != nil {
			if t.CompletedAt.Before(t.CreatedAt) {
				c.add("task", t.ID, "completed_after_created", "completed_at precedes created_at")
			}
			if t.CompletedAt.After(c.now) {
				c.add("task", t.ID, "completed_in_window", "completed_at is in the future")
			}
		}
		if t.CompletedBy != nil && !c.userExists(*t.CompletedBy) {
			c.add("task", t.ID, "completed_by_fk", "user %s not found", *t.CompletedBy)
		}
		if t.ModifiedAt.Before(t.CreatedAt) {
			c.add("task", t.ID, "modified_after_created", "modified_at precedes created_at")
		}
		c.within("task", t.ID, t.CreatedAt)
	}
	c.checkCounters()
}

func (c *checker) checkCounters() {
	subtasks := map[string]int{}
	for _, t := range c.g.Tasks {
		if t.ParentTaskID != nil {
			subtasks[*t.ParentTaskID]++
		}
	}
	comments := map[string]int{}
	for _, cm := range c.g.Comments {
		comments[cm.TaskID]++
	}
	for _, t := range c.g.Tasks {
		if t.NumSubtasks != subtasks[t.ID] {
			c.add("task", t.ID, "num_subtasks", "counter %d, actual %d", t.NumSubtasks, subtasks[t.ID])
		}
		if t.NumComments != comments[t.ID] {
			c.add("task", t.ID, "num_comments", "counter %d, actual %d", t.NumComments, comments[t.ID])
		}
	}
}

func (c *checker) checkDependencies() {
	seen := map[[2]string]bool{}
	for _, d := range c.g.Dependencies {
		if d.TaskID == d.DependsOnTaskID {
			c.add("task_dependency", d.ID, "self_loop", "task depends on itself")
		}
		if _, ok := c.tasks[d.TaskID]; !ok {
			c.add("task_dependency", d.ID, "task_fk", "task %s not found", d.TaskID)
		}
		if _, ok := c.tasks[d.DependsOnTaskID]; !ok {
			c.add("task_dependency", d.ID, "depends_on_fk", "task %s not found", d.DependsOnTaskID)
		}
		key := [2]string{d.TaskID, d.DependsOnTaskID}
		if seen[key] {
			c.add("task_dependency", d.ID, "unique_pair", "duplicate edge %s -> %s", d.TaskID, d.DependsOnTaskID)
		}
		seen[key] = true
		c.within("task_dependency", d.ID, d.CreatedAt)
	}
}

func (c *checker) checkComments() {
	for _, cm := range c.g.Comments {
		t, ok := c.tasks[cm.TaskID]
		if !ok {
			c.add("comment", cm.ID, "task_fk", "task %s not found", cm.TaskID)
			continue
		}
		if !c.userExists(cm.UserID) {
			c.add("comment", cm.ID, "user_fk", "user %s not found", cm.UserID)
		}
		if cm.CreatedAt.Before(t.CreatedAt) {
			c.add("comment", cm.ID, "created_after_task", "comment predates its task")
		}
		c.within("comment", cm.ID, cm.CreatedAt)
	}
}

func (c *checker) checkFieldValues() {
	seen := map[[2]string]bool{}
	for _, fv := range c.g.FieldValues {
		if _, ok := c.tasks[fv.TaskID]; !ok {
			c.add("custom_field_value", fv.ID, "task_fk", "task %s not found", fv.TaskID)
		}
		def, ok := c.fields[fv.FieldID]
		if !ok {
			c.add("custom_field_value", fv.ID, "field_fk", "field %s not found", fv.FieldID)
			continue
		}
		if err := fv.Value.CheckAgainst(def); err != nil {
			c.add("custom_field_value", fv.ID, "value_type", "%v", err)
		}
		if optID, isEnum := fv.Value.EnumOptionID(); isEnum {
			opt, ok := c.options[optID]
			if !ok {
				c.add("custom_field_value", fv.ID, "option_fk", "option %s not found", optID)
			} else if opt.FieldID != fv.FieldID {
				c.add("custom_field_value", fv.ID, "option_field", "option belongs to field %s", opt.FieldID)
			}
		}
		key := [2]string{fv.TaskID, fv.FieldID}
		if seen[key] {
			c.add("custom_field_value", fv.ID, "unique_pair", "task %s already has a value for field %s", fv.TaskID, fv.FieldID)
		}
		seen[key] = true
		c.within("custom_field_value", fv.ID, fv.CreatedAt)
	}
}

func (c *checker) checkTaskTags() {
	seen := map[[2]string]bool{}
	for _, tt := range c.g.TaskTags {
		if _, ok := c.tasks[tt.TaskID]; !ok {
			c.add("task_tag", tt.ID, "task_fk", "task %s not found", tt.TaskID)
		}
		if !c.tags[tt.TagID] {
			c.add("task_tag", tt.ID, "tag_fk", "tag %s not found", tt.TagID)
		}
		key := [2]string{tt.TaskID, tt.TagID}
		if seen[key] {
			c.add("task_tag", tt.ID, "unique_pair", "tag %s already on task %s", tt.TagID, tt.TaskID)
		}
		seen[key] = true
		c.within("task_tag", tt.ID, tt.CreatedAt)
	}
}

func (c *checker) checkAttachments() {
	for _, a := range c.g.Attachments {
		t, ok := c.tasks[a.TaskID]
		if !ok {
			c.add("attachment", a.ID, "task_fk", "task %s not found", a.TaskID)
			continue
		}
		if !c.userExists(a.UploadedBy) {
			c.add("attachment", a.ID, "uploaded_by_fk", "user %s not found", a.UploadedBy)
		}
		if a.CreatedAt.Before(t.CreatedAt) {
			c.add("attachment", a.ID, "created_after_task", "attachment predates its task")
		}
		c.within("attachment", a.ID, a.CreatedAt)
	}
}

func (c *checker) checkPortfolios() {
	ids := map[string]bool{}
	for _, p := range c.g.Portfolios {
		ids[p.ID] = true
		if p.OwnerID != nil && !c.userExists(*p.OwnerID) {
			c.add("portfolio", p.ID, "owner_fk", "user %s not found", *p.OwnerID)
		}
		c.within("portfolio", p.ID, p.CreatedAt)
	}
	seen := map[[2]string]bool{}
	for _, e := range c.g.PortfolioEntries {
		if !ids[e.PortfolioID] {
			c.add("portfolio_project", e.ID, "portfolio_fk", "portfolio %s not found", e.PortfolioID)
		}
		if _, ok := c.projects[e.ProjectID]; !ok {
			c.add("portfolio_project", e.ID, "project_fk", "project %s not found", e.ProjectID)
		}
		key := [2]string{e.PortfolioID, e.ProjectID}
		if seen[key] {
			c.add("portfolio_project", e.ID, "unique_pair", "project %s already in portfolio %s", e.ProjectID, e.PortfolioID)
		}
		seen[key] = true
		c.within("portfolio_project", e.ID, e.CreatedAt)
	}
}
