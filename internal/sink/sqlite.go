package sink

import (
	"context"
	"database/sql"
	"time"

	"workseed/internal/graph"
)

// SQLite writes the graph into an already-migrated database in a single
// transaction, in dependency order, so foreign keys resolve as rows land.
type SQLite struct {
	DB *sql.DB
}

func (s *SQLite) Persist(ctx context.Context, g *graph.Graph) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return &CommitError{Err: err}
	}
	defer tx.Rollback()

	w := writer{tx: tx, ctx: ctx}
	w.organization(g)
	w.teams(g)
	w.users(g)
	w.memberships(g)
	w.fields(g)
	w.tags(g)
	w.projects(g)
	w.sections(g)
	w.tasks(g)
	w.dependencies(g)
	w.comments(g)
	w.fieldValues(g)
	w.taskTags(g)
	w.attachments(g)
	w.portfolios(g)
	if w.err != nil {
		return w.err
	}
	if err := tx.Commit(); err != nil {
		return &CommitError{Err: err}
	}
	return nil
}

// writer threads one error through the insert sequence so each section can
// stay a flat list of Execs.
type writer struct {
	tx  *sql.Tx
	ctx context.Context
	err error
}

func (w *writer) exec(table, query string, args ...any) {
	if w.err != nil {
		return
	}
	if _, err := w.tx.ExecContext(w.ctx, query, args...); err != nil {
		w.err = &CommitError{Table: table, Err: err}
	}
}

func ts(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func tsPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return ts(*t)
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullableStringPtr(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}

func (w *writer) organization(g *graph.Graph) {
	if g.Organization == nil {
		return
	}
	o := g.Organization
	w.exec("organizations", `INSERT INTO organizations(id, name, domain, is_organization, created_at)
VALUES (?,?,?,?,?)`, o.ID, o.Name, o.Domain, o.IsOrganization, ts(o.CreatedAt))
}

func (w *writer) teams(g *graph.Graph) {
	for _, t := range g.Teams {
		w.exec("teams", `INSERT INTO teams(id, org_id, name, description, team_type, created_at)
VALUES (?,?,?,?,?,?)`, t.ID, t.OrgID, t.Name, nullable(t.Description), t.TeamType, ts(t.CreatedAt))
	}
}

func (w *writer) users(g *graph.Graph) {
	for _, u := range g.Users {
		w.exec("users", `INSERT INTO users(id, org_id, email, first_name, last_name, role, job_title, department, is_active, created_at, last_active_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			u.ID, u.OrgID, u.Email, u.FirstName, u.LastName, u.Role,
			nullable(u.JobTitle), nullable(u.Department), u.IsActive, ts(u.CreatedAt), tsPtr(u.LastActiveAt))
	}
}

func (w *writer) memberships(g *graph.Graph) {
	for _, m := range g.Memberships {
		w.exec("team_memberships", `INSERT INTO team_memberships(id, team_id, user_id, is_team_lead, joined_at)
VALUES (?,?,?,?,?)`, m.ID, m.TeamID, m.UserID, m.IsTeamLead, ts(m.JoinedAt))
	}
}

func (w *writer) fields(g *graph.Graph) {
	for _, f := range g.Fields {
		w.exec("custom_field_definitions", `INSERT INTO custom_field_definitions(id, org_id, name, description, field_type, is_global, created_at)
VALUES (?,?,?,?,?,?,?)`, f.ID, f.OrgID, f.Name, nullable(f.Description), string(f.FieldType), f.IsGlobal, ts(f.CreatedAt))
	}
	for _, o := range g.FieldOptions {
		w.exec("custom_field_enum_options", `INSERT INTO custom_field_enum_options(id, field_id, name, color, position, enabled)
VALUES (?,?,?,?,?,?)`, o.ID, o.FieldID, o.Name, nullable(o.Color), o.Position, o.Enabled)
	}
}

func (w *writer) tags(g *graph.Graph) {
	for _, t := range g.Tags {
		w.exec("tags", `INSERT INTO tags(id, org_id, name, color, created_at)
VALUES (?,?,?,?,?)`, t.ID, t.OrgID, t.Name, nullable(t.Color), ts(t.CreatedAt))
	}
}

func (w *writer) projects(g *graph.Graph) {
	for _, p := range g.Projects {
		w.exec("projects", `INSERT INTO projects(id, org_id, team_id, name, description, project_type, workflow_type, status, owner_id, is_public, color, created_at, due_date, completed_at, archived_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			p.ID, p.OrgID, nullableStringPtr(p.TeamID), p.Name, nullable(p.Description),
			p.ProjectType, p.WorkflowType, string(p.Status), nullableStringPtr(p.OwnerID),
			p.IsPublic, nullable(p.Color), ts(p.CreatedAt), tsPtr(p.DueDate), tsPtr(p.CompletedAt), tsPtr(p.ArchivedAt))
	}
}

func (w *writer) sections(g *graph.Graph) {
	for _, s := range g.Sections {
		w.exec("sections", `INSERT INTO sections(id, project_id, name, position, created_at)
VALUES (?,?,?,?,?)`, s.ID, s.ProjectID, s.Name, s.Position, ts(s.CreatedAt))
	}
}

func (w *writer) tasks(g *graph.Graph) {
	for _, t := range g.Tasks {
		w.exec("tasks", `INSERT INTO tasks(id, project_id, section_id, parent_task_id, name, description, assignee_id, created_by, status, due_date, start_date, created_at, modified_at, completed_at, completed_by, is_milestone, num_likes, num_subtasks, num_comments)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			t.ID, nullableStringPtr(t.ProjectID), nullableStringPtr(t.SectionID), nullableStringPtr(t.ParentTaskID),
			t.Name, nullable(t.Description), nullableStringPtr(t.AssigneeID), t.CreatedBy, string(t.Status),
			tsPtr(t.DueDate), tsPtr(t.StartDate), ts(t.CreatedAt), ts(t.ModifiedAt),
			tsPtr(t.CompletedAt), nullableStringPtr(t.CompletedBy),
			t.IsMilestone, t.NumLikes, t.NumSubtasks, t.NumComments)
	}
}

func (w *writer) dependencies(g *graph.Graph) {
	for _, d := range g.Dependencies {
		w.exec("task_dependencies", `INSERT INTO task_dependencies(id, task_id, depends_on_task_id, created_at)
VALUES (?,?,?,?)`, d.ID, d.TaskID, d.DependsOnTaskID, ts(d.CreatedAt))
	}
}

func (w *writer) comments(g *graph.Graph) {
	for _, c := range g.Comments {
		w.exec("comments", `INSERT INTO comments(id, task_id, user_id, comment_type, text, created_at, is_pinned, num_likes)
VALUES (?,?,?,?,?,?,?,?)`, c.ID, c.TaskID, c.UserID, c.CommentType, c.Text, ts(c.CreatedAt), c.IsPinned, c.NumLikes)
	}
}

// fieldValues flattens the value union into the table's nullable columns.
func (w *writer) fieldValues(g *graph.Graph) {
	for _, fv := range g.FieldValues {
		var textVal, numberVal, dateVal, optionVal any
		if v, ok := fv.Value.Text(); ok {
			textVal = v
		}
		if v, ok := fv.Value.Number(); ok {
			numberVal = v
		}
		if v, ok := fv.Value.Date(); ok {
			dateVal = ts(v)
		}
		if v, ok := fv.Value.EnumOptionID(); ok {
			optionVal = v
		}
		w.exec("custom_field_values", `INSERT INTO custom_field_values(id, task_id, field_id, text_value, number_value, date_value, enum_option_id, created_at, modified_at)
VALUES (?,?,?,?,?,?,?,?,?)`,
			fv.ID, fv.TaskID, fv.FieldID, textVal, numberVal, dateVal, optionVal, ts(fv.CreatedAt), ts(fv.ModifiedAt))
	}
}

func (w *writer) taskTags(g *graph.Graph) {
	for _, tt := range g.TaskTags {
		w.exec("task_tags", `INSERT INTO task_tags(id, task_id, tag_id, created_at)
VALUES (?,?,?,?)`, tt.ID, tt.TaskID, tt.TagID, ts(tt.CreatedAt))
	}
}

func (w *writer) attachments(g *graph.Graph) {
	for _, a := range g.Attachments {
		w.exec("attachments", `INSERT INTO attachments(id, task_id, uploaded_by, filename, file_type, file_size, storage_url, created_at)
VALUES (?,?,?,?,?,?,?,?)`, a.ID, a.TaskID, a.UploadedBy, a.Filename, nullable(a.FileType), a.FileSize, nullable(a.StorageURL), ts(a.CreatedAt))
	}
}

func (w *writer) portfolios(g *graph.Graph) {
	for _, p := range g.Portfolios {
		w.exec("portfolios", `INSERT INTO portfolios(id, org_id, name, description, owner_id, color, created_at)
VALUES (?,?,?,?,?,?,?)`, p.ID, p.OrgID, p.Name, nullable(p.Description), nullableStringPtr(p.OwnerID), nullable(p.Color), ts(p.CreatedAt))
	}
	for _, e := range g.PortfolioEntries {
		w.exec("portfolio_projects", `INSERT INTO portfolio_projects(id, portfolio_id, project_id, created_at)
VALUES (?,?,?,?)`, e.ID, e.PortfolioID, e.ProjectID, ts(e.CreatedAt))
	}
}

var _ Sink = (*SQLite)(nil)
