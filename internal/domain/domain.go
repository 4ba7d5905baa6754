package domain

import "time"

type Organization struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Domain         string    `json:"domain"`
	IsOrganization bool      `json:"is_organization"`
	CreatedAt      time.Time `json:"created_at"`
}

type Team struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TeamType    string    `json:"team_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type User struct {
	ID           string     `json:"id"`
	OrgID        string     `json:"org_id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         string     `json:"role"`
	JobTitle     string     `json:"job_title,omitempty"`
	Department   string     `json:"department,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

type TeamMembership struct {
	ID         string    `json:"id"`
	TeamID     string    `json:"team_id"`
	UserID     string    `json:"user_id"`
	IsTeamLead bool      `json:"is_team_lead"`
	JoinedAt   time.Time `json:"joined_at"`
}

type Project struct {
	ID           string        `json:"id"`
	OrgID        string        `json:"org_id"`
	TeamID       *string       `json:"team_id,omitempty"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	ProjectType  string        `json:"project_type"`
	WorkflowType string        `json:"workflow_type"`
	Status       ProjectStatus `json:"status"`
	OwnerID      *string       `json:"owner_id,omitempty"`
	IsPublic     bool          `json:"is_public"`
	Color        string        `json:"color,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	DueDate      *time.Time    `json:"due_date,omitempty"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
	ArchivedAt   *time.Time    `json:"archived_at,omitempty"`
}

type Section struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type Task struct {
	ID           string     `json:"id"`
	ProjectID    *string    `json:"project_id,omitempty"`
	SectionID    *string    `json:"section_id,omitempty"`
	ParentTaskID *string    `json:"parent_task_id,omitempty"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	AssigneeID   *string    `json:"assignee_id,omitempty"`
	CreatedBy    string     `json:"created_by"`
	Status       TaskStatus `json:"status"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ModifiedAt   time.Time  `json:"modified_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CompletedBy  *string    `json:"completed_by,omitempty"`
	IsMilestone  bool       `json:"is_milestone"`
	NumLikes     int        `json:"num_likes"`
	NumSubtasks  int        `json:"num_subtasks"`
	NumComments  int        `json:"num_comments"`
}

type TaskDependency struct {
	ID              string    `json:"id"`
	TaskID          string    `json:"task_id"`
	DependsOnTaskID string    `json:"depends_on_task_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type Comment struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"task_id"`
	UserID      string    `json:"user_id"`
	CommentType string    `json:"comment_type"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
	IsPinned    bool      `json:"is_pinned"`
	NumLikes    int       `json:"num_likes"`
}

type CustomFieldDefinition struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FieldType   FieldType `json:"field_type"`
	IsGlobal    bool      `json:"is_global"`
	CreatedAt   time.Time `json:"created_at"`
}

type CustomFieldEnumOption struct {
	ID       string `json:"id"`
	FieldID  string `json:"field_id"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	Position int    `json:"position"`
	Enabled  bool   `json:"enabled"`
}

// CustomFieldValue pairs a task with one value for one field definition.
// The value is a closed union; the flat nullable-column shape exists only
// at the persistence boundary.
type CustomFieldValue struct {
	ID         string     `json:"id"`
	TaskID     string     `json:"task_id"`
	FieldID    string     `json:"field_id"`
	Value      FieldValue `json:"value"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt time.Time  `json:"modified_at"`
}

type Tag struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TaskTag struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Attachment struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	UploadedBy string    `json:"uploaded_by"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type,omitempty"`
	FileSize   int64     `json:"file_size,omitempty"`
	StorageURL string    `json:"storage_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Portfolio struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     *string   `json:"owner_id,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PortfolioProject struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolio_id"`
	ProjectID   string    `json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
}
