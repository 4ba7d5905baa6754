package domain

// ProjectStatus is the terminal status assigned to a generated project.
// Transitions follow active -> {on_hold, completed, archived},
// on_hold -> {active, archived}, completed -> archived; archived is terminal.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectActive:    {ProjectOnHold, ProjectCompleted, ProjectArchived},
	ProjectOnHold:    {ProjectActive, ProjectArchived},
	ProjectCompleted: {ProjectArchived},
	ProjectArchived:  {},
}

// ValidProjectStatus reports whether s is a member of the enumeration.
func ValidProjectStatus(s ProjectStatus) bool {
	_, ok := projectTransitions[s]
	return ok
}

// CanTransition reports whether a project may move from one status to another.
func CanTransition(from, to ProjectStatus) bool {
	for _, next := range projectTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Reachable reports whether a status is reachable from active, which every
// generated project implicitly starts in.
func Reachable(s ProjectStatus) bool {
	if s == ProjectActive {
		return true
	}
	seen := map[ProjectStatus]bool{ProjectActive: true}
	frontier := []ProjectStatus{ProjectActive}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, next := range projectTransitions[cur] {
			if next == s {
				return true
			}
			if !seen[next] {
				seen[next] = true
				frontier = append(frontier, next)
			}
		}
	}
	return false
}

type TaskStatus string

const (
	TaskIncomplete TaskStatus = "incomplete"
	TaskComplete   TaskStatus = "complete"
)

func ValidTaskStatus(s TaskStatus) bool {
	return s == TaskIncomplete || s == TaskComplete
}

// User roles, heaviest weight on member.
const (
	RoleAdmin         = "admin"
	RoleMember        = "member"
	RoleLimitedAccess = "limited_access"
	RoleGuest         = "guest"
)

func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleMember, RoleLimitedAccess, RoleGuest:
		return true
	}
	return false
}
