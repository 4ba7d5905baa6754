package content

import (
	"context"
	"math/rand/v2"
	"strings"
)

// Template is the deterministic provider. It owns one random sub-stream and
// renders canned patterns, so runs that never reach a remote provider stay
// byte-reproducible.
type Template struct {
	Rand *rand.Rand
}

func NewTemplate(r *rand.Rand) *Template {
	return &Template{Rand: r}
}

var taskPatterns = map[string][]string{
	"Engineering": {
		"Fix {bug} in {component}",
		"Implement {feature}",
		"Refactor {component}",
		"Add tests for {feature}",
		"Optimize {component} performance",
		"Update {component} documentation",
		"Migrate {component} to {tech}",
	},
	"Marketing": {
		"Create {asset} for {campaign}",
		"Schedule {content} posts",
		"Review {campaign} performance",
		"Design {asset}",
		"Write {content} copy",
		"Plan {event}",
	},
	"Product": {
		"Define requirements for {feature}",
		"Create spec for {feature}",
		"User research on {topic}",
		"Analyze {metric} data",
		"Prioritize {area} backlog",
	},
	"Design": {
		"Design {component} mockups",
		"Create {asset} assets",
		"Conduct usability testing for {feature}",
		"Update design system {component}",
	},
}

var taskPools = map[string][]string{
	"bug":       {"authentication error", "API timeout", "UI glitch", "memory leak"},
	"component": {"dashboard", "API", "database", "frontend", "auth service"},
	"feature":   {"user profiles", "notifications", "search", "analytics", "export"},
	"tech":      {"TypeScript", "React", "GraphQL", "PostgreSQL"},
	"asset":     {"email template", "landing page", "social post", "infographic"},
	"campaign":  {"Q1 launch", "product release", "brand awareness", "webinar"},
	"content":   {"blog", "social media", "email", "video"},
	"event":     {"webinar", "conference", "product launch", "workshop"},
	"metric":    {"engagement", "conversion", "retention", "churn"},
	"topic":     {"onboarding", "navigation", "checkout", "settings"},
	"area":      {"features", "bugs", "technical debt", "improvements"},
}

var commentBodies = []string{
	"Working on this now",
	"Updated the implementation",
	"Ready for review",
	"Looks good to me",
	"Need more info on this",
	"Blocked by another task",
	"Can we prioritize this?",
}

func (t *Template) GenerateText(_ context.Context, req Request) (string, error) {
	switch req.Kind {
	case TaskName:
		patterns, ok := taskPatterns[req.WorkflowType]
		if !ok {
			patterns = taskPatterns["Engineering"]
		}
		pattern := patterns[t.Rand.IntN(len(patterns))]
		return Expand(t.Rand, pattern, taskPools), nil
	case TaskDescription:
		// 20% empty, 50% short, 30% detailed.
		switch x := t.Rand.Float64(); {
		case x < 0.2:
			return "", nil
		case x < 0.7:
			return "Work on: " + strings.ToLower(req.ParentTaskName), nil
		default:
			return "Task details:\n- " + req.ParentTaskName + "\n- Please review and implement\n- Coordinate with team", nil
		}
	case CommentBody:
		return commentBodies[t.Rand.IntN(len(commentBodies))], nil
	}
	return "", nil
}
