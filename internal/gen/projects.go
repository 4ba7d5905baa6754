package gen

import (
	"context"
	"fmt"
	"math/rand/v2"

	"workseed/internal/content"
	"workseed/internal/dist"
	"workseed/internal/domain"
	"workseed/internal/refdata"
)

// normalizeWorkflow maps a team type onto the workflow families that carry
// naming patterns and section templates; departments without a family of
// their own run Operations-style boards.
func normalizeWorkflow(teamType string) string {
	switch teamType {
	case "Engineering", "Marketing", "Product", "Design", "Operations":
		return teamType
	}
	return "Operations"
}

// genProjects creates projects for every team that has members. The project
// count per team is sampled around the configured ratio; type, status, and
// owner come from their weight maps. A project is team-scoped with the
// configured probability, and a team-scoped project's owner is always a
// member of that team.
func (g *Generator) genProjects(_ context.Context) error {
	for ti := range g.g.Teams {
		team := g.g.Teams[ti]
		members := g.membersByTeam[team.ID]
		if len(members) == 0 {
			continue
		}
		n := g.countIn(g.s.project, g.cfg.Volumes.ProjectsPerTeam)
		for i := 0; i < n; i++ {
			err := g.withRetry("project", func() error {
				p, err := g.buildProject(team, members)
				if err != nil {
					return err
				}
				g.g.Projects = append(g.g.Projects, p)
				return nil
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) buildProject(team domain.Team, members []string) (domain.Project, error) {
	workflow := normalizeWorkflow(team.TeamType)
	typeWeights, ok := g.cfg.ProjectTypes[team.TeamType]
	if !ok {
		typeWeights = map[string]float64{"List": 0.5, "Kanban": 0.5}
	}
	projectType := dist.ChooseFromMap(g.s.project, typeWeights)

	patterns := g.ref.ProjectPatterns(workflow)
	name := content.Expand(g.s.project, patterns[g.s.project.IntN(len(patterns))], g.ref.Pools())

	status := domain.ProjectStatus(dist.ChooseFromMap(g.s.project, g.cfg.ProjectStatus))
	if !domain.ValidProjectStatus(status) || !domain.Reachable(status) {
		return domain.Project{}, fmt.Errorf("project status %q not reachable from active", status)
	}

	// Leave a month of runway so projects created late still accumulate
	// believable task activity.
	latestStart := g.now().AddDate(0, 0, -30)
	created, err := g.tl.WorkdayBetween(g.s.project, team.CreatedAt, latestStart)
	if err != nil {
		return domain.Project{}, err
	}

	p := domain.Project{
		ID:           g.id("project"),
		OrgID:        g.g.Organization.ID,
		Name:         name,
		ProjectType:  projectType,
		WorkflowType: workflow,
		Status:       status,
		IsPublic:     true,
		Color:        randomColor(g.s.project),
		CreatedAt:    created,
	}

	if dist.Bernoulli(g.s.project, g.cfg.Rates.TeamScoped) {
		teamID := team.ID
		owner := members[g.s.project.IntN(len(members))]
		p.TeamID = &teamID
		p.OwnerID = &owner
	} else if len(g.g.Users) > 0 {
		owner := g.g.Users[g.s.project.IntN(len(g.g.Users))].ID
		p.OwnerID = &owner
	}

	switch status {
	case domain.ProjectCompleted:
		done, err := g.tl.Between(g.s.project, created, g.now())
		if err != nil {
			return domain.Project{}, err
		}
		p.CompletedAt = &done
	case domain.ProjectArchived:
		// Roughly half of archived projects were completed first; the rest
		// were archived straight from active or on_hold.
		if dist.Bernoulli(g.s.project, 0.5) {
			done, err := g.tl.Between(g.s.project, created, g.now())
			if err != nil {
				return domain.Project{}, err
			}
			archived, err := g.tl.Between(g.s.project, done, g.now())
			if err != nil {
				return domain.Project{}, err
			}
			p.CompletedAt = &done
			p.ArchivedAt = &archived
		} else {
			archived, err := g.tl.Between(g.s.project, created, g.now())
			if err != nil {
				return domain.Project{}, err
			}
			p.ArchivedAt = &archived
		}
	}
	return p, nil
}

// genSections lays out each project's board from its workflow template.
// Positions are the template order; creation matches the project.
func (g *Generator) genSections(_ context.Context) error {
	for _, p := range g.g.Projects {
		for i, name := range refdata.Sections(p.WorkflowType) {
			s := domain.Section{
				ID:        g.id("section"),
				ProjectID: p.ID,
				Name:      name,
				Position:  i,
				CreatedAt: p.CreatedAt,
			}
			g.g.Sections = append(g.g.Sections, s)
			g.sectionsByPrj[p.ID] = append(g.sectionsByPrj[p.ID], s.ID)
		}
	}
	return nil
}

func randomColor(r *rand.Rand) string {
	const hex = "0123456789ABCDEF"
	b := make([]byte, 7)
	b[0] = '#'
	for i := 1; i < 7; i++ {
		b[i] = hex[r.IntN(16)]
	}
	return string(b)
}
