package gen

import (
	"context"
	"fmt"
	"sort"
	"time"

	"workseed/internal/config"
	"workseed/internal/domain"
	"workseed/internal/refdata"
)

// departments returns the configured department names in a stable order so
// map iteration never influences the draw sequence.
func (g *Generator) departments() []string {
	depts := make([]string, 0, len(g.cfg.Teams.Distribution))
	for d := range g.cfg.Teams.Distribution {
		depts = append(depts, d)
	}
	sort.Strings(depts)
	return depts
}

func (g *Generator) sizeRange(dept string) config.Range {
	if sz, ok := g.cfg.Teams.SizeRanges[dept]; ok {
		return sz
	}
	return config.Range{Min: 5, Max: 10}
}

// genTeams allocates teams per department: headcount share divided by the
// department's average team size, at least one team per department with any
// headcount at all.
func (g *Generator) genTeams(_ context.Context) error {
	epoch := g.g.Organization.CreatedAt
	for _, dept := range g.departments() {
		headcount := int(float64(g.cfg.Employees) * g.cfg.Teams.Distribution[dept])
		if headcount == 0 {
			continue
		}
		sz := g.sizeRange(dept)
		avg := float64(sz.Min+sz.Max) / 2
		numTeams := int(float64(headcount) / avg)
		if numTeams < 1 {
			numTeams = 1
		}
		for i := 0; i < numTeams; i++ {
			name := dept
			if numTeams > 1 {
				if ident := refdata.TeamIdentifier(dept, i); ident != "" {
					name = fmt.Sprintf("%s - %s", dept, ident)
				} else {
					name = fmt.Sprintf("%s - Team %d", dept, i+1)
				}
			}
			created, err := g.tl.Between(g.s.team, epoch, epoch.AddDate(0, 0, 30))
			if err != nil {
				return err
			}
			g.g.Teams = append(g.g.Teams, domain.Team{
				ID:          g.id("team"),
				OrgID:       g.g.Organization.ID,
				Name:        name,
				Description: refdata.TeamDescription(dept),
				TeamType:    dept,
				CreatedAt:   created,
			})
		}
	}
	return nil
}

func latestCreated(times ...time.Time) time.Time {
	out := times[0]
	for _, t := range times[1:] {
		if t.After(out) {
			out = t
		}
	}
	return out
}
