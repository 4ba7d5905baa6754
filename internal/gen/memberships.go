package gen

import (
	"context"
	"time"

	"workseed/internal/dist"
	"workseed/internal/domain"
	"workseed/internal/refdata"
)

// genMemberships assigns users to teams within their department. Team size
// comes from a bounded log-normal clipped to the department's range; each
// team gets exactly one lead. Users leave the department pool once placed,
// so a (team, user) pair can never repeat.
func (g *Generator) genMemberships(_ context.Context) error {
	pools := map[string][]string{}
	for dept, ids := range g.usersByDept {
		pool := make([]string, len(ids))
		copy(pool, ids)
		pools[dept] = pool
	}

	for ti := range g.g.Teams {
		team := &g.g.Teams[ti]
		pool := pools[team.TeamType]
		if len(pool) == 0 {
			continue
		}
		sz := g.sizeRange(team.TeamType)
		size := dist.LogNormalInt(g.s.membership, g.cfg.Teams.SizeMu, g.cfg.Teams.SizeSigma, sz.Min, sz.Max)
		if size > len(pool) {
			size = len(pool)
		}

		perm := g.s.membership.Perm(len(pool))
		members := make([]string, size)
		taken := map[int]bool{}
		for i := 0; i < size; i++ {
			members[i] = pool[perm[i]]
			taken[perm[i]] = true
		}
		remaining := pool[:0]
		for i, id := range pool {
			if !taken[i] {
				remaining = append(remaining, id)
			}
		}
		pools[team.TeamType] = remaining

		leadIdx := g.s.membership.IntN(len(members))
		senior := make([]bool, len(members))
		for i, userID := range members {
			u, _ := g.g.User(userID)
			senior[i] = refdata.SeniorTitle(u.JobTitle)
			joined := latestCreated(team.CreatedAt, u.CreatedAt)
			joined = joined.Add(time.Duration(g.s.membership.Int64N(int64(30 * 24 * time.Hour))))
			if joined.After(g.now()) {
				joined = g.now()
			}
			g.g.Memberships = append(g.g.Memberships, domain.TeamMembership{
				ID:         g.id("team_membership"),
				TeamID:     team.ID,
				UserID:     userID,
				IsTeamLead: i == leadIdx,
				JoinedAt:   joined,
			})
		}
		g.membersByTeam[team.ID] = members
		g.seniorByTeam[team.ID] = senior
		g.leadByTeam[team.ID] = members[leadIdx]
	}
	return nil
}
