package gen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"workseed/internal/dist"
	"workseed/internal/domain"
	"workseed/internal/refdata"
)

// genUsers produces the employee population: census-weighted names, unique
// emails on the org domain, role and department draws, and activity
// recency (most users active within the last week, a small dormant tail).
func (g *Generator) genUsers(_ context.Context) error {
	n := dist.CountAround(g.s.user, g.cfg.Employees, g.cfg.Volumes.CountTolerance)
	first := g.ref.FirstNames()
	last := g.ref.LastNames()
	firstNames := make([]string, len(first))
	firstWeights := make([]float64, len(first))
	for i, w := range first {
		firstNames[i], firstWeights[i] = w.Name, w.Weight
	}
	lastNames := make([]string, len(last))
	lastWeights := make([]float64, len(last))
	for i, w := range last {
		lastNames[i], lastWeights[i] = w.Name, w.Weight
	}

	usedEmails := map[string]bool{}
	epoch := g.g.Organization.CreatedAt
	now := g.now()
	for i := 0; i < n; i++ {
		fn := dist.ChooseWeighted(g.s.user, firstNames, firstWeights)
		ln := dist.ChooseWeighted(g.s.user, lastNames, lastWeights)
		email := pickEmail(usedEmails, fn, ln, g.g.Organization.Domain)

		role := dist.ChooseFromMap(g.s.user, g.cfg.UserRoles)
		dept := dist.ChooseFromMap(g.s.user, g.cfg.Teams.Distribution)
		titles := refdata.JobTitles(dept)
		title := titles[g.s.user.IntN(len(titles))]

		created, err := g.tl.Between(g.s.user, epoch, epoch.AddDate(0, 0, 60))
		if err != nil {
			return err
		}

		var lastActive time.Time
		if dist.Bernoulli(g.s.user, 0.95) {
			lastActive = now.Add(-time.Duration(g.s.user.Int64N(int64(7 * 24 * time.Hour))))
		} else {
			days := dist.IntBetween(g.s.user, 30, 180)
			lastActive = now.AddDate(0, 0, -days)
		}
		if lastActive.Before(created) {
			lastActive = created
		}

		u := domain.User{
			ID:           g.id("user"),
			OrgID:        g.g.Organization.ID,
			Email:        email,
			FirstName:    fn,
			LastName:     ln,
			Role:         role,
			JobTitle:     title,
			Department:   dept,
			IsActive:     true,
			CreatedAt:    created,
			LastActiveAt: &lastActive,
		}
		g.g.AddUser(u)
		g.usersByDept[dept] = append(g.usersByDept[dept], u.ID)
		if role == domain.RoleAdmin {
			g.admins = append(g.admins, u.ID)
		}
	}
	return nil
}

// pickEmail tries the common corporate formats before falling back to a
// numbered suffix, never reusing an address.
func pickEmail(used map[string]bool, first, last, domainName string) string {
	f := strings.ToLower(first)
	l := strings.ToLower(last)
	candidates := []string{
		fmt.Sprintf("%s.%s@%s", f, l, domainName),
		fmt.Sprintf("%s%s@%s", f[:1], l, domainName),
		fmt.Sprintf("%s%s@%s", f, l[:1], domainName),
		fmt.Sprintf("%s%s@%s", f, l, domainName),
	}
	for _, c := range candidates {
		if !used[c] {
			used[c] = true
			return c
		}
	}
	for i := 1; ; i++ {
		c := fmt.Sprintf("%s.%s%d@%s", f, l, i, domainName)
		if !used[c] {
			used[c] = true
			return c
		}
	}
}
