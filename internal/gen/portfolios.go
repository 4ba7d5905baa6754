package gen

import (
	"context"
	"time"

	"workseed/internal/dist"
	"workseed/internal/domain"
)

var portfolioNames = []string{
	"Q1 Initiatives", "Q2 Initiatives", "Q3 Initiatives", "Q4 Initiatives",
	"Company OKRs", "Product Roadmap", "Engineering Roadmap",
	"Growth Experiments", "Customer Commitments", "Strategic Bets",
	"Annual Planning", "Platform Investments",
}

// genPortfolios groups projects into executive-level portfolios. Owners are
// drawn from admins and team leads, and a portfolio is created only after
// every project it tracks exists.
func (g *Generator) genPortfolios(_ context.Context) error {
	if len(g.g.Projects) == 0 || g.cfg.Volumes.Portfolios <= 0 {
		return nil
	}
	owners := g.portfolioOwners()
	if len(owners) == 0 {
		return nil
	}

	n := g.cfg.Volumes.Portfolios
	if n > len(portfolioNames) {
		n = len(portfolioNames)
	}
	names := append([]string(nil), portfolioNames...)
	g.s.portfolio.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	for i := 0; i < n; i++ {
		size := dist.IntBetween(g.s.portfolio, 2, 8)
		if size > len(g.g.Projects) {
			size = len(g.g.Projects)
		}
		picked := g.s.portfolio.Perm(len(g.g.Projects))[:size]

		preds := make([]time.Time, 0, size)
		for _, pi := range picked {
			preds = append(preds, g.g.Projects[pi].CreatedAt)
		}
		created, err := g.tl.After(g.s.portfolio, preds, 30*24*time.Hour)
		if err != nil {
			continue
		}
		ownerID := owners[g.s.portfolio.IntN(len(owners))]
		p := domain.Portfolio{
			ID:        g.id("portfolio"),
			OrgID:     g.g.Organization.ID,
			Name:      names[i],
			OwnerID:   &ownerID,
			Color:     randomColor(g.s.portfolio),
			CreatedAt: created,
		}
		g.g.Portfolios = append(g.g.Portfolios, p)

		for _, pi := range picked {
			entry, err := g.tl.After(g.s.portfolio, []time.Time{created}, 24*time.Hour)
			if err != nil {
				entry = created
			}
			g.g.PortfolioEntries = append(g.g.PortfolioEntries, domain.PortfolioProject{
				ID:          g.id("portfolio_project"),
				PortfolioID: p.ID,
				ProjectID:   g.g.Projects[pi].ID,
				CreatedAt:   entry,
			})
		}
	}
	return nil
}

// portfolioOwners returns admins plus team leads, de-duplicated, in a stable
// order.
func (g *Generator) portfolioOwners() []string {
	seen := map[string]bool{}
	var owners []string
	for _, id := range g.admins {
		if !seen[id] {
			seen[id] = true
			owners = append(owners, id)
		}
	}
	for _, team := range g.g.Teams {
		if lead, ok := g.leadByTeam[team.ID]; ok && !seen[lead] {
			seen[lead] = true
			owners = append(owners, lead)
		}
	}
	return owners
}
