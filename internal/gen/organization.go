package gen

import (
	"context"

	"workseed/internal/domain"
)

// genOrganization creates the single organization for the run, seeded from
// the company pool. Its creation instant is the simulation epoch; every
// other timestamp in the graph is at or after it.
func (g *Generator) genOrganization(_ context.Context) error {
	pool := g.ref.Companies()
	company := pool[g.s.org.IntN(len(pool))]
	g.g.Organization = &domain.Organization{
		ID:             g.id("organization"),
		Name:           company.Name,
		Domain:         company.Domain,
		IsOrganization: true,
		CreatedAt:      g.tl.Window.Start,
	}
	return nil
}
