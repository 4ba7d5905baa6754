package gen

import (
	"context"

	"workseed/internal/domain"
	"workseed/internal/refdata"
)

// genCustomFields installs the standard custom field catalog with its enum
// options. Definitions are org-global; option positions follow catalog order.
func (g *Generator) genCustomFields(_ context.Context) error {
	for _, spec := range refdata.StandardFields {
		def := domain.CustomFieldDefinition{
			ID:        g.id("custom_field_definition"),
			OrgID:     g.g.Organization.ID,
			Name:      spec.Name,
			FieldType: spec.Type,
			IsGlobal:  true,
			CreatedAt: g.g.Organization.CreatedAt,
		}
		g.g.Fields = append(g.g.Fields, def)
		g.fieldByName[spec.Name] = def.ID
		for i, optName := range spec.Options {
			opt := domain.CustomFieldEnumOption{
				ID:       g.id("custom_field_enum_option"),
				FieldID:  def.ID,
				Name:     optName,
				Color:    refdata.OptionColors[i%len(refdata.OptionColors)],
				Position: i,
				Enabled:  true,
			}
			g.g.FieldOptions = append(g.g.FieldOptions, opt)
			g.optionsByFld[def.ID] = append(g.optionsByFld[def.ID], opt.ID)
		}
	}
	return nil
}

// genTags seeds the org-wide tag vocabulary; names are unique per org by
// construction.
func (g *Generator) genTags(_ context.Context) error {
	for i, name := range refdata.CommonTags {
		g.g.Tags = append(g.g.Tags, domain.Tag{
			ID:        g.id("tag"),
			OrgID:     g.g.Organization.ID,
			Name:      name,
			Color:     refdata.TagColors[i%len(refdata.TagColors)],
			CreatedAt: g.g.Organization.CreatedAt,
		})
	}
	return nil
}
