package compose

import (
	"context"

	"cataloghub/internal/company"
	"cataloghub/internal/order"
	"cataloghub/internal/pages"
	"cataloghub/pkg/models"
)

// Assembler turns an edition's stored pieces into the composed catalog: the
// ordered intro/outro sections, the resolved company sections and the flat
// page sequence the viewer paginates. Nothing is cached; every call reflects
// the latest admin edits.
type Assembler struct {
	Pages     *pages.Repo
	Companies *company.Repo
	Resolver  *order.Resolver
}

func NewAssembler(p *pages.Repo, c *company.Repo, r *order.Resolver) *Assembler {
	return &Assembler{Pages: p, Companies: c, Resolver: r}
}

// Assemble builds the composed catalog for an edition. A missing edition
// simply has no rows anywhere and comes back with zero counts; callers
// distinguish not-found from empty before calling.
func (a *Assembler) Assemble(ctx context.Context, editionID string) (*models.ComposedCatalog, error) {
	intro, err := a.Pages.ListByKind(ctx, editionID, models.KindIntro)
	if err != nil {
		return nil, err
	}
	outro, err := a.Pages.ListByKind(ctx, editionID, models.KindOutro)
	if err != nil {
		return nil, err
	}

	assigned, err := a.Companies.ListAssigned(ctx, editionID)
	if err != nil {
		return nil, err
	}
	records, err := a.Resolver.Orders.ListByEdition(ctx, editionID)
	if err != nil {
		return nil, err
	}
	resolved := order.ResolveOrder(assigned, records)

	sections := Sections(resolved, assigned)
	flat := Flatten(intro, sections, outro)

	companyPages := 0
	for _, s := range sections {
		companyPages += len(s.Pages)
	}

	return &models.ComposedCatalog{
		Intro:     intro,
		Companies: sections,
		Outro:     outro,
		Pages:     flat,
		Counts: models.CatalogCounts{
			Intro:        len(intro),
			CompanyPages: companyPages,
			Outro:        len(outro),
			Companies:    len(sections),
			Total:        len(flat),
		},
	}, nil
}

// Sections projects the resolved order onto the company page sections of
// the composed catalog. Hidden companies never appear; a visible company
// with zero pages contributes no section and leaves no gap.
func Sections(resolved []models.ResolvedCompany, assigned []models.AssignedCompany) []models.ComposedCompany {
	pagesByCompany := make(map[string][]models.AssignmentPage, len(assigned))
	logoByCompany := make(map[string]string, len(assigned))
	for _, ac := range assigned {
		pagesByCompany[ac.Company.ID] = ac.Pages
		logoByCompany[ac.Company.ID] = ac.Company.LogoURL
	}

	sections := make([]models.ComposedCompany, 0, len(resolved))
	for _, rc := range resolved {
		if !rc.Visible {
			continue
		}
		companyPages := pagesByCompany[rc.CompanyID]
		if len(companyPages) == 0 {
			// assigned but empty: contributes nothing
			continue
		}
		sections = append(sections, models.ComposedCompany{
			CompanyID: rc.CompanyID,
			Slug:      rc.Slug,
			Name:      rc.Name,
			LogoURL:   logoByCompany[rc.CompanyID],
			Pages:     companyPages,
		})
	}
	return sections
}

// Flatten concatenates intro pages, company sections and outro pages into
// the canonical flat sequence. Global indexes are assigned last: 0-based,
// contiguous, no gaps, whatever the inputs look like.
func Flatten(intro []models.CatalogPage, sections []models.ComposedCompany, outro []models.CatalogPage) []models.FlatPage {
	flat := make([]models.FlatPage, 0, len(intro)+len(outro))

	for _, p := range intro {
		flat = append(flat, models.FlatPage{
			Type:     models.PageIntro,
			ImageURL: p.ImageURL,
		})
	}
	for _, s := range sections {
		for _, p := range s.Pages {
			flat = append(flat, models.FlatPage{
				Type:        models.PageCompany,
				ImageURL:    p.ImageURL,
				CompanySlug: s.Slug,
				CompanyName: s.Name,
			})
		}
	}
	for _, p := range outro {
		flat = append(flat, models.FlatPage{
			Type:     models.PageOutro,
			ImageURL: p.ImageURL,
		})
	}

	for i := range flat {
		flat[i].GlobalIndex = i
	}
	return flat
}
