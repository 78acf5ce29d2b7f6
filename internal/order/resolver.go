package order

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"cataloghub/pkg/models"
)

// Companies not covered by an order record sort after all custom-ordered
// ones; the sentinel keeps the merge in one slice.
const fallbackPosition = 1 << 30

type AssignedLister interface {
	ListAssigned(ctx context.Context, editionID string) ([]models.AssignedCompany, error)
}

// Resolver produces the definitive company order for an edition: the
// manually curated order where one exists, a Czech-collated alphabetical
// fallback where it does not.
type Resolver struct {
	Orders    *Repo
	Companies AssignedLister
}

func NewResolver(orders *Repo, companies AssignedLister) *Resolver {
	return &Resolver{Orders: orders, Companies: companies}
}

// Resolve loads the edition's assignments and order records and merges them.
// A missing or empty edition yields an empty slice, not an error.
func (rv *Resolver) Resolve(ctx context.Context, editionID string) ([]models.ResolvedCompany, error) {
	assigned, err := rv.Companies.ListAssigned(ctx, editionID)
	if err != nil {
		return nil, err
	}
	records, err := rv.Orders.ListByEdition(ctx, editionID)
	if err != nil {
		return nil, err
	}
	return ResolveOrder(assigned, records), nil
}

// ResolveOrder merges active assigned companies with the edition's order
// records. Companies with a record keep its position and visibility;
// companies without one get the sentinel position and stay visible. Custom
// entries sort before fallback entries; custom by stored position, fallback
// alphabetically by name under Czech collation (diacritics-aware, not byte
// order). Positions in the output are renumbered to a dense 0-based
// sequence. Stale records pointing at inactive or unassigned companies are
// dropped silently because only assigned companies enter the merge.
func ResolveOrder(assigned []models.AssignedCompany, records map[string]models.OrderRecord) []models.ResolvedCompany {
	out := make([]models.ResolvedCompany, 0, len(assigned))
	for _, ac := range assigned {
		rc := models.ResolvedCompany{
			CompanyID: ac.Company.ID,
			Slug:      ac.Company.Slug,
			Name:      ac.Company.Name,
			Position:  fallbackPosition,
			Visible:   true,
		}
		if rec, ok := records[ac.Company.ID]; ok {
			rc.Position = rec.Position
			rc.Visible = rec.Visible
			rc.Custom = true
		}
		out = append(out, rc)
	}

	coll := collate.New(language.Czech)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Custom != b.Custom {
			return a.Custom
		}
		if a.Custom {
			if a.Position != b.Position {
				return a.Position < b.Position
			}
			return a.CompanyID < b.CompanyID
		}
		if c := coll.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		// equal names: company id keeps the order stable across calls
		return a.CompanyID < b.CompanyID
	})

	for i := range out {
		out[i].Position = i
	}
	return out
}
