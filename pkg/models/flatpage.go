package models

type PageType string

const (
	PageIntro   PageType = "intro"
	PageCompany PageType = "company"
	PageOutro   PageType = "outro"
)

// FlatPage is one unit of the fully ordered, fully merged page sequence of
// an edition: intro pages first, then company pages in resolved order, then
// outro pages. GlobalIndex is the contiguous 0-based concatenation position
// and the canonical page number shown to the user (1-based in the UI).
// FlatPage is derived on every request and never persisted.
type FlatPage struct {
	GlobalIndex int      `json:"global_index"`
	Type        PageType `json:"type"`
	ImageURL    string   `json:"image_url"`
	CompanySlug string   `json:"company_slug,omitempty"`
	CompanyName string   `json:"company_name,omitempty"`
}

// Spread is a two-up view unit for wide viewports, analogous to two facing
// pages of a physical book. A side is nil only on the very first spread
// (front cover), the very last spread (back cover), or when the catalog has
// exactly one page.
type Spread struct {
	Left  *FlatPage `json:"left,omitempty"`
	Right *FlatPage `json:"right,omitempty"`
}

// Contains reports whether either side of the spread is the flat page with
// the given global index.
func (s Spread) Contains(index int) bool {
	if s.Left != nil && s.Left.GlobalIndex == index {
		return true
	}
	if s.Right != nil && s.Right.GlobalIndex == index {
		return true
	}
	return false
}

// ComposedCompany is one company section of the composed catalog payload:
// slug and name for deep-linking plus the company's pages in ascending
// page-number order.
type ComposedCompany struct {
	CompanyID string           `json:"company_id"`
	Slug      string           `json:"slug"`
	Name      string           `json:"name"`
	LogoURL   string           `json:"logo_url,omitempty"`
	Pages     []AssignmentPage `json:"pages"`
}

type CatalogCounts struct {
	Intro        int `json:"intro"`
	CompanyPages int `json:"company_pages"`
	Outro        int `json:"outro"`
	Companies    int `json:"companies"`
	Total        int `json:"total"`
}

// ComposedCatalog is the read-endpoint payload consumed by the viewer: the
// structured sections, the flat page sequence derived from them, and the
// aggregate counts. Recomputed on every request so it always reflects the
// latest admin edits.
type ComposedCatalog struct {
	PortalSlug  string            `json:"portal_slug"`
	EditionSlug string            `json:"edition_slug"`
	EditionName string            `json:"edition_name"`
	Intro       []CatalogPage     `json:"intro"`
	Companies   []ComposedCompany `json:"companies"`
	Outro       []CatalogPage     `json:"outro"`
	Pages       []FlatPage        `json:"pages"`
	Counts      CatalogCounts     `json:"counts"`
}
