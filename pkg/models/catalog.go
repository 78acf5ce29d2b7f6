package models

// Portal is one tenant of the platform. Every edition, company and page
// hangs off a portal; the public read endpoints address portals by slug.
type Portal struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Edition is one published catalog issue of a portal (e.g. a seasonal
// brochure).
type Edition struct {
	ID        string `json:"id"`
	PortalID  string `json:"portal_id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Published bool   `json:"published"`
}

type PageKind string

const (
	KindIntro PageKind = "intro"
	KindOutro PageKind = "outro"
)

// CatalogPage is a decorative page placed before (intro) or after (outro)
// the company pages of an edition. Order values are unique per
// (edition, kind) but gaps are allowed.
type CatalogPage struct {
	ID        string   `json:"id"`
	EditionID string   `json:"edition_id"`
	Kind      PageKind `json:"kind"`
	Order     int      `json:"order"`
	ImageURL  string   `json:"image_url"`
}
