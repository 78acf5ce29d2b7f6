package models

// OrderRecord is one row of an edition's manually curated company order.
// The existence of any record for an edition means the custom order is
// active; with no records the resolver falls back to alphabetical ordering.
// At most one record exists per (edition, company); the full set is replaced
// wholesale on every save.
type OrderRecord struct {
	EditionID string `json:"edition_id"`
	CompanyID string `json:"company_id"`
	PortalID  string `json:"portal_id"`
	Position  int    `json:"position"`
	Visible   bool   `json:"visible"`
}

// ResolvedCompany is one row of the definitive company order for an
// edition. Position is the dense 0-based output index, not the stored one.
type ResolvedCompany struct {
	CompanyID string `json:"company_id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Position  int    `json:"position"`
	Visible   bool   `json:"visible"`
	Custom    bool   `json:"custom"`
}
