package models

// Company participates in catalog composition only while active.
type Company struct {
	ID       string `json:"id"`
	PortalID string `json:"portal_id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	LogoURL  string `json:"logo_url,omitempty"`
	Active   bool   `json:"active"`
}

// AssignmentPage is one brochure page of a company within an edition.
// PageNumber starts at 1 and is unique within the assignment.
type AssignmentPage struct {
	PageNumber int    `json:"page_number"`
	ImageURL   string `json:"image_url"`
}

// PageAssignment binds a company's pages to an edition. The page list is
// stored as a JSON text column in sqlite and rendered ascending by
// page number. An assignment with zero pages contributes nothing to the
// composed catalog.
type PageAssignment struct {
	ID        string           `json:"id"`
	CompanyID string           `json:"company_id"`
	EditionID string           `json:"edition_id"`
	Pages     []AssignmentPage `json:"pages"`
}

// AssignedCompany is an active company joined with its page assignment for
// one edition, as loaded by the company repo for the order resolver and the
// flat page assembler.
type AssignedCompany struct {
	Company Company          `json:"company"`
	Pages   []AssignmentPage `json:"pages"`
}
