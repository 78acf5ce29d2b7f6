package company

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"cataloghub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// ListAssigned returns the active companies assigned to an edition together
// with their parsed page lists, pages ascending by page number. Inactive
// companies are filtered out here so neither the resolver nor the assembler
// ever sees them. Output order is incidental (the resolver owns ordering).
func (r *Repo) ListAssigned(ctx context.Context, editionID string) ([]models.AssignedCompany, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.portal_id, c.slug, c.name, c.logo_url, c.active, ec.pages
		FROM edition_companies ec
		JOIN companies c ON c.id = ec.company_id
		WHERE ec.edition_id = ? AND c.active = 1
	`, editionID)
	if err != nil {
		return nil, fmt.Errorf("list assigned companies: %w", err)
	}
	defer rows.Close()

	var out []models.AssignedCompany
	for rows.Next() {
		var (
			ac        models.AssignedCompany
			logoURL   sql.NullString
			active    int
			pagesJSON string
		)
		if err := rows.Scan(
			&ac.Company.ID, &ac.Company.PortalID, &ac.Company.Slug, &ac.Company.Name,
			&logoURL, &active, &pagesJSON,
		); err != nil {
			return nil, fmt.Errorf("scan assigned company: %w", err)
		}
		ac.Company.LogoURL = logoURL.String
		ac.Company.Active = active != 0
		ac.Pages = parsePages(pagesJSON)
		out = append(out, ac)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows assigned companies: %w", err)
	}
	return out, nil
}

func (r *Repo) GetBySlug(ctx context.Context, portalID, slug string) (*models.Company, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, portal_id, slug, name, logo_url, active
		FROM companies
		WHERE portal_id = ? AND slug = ?
	`, portalID, slug)

	return scanCompany(row)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Company, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, portal_id, slug, name, logo_url, active
		FROM companies
		WHERE id = ?
	`, id)

	return scanCompany(row)
}

func (r *Repo) ListByPortal(ctx context.Context, portalID string) ([]models.Company, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, portal_id, slug, name, logo_url, active
		FROM companies
		WHERE portal_id = ? AND active = 1
		ORDER BY name ASC
	`, portalID)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []models.Company
	for rows.Next() {
		var comp models.Company
		var logoURL sql.NullString
		var active int
		if err := rows.Scan(&comp.ID, &comp.PortalID, &comp.Slug, &comp.Name, &logoURL, &active); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		comp.LogoURL = logoURL.String
		comp.Active = active != 0
		out = append(out, comp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows companies: %w", err)
	}
	return out, nil
}

func (r *Repo) Create(ctx context.Context, comp models.Company) error {
	active := 0
	if comp.Active {
		active = 1
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO companies (id, portal_id, slug, name, logo_url, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, comp.ID, comp.PortalID, comp.Slug, comp.Name, nullString(comp.LogoURL), active)
	if err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// AssignPages replaces a company's page list for an edition. The page list
// is normalized (sorted, page numbers deduplicated) before storage.
func (r *Repo) AssignPages(ctx context.Context, assignmentID, editionID, companyID string, pages []models.AssignmentPage) error {
	b, err := json.Marshal(normalizePages(pages))
	if err != nil {
		return fmt.Errorf("marshal pages: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO edition_companies (id, edition_id, company_id, pages)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(edition_id, company_id) DO UPDATE SET
			pages = excluded.pages
	`, assignmentID, editionID, companyID, string(b))
	if err != nil {
		return fmt.Errorf("assign pages: %w", err)
	}
	return nil
}

func scanCompany(row *sql.Row) (*models.Company, error) {
	var comp models.Company
	var logoURL sql.NullString
	var active int
	if err := row.Scan(&comp.ID, &comp.PortalID, &comp.Slug, &comp.Name, &logoURL, &active); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}
	comp.LogoURL = logoURL.String
	comp.Active = active != 0
	return &comp, nil
}

// parsePages tolerates malformed stored JSON by treating it as an empty
// page list; a broken assignment must not break composition.
func parsePages(raw string) []models.AssignmentPage {
	var pages []models.AssignmentPage
	_ = json.Unmarshal([]byte(raw), &pages)
	return normalizePages(pages)
}

func normalizePages(pages []models.AssignmentPage) []models.AssignmentPage {
	out := make([]models.AssignmentPage, 0, len(pages))
	seen := make(map[int]bool, len(pages))
	for _, p := range pages {
		if p.PageNumber < 1 || seen[p.PageNumber] {
			continue
		}
		seen[p.PageNumber] = true
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PageNumber < out[j].PageNumber
	})
	return out
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
