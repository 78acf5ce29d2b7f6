package portal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"cataloghub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (*models.Portal, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, slug, name
		FROM portals
		WHERE slug = ?
	`, slug)

	var p models.Portal
	if err := row.Scan(&p.ID, &p.Slug, &p.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get portal by slug: %w", err)
	}
	return &p, nil
}

func (r *Repo) GetEdition(ctx context.Context, id string) (*models.Edition, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, portal_id, slug, name, published
		FROM editions
		WHERE id = ?
	`, id)

	return scanEdition(row)
}

func (r *Repo) GetEditionBySlug(ctx context.Context, portalID, slug string) (*models.Edition, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, portal_id, slug, name, published
		FROM editions
		WHERE portal_id = ? AND slug = ?
	`, portalID, slug)

	return scanEdition(row)
}

func (r *Repo) ListEditions(ctx context.Context, portalID string) ([]models.Edition, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, portal_id, slug, name, published
		FROM editions
		WHERE portal_id = ?
		ORDER BY name ASC
	`, portalID)
	if err != nil {
		return nil, fmt.Errorf("list editions: %w", err)
	}
	defer rows.Close()

	var out []models.Edition
	for rows.Next() {
		var e models.Edition
		var published int
		if err := rows.Scan(&e.ID, &e.PortalID, &e.Slug, &e.Name, &published); err != nil {
			return nil, fmt.Errorf("scan edition: %w", err)
		}
		e.Published = published != 0
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows editions: %w", err)
	}
	return out, nil
}

func scanEdition(row *sql.Row) (*models.Edition, error) {
	var e models.Edition
	var published int
	if err := row.Scan(&e.ID, &e.PortalID, &e.Slug, &e.Name, &published); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan edition: %w", err)
	}
	e.Published = published != 0
	return &e, nil
}
