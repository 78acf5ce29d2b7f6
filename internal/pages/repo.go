package pages

import (
	"context"
	"database/sql"
	"fmt"

	"cataloghub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// ListByKind returns an edition's decorative pages of one kind in ascending
// order. Gaps in the order values are preserved as-is; callers only rely on
// the relative ordering.
func (r *Repo) ListByKind(ctx context.Context, editionID string, kind models.PageKind) ([]models.CatalogPage, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, edition_id, kind, ord, image_url
		FROM catalog_pages
		WHERE edition_id = ? AND kind = ?
		ORDER BY ord ASC
	`, editionID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list catalog pages: %w", err)
	}
	defer rows.Close()

	var out []models.CatalogPage
	for rows.Next() {
		var p models.CatalogPage
		var kindStr string
		if err := rows.Scan(&p.ID, &p.EditionID, &kindStr, &p.Order, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("scan catalog page: %w", err)
		}
		p.Kind = models.PageKind(kindStr)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows catalog pages: %w", err)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*models.CatalogPage, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, edition_id, kind, ord, image_url
		FROM catalog_pages
		WHERE id = ?
	`, id)

	var p models.CatalogPage
	var kindStr string
	if err := row.Scan(&p.ID, &p.EditionID, &kindStr, &p.Order, &p.ImageURL); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog page: %w", err)
	}
	p.Kind = models.PageKind(kindStr)
	return &p, nil
}

func (r *Repo) Create(ctx context.Context, p models.CatalogPage) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO catalog_pages (id, edition_id, kind, ord, image_url)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.EditionID, string(p.Kind), p.Order, p.ImageURL)
	if err != nil {
		return fmt.Errorf("create catalog page: %w", err)
	}
	return nil
}

// Delete removes a page record. Deleting an already-absent page is not an
// error; composition simply no longer sees the row.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `
		DELETE FROM catalog_pages WHERE id = ?
	`, id); err != nil {
		return fmt.Errorf("delete catalog page: %w", err)
	}
	return nil
}
