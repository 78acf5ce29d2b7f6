package order

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

// ListByEdition returns the edition's order records keyed by company id.
// An empty map means no custom order is active.
func (r *Repo) ListByEdition(ctx context.Context, editionID string) (map[string]models.OrderRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT edition_id, company_id, portal_id, position, visible
		FROM catalog_order
		WHERE edition_id = ?
	`, editionID)
	if err != nil {
		return nil, fmt.Errorf("list order records: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.OrderRecord)
	for rows.Next() {
		var rec models.OrderRecord
		var visible int
		if err := rows.Scan(&rec.EditionID, &rec.CompanyID, &rec.PortalID, &rec.Position, &visible); err != nil {
			return nil, fmt.Errorf("scan order record: %w", err)
		}
		rec.Visible = visible != 0
		out[rec.CompanyID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows order records: %w", err)
	}
	return out, nil
}

func (r *Repo) HasCustomOrder(ctx context.Context, editionID string) (bool, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM catalog_order WHERE edition_id = ?
	`, editionID)

	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("count order records: %w", err)
	}
	return n > 0, nil
}

// Replace swaps the edition's order records wholesale: delete-all then
// insert-all inside one transaction, so a failed save leaves the previous
// order intact instead of a partial one.
func (r *Repo) Replace(ctx context.Context, editionID, portalID string, items []models.OrderRecord) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace order: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM catalog_order WHERE edition_id = ?
	`, editionID); err != nil {
		return fmt.Errorf("delete order records: %w", err)
	}

	for _, item := range items {
		visible := 0
		if item.Visible {
			visible = 1
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO catalog_order (edition_id, company_id, portal_id, position, visible)
			VALUES (?, ?, ?, ?, ?)
		`, editionID, item.CompanyID, portalID, item.Position, visible); err != nil {
			return fmt.Errorf("insert order record %s: %w", item.CompanyID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace order: %w", err)
	}
	return nil
}

// Reset drops the edition's custom order; subsequent resolution falls back
// to alphabetical. Deleting zero rows is not an error, so reset is
// idempotent.
func (r *Repo) Reset(ctx context.Context, editionID string) error {
	if _, err := r.DB.ExecContext(ctx, `
		DELETE FROM catalog_order WHERE edition_id = ?
	`, editionID); err != nil {
		return fmt.Errorf("reset order: %w", err)
	}
	return nil
}
