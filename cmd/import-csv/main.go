package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"cataloghub/pkg/database"
)

func main() {
	var (
		schemaIn      = flag.String("schema", "docs/schema.sql", "schema SQL path")
		portalsIn     = flag.String("portals", "data/portals.csv", "input CSV path for portals")
		editionsIn    = flag.String("editions", "data/editions.csv", "input CSV path for editions")
		companiesIn   = flag.String("companies", "data/companies.csv", "input CSV path for companies")
		assignmentsIn = flag.String("assignments", "data/assignments.csv", "input CSV path for page assignments")
		pagesIn       = flag.String("pages", "data/catalog_pages.csv", "input CSV path for catalog pages")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.MigrateFrom(db, *schemaIn); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := importPortals(ctx, db, *portalsIn); err != nil {
		log.Fatalf("import portals failed: %v", err)
	}
	if err := importEditions(ctx, db, *editionsIn); err != nil {
		log.Fatalf("import editions failed: %v", err)
	}
	if err := importCompanies(ctx, db, *companiesIn); err != nil {
		log.Fatalf("import companies failed: %v", err)
	}
	if err := importAssignments(ctx, db, *assignmentsIn); err != nil {
		log.Fatalf("import assignments failed: %v", err)
	}
	if err := importCatalogPages(ctx, db, *pagesIn); err != nil {
		log.Fatalf("import catalog pages failed: %v", err)
	}

	log.Printf("✅ imported portals, editions, companies, assignments and catalog pages")
}

func importPortals(ctx context.Context, db *sql.DB, path string) error {
	return importFile(ctx, db, path, `
		INSERT INTO portals (id, slug, name)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  slug = excluded.slug,
		  name = excluded.name
	`, func(header map[string]int, row []string) ([]any, error) {
		id := valueAt(header, row, "id")
		slug := valueAt(header, row, "slug")
		name := valueAt(header, row, "name")
		if id == "" || slug == "" || name == "" {
			return nil, nil
		}
		return []any{id, slug, name}, nil
	})
}

func importEditions(ctx context.Context, db *sql.DB, path string) error {
	return importFile(ctx, db, path, `
		INSERT INTO editions (id, portal_id, slug, name, published)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  portal_id = excluded.portal_id,
		  slug = excluded.slug,
		  name = excluded.name,
		  published = excluded.published
	`, func(header map[string]int, row []string) ([]any, error) {
		id := valueAt(header, row, "id")
		portalID := valueAt(header, row, "portal_id")
		slug := valueAt(header, row, "slug")
		name := valueAt(header, row, "name")
		if id == "" || portalID == "" || slug == "" || name == "" {
			return nil, nil
		}
		published := parseBool(valueAt(header, row, "published"))
		return []any{id, portalID, slug, name, published}, nil
	})
}

func importCompanies(ctx context.Context, db *sql.DB, path string) error {
	return importFile(ctx, db, path, `
		INSERT INTO companies (id, portal_id, slug, name, logo_url, active)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  portal_id = excluded.portal_id,
		  slug = excluded.slug,
		  name = excluded.name,
		  logo_url = excluded.logo_url,
		  active = excluded.active
	`, func(header map[string]int, row []string) ([]any, error) {
		id := valueAt(header, row, "id")
		portalID := valueAt(header, row, "portal_id")
		slug := valueAt(header, row, "slug")
		name := valueAt(header, row, "name")
		if id == "" || portalID == "" || slug == "" || name == "" {
			return nil, nil
		}
		return []any{
			id,
			portalID,
			slug,
			name,
			nullString(valueAt(header, row, "logo_url")),
			parseBool(valueAt(header, row, "active")),
		}, nil
	})
}

// assignments.csv carries the page list as a JSON cell, matching the
// edition_companies.pages column format.
func importAssignments(ctx context.Context, db *sql.DB, path string) error {
	return importFile(ctx, db, path, `
		INSERT INTO edition_companies (id, edition_id, company_id, pages)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(edition_id, company_id) DO UPDATE SET
		  pages = excluded.pages
	`, func(header map[string]int, row []string) ([]any, error) {
		id := valueAt(header, row, "id")
		editionID := valueAt(header, row, "edition_id")
		companyID := valueAt(header, row, "company_id")
		if id == "" || editionID == "" || companyID == "" {
			return nil, nil
		}
		pages := valueAt(header, row, "pages")
		if pages == "" {
			pages = "[]"
		}
		return []any{id, editionID, companyID, pages}, nil
	})
}

func importCatalogPages(ctx context.Context, db *sql.DB, path string) error {
	return importFile(ctx, db, path, `
		INSERT INTO catalog_pages (id, edition_id, kind, ord, image_url)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  edition_id = excluded.edition_id,
		  kind = excluded.kind,
		  ord = excluded.ord,
		  image_url = excluded.image_url
	`, func(header map[string]int, row []string) ([]any, error) {
		id := valueAt(header, row, "id")
		editionID := valueAt(header, row, "edition_id")
		kind := valueAt(header, row, "kind")
		imageURL := valueAt(header, row, "image_url")
		if id == "" || editionID == "" || kind == "" || imageURL == "" {
			return nil, nil
		}
		ord, err := strconv.Atoi(valueAt(header, row, "ord"))
		if err != nil {
			return nil, fmt.Errorf("parse ord for %s: %w", id, err)
		}
		return []any{id, editionID, kind, ord, imageURL}, nil
	})
}

// importFile streams one CSV into a prepared upsert. mapRow returning
// (nil, nil) skips the row.
func importFile(ctx context.Context, db *sql.DB, path, upsert string, mapRow func(map[string]int, []string) ([]any, error)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return err
	}

	stmt, err := db.PrepareContext(ctx, upsert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}

		args, err := mapRow(header, row)
		if err != nil {
			return err
		}
		if args == nil {
			continue
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}

	return nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseBool(raw string) int {
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return 1
	}
	return 0
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
