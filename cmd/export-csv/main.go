package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cataloghub/pkg/database"
)

func main() {
	var (
		schemaIn       = flag.String("schema", "docs/schema.sql", "schema SQL path")
		portalsOut     = flag.String("portals", "data/portals.csv", "output CSV path for portals")
		editionsOut    = flag.String("editions", "data/editions.csv", "output CSV path for editions")
		companiesOut   = flag.String("companies", "data/companies.csv", "output CSV path for companies")
		assignmentsOut = flag.String("assignments", "data/assignments.csv", "output CSV path for page assignments")
		pagesOut       = flag.String("pages", "data/catalog_pages.csv", "output CSV path for catalog pages")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.MigrateFrom(db, *schemaIn); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	exports := []struct {
		name   string
		out    string
		header []string
		query  string
		scan   func(rows *sql.Rows) ([]string, error)
	}{
		{
			name:   "portals",
			out:    *portalsOut,
			header: []string{"id", "slug", "name"},
			query:  `SELECT id, slug, name FROM portals ORDER BY slug`,
			scan: func(rows *sql.Rows) ([]string, error) {
				var id, slug, name string
				if err := rows.Scan(&id, &slug, &name); err != nil {
					return nil, err
				}
				return []string{id, slug, name}, nil
			},
		},
		{
			name:   "editions",
			out:    *editionsOut,
			header: []string{"id", "portal_id", "slug", "name", "published"},
			query:  `SELECT id, portal_id, slug, name, published FROM editions ORDER BY portal_id, slug`,
			scan: func(rows *sql.Rows) ([]string, error) {
				var id, portalID, slug, name string
				var published int
				if err := rows.Scan(&id, &portalID, &slug, &name, &published); err != nil {
					return nil, err
				}
				return []string{id, portalID, slug, name, strconv.Itoa(published)}, nil
			},
		},
		{
			name:   "companies",
			out:    *companiesOut,
			header: []string{"id", "portal_id", "slug", "name", "logo_url", "active"},
			query:  `SELECT id, portal_id, slug, name, logo_url, active FROM companies ORDER BY portal_id, name`,
			scan: func(rows *sql.Rows) ([]string, error) {
				var id, portalID, slug, name string
				var logoURL sql.NullString
				var active int
				if err := rows.Scan(&id, &portalID, &slug, &name, &logoURL, &active); err != nil {
					return nil, err
				}
				return []string{id, portalID, slug, name, logoURL.String, strconv.Itoa(active)}, nil
			},
		},
		{
			name:   "assignments",
			out:    *assignmentsOut,
			header: []string{"id", "edition_id", "company_id", "pages"},
			query:  `SELECT id, edition_id, company_id, pages FROM edition_companies ORDER BY edition_id, company_id`,
			scan: func(rows *sql.Rows) ([]string, error) {
				var id, editionID, companyID, pages string
				if err := rows.Scan(&id, &editionID, &companyID, &pages); err != nil {
					return nil, err
				}
				return []string{id, editionID, companyID, pages}, nil
			},
		},
		{
			name:   "catalog pages",
			out:    *pagesOut,
			header: []string{"id", "edition_id", "kind", "ord", "image_url"},
			query:  `SELECT id, edition_id, kind, ord, image_url FROM catalog_pages ORDER BY edition_id, kind, ord`,
			scan: func(rows *sql.Rows) ([]string, error) {
				var id, editionID, kind, imageURL string
				var ord int
				if err := rows.Scan(&id, &editionID, &kind, &ord, &imageURL); err != nil {
					return nil, err
				}
				return []string{id, editionID, kind, strconv.Itoa(ord), imageURL}, nil
			},
		},
	}

	for _, ex := range exports {
		if err := exportTable(ctx, db, ex.out, ex.header, ex.query, ex.scan); err != nil {
			log.Fatalf("export %s failed: %v", ex.name, err)
		}
	}

	log.Printf("✅ exported portals, editions, companies, assignments and catalog pages")
}

func exportTable(ctx context.Context, db *sql.DB, outPath string, header []string, query string, scan func(*sql.Rows) ([]string, error)) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		record, err := scan(rows)
		if err != nil {
			return err
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
