package company

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"cataloghub/pkg/database"
	"cataloghub/pkg/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if err := database.MigrateFrom(db, "../../docs/schema.sql"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	stmts := []string{
		`INSERT INTO portals (id, slug, name) VALUES ('p1', 'mesto', 'Město')`,
		`INSERT INTO editions (id, portal_id, slug, name, published) VALUES ('ed1', 'p1', 'jaro', 'Jaro 2026', 1)`,
		`INSERT INTO companies (id, portal_id, slug, name, active) VALUES ('c1', 'p1', 'acme', 'Acme', 1)`,
		`INSERT INTO companies (id, portal_id, slug, name, active) VALUES ('c2', 'p1', 'beta', 'Beta', 0)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return db
}

func TestAssignPagesRoundTrip(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	// Out of order, with a duplicate and a junk page number. Normalization
	// happens on write so the stored JSON is already clean.
	in := []models.AssignmentPage{
		{PageNumber: 3, ImageURL: "p3"},
		{PageNumber: 1, ImageURL: "p1"},
		{PageNumber: 3, ImageURL: "p3-dup"},
		{PageNumber: 0, ImageURL: "junk"},
		{PageNumber: 2, ImageURL: "p2"},
	}
	if err := repo.AssignPages(ctx, "ec1", "ed1", "c1", in); err != nil {
		t.Fatalf("AssignPages: %v", err)
	}

	assigned, err := repo.ListAssigned(ctx, "ed1")
	if err != nil {
		t.Fatalf("ListAssigned: %v", err)
	}
	if len(assigned) != 1 {
		t.Fatalf("got %d assigned companies, want 1", len(assigned))
	}

	got := assigned[0].Pages
	wantURLs := []string{"p1", "p2", "p3"}
	if len(got) != len(wantURLs) {
		t.Fatalf("got %d pages, want %d", len(got), len(wantURLs))
	}
	for i, wantURL := range wantURLs {
		if got[i].PageNumber != i+1 || got[i].ImageURL != wantURL {
			t.Errorf("page %d = {%d %s}, want {%d %s}",
				i, got[i].PageNumber, got[i].ImageURL, i+1, wantURL)
		}
	}
}

func TestAssignPagesReplacesExisting(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	first := []models.AssignmentPage{{PageNumber: 1, ImageURL: "old1"}, {PageNumber: 2, ImageURL: "old2"}}
	if err := repo.AssignPages(ctx, "ec1", "ed1", "c1", first); err != nil {
		t.Fatalf("first AssignPages: %v", err)
	}

	second := []models.AssignmentPage{{PageNumber: 1, ImageURL: "new1"}}
	if err := repo.AssignPages(ctx, "ec1b", "ed1", "c1", second); err != nil {
		t.Fatalf("second AssignPages: %v", err)
	}

	assigned, err := repo.ListAssigned(ctx, "ed1")
	if err != nil {
		t.Fatalf("ListAssigned: %v", err)
	}
	if len(assigned) != 1 || len(assigned[0].Pages) != 1 || assigned[0].Pages[0].ImageURL != "new1" {
		t.Fatalf("assignment not replaced: %+v", assigned)
	}
}

func TestListAssignedSkipsInactive(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	for _, companyID := range []string{"c1", "c2"} {
		pages := []models.AssignmentPage{{PageNumber: 1, ImageURL: companyID + "-p1"}}
		if err := repo.AssignPages(ctx, "ec-"+companyID, "ed1", companyID, pages); err != nil {
			t.Fatalf("AssignPages %s: %v", companyID, err)
		}
	}

	assigned, err := repo.ListAssigned(ctx, "ed1")
	if err != nil {
		t.Fatalf("ListAssigned: %v", err)
	}
	if len(assigned) != 1 || assigned[0].Company.ID != "c1" {
		t.Fatalf("inactive company leaked into assignments: %+v", assigned)
	}
}

func TestListAssignedToleratesBrokenJSON(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)
	ctx := context.Background()

	if _, err := db.Exec(
		`INSERT INTO edition_companies (id, edition_id, company_id, pages) VALUES ('ec1', 'ed1', 'c1', 'not json')`,
	); err != nil {
		t.Fatalf("seed broken assignment: %v", err)
	}

	assigned, err := repo.ListAssigned(ctx, "ed1")
	if err != nil {
		t.Fatalf("ListAssigned: %v", err)
	}
	if len(assigned) != 1 || len(assigned[0].Pages) != 0 {
		t.Fatalf("broken JSON should yield an empty page list, got %+v", assigned)
	}
}

func TestGetBySlugNormalizesInput(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	comp, err := repo.GetBySlug(ctx, "p1", "  ACME ")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if comp == nil || comp.ID != "c1" {
		t.Fatalf("got %+v, want company c1", comp)
	}

	missing, err := repo.GetBySlug(ctx, "p1", "nobody")
	if err != nil {
		t.Fatalf("GetBySlug missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing slug should be nil, got %+v", missing)
	}
}
