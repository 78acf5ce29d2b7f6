package compose

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"

	"cataloghub/internal/company"
	"cataloghub/internal/order"
	"cataloghub/internal/pages"
	"cataloghub/internal/portal"
	"cataloghub/pkg/database"
	"cataloghub/pkg/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	portalRepo := portal.NewRepo(db)
	pagesRepo := pages.NewRepo(db)
	companyRepo := company.NewRepo(db)
	orderRepo := order.NewRepo(db)
	resolver := order.NewResolver(orderRepo, companyRepo)
	assembler := NewAssembler(pagesRepo, companyRepo, resolver)

	router := gin.New()
	NewHandler(assembler, portalRepo).RegisterRoutes(router.Group(""))
	return router, db
}

func seed(t *testing.T, db *sql.DB, stmts []string) {
	t.Helper()
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v (%s)", err, stmt)
		}
	}
}

func get(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCatalogNotFound(t *testing.T) {
	router, db := newTestRouter(t)
	seed(t, db, []string{
		`INSERT INTO portals (id, slug, name) VALUES ('p1', 'mesto', 'Město')`,
	})

	if w := get(t, router, "/portals/neznamy/editions/jaro/catalog"); w.Code != http.StatusNotFound {
		t.Errorf("unknown portal: status %d, want 404", w.Code)
	}
	if w := get(t, router, "/portals/mesto/editions/neznama/catalog"); w.Code != http.StatusNotFound {
		t.Errorf("unknown edition: status %d, want 404", w.Code)
	}
}

// An edition that resolves but has no pages is 200 with zero counts; the
// client renders an explicit empty state, not a not-found one.
func TestCatalogEmptyEdition(t *testing.T) {
	router, db := newTestRouter(t)
	seed(t, db, []string{
		`INSERT INTO portals (id, slug, name) VALUES ('p1', 'mesto', 'Město')`,
		`INSERT INTO editions (id, portal_id, slug, name, published) VALUES ('ed1', 'p1', 'jaro', 'Jaro 2026', 1)`,
	})

	w := get(t, router, "/portals/mesto/editions/jaro/catalog")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}

	var cat models.ComposedCatalog
	if err := json.Unmarshal(w.Body.Bytes(), &cat); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cat.Counts.Total != 0 || len(cat.Pages) != 0 {
		t.Errorf("empty edition: counts %+v, %d pages", cat.Counts, len(cat.Pages))
	}
	if cat.EditionName != "Jaro 2026" {
		t.Errorf("edition name = %q", cat.EditionName)
	}
}

func TestCatalogComposedPayload(t *testing.T) {
	router, db := newTestRouter(t)
	seed(t, db, []string{
		`INSERT INTO portals (id, slug, name) VALUES ('p1', 'mesto', 'Město')`,
		`INSERT INTO editions (id, portal_id, slug, name, published) VALUES ('ed1', 'p1', 'jaro', 'Jaro 2026', 1)`,
		`INSERT INTO companies (id, portal_id, slug, name, active) VALUES ('c1', 'p1', 'acme', 'Acme', 1)`,
		`INSERT INTO companies (id, portal_id, slug, name, active) VALUES ('c2', 'p1', 'beta', 'Beta', 1)`,
		`INSERT INTO edition_companies (id, edition_id, company_id, pages) VALUES
			('ec1', 'ed1', 'c1', '[{"page_number":1,"image_url":"acme1"},{"page_number":2,"image_url":"acme2"}]')`,
		`INSERT INTO edition_companies (id, edition_id, company_id, pages) VALUES
			('ec2', 'ed1', 'c2', '[{"page_number":1,"image_url":"beta1"}]')`,
		`INSERT INTO catalog_pages (id, edition_id, kind, ord, image_url) VALUES ('i1', 'ed1', 'intro', 0, 'intro1')`,
		`INSERT INTO catalog_pages (id, edition_id, kind, ord, image_url) VALUES ('o1', 'ed1', 'outro', 0, 'outro1')`,
		`INSERT INTO catalog_order (edition_id, company_id, portal_id, position, visible) VALUES ('ed1', 'c1', 'p1', 0, 1)`,
		`INSERT INTO catalog_order (edition_id, company_id, portal_id, position, visible) VALUES ('ed1', 'c2', 'p1', 1, 0)`,
	})

	w := get(t, router, "/portals/mesto/editions/jaro/catalog")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}

	var cat models.ComposedCatalog
	if err := json.Unmarshal(w.Body.Bytes(), &cat); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := models.CatalogCounts{Intro: 1, CompanyPages: 2, Outro: 1, Companies: 1, Total: 4}
	if cat.Counts != want {
		t.Fatalf("counts = %+v, want %+v", cat.Counts, want)
	}

	wantURLs := []string{"intro1", "acme1", "acme2", "outro1"}
	for i, wantURL := range wantURLs {
		if cat.Pages[i].ImageURL != wantURL || cat.Pages[i].GlobalIndex != i {
			t.Errorf("page %d = %s (index %d), want %s",
				i, cat.Pages[i].ImageURL, cat.Pages[i].GlobalIndex, wantURL)
		}
	}

	if len(cat.Companies) != 1 || cat.Companies[0].Slug != "acme" {
		t.Errorf("companies = %+v, hidden Beta must be excluded", cat.Companies)
	}
}
