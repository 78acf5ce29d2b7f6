package order

import (
	"reflect"
	"testing"

	"cataloghub/pkg/models"
)

func assigned(id, name string) models.AssignedCompany {
	return models.AssignedCompany{
		Company: models.Company{
			ID:     id,
			Slug:   id,
			Name:   name,
			Active: true,
		},
		Pages: []models.AssignmentPage{{PageNumber: 1, ImageURL: "https://img.example/" + id + ".jpg"}},
	}
}

func record(companyID string, position int, visible bool) models.OrderRecord {
	return models.OrderRecord{
		EditionID: "ed1",
		CompanyID: companyID,
		Position:  position,
		Visible:   visible,
	}
}

func names(resolved []models.ResolvedCompany) []string {
	out := make([]string, len(resolved))
	for i, rc := range resolved {
		out[i] = rc.Name
	}
	return out
}

func TestResolveOrderAlphabeticalFallback(t *testing.T) {
	// Czech collation: Č sorts right after C (before D), and the digraph
	// "ch" sorts after "h". Byte-order comparison gets both wrong.
	companies := []models.AssignedCompany{
		assigned("c4", "Dvořák a synové"),
		assigned("c2", "Chalupa stavby"),
		assigned("c1", "Čermák nábytek"),
		assigned("c3", "Hruška pekařství"),
		assigned("c5", "Cibulka zahradnictví"),
	}

	resolved := ResolveOrder(companies, nil)

	want := []string{
		"Cibulka zahradnictví",
		"Čermák nábytek",
		"Dvořák a synové",
		"Hruška pekařství",
		"Chalupa stavby",
	}
	if got := names(resolved); !reflect.DeepEqual(got, want) {
		t.Fatalf("fallback order = %v, want %v", got, want)
	}

	for i, rc := range resolved {
		if rc.Position != i {
			t.Errorf("position[%d] = %d, want dense renumbering", i, rc.Position)
		}
		if rc.Custom {
			t.Errorf("%s marked custom without records", rc.Name)
		}
		if !rc.Visible {
			t.Errorf("%s hidden without records", rc.Name)
		}
	}
}

func TestResolveOrderDeterministic(t *testing.T) {
	companies := []models.AssignedCompany{
		assigned("b", "Beta"),
		assigned("a", "Alfa"),
		assigned("c", "Alfa"), // same name, distinct id
	}
	records := map[string]models.OrderRecord{
		"b": record("b", 0, true),
	}

	first := ResolveOrder(companies, records)
	second := ResolveOrder(companies, records)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated resolution differs:\n%v\n%v", first, second)
	}
}

func TestResolveOrderCustomBeforeFallback(t *testing.T) {
	companies := []models.AssignedCompany{
		assigned("a", "Alfa"),
		assigned("b", "Beta"),
		assigned("c", "Cedr"),
		assigned("d", "Dub"),
	}
	// custom order covers only c and b; a and d fall back alphabetically
	records := map[string]models.OrderRecord{
		"c": record("c", 0, true),
		"b": record("b", 1, false),
	}

	resolved := ResolveOrder(companies, records)

	want := []string{"Cedr", "Beta", "Alfa", "Dub"}
	if got := names(resolved); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	if !resolved[0].Custom || !resolved[1].Custom {
		t.Error("custom-ordered companies not marked custom")
	}
	if resolved[1].Visible {
		t.Error("hidden company lost its visible=false flag")
	}
	if resolved[2].Custom || resolved[3].Custom {
		t.Error("fallback companies marked custom")
	}
}

func TestResolveOrderDropsStaleRecords(t *testing.T) {
	companies := []models.AssignedCompany{
		assigned("a", "Alfa"),
	}
	// record for a company that is no longer assigned/active
	records := map[string]models.OrderRecord{
		"gone": record("gone", 0, true),
		"a":    record("a", 1, true),
	}

	resolved := ResolveOrder(companies, records)
	if len(resolved) != 1 || resolved[0].CompanyID != "a" {
		t.Fatalf("stale record leaked into output: %v", resolved)
	}
	if resolved[0].Position != 0 {
		t.Errorf("position = %d, want renumbered 0", resolved[0].Position)
	}
}

func TestResolveOrderEmptyEdition(t *testing.T) {
	resolved := ResolveOrder(nil, nil)
	if len(resolved) != 0 {
		t.Fatalf("expected empty result, got %v", resolved)
	}
}
