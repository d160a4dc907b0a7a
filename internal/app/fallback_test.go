package app_test

import (
	"strings"
	"testing"

	"voyago/internal/app"
)

func TestFilterFallbackLocations_Keyword(t *testing.T) {
	got := app.FilterFallbackLocations("del")
	if len(got) == 0 {
		t.Fatal("expected at least one match for 'del'")
	}
	foundDEL := false
	for _, loc := range got {
		if loc.IATACode == "DEL" {
			foundDEL = true
		}
		hay := strings.ToLower(loc.IATACode + " " + loc.Name + " " + loc.CityName)
		if !strings.Contains(hay, "del") {
			t.Errorf("non-matching record returned: %+v", loc)
		}
	}
	if !foundDEL {
		t.Fatal("Delhi airport missing from 'del' matches")
	}
}

func TestFilterFallbackLocations_CaseInsensitive(t *testing.T) {
	lower := app.FilterFallbackLocations("mumbai")
	upper := app.FilterFallbackLocations("MUMBAI")
	if len(lower) == 0 || len(lower) != len(upper) {
		t.Fatalf("case sensitivity: lower=%d upper=%d", len(lower), len(upper))
	}
	if lower[0].IATACode != "BOM" {
		t.Fatalf("expected Mumbai airport, got %+v", lower[0])
	}
}

func TestFilterFallbackLocations_NoMatch(t *testing.T) {
	if got := app.FilterFallbackLocations("zzzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}
