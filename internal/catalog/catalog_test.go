package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"viagens/internal/core"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
	if len(c.Accommodations) != 3 || len(c.Regions) != 3 {
		t.Fatalf("unexpected sizes: %d stays, %d regions", len(c.Accommodations), len(c.Regions))
	}
}

func TestBusTotal(t *testing.T) {
	c := Default()
	// (124+32 + 41+93) * 2
	if got := c.BusTotal(ScenarioDirect); got != 580 {
		t.Fatalf("direct total = %v, want 580", got)
	}
	// (93+119 + 41+93) * 2
	if got := c.BusTotal(ScenarioViaLeme); got != 692 {
		t.Fatalf("via leme total = %v, want 692", got)
	}
}

func TestBusEntry(t *testing.T) {
	c := Default()
	e, err := c.BusEntry(ScenarioViaLeme)
	if err != nil {
		t.Fatalf("BusEntry: %v", err)
	}
	if e.Category != core.CategoryGroundTransport || e.Description != "Brasil Terrestre (via_leme) Casal" ||
		e.Date != "06/02" || e.Total != 692 || e.Notes != "RJ-SP-GRU" {
		t.Fatalf("unexpected entry: %+v", e)
	}

	if _, err := c.BusEntry("teleport"); !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("expected ErrUnknownScenario, got %v", err)
	}
}

func TestRegionalFlightEntry(t *testing.T) {
	e := Default().RegionalFlightEntry()
	if e.Category != core.CategoryFlight || e.Total != 1744 || e.Date != "26/01" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestStayEntry(t *testing.T) {
	c := Default()

	preferred, err := c.StayEntry("jnb_garden_cottage")
	if err != nil {
		t.Fatalf("StayEntry: %v", err)
	}
	if preferred.Notes != "Favorita" || preferred.Total != 585 || preferred.Date != "02/02 a 06/02" {
		t.Fatalf("unexpected preferred entry: %+v", preferred)
	}

	other, err := c.StayEntry("jnb_luxury_sandton")
	if err != nil {
		t.Fatalf("StayEntry: %v", err)
	}
	if other.Notes != "Sandton" || other.Category != core.CategoryLodging {
		t.Fatalf("unexpected entry: %+v", other)
	}

	if _, err := c.StayEntry("nope"); !errors.Is(err, ErrUnknownStay) {
		t.Fatalf("expected ErrUnknownStay, got %v", err)
	}
}

func TestParseScenario(t *testing.T) {
	if s, err := ParseScenario(""); err != nil || s != DefaultScenario {
		t.Fatalf("empty scenario: %v %v", s, err)
	}
	if s, err := ParseScenario("via_leme"); err != nil || s != ScenarioViaLeme {
		t.Fatalf("via_leme: %v %v", s, err)
	}
	if _, err := ParseScenario("boat"); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFile(t *testing.T) {
	if c, err := LoadFile(""); err != nil || c == nil {
		t.Fatalf("empty path should return default: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "trip.toml")
	content := `
[[regions]]
id = "r1"
name = "Region One"

[[accommodations]]
id = "a1"
region_id = "r1"
name = "Hotel A"
rating = 8.2
price_per_night = 100.0
price_total = 300.0
nights = 3

[regional_flight]
company = "Air"
round_trip_price = 500.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(c.Accommodations) != 1 || c.Accommodations[0].PricePerNight != 100 || c.Accommodations[0].RegionID != "r1" {
		t.Fatalf("unexpected accommodations: %+v", c.Accommodations)
	}
	if c.RegionalFlightEntry().Total != 1000 {
		t.Fatalf("unexpected regional flight total")
	}

	bad := filepath.Join(dir, "bad.toml")
	_ = os.WriteFile(bad, []byte("[[accommodations]]\nid = \"a\"\nregion_id = \"ghost\"\n"), 0o644)
	if _, err := LoadFile(bad); err == nil {
		t.Fatal("expected referential integrity error")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatal("expected read error")
	}
}
