package config

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jpalmerr/slotwatch"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustParse(t *testing.T, yaml string) *Config {
	t.Helper()
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return cfg
}

func TestBuild_MinimalConfig(t *testing.T) {
	cfg := mustParse(t, "location:\n  zip: \"78701\"\n")

	w, err := Build(cfg, testLogger())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if w == nil {
		t.Fatal("Build() returned a nil watcher")
	}
}

func TestBuildCriteria_LocationConflict(t *testing.T) {
	cfg := mustParse(t, `
location:
  zip: "78701"
  city: Austin
  state: TX
`)

	_, err := BuildCriteria(cfg)

	var cfgErr *slotwatch.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("BuildCriteria() error = %v, want *slotwatch.ConfigError", err)
	}
	if cfgErr.Kind != slotwatch.KindLocationConflict {
		t.Errorf("ConfigError.Kind = %q, want %q", cfgErr.Kind, slotwatch.KindLocationConflict)
	}
}

func TestBuild_AutoBookWithoutIdentity(t *testing.T) {
	cfg := mustParse(t, `
location:
  zip: "78701"
booking:
  auto: true
`)

	_, err := Build(cfg, testLogger())

	var cfgErr *slotwatch.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Build() error = %v, want *slotwatch.ConfigError", err)
	}
	if cfgErr.Kind != slotwatch.KindIdentityMissing {
		t.Errorf("ConfigError.Kind = %q, want %q", cfgErr.Kind, slotwatch.KindIdentityMissing)
	}
}

func TestBuild_PartialIdentityWithoutAutoStillValidated(t *testing.T) {
	// any identity field present attaches the identity, so a half-filled
	// one fails construction even when auto-booking is off
	cfg := mustParse(t, `
location:
  zip: "78701"
booking:
  first_name: Ada
`)

	_, err := Build(cfg, testLogger())

	var cfgErr *slotwatch.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Build() error = %v, want *slotwatch.ConfigError", err)
	}
	if cfgErr.Kind != slotwatch.KindIdentityMissing {
		t.Errorf("ConfigError.Kind = %q, want %q", cfgErr.Kind, slotwatch.KindIdentityMissing)
	}
}

func TestBuild_AutoBookWithCompleteIdentity(t *testing.T) {
	cfg := mustParse(t, `
location:
  zip: "78701"
booking:
  auto: true
  first_name: Ada
  last_name: Lovelace
  email: ada@example.com
  phone: "5125550199"
`)

	if _, err := Build(cfg, testLogger()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
}

func TestBuildCriteria_MapsFields(t *testing.T) {
	cfg := mustParse(t, `
location:
  city: Austin
  state: TX
radius_miles: 25
adults: 2
minors: 1
`)

	criteria, err := BuildCriteria(cfg)
	if err != nil {
		t.Fatalf("BuildCriteria() error = %v", err)
	}

	if criteria.Location().IsPostal() {
		t.Error("Location is postal, want city/state")
	}
	if criteria.RadiusMiles() != 25 {
		t.Errorf("RadiusMiles() = %d, want 25", criteria.RadiusMiles())
	}
	if criteria.Adults() != 2 || criteria.Minors() != 1 {
		t.Errorf("party = %d/%d, want 2/1", criteria.Adults(), criteria.Minors())
	}
}
