package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workseed.yaml")
	data := []byte("seed: 99\nemployees: 500\nrates:\n  unassigned: 0.25\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 99 || cfg.Employees != 500 {
		t.Fatalf("overrides not applied: seed=%d employees=%d", cfg.Seed, cfg.Employees)
	}
	if cfg.Rates.Unassigned != 0.25 {
		t.Fatalf("nested override not applied: %g", cfg.Rates.Unassigned)
	}
	// Untouched keys keep defaults.
	if cfg.Rates.Subtask != 0.30 {
		t.Fatalf("default lost under partial override: %g", cfg.Rates.Subtask)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("loaded config invalid: %v", err)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("seed: [not an int\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed YAML accepted")
	}
}

func TestValidateRejectsZeroTeamContradiction(t *testing.T) {
	// An org too small to form any team cannot satisfy mandatory team-scoped
	// projects; that contradiction must surface before generation starts.
	cfg := Default()
	cfg.Employees = 0
	cfg.Teams.Distribution = map[string]float64{"Engineering": 1.0}
	err := cfg.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateRejectsBadRates(t *testing.T) {
	cfg := Default()
	cfg.Rates.Comment = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("rate above 1 accepted")
	}
}

func TestValidateRejectsSingleMemberTeams(t *testing.T) {
	cfg := Default()
	cfg.Teams.SizeRanges["Engineering"] = Range{Min: 1, Max: 4}
	if err := cfg.Validate(); err == nil {
		t.Fatal("min team size 1 accepted")
	}
}

func TestValidateRejectsBadDueWeights(t *testing.T) {
	cfg := Default()
	cfg.DueDates.None = 0.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("due-date weights not summing to 1 accepted")
	}
}

func TestWindowSpansSimulationDays(t *testing.T) {
	cfg := Default()
	w := cfg.Window()
	if !w.Valid() {
		t.Fatal("default window invalid")
	}
	if got := w.End.Sub(w.Start).Hours() / 24; got != float64(cfg.SimulationDays) {
		t.Fatalf("window spans %.0f days, want %d", got, cfg.SimulationDays)
	}
}
