package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultRun().Validate(); err != nil {
		t.Errorf("default run config invalid: %v", err)
	}
	if err := DefaultMC().Validate(); err != nil {
		t.Errorf("default mc config invalid: %v", err)
	}
}

func TestLoadRunKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	yaml := "steps: 42\ndt: 0.001\nequilibration:\n  blocks: 0\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRun(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Steps != 42 {
		t.Errorf("expected steps 42, got %d", cfg.Steps)
	}
	if cfg.Dt != 0.001 {
		t.Errorf("expected dt 0.001, got %g", cfg.Dt)
	}
	if cfg.Blocks != DefaultBlocks {
		t.Errorf("expected default blocks %d, got %d", DefaultBlocks, cfg.Blocks)
	}
	if len(cfg.Cutoffs) != 3 {
		t.Errorf("expected default cutoffs, got %v", cfg.Cutoffs)
	}
	if cfg.Equilibration.Blocks != 0 {
		t.Errorf("expected equilibration disabled, got %d blocks", cfg.Equilibration.Blocks)
	}
	if cfg.Equilibration.Thermostat != "rescale" {
		t.Errorf("expected default thermostat kept, got %q", cfg.Equilibration.Thermostat)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	want := DefaultRun()
	want.Steps = 77
	want.Cutoffs = []float64{1.8, 2.4}
	want.Strides = []int{1, 3}
	want.TailCorrection = true
	want.Seed = 12345

	if err := SaveRun(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadRun(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadMC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mc.yaml")
	if err := os.WriteFile(path, []byte("dr_max: 0.2\nseed: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMC(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DrMax != 0.2 {
		t.Errorf("expected dr_max 0.2, got %g", cfg.DrMax)
	}
	if cfg.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Seed)
	}
	if cfg.Steps != DefaultMCSteps {
		t.Errorf("expected default steps %d, got %d", DefaultMCSteps, cfg.Steps)
	}
	if cfg.EpsBox != DefaultEpsBox {
		t.Errorf("expected default eps_box %g, got %g", DefaultEpsBox, cfg.EpsBox)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadRun(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("triple")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Cutoffs) != 3 {
		t.Errorf("expected 3 shells, got %v", cfg.Cutoffs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("listed preset %q not found", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}
}
