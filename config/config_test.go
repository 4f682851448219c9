package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Simulation.GravitationalConstant != 1000 {
		t.Errorf("gravitational_constant = %v, want 1000", cfg.Simulation.GravitationalConstant)
	}
	if cfg.Simulation.AttractionMultiplier != 30 {
		t.Errorf("attraction_multiplier = %v, want 30", cfg.Simulation.AttractionMultiplier)
	}
	if cfg.Spawn.Interval != 0.03 {
		t.Errorf("spawn.interval = %v, want 0.03", cfg.Spawn.Interval)
	}
	if cfg.Force.RepulsionEnabled || cfg.Force.ColorEnabled {
		t.Error("repulsion and color terms should default to disabled")
	}
	if !cfg.Derived.Accumulate {
		t.Error("expected accumulate aggregation by default")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swirl.yaml")
	data := []byte("simulation:\n  gravitational_constant: 5\nforce:\n  aggregation: Overwrite\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Simulation.GravitationalConstant != 5 {
		t.Errorf("gravitational_constant = %v, want 5", cfg.Simulation.GravitationalConstant)
	}
	// Untouched fields keep their defaults
	if cfg.Simulation.AttractionMultiplier != 30 {
		t.Errorf("attraction_multiplier = %v, want default 30", cfg.Simulation.AttractionMultiplier)
	}
	if cfg.Force.Aggregation != AggregateOverwrite || cfg.Derived.Accumulate {
		t.Errorf("aggregation = %q, accumulate = %v; want overwrite", cfg.Force.Aggregation, cfg.Derived.Accumulate)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown aggregation", "force:\n  aggregation: average\n"},
		{"zero radius", "particle:\n  radius_min: 0\n"},
		{"inverted radius range", "particle:\n  radius_min: 5\n  radius_max: 2\n"},
		{"zero color min", "particle:\n  color_min: 0\n"},
		{"negative color min", "particle:\n  color_min: -0.5\n  color_max: 1\n"},
		{"inverted color range", "particle:\n  color_min: 1.2\n  color_max: 0.4\n"},
		{"zero headless dt", "headless:\n  dt: 0\n"},
		{"negative headless dt", "headless:\n  dt: -0.01\n"},
		{"zero smoothness", "camera:\n  smoothness: 0\n"},
		{"zero spawn interval", "spawn:\n  interval: 0\n"},
		{"bad yaml", "simulation: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Camera.Speed = 123

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Camera.Speed != 123 {
		t.Errorf("camera.speed = %v, want 123", loaded.Camera.Speed)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic from Cfg() before Init()")
		}
	}()
	Cfg()
}
