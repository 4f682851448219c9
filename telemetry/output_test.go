package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/swirl/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}

	// Nil receiver is a no-op
	if err := om.WriteSample(Sample{}); err != nil {
		t.Errorf("WriteSample on nil manager: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0, 0); err != nil {
		t.Errorf("WritePerf on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir() = %q, want empty", om.Dir())
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	samples := []Sample{
		{Tick: 1, SimTime: 0.016, AverageFPS: 60, Particles: 1},
		{Tick: 4, SimTime: 0.064, AverageFPS: 59.5, Particles: 3},
	}
	for _, s := range samples {
		if err := om.WriteSample(s); err != nil {
			t.Fatalf("WriteSample: %v", err)
		}
	}
	stats := PerfStats{AvgTickDuration: time.Millisecond, PhasePct: map[string]float64{PhaseForces: 90}}
	if err := om.WritePerf(stats, 60, 3); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "diagnostics.csv"))
	if err != nil {
		t.Fatalf("reading diagnostics.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("diagnostics.csv has %d lines, want header + 2 rows:\n%s", len(lines), data)
	}
	if lines[0] != "tick,sim_time,average_fps,particles" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "4,") {
		t.Errorf("second row = %q, want tick 4", lines[2])
	}

	data, err = os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("perf.csv has %d lines, want header + 1 row", len(lines))
	}
	if !strings.Contains(lines[0], "forces_pct") {
		t.Errorf("perf header missing forces_pct: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "60,3,1000,") {
		t.Errorf("perf row = %q, want tick 60, 3 particles, 1000us", lines[1])
	}
}

func TestOutputManagerWriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	cfg := config.Default()
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	loaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if loaded.Simulation.GravitationalConstant != cfg.Simulation.GravitationalConstant {
		t.Errorf("G = %v, want %v", loaded.Simulation.GravitationalConstant, cfg.Simulation.GravitationalConstant)
	}
}
