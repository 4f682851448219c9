package telemetry

import (
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

// fakeClock advances by a fixed step on each read.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseForces)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseIntegrate)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if _, ok := stats.PhaseAvg[PhaseForces]; !ok {
		t.Error("expected forces phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseIntegrate]; !ok {
		t.Error("expected integrate phase to be tracked")
	}
}

func TestPerfCollector_DeterministicPhases(t *testing.T) {
	pc := NewPerfCollector(4)
	clk := &fakeClock{step: time.Millisecond}
	pc.now = clk.now

	// StartTick, StartPhase x2, EndTick: each read advances 1ms
	for i := 0; i < 4; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSpawn)
		pc.StartPhase(PhaseForces)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration != 3*time.Millisecond {
		t.Errorf("avg tick = %v, want 3ms", stats.AvgTickDuration)
	}
	if stats.PhaseAvg[PhaseSpawn] != time.Millisecond || stats.PhaseAvg[PhaseForces] != time.Millisecond {
		t.Errorf("phase avg = %v, want 1ms each", stats.PhaseAvg)
	}
	if !scalar.EqualWithinAbs(stats.PhasePct[PhaseForces], 100.0/3, 1e-9) {
		t.Errorf("forces pct = %v, want 33.3", stats.PhasePct[PhaseForces])
	}
	if !scalar.EqualWithinAbs(stats.TicksPerSecond, 1000.0/3, 1e-6) {
		t.Errorf("ticks/s = %v, want 333.3", stats.TicksPerSecond)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseForces)
		pc.EndTick()
	}

	if pc.sampleCount != 5 {
		t.Errorf("sample count = %d, want window size 5", pc.sampleCount)
	}
	if stats := pc.Stats(); stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
	if stats.FPS != 0 {
		t.Errorf("expected zero fps before any frame, got %v", stats.FPS)
	}
}

func TestPerfCollector_AverageFPS(t *testing.T) {
	tests := []struct {
		name   string
		frames []float32
		want   float64
	}{
		{"none", nil, 0},
		{"steady 60", []float32{1.0 / 60, 1.0 / 60, 1.0 / 60}, 60},
		{"mixed", []float32{0.01, 0.03}, 50},
		{"ignores zero dt", []float32{0, 0.02, 0}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := NewPerfCollector(10)
			for _, dt := range tt.frames {
				pc.RecordFrame(dt)
			}
			if got := pc.AverageFPS(); !scalar.EqualWithinRel(got, tt.want, 1e-5) && !(got == 0 && tt.want == 0) {
				t.Errorf("AverageFPS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerfCollector_FrameWindowEvicts(t *testing.T) {
	pc := NewPerfCollector(2)
	pc.RecordFrame(1)
	pc.RecordFrame(0.1)
	pc.RecordFrame(0.1)

	if got := pc.AverageFPS(); !scalar.EqualWithinRel(got, 10, 1e-5) {
		t.Errorf("AverageFPS() = %v, want 10 once the slow frame leaves the window", got)
	}
}

func TestPerfCollector_FrameStdDev(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordFrame(0.02)
	if s := pc.Stats(); s.FrameStdDev != 0 {
		t.Errorf("single frame stddev = %v, want 0", s.FrameStdDev)
	}

	pc.RecordFrame(0.04)
	s := pc.Stats()
	if d := s.FrameMean - 30*time.Millisecond; d < -time.Microsecond || d > time.Microsecond {
		t.Errorf("frame mean = %v, want 30ms", s.FrameMean)
	}
	if s.FrameStdDev <= 0 {
		t.Errorf("expected positive frame stddev, got %v", s.FrameStdDev)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 2 * time.Millisecond,
		PhasePct:        map[string]float64{PhaseForces: 80, PhaseIntegrate: 15},
		FPS:             60,
	}

	row := s.ToCSV(120, 42)
	if row.Tick != 120 || row.Particles != 42 {
		t.Errorf("row identity = (%d, %d), want (120, 42)", row.Tick, row.Particles)
	}
	if row.AvgTickUS != 2000 || row.ForcesPct != 80 || row.IntegratePct != 15 || row.SpawnPct != 0 {
		t.Errorf("unexpected row %+v", row)
	}
}
