package telemetry

import "testing"

type constFPS float64

func (c constFPS) AverageFPS() float64 { return float64(c) }

func TestAggregatorFirstUpdateSamples(t *testing.T) {
	a := NewAggregator(0.05, constFPS(60))

	s, ok := a.Update(0.001, 3)
	if !ok {
		t.Fatal("expected the first update to produce a sample")
	}
	if s.Tick != 1 || s.Particles != 3 || s.AverageFPS != 60 {
		t.Errorf("sample = %+v, want tick 1, 3 particles, 60 fps", s)
	}
}

func TestAggregatorCadence(t *testing.T) {
	a := NewAggregator(0.05, constFPS(100))

	fired := 0
	// 1 second at 100 Hz; primed first sample plus one every 5 ticks
	for i := 0; i < 100; i++ {
		if _, ok := a.Update(0.01, i); ok {
			fired++
		}
	}
	if fired < 20 || fired > 21 {
		t.Errorf("fired %d times, want 20 or 21", fired)
	}
}

func TestAggregatorHoldsLastSample(t *testing.T) {
	a := NewAggregator(1, constFPS(30))

	first, _ := a.Update(0.1, 5)
	held, ok := a.Update(0.1, 9)
	if ok {
		t.Fatal("expected no sample before the interval elapses")
	}
	if held != first || a.Last() != first {
		t.Errorf("held sample = %+v, want %+v", held, first)
	}
}

func TestAggregatorNilSource(t *testing.T) {
	a := NewAggregator(0.05, nil)

	s, ok := a.Update(0.016, 0)
	if !ok || s.AverageFPS != 0 || s.Particles != 0 {
		t.Errorf("sample = %+v, ok %v; want zero fps, zero particles", s, ok)
	}
}

func TestAggregatorTracksSimTime(t *testing.T) {
	a := NewAggregator(0.5, constFPS(0))
	for i := 0; i < 3; i++ {
		a.Update(0.25, 0)
	}

	s, ok := a.Update(0.25, 0)
	if !ok || s.Tick != 4 || s.SimTime != 1 {
		t.Errorf("sample = %+v, ok %v; want tick 4 at 1s", s, ok)
	}
}
