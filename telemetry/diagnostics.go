package telemetry

import (
	"github.com/pthm-cable/swirl/config"
	"github.com/pthm-cable/swirl/systems"
)

// FrameRate supplies an already-averaged frame rate.
type FrameRate interface {
	AverageFPS() float64
}

// Sample is one diagnostics reading, also a row of diagnostics.csv.
type Sample struct {
	Tick       int64   `csv:"tick"`
	SimTime    float64 `csv:"sim_time"`
	AverageFPS float64 `csv:"average_fps"`
	Particles  int     `csv:"particles"`
}

// Aggregator reports frame rate and particle count on a fixed cadence.
// The first Update produces a sample.
type Aggregator struct {
	timer   systems.Timer
	source  FrameRate
	tick    int64
	simTime float64
	last    Sample
}

// NewAggregator creates an aggregator sampling every interval seconds.
func NewAggregator(interval float32, source FrameRate) *Aggregator {
	return &Aggregator{
		timer:  systems.NewTimer(interval, true),
		source: source,
	}
}

// NewAggregatorFrom builds an aggregator from the loaded configuration.
func NewAggregatorFrom(cfg *config.Config, source FrameRate) *Aggregator {
	return NewAggregator(float32(cfg.Diagnostics.SampleInterval), source)
}

// Update advances the sampling timer. When it fires, the returned sample is
// fresh and ok is true; otherwise the previous sample is returned.
func (a *Aggregator) Update(dt float32, particles int) (Sample, bool) {
	a.tick++
	if dt > 0 {
		a.simTime += float64(dt)
	}
	if !a.timer.Tick(dt) {
		return a.last, false
	}

	var fps float64
	if a.source != nil {
		fps = a.source.AverageFPS()
	}
	a.last = Sample{
		Tick:       a.tick,
		SimTime:    a.simTime,
		AverageFPS: fps,
		Particles:  particles,
	}
	return a.last, true
}

// Last returns the most recent sample.
func (a *Aggregator) Last() Sample {
	return a.last
}
