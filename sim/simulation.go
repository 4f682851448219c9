// Package sim wires the particle systems into one frame-synchronous tick.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/swirl/camera"
	"github.com/pthm-cable/swirl/components"
	"github.com/pthm-cable/swirl/config"
	"github.com/pthm-cable/swirl/systems"
	"github.com/pthm-cable/swirl/telemetry"
)

// Options configures a Simulation beyond the loaded config.
type Options struct {
	Seed      int64
	LogStats  bool   // periodic perf lines via slog
	OutputDir string // empty disables CSV output
}

// Simulation owns every system and the per-tick scratch buffers.
// Phases run strictly in order, so no state is shared concurrently except
// inside the optional parallel force pass.
type Simulation struct {
	cfg *config.Config
	rng *rand.Rand

	Store       *systems.Store
	Spawner     *systems.SpawnController
	Engine      *systems.Engine
	Integrator  *systems.Integrator
	Tracker     *camera.Tracker
	Perf        *telemetry.PerfCollector
	Diagnostics *telemetry.Aggregator

	output   *telemetry.OutputManager
	logTimer systems.Timer
	logStats bool

	particles []systems.Snapshot
	impulses  systems.Impulses

	tick   int64
	sample telemetry.Sample
}

// New builds a simulation from cfg. The caller must Close it.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	rng := rand.New(rand.NewSource(opts.Seed))

	store := systems.NewStore(systems.StoreConfigFrom(cfg), rng)
	engine := systems.NewEngine(systems.ForceSettingsFrom(cfg))
	engine.EnableParallel(cfg.Force.Workers, cfg.Force.ParallelThreshold)

	perf := telemetry.NewPerfCollector(cfg.Diagnostics.FrameWindow)

	s := &Simulation{
		cfg:         cfg,
		rng:         rng,
		Store:       store,
		Spawner:     systems.NewSpawnController(store, float32(cfg.Spawn.Interval), cfg.Spawn.Prime),
		Engine:      engine,
		Integrator:  systems.NewIntegrator(store.World(), float32(cfg.Particle.LinearDamping)),
		Tracker:     camera.NewTrackerFrom(cfg),
		Perf:        perf,
		Diagnostics: telemetry.NewAggregatorFrom(cfg, perf),
		logTimer:    systems.NewTimer(float32(cfg.Diagnostics.LogInterval), false),
		logStats:    opts.LogStats,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		engine.Close()
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		engine.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	s.output = om

	return s, nil
}

// Step runs one tick: spawn, forces, integrate, camera, diagnostics.
// mouse is the cursor in world coordinates.
func (s *Simulation) Step(dt float32, in systems.Input, mouse components.Position) {
	if dt < 0 {
		dt = 0
	}
	s.Perf.StartTick()
	s.Perf.RecordFrame(dt)

	s.Perf.StartPhase(telemetry.PhaseSpawn)
	s.Spawner.MaybeSpawn(dt, in, mouse)

	s.Perf.StartPhase(telemetry.PhaseForces)
	s.particles = s.Store.All(s.particles)
	s.impulses = s.Engine.Compute(s.impulses, s.particles, dt)
	s.Store.SetImpulses(s.impulses)

	s.Perf.StartPhase(telemetry.PhaseIntegrate)
	s.Integrator.Update(dt)

	s.Perf.StartPhase(telemetry.PhaseCamera)
	s.Tracker.Update(in, dt)

	s.Perf.StartPhase(telemetry.PhaseDiagnostics)
	s.tick++
	if sample, ok := s.Diagnostics.Update(dt, s.Store.Len()); ok {
		s.sample = sample
		if err := s.output.WriteSample(sample); err != nil {
			slog.Error("failed to write diagnostics", "error", err)
		}
	}

	s.Perf.EndTick()

	if s.logTimer.Tick(dt) {
		s.flushPerf()
	}
}

// flushPerf logs and records the perf window.
func (s *Simulation) flushPerf() {
	stats := s.Perf.Stats()
	if s.logStats {
		stats.LogStats()
	}
	if err := s.output.WritePerf(stats, s.tick, s.Store.Len()); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int64 {
	return s.tick
}

// Sample returns the latest diagnostics sample.
func (s *Simulation) Sample() telemetry.Sample {
	return s.sample
}

// Impulses returns the impulses computed in the last tick, aligned with the
// store's creation order at that time.
func (s *Simulation) Impulses() systems.Impulses {
	return s.impulses
}

// Particles returns current particle snapshots, reusing dst.
func (s *Simulation) Particles(dst []systems.Snapshot) []systems.Snapshot {
	return s.Store.All(dst)
}

// SetForceSettings replaces the force constants between ticks.
func (s *Simulation) SetForceSettings(fs systems.ForceSettings) {
	s.Engine.Settings = fs
}

// Config returns the configuration the simulation was built from.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// Rand returns the simulation's random source.
func (s *Simulation) Rand() *rand.Rand {
	return s.rng
}

// Close stops workers and flushes output.
func (s *Simulation) Close() error {
	s.Engine.Close()
	if s.output != nil {
		s.flushPerf()
	}
	return s.output.Close()
}
