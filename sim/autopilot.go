package sim

import (
	"math/rand"

	"github.com/pthm-cable/swirl/components"
	"github.com/pthm-cable/swirl/config"
	"github.com/pthm-cable/swirl/systems"
)

// Autopilot scripts input for headless runs. It holds the spawn button at a
// random point in a square around the origin until the population cap, and
// clicks once per second of ticks. The camera drifts along a slow square.
type Autopilot struct {
	rng          *rand.Rand
	extent       float32
	maxParticles int
	clickEvery   int
	legTicks     int

	n int
}

// NewAutopilot creates an autopilot from the headless config section.
func NewAutopilot(cfg *config.Config, rng *rand.Rand) *Autopilot {
	clickEvery := 60
	if dt := cfg.Headless.DT; dt > 0 {
		clickEvery = max(1, int(1/dt))
	}
	return &Autopilot{
		rng:          rng,
		extent:       float32(cfg.Headless.SpawnExtent),
		maxParticles: cfg.Headless.MaxParticles,
		clickEvery:   clickEvery,
		legTicks:     clickEvery * 2,
	}
}

// Next returns the input and world-space cursor for the coming tick.
func (a *Autopilot) Next(particles int) (systems.Input, components.Position) {
	a.n++

	var in systems.Input
	if a.maxParticles <= 0 || particles < a.maxParticles {
		in.SpawnHeld = true
		in.SpawnClicked = a.n%a.clickEvery == 0
	}

	switch (a.n / a.legTicks) % 4 {
	case 0:
		in.Right = true
	case 1:
		in.Up = true
	case 2:
		in.Left = true
	case 3:
		in.Down = true
	}

	mouse := components.Position{
		X: (a.rng.Float32()*2 - 1) * a.extent,
		Y: (a.rng.Float32()*2 - 1) * a.extent,
	}
	return in, mouse
}

// StepHeadless advances one fixed-dt tick under autopilot control.
func (s *Simulation) StepHeadless(a *Autopilot) {
	in, mouse := a.Next(s.Store.Len())
	s.Step(s.cfg.Derived.HeadlessDT, in, mouse)
}
