package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swirl/components"
)

// Integrator applies pending impulses to velocities and advances positions.
// It stands in for a rigid-body solver: there is no collision response.
type Integrator struct {
	filter *ecs.Filter4[components.Position, components.Velocity, components.Impulse, components.Body]

	// LinearDamping is the per-second velocity damping coefficient.
	LinearDamping float32
}

// NewIntegrator creates an integrator over every particle in the world.
func NewIntegrator(w *ecs.World, linearDamping float32) *Integrator {
	return &Integrator{
		filter:        ecs.NewFilter4[components.Position, components.Velocity, components.Impulse, components.Body](w),
		LinearDamping: linearDamping,
	}
}

// Update runs one integration step and zeroes every impulse.
func (s *Integrator) Update(dt float32) {
	damping := float32(1)
	if s.LinearDamping > 0 {
		damping = 1 / (1 + dt*s.LinearDamping)
	}

	query := s.filter.Query()
	for query.Next() {
		pos, vel, imp, body := query.Get()

		// Impulse changes momentum directly
		if body.Mass > 0 {
			vel.X += imp.X / body.Mass
			vel.Y += imp.Y / body.Mass
		}
		imp.X, imp.Y = 0, 0

		vel.X *= damping
		vel.Y *= damping

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
	}
}
