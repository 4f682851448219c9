package camera

import (
	"github.com/pthm-cable/swirl/config"
	"github.com/pthm-cable/swirl/systems"
)

// Vec2 is a 2D world-space point.
type Vec2 struct {
	X, Y float32
}

// Tracker moves a target point with directional input and eases the actual
// viewpoint toward it.
type Tracker struct {
	Target Vec2
	Actual Vec2

	// Speed is world units per second of held input.
	Speed float32
	// Smoothness is the easing time constant in seconds; larger is slower.
	Smoothness float32
}

// NewTracker creates a tracker at the origin.
func NewTracker(speed, smoothness float32) *Tracker {
	return &Tracker{Speed: speed, Smoothness: smoothness}
}

// NewTrackerFrom builds a tracker from the loaded configuration.
func NewTrackerFrom(cfg *config.Config) *Tracker {
	return NewTracker(float32(cfg.Camera.Speed), float32(cfg.Camera.Smoothness))
}

// Update applies directional input, then eases Actual toward Target.
// Opposite inputs cancel and perpendicular inputs add without normalization.
func (t *Tracker) Update(in systems.Input, dt float32) Vec2 {
	step := t.Speed * dt
	if in.Up {
		t.Target.Y += step
	}
	if in.Left {
		t.Target.X -= step
	}
	if in.Down {
		t.Target.Y -= step
	}
	if in.Right {
		t.Target.X += step
	}

	t.Actual.X -= (t.Actual.X - t.Target.X) * t.blend(dt)
	t.Actual.Y -= (t.Actual.Y - t.Target.Y) * t.blend(dt)
	return t.Actual
}

// blend is dt/smoothness, capped at 1 so a long frame lands on the target
// instead of overshooting it.
func (t *Tracker) blend(dt float32) float32 {
	if t.Smoothness <= 0 {
		return 1
	}
	f := dt / t.Smoothness
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// Apply centers a camera on the tracked viewpoint.
func (t *Tracker) Apply(c *Camera) {
	c.MoveTo(t.Actual.X, t.Actual.Y)
}
