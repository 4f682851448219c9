// Package components defines ECS components for the particle sandbox.
package components

import "math"

// Particle identifies a simulated disc.
// IDs are assigned at creation, strictly increasing and never reused.
type Particle struct {
	ID uint32
}

// Position represents a particle's world position (y-up).
type Position struct {
	X, Y float32
}

// Velocity is integrator state, carried between ticks.
type Velocity struct {
	X, Y float32
}

// Impulse is the per-tick force output of the force field.
// The integrator consumes and zeroes it every tick.
type Impulse struct {
	X, Y float32
}

// Body holds physical properties fixed at creation.
type Body struct {
	Radius  float32
	Density float32
	Mass    float32 // Density * π * Radius²
}

// NewBody derives mass from density and radius.
func NewBody(radius, density float32) Body {
	return Body{
		Radius:  radius,
		Density: density,
		Mass:    Mass(radius, density),
	}
}

// Mass returns density * π * radius² in float32.
func Mass(radius, density float32) float32 {
	return density * math.Pi * radius * radius
}

// Tint is a particle's color. Channels are not clamped to [0, 1].
type Tint struct {
	R, G, B float32
}

// Distance returns the L1 distance between two tints.
func (t Tint) Distance(o Tint) float32 {
	return absf(t.R-o.R) + absf(t.G-o.G) + absf(t.B-o.B)
}

// RGBA8 clamps each channel to [0, 1] and scales it to a byte.
// Alpha is always opaque.
func (t Tint) RGBA8() (r, g, b, a uint8) {
	return channel8(t.R), channel8(t.G), channel8(t.B), 255
}

func channel8(c float32) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(c*255 + 0.5)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
