// Package systems contains the simulation systems: particle storage, spawning,
// the force field and the impulse integrator.
package systems

import "math"

// Timer is a repeating countdown driven by frame deltas.
type Timer struct {
	Period  float32
	Elapsed float32
}

// NewTimer creates a repeating timer. If primed, the first Tick fires.
func NewTimer(period float32, primed bool) Timer {
	t := Timer{Period: period}
	if primed {
		t.Elapsed = period
	}
	return t
}

// Tick advances the timer by dt and reports whether it completed a period.
// Multiple periods elapsed in one tick still count as a single firing; the
// remainder carries over.
func (t *Timer) Tick(dt float32) bool {
	if dt > 0 {
		t.Elapsed += dt
	}
	if t.Period <= 0 || t.Elapsed < t.Period {
		return false
	}
	t.Elapsed = float32(math.Mod(float64(t.Elapsed), float64(t.Period)))
	if t.Elapsed >= t.Period {
		t.Elapsed = 0
	}
	return true
}

// Reset clears accumulated time.
func (t *Timer) Reset() {
	t.Elapsed = 0
}
