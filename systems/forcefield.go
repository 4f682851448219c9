package systems

import (
	"math"

	"github.com/pthm-cable/swirl/config"
)

// ForceSettings holds the global force constants and composition switches.
// Set once at startup; the tuning panel may replace it between ticks.
type ForceSettings struct {
	GravitationalConstant      float32
	AttractionMultiplier       float32
	RepulsionMultiplier        float32
	AttractionColorRequirement float32

	// RepulsionEnabled adds repulsion*dt*RepulsionMultiplier to each contribution.
	RepulsionEnabled bool
	// ColorEnabled scales the attraction term by the color-similarity scalar.
	ColorEnabled bool
	// Accumulate sums contributions over all sources. When false, each source
	// overwrites the target's impulse and the last source in store order wins.
	Accumulate bool

	// MinDistSq skips pairs whose squared distance is below it, including
	// coincident particles.
	MinDistSq float32
}

// ForceSettingsFrom builds ForceSettings from the loaded configuration.
func ForceSettingsFrom(cfg *config.Config) ForceSettings {
	return ForceSettings{
		GravitationalConstant:      float32(cfg.Simulation.GravitationalConstant),
		AttractionMultiplier:       float32(cfg.Simulation.AttractionMultiplier),
		RepulsionMultiplier:        float32(cfg.Simulation.RepulsionMultiplier),
		AttractionColorRequirement: float32(cfg.Simulation.AttractionColorRequirement),
		RepulsionEnabled:           cfg.Force.RepulsionEnabled,
		ColorEnabled:               cfg.Force.ColorEnabled,
		Accumulate:                 cfg.Derived.Accumulate,
		MinDistSq:                  cfg.Derived.MinDistSq32,
	}
}

// Impulse is the engine output for one particle.
type Impulse struct {
	ID   uint32
	X, Y float32
}

// Impulses is the result of one engine pass, aligned with the input order.
type Impulses []Impulse

// ByID returns the impulses keyed by particle id.
func (im Impulses) ByID() map[uint32]Impulse {
	m := make(map[uint32]Impulse, len(im))
	for _, i := range im {
		m[i.ID] = i
	}
	return m
}

// PairForce is the decomposition of one source's effect on one target.
type PairForce struct {
	AttractionX, AttractionY float32 // -G*ma*mb/d² along the bearing
	RepulsionX, RepulsionY   float32 // attraction / -d²
	ColorMultiplier          float32 // requirement - |Δr|-|Δg|-|Δb|
	Skipped                  bool    // squared distance below MinDistSq
}

// Engine computes inter-particle impulses.
// Every ordered pair is evaluated, so cost grows as O(n²) with particle count.
type Engine struct {
	Settings ForceSettings

	pool *forcePool // nil = serial
}

// NewEngine creates a serial engine.
func NewEngine(settings ForceSettings) *Engine {
	return &Engine{Settings: settings}
}

// Compute appends one impulse per particle to dst (reset to length 0 first) and
// returns it. Output is aligned with particles. dst is reused across ticks.
func (e *Engine) Compute(dst Impulses, particles []Snapshot, dt float32) Impulses {
	n := len(particles)
	if cap(dst) < n {
		dst = make(Impulses, n)
	}
	dst = dst[:n]

	if e.pool != nil && e.pool.shouldRun(n) {
		e.pool.run(e, dst, particles, dt)
		return dst
	}

	e.computeRange(dst, particles, dt, 0, n)
	return dst
}

// computeRange fills dst[start:end]. Each target only reads the shared
// particle slice, so disjoint ranges can run concurrently.
func (e *Engine) computeRange(dst Impulses, particles []Snapshot, dt float32, start, end int) {
	for ti := start; ti < end; ti++ {
		ix, iy := e.impulseOn(&particles[ti], particles, ti, dt)
		dst[ti] = Impulse{ID: particles[ti].ID, X: ix, Y: iy}
	}
}

// ImpulseAt returns the impulse a probe particle would receive from sources
// without being part of the store.
func (e *Engine) ImpulseAt(probe Snapshot, sources []Snapshot, dt float32) (x, y float32) {
	return e.impulseOn(&probe, sources, -1, dt)
}

// impulseOn aggregates every source's contribution on target, skipping the
// source at index skip.
func (e *Engine) impulseOn(target *Snapshot, sources []Snapshot, skip int, dt float32) (ix, iy float32) {
	s := &e.Settings
	for si := range sources {
		if si == skip {
			continue
		}
		pf := pairForce(s, &sources[si], target)
		if pf.Skipped {
			continue
		}

		cx, cy := s.contribution(pf, dt)
		if s.Accumulate {
			ix += cx
			iy += cy
		} else {
			ix, iy = cx, cy
		}
	}
	return ix, iy
}

// contribution composes the impulse delta for one pair from the enabled terms.
func (s *ForceSettings) contribution(pf PairForce, dt float32) (x, y float32) {
	scale := s.AttractionMultiplier * dt
	if s.ColorEnabled {
		scale *= pf.ColorMultiplier
	}
	x = pf.AttractionX * scale
	y = pf.AttractionY * scale

	if s.RepulsionEnabled {
		rs := dt * s.RepulsionMultiplier
		x += pf.RepulsionX * rs
		y += pf.RepulsionY * rs
	}
	return x, y
}

// PairForce evaluates the force that source exerts on target.
func (e *Engine) PairForce(source, target Snapshot) PairForce {
	return pairForce(&e.Settings, &source, &target)
}

// pairForce computes the attraction of target toward source.
//
// The bearing is atan2(dx, dy) with the x delta first, measured from the source
// to the target, wrapped into [0°, 360°). Then sin(bearing) = dx/d and
// cos(bearing) = dy/d, and the negated force points from target to source.
func pairForce(s *ForceSettings, source, target *Snapshot) PairForce {
	dx := target.Pos.X - source.Pos.X
	dy := target.Pos.Y - source.Pos.Y
	distSq := dx*dx + dy*dy
	if distSq < s.MinDistSq {
		return PairForce{Skipped: true}
	}

	angle := Bearing(dx, dy)
	dist := float32(math.Sqrt(float64(distSq)))
	d2 := dist * dist

	sin, cos := math.Sincos(float64(angle))
	magnitude := -s.GravitationalConstant * source.Body.Mass * target.Body.Mass / d2

	pf := PairForce{
		AttractionX: magnitude * float32(sin),
		AttractionY: magnitude * float32(cos),
	}
	pf.RepulsionX = pf.AttractionX / -d2
	pf.RepulsionY = pf.AttractionY / -d2
	pf.ColorMultiplier = s.AttractionColorRequirement - source.Tint.Distance(target.Tint)
	return pf
}

// Bearing returns atan2(dx, dy) in radians, normalized into [0, 2π).
// The operands are (x, y), not the usual (y, x): the angle is measured from
// the +y axis toward +x.
func Bearing(dx, dy float32) float32 {
	deg := float32(math.Atan2(float64(dx), float64(dy))) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg * math.Pi / 180
}
