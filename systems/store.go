package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swirl/components"
	"github.com/pthm-cable/swirl/config"
)

// Rand produces uniform values in [0, 1). *math/rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// StoreConfig holds particle sampling parameters.
type StoreConfig struct {
	Density   float32
	RadiusMin float32
	RadiusMax float32
	ColorMin  float32
	ColorMax  float32
}

// StoreConfigFrom builds a StoreConfig from the loaded configuration.
func StoreConfigFrom(cfg *config.Config) StoreConfig {
	p := cfg.Particle
	return StoreConfig{
		Density:   float32(p.Density),
		RadiusMin: float32(p.RadiusMin),
		RadiusMax: float32(p.RadiusMax),
		ColorMin:  float32(p.ColorMin),
		ColorMax:  float32(p.ColorMax),
	}
}

// Snapshot is a read-only copy of a particle's state.
type Snapshot struct {
	ID   uint32
	Pos  components.Position
	Body components.Body
	Tint components.Tint
}

// Store holds every live particle. It is append-only: particles are never removed,
// and traversal is always in creation order.
type Store struct {
	world *ecs.World
	cfg   StoreConfig
	rng   Rand

	mapper *ecs.Map6[
		components.Particle,
		components.Position,
		components.Velocity,
		components.Impulse,
		components.Body,
		components.Tint,
	]
	posMap  *ecs.Map[components.Position]
	impMap  *ecs.Map[components.Impulse]
	bodyMap *ecs.Map[components.Body]
	tintMap *ecs.Map[components.Tint]
	idMap   *ecs.Map[components.Particle]

	entities []ecs.Entity // creation order
	nextID   uint32
}

// NewStore creates an empty store backed by a fresh ECS world.
func NewStore(cfg StoreConfig, rng Rand) *Store {
	world := ecs.NewWorld()
	return &Store{
		world: world,
		cfg:   cfg,
		rng:   rng,
		mapper: ecs.NewMap6[
			components.Particle,
			components.Position,
			components.Velocity,
			components.Impulse,
			components.Body,
			components.Tint,
		](world),
		posMap:   ecs.NewMap[components.Position](world),
		impMap:   ecs.NewMap[components.Impulse](world),
		bodyMap:  ecs.NewMap[components.Body](world),
		tintMap:  ecs.NewMap[components.Tint](world),
		idMap:    ecs.NewMap[components.Particle](world),
		entities: make([]ecs.Entity, 0, 256),
	}
}

// World exposes the ECS world for systems that query it directly.
func (s *Store) World() *ecs.World {
	return s.world
}

// Len returns the number of live particles.
func (s *Store) Len() int {
	return len(s.entities)
}

// NextID returns the id the next created particle will receive.
func (s *Store) NextID() uint32 {
	return s.nextID
}

// Create samples a radius and tint, derives mass and inserts a particle at pos.
func (s *Store) Create(pos components.Position) Snapshot {
	radius := uniform(s.rng, s.cfg.RadiusMin, s.cfg.RadiusMax)
	tint := components.Tint{
		R: uniform(s.rng, s.cfg.ColorMin, s.cfg.ColorMax),
		G: uniform(s.rng, s.cfg.ColorMin, s.cfg.ColorMax),
		B: uniform(s.rng, s.cfg.ColorMin, s.cfg.ColorMax),
	}
	return s.Insert(pos, radius, tint)
}

// Insert adds a particle with explicit radius and tint. Used by Create and by
// scenarios that need exact values.
func (s *Store) Insert(pos components.Position, radius float32, tint components.Tint) Snapshot {
	id := s.nextID
	s.nextID++

	p := components.Particle{ID: id}
	vel := components.Velocity{}
	imp := components.Impulse{}
	body := components.NewBody(radius, s.cfg.Density)

	e := s.mapper.NewEntity(&p, &pos, &vel, &imp, &body, &tint)
	s.entities = append(s.entities, e)

	return Snapshot{ID: id, Pos: pos, Body: body, Tint: tint}
}

// All appends a snapshot of every particle to dst in creation order.
// Reuse dst across ticks to avoid allocations.
func (s *Store) All(dst []Snapshot) []Snapshot {
	dst = dst[:0]
	for _, e := range s.entities {
		dst = append(dst, Snapshot{
			ID:   s.idMap.Get(e).ID,
			Pos:  *s.posMap.Get(e),
			Body: *s.bodyMap.Get(e),
			Tint: *s.tintMap.Get(e),
		})
	}
	return dst
}

// SetImpulses writes engine output back onto the particles.
// impulses must be aligned with the order returned by All.
func (s *Store) SetImpulses(impulses []Impulse) {
	n := len(impulses)
	if n > len(s.entities) {
		n = len(s.entities)
	}
	for i := 0; i < n; i++ {
		imp := s.impMap.Get(s.entities[i])
		imp.X = impulses[i].X
		imp.Y = impulses[i].Y
	}
}

// Impulse returns the pending impulse of the i-th particle in creation order.
func (s *Store) Impulse(i int) components.Impulse {
	return *s.impMap.Get(s.entities[i])
}

// uniform samples [lo, hi).
func uniform(rng Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
