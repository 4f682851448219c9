package systems

import "github.com/pthm-cable/swirl/components"

// Input is the per-tick state of the logical buttons the core reacts to.
type Input struct {
	SpawnHeld    bool // continuous spawn, throttled
	SpawnClicked bool // edge-triggered: inactive -> active this tick
	Up           bool
	Down         bool
	Left         bool
	Right        bool
}

// SpawnController creates particles from player input.
type SpawnController struct {
	store    *Store
	throttle Timer
	spawned  []Snapshot
}

// NewSpawnController creates a controller whose held-input spawns are limited
// to one per interval seconds.
func NewSpawnController(store *Store, interval float32, primed bool) *SpawnController {
	return &SpawnController{
		store:    store,
		throttle: NewTimer(interval, primed),
		spawned:  make([]Snapshot, 0, 2),
	}
}

// MaybeSpawn evaluates both triggers for this tick and returns the new particles.
// The throttle advances every tick whether or not the hold input is active.
// Both triggers are independent, so a tick can produce two particles.
// The returned slice is reused by the next call.
func (c *SpawnController) MaybeSpawn(dt float32, in Input, mouse components.Position) []Snapshot {
	c.spawned = c.spawned[:0]

	if c.throttle.Tick(dt) && in.SpawnHeld {
		c.spawned = append(c.spawned, c.store.Create(mouse))
	}
	if in.SpawnClicked {
		c.spawned = append(c.spawned, c.store.Create(mouse))
	}

	return c.spawned
}
