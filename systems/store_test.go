package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/swirl/components"
	"github.com/pthm-cable/swirl/config"
)

// fixedRand returns a repeating sequence of values.
type fixedRand struct {
	values []float32
	i      int
}

func (r *fixedRand) Float32() float32 {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

func defaultStoreConfig() StoreConfig {
	return StoreConfigFrom(config.Default())
}

func TestStoreCreateSampling(t *testing.T) {
	// Create draws radius first, then r, g, b
	rng := &fixedRand{values: []float32{0.5, 0, 0.25, 0.999}}
	store := NewStore(defaultStoreConfig(), rng)

	p := store.Create(components.Position{X: 3, Y: -4})

	if p.Body.Radius != 6 {
		t.Errorf("radius = %v, want 6 (1 + 0.5*10)", p.Body.Radius)
	}
	if p.Tint.R != 0.3 {
		t.Errorf("r = %v, want 0.3", p.Tint.R)
	}
	if math.Abs(float64(p.Tint.G-0.55)) > 1e-6 {
		t.Errorf("g = %v, want 0.55", p.Tint.G)
	}
	if p.Tint.B >= 1.3 {
		t.Errorf("b = %v, want < 1.3", p.Tint.B)
	}
	if p.Pos.X != 3 || p.Pos.Y != -4 {
		t.Errorf("position = %+v, want (3, -4)", p.Pos)
	}
}

func TestStoreMassInvariant(t *testing.T) {
	store := NewStore(defaultStoreConfig(), rand.New(rand.NewSource(7)))

	for i := 0; i < 200; i++ {
		store.Create(components.Position{X: float32(i), Y: 0})
	}

	for _, p := range store.All(nil) {
		want := p.Body.Density * float32(math.Pi) * p.Body.Radius * p.Body.Radius
		if p.Body.Mass != want {
			t.Fatalf("particle %d mass = %v, want %v", p.ID, p.Body.Mass, want)
		}
		if p.Body.Radius < 1 || p.Body.Radius >= 11 {
			t.Fatalf("particle %d radius %v outside [1, 11)", p.ID, p.Body.Radius)
		}
		for _, c := range []float32{p.Tint.R, p.Tint.G, p.Tint.B} {
			if c < 0.3 || c >= 1.3 {
				t.Fatalf("particle %d channel %v outside [0.3, 1.3)", p.ID, c)
			}
		}
	}
}

func TestStoreIDsStrictlyIncreasing(t *testing.T) {
	store := NewStore(defaultStoreConfig(), rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		store.Create(components.Position{})
	}

	all := store.All(nil)
	if len(all) != 50 || store.Len() != 50 {
		t.Fatalf("expected 50 particles, got %d (Len %d)", len(all), store.Len())
	}
	seen := make(map[uint32]bool)
	for i, p := range all {
		if seen[p.ID] {
			t.Fatalf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
		if i > 0 && p.ID <= all[i-1].ID {
			t.Fatalf("ids not strictly increasing: %d after %d", p.ID, all[i-1].ID)
		}
	}
	if store.NextID() != 50 {
		t.Errorf("NextID = %d, want 50", store.NextID())
	}
}

func TestStoreAllStableOrder(t *testing.T) {
	store := NewStore(defaultStoreConfig(), rand.New(rand.NewSource(3)))
	for i := 0; i < 10; i++ {
		store.Create(components.Position{X: float32(i)})
	}

	first := store.All(nil)
	second := store.All(make([]Snapshot, 0, 4))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order differs at %d: %+v vs %+v", i, first[i], second[i])
		}
		if first[i].Pos.X != float32(i) {
			t.Errorf("particle %d at x=%v, want creation order", i, first[i].Pos.X)
		}
	}
}

func TestStoreSetImpulses(t *testing.T) {
	store := NewStore(defaultStoreConfig(), rand.New(rand.NewSource(3)))
	store.Create(components.Position{})
	store.Create(components.Position{X: 5})

	store.SetImpulses([]Impulse{{ID: 0, X: 1, Y: 2}, {ID: 1, X: -3, Y: 4}})

	if imp := store.Impulse(0); imp.X != 1 || imp.Y != 2 {
		t.Errorf("impulse 0 = %+v, want (1, 2)", imp)
	}
	if imp := store.Impulse(1); imp.X != -3 || imp.Y != 4 {
		t.Errorf("impulse 1 = %+v, want (-3, 4)", imp)
	}
}

func TestStoreEmpty(t *testing.T) {
	store := NewStore(defaultStoreConfig(), rand.New(rand.NewSource(3)))
	if got := store.All(nil); len(got) != 0 {
		t.Errorf("expected empty snapshot, got %d", len(got))
	}
	store.SetImpulses(nil)
}
