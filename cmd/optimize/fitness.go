package main

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/swirl/config"
	"github.com/pthm-cable/swirl/sim"
	"github.com/pthm-cable/swirl/systems"
)

// failedFitness is returned when a run produces non-finite positions.
const failedFitness = 1e6

// FitnessEvaluator runs headless simulations and scores how close the
// particle cloud settles to a target radius.
type FitnessEvaluator struct {
	params       *ParamVector
	maxTicks     int
	seeds        []int64
	baseConfig   *config.Config
	targetRadius float64

	mu         sync.Mutex
	lastRadius float64 // mean cloud radius from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config, targetRadius float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:       params,
		maxTicks:     maxTicks,
		seeds:        seeds,
		baseConfig:   baseCfg,
		targetRadius: targetRadius,
	}
}

// LastRadius returns the mean cloud radius from the most recent evaluation.
func (fe *FitnessEvaluator) LastRadius() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastRadius
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Fitness is the mean over seeds of (radius/target - 1)².
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	radii := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			radii[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	fitness, radius := scoreRadii(radii, fe.targetRadius)

	fe.mu.Lock()
	fe.lastRadius = radius
	fe.mu.Unlock()

	return fitness
}

// scoreRadii returns the mean of (r/target - 1)² with failedFitness for
// non-finite runs, and the mean radius over finite runs only. The radius is
// NaN when every run failed.
func scoreRadii(radii []float64, target float64) (fitness, radius float64) {
	if len(radii) == 0 {
		return failedFitness, math.NaN()
	}
	var total float64
	finite := make([]float64, 0, len(radii))
	for _, r := range radii {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			total += failedFitness
			continue
		}
		finite = append(finite, r)
		d := r/target - 1
		total += d * d
	}

	radius = math.NaN()
	if len(finite) > 0 {
		radius = stat.Mean(finite, nil)
	}
	return total / float64(len(radii)), radius
}

// runSimulation executes one headless run and returns the final cloud radius.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	s, err := sim.New(cfg, sim.Options{Seed: seed})
	if err != nil {
		return math.NaN()
	}
	defer s.Close()

	ap := sim.NewAutopilot(cfg, rand.New(rand.NewSource(seed+1)))
	for int(s.Tick()) < fe.maxTicks {
		s.StepHeadless(ap)
	}

	return CloudRadius(s.Particles(nil))
}

// copyConfig returns a private copy of the base config for one run.
// Config holds only value fields, so a shallow copy is independent.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.baseConfig
	return &c
}

// CloudRadius is the mass-weighted RMS distance of particles from their
// center of mass. Returns 0 for an empty set.
func CloudRadius(ps []systems.Snapshot) float64 {
	if len(ps) == 0 {
		return 0
	}
	xs := make([]float64, len(ps))
	ys := make([]float64, len(ps))
	ws := make([]float64, len(ps))
	for i, p := range ps {
		xs[i] = float64(p.Pos.X)
		ys[i] = float64(p.Pos.Y)
		ws[i] = float64(p.Body.Mass)
	}
	cx := stat.Mean(xs, ws)
	cy := stat.Mean(ys, ws)

	sq := make([]float64, len(ps))
	for i := range ps {
		dx, dy := xs[i]-cx, ys[i]-cy
		sq[i] = dx*dx + dy*dy
	}
	return math.Sqrt(stat.Mean(sq, ws))
}
