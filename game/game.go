// Package game runs the simulation inside a raylib window.
package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swirl/camera"
	"github.com/pthm-cable/swirl/config"
	"github.com/pthm-cable/swirl/sim"
	"github.com/pthm-cable/swirl/systems"
	"github.com/pthm-cable/swirl/ui"
)

const controlsText = "RMB hold / LMB click: spawn | WASD: move | wheel: zoom | F1: forces | Space: pause"

// Game holds the windowed application state around a Simulation.
type Game struct {
	sim    *sim.Simulation
	camera *camera.Camera

	hud   *ui.HUD
	panel *ui.TuningPanel

	paused bool

	// Render scratch
	particles []systems.Snapshot

	screenWidth, screenHeight float32
}

// New creates a game. The raylib window must already be open.
func New(cfg *config.Config, opts sim.Options) (*Game, error) {
	s, err := sim.New(cfg, opts)
	if err != nil {
		return nil, err
	}

	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	return &Game{
		sim:          s,
		camera:       camera.New(w, h, float32(cfg.Camera.Zoom)),
		hud:          ui.NewHUD(),
		panel:        ui.NewTuningPanel(int32(w)-270, 10, 260, s.Engine.Settings),
		screenWidth:  w,
		screenHeight: h,
	}, nil
}

// Update reads input and advances the simulation by the last frame time.
func (g *Game) Update() {
	g.handleResize()
	g.handleKeys()

	if g.paused {
		return
	}

	in, mouse := g.readInput()
	g.sim.Step(rl.GetFrameTime(), in, mouse)
	g.sim.Tracker.Apply(g.camera)
}

// Tick returns the number of simulated ticks.
func (g *Game) Tick() int64 {
	return g.sim.Tick()
}

// Unload releases simulation resources.
func (g *Game) Unload() error {
	return g.sim.Close()
}
