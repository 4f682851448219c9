package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swirl/components"
	"github.com/pthm-cable/swirl/systems"
)

// handleKeys processes toggles that act outside the simulation tick.
func (g *Game) handleKeys() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.panel.Toggle()
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}
}

// readInput samples the logical buttons and the cursor in world space.
// Clicks over the tuning panel do not spawn.
func (g *Game) readInput() (systems.Input, components.Position) {
	mp := rl.GetMousePosition()
	overPanel := g.panel.Contains(mp.X, mp.Y)

	in := systems.Input{
		SpawnHeld:    !overPanel && rl.IsMouseButtonDown(rl.MouseButtonRight),
		SpawnClicked: !overPanel && rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Up:           rl.IsKeyDown(rl.KeyW),
		Down:         rl.IsKeyDown(rl.KeyS),
		Left:         rl.IsKeyDown(rl.KeyA),
		Right:        rl.IsKeyDown(rl.KeyD),
	}

	wx, wy := g.camera.ScreenToWorld(mp.X, mp.Y)
	return in, components.Position{X: wx, Y: wy}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)
}
