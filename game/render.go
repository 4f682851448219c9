package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swirl/ui"
)

// Draw renders the particles, HUD and tuning panel.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.drawParticles()

	sample := g.sim.Sample()
	g.hud.Draw(ui.HUDData{
		FPS:       sample.AverageFPS,
		Particles: sample.Particles,
		Tick:      g.sim.Tick(),
		Paused:    g.paused,
	})
	g.hud.DrawControls(int32(g.screenHeight), controlsText)

	if settings, changed := g.panel.Draw(g.sim.Engine.Settings); changed {
		g.sim.SetForceSettings(settings)
	}

	rl.EndDrawing()
}

// drawParticles renders each visible particle as a disc in its clamped tint.
func (g *Game) drawParticles() {
	g.particles = g.sim.Particles(g.particles)
	zoom := g.camera.Zoom

	for i := range g.particles {
		p := &g.particles[i]
		if !g.camera.IsVisible(p.Pos.X, p.Pos.Y, p.Body.Radius) {
			continue
		}

		sx, sy := g.camera.WorldToScreen(p.Pos.X, p.Pos.Y)
		r, gr, b, a := p.Tint.RGBA8()
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, p.Body.Radius*zoom, rl.Color{R: r, G: gr, B: b, A: a})
	}
}
