// Force field preview tool - interactive visualization of the impulse a probe
// particle would receive at each point, with live force sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swirl/camera"
	"github.com/pthm-cable/swirl/components"
	"github.com/pthm-cable/swirl/config"
	"github.com/pthm-cable/swirl/systems"
	"github.com/pthm-cable/swirl/ui"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 600
	panelX       = previewSize + 30
	panelWidth   = windowWidth - panelX - 10
	gridCells    = 24
	maxArrow     = previewSize / gridCells
)

// previewState holds everything the preview edits.
type previewState struct {
	sources    []systems.Snapshot
	sourceMass float32
	probeMass  float32
	dt         float32
	nextID     uint32
}

func defaultSources() []systems.Snapshot {
	body := components.NewBody(5, 1)
	white := components.Tint{R: 1, G: 1, B: 1}
	return []systems.Snapshot{
		{ID: 0, Pos: components.Position{X: -100, Y: -60}, Body: body, Tint: white},
		{ID: 1, Pos: components.Position{X: 100, Y: -60}, Body: body, Tint: white},
		{ID: 2, Pos: components.Position{X: 0, Y: 110}, Body: body, Tint: white},
	}
}

func main() {
	cfg := config.Default()

	rl.InitWindow(windowWidth, windowHeight, "Force Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	engine := systems.NewEngine(systems.ForceSettingsFrom(cfg))
	cam := camera.New(previewSize, previewSize, 1)

	panel := ui.NewTuningPanel(panelX, 10, panelWidth, engine.Settings)
	panel.Toggle()

	state := previewState{
		sources:    defaultSources(),
		sourceMass: components.Mass(5, 1),
		probeMass:  components.Mass(5, 1),
		dt:         1.0 / 60,
		nextID:     3,
	}

	for !rl.WindowShouldClose() {
		handleInput(&state, cam)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		drawField(engine, cam, &state)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		if settings, changed := panel.Draw(engine.Settings); changed {
			engine.Settings = settings
		}

		y := float32(10 + panel.Height() + 20)
		rl.DrawText("Source mass", panelX, int32(y), 14, rl.Gray)
		y += 18
		state.sourceMass = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: y, Width: float32(panelWidth - 60), Height: 16},
			"", fmt.Sprintf("%.0f", state.sourceMass),
			state.sourceMass, 1, 2000,
		)
		y += 30
		rl.DrawText("Probe mass", panelX, int32(y), 14, rl.Gray)
		y += 18
		state.probeMass = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: y, Width: float32(panelWidth - 60), Height: 16},
			"", fmt.Sprintf("%.0f", state.probeMass),
			state.probeMass, 1, 2000,
		)
		y += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Reset Sources") {
			state.sources = defaultSources()
			state.nextID = 3
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Clear") {
			state.sources = state.sources[:0]
		}

		rl.DrawText(fmt.Sprintf("Sources: %d", len(state.sources)), 15, previewSize+20, 16, rl.LightGray)
		rl.DrawText("LMB: add source | RMB: remove nearest | C: copy YAML", 15, previewSize+40, 14, rl.Gray)

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(settingsYAML(engine.Settings))
		}

		rl.EndDrawing()
	}
}

// handleInput adds or removes sources with clicks inside the preview.
func handleInput(state *previewState, cam *camera.Camera) {
	mp := rl.GetMousePosition()
	sx, sy := mp.X-10, mp.Y-10
	if sx < 0 || sy < 0 || sx > previewSize || sy > previewSize {
		return
	}
	wx, wy := cam.ScreenToWorld(sx, sy)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		radius := float32(math.Sqrt(float64(state.sourceMass / math.Pi)))
		state.sources = append(state.sources, systems.Snapshot{
			ID:   state.nextID,
			Pos:  components.Position{X: wx, Y: wy},
			Body: components.NewBody(radius, 1),
			Tint: components.Tint{R: 1, G: 1, B: 1},
		})
		state.nextID++
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) && len(state.sources) > 0 {
		nearest, best := 0, float32(math.MaxFloat32)
		for i, s := range state.sources {
			dx, dy := s.Pos.X-wx, s.Pos.Y-wy
			if d := dx*dx + dy*dy; d < best {
				nearest, best = i, d
			}
		}
		state.sources = append(state.sources[:nearest], state.sources[nearest+1:]...)
	}
}

// drawField draws one arrow per grid cell and the sources as discs.
func drawField(engine *systems.Engine, cam *camera.Camera, state *previewState) {
	probeRadius := float32(math.Sqrt(float64(state.probeMass / math.Pi)))
	probe := systems.Snapshot{
		ID:   math.MaxUint32,
		Body: components.NewBody(probeRadius, 1),
		Tint: components.Tint{R: 1, G: 1, B: 1},
	}

	cell := float32(previewSize) / gridCells
	for gy := 0; gy < gridCells; gy++ {
		for gx := 0; gx < gridCells; gx++ {
			sx := (float32(gx) + 0.5) * cell
			sy := (float32(gy) + 0.5) * cell
			wx, wy := cam.ScreenToWorld(sx, sy)
			probe.Pos = components.Position{X: wx, Y: wy}

			ix, iy := engine.ImpulseAt(probe, state.sources, state.dt)
			drawArrow(sx+10, sy+10, ix, iy)
		}
	}

	for _, s := range state.sources {
		sx, sy := cam.WorldToScreen(s.Pos.X, s.Pos.Y)
		r, g, b, a := s.Tint.RGBA8()
		rl.DrawCircleV(rl.Vector2{X: sx + 10, Y: sy + 10}, s.Body.Radius*cam.Zoom, rl.Color{R: r, G: g, B: b, A: a})
	}
}

// drawArrow draws a world-space impulse at a screen point. Length grows with
// log magnitude so weak and strong regions stay readable.
func drawArrow(x, y, ix, iy float32) {
	mag := math.Hypot(float64(ix), float64(iy))
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		rl.DrawPixel(int32(x), int32(y), rl.DarkGray)
		return
	}
	length := float32(math.Min(math.Log1p(mag)*4, maxArrow*0.9))
	// World y is up, screen y is down
	dx := float32(float64(ix)/mag) * length
	dy := -float32(float64(iy)/mag) * length

	heat := uint8(math.Min(math.Log1p(mag)*30, 255))
	color := rl.Color{R: heat, G: 120, B: 255 - heat, A: 255}
	rl.DrawLineV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: x + dx, Y: y + dy}, color)
	rl.DrawCircleV(rl.Vector2{X: x + dx, Y: y + dy}, 1.5, color)
}

// settingsYAML renders the force settings as config YAML.
func settingsYAML(s systems.ForceSettings) string {
	aggregation := config.AggregateOverwrite
	if s.Accumulate {
		aggregation = config.AggregateAccumulate
	}
	return fmt.Sprintf(`simulation:
  gravitational_constant: %.1f
  attraction_multiplier: %.2f
  repulsion_multiplier: %.2f
  attraction_color_requirement: %.2f
force:
  aggregation: %s
  repulsion_enabled: %t
  color_enabled: %t`,
		s.GravitationalConstant, s.AttractionMultiplier, s.RepulsionMultiplier,
		s.AttractionColorRequirement, aggregation, s.RepulsionEnabled, s.ColorEnabled)
}
