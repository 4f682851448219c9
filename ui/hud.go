package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	FPS       float64
	Particles int
	Tick      int64
	Paused    bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Lines returns the HUD text lines in draw order.
func (d HUDData) Lines() []string {
	lines := []string{
		fmt.Sprintf("FPS: %.0f", d.FPS),
		fmt.Sprintf("Particles: %d", d.Particles),
	}
	if d.Paused {
		lines = append(lines, "PAUSED")
	}
	return lines
}

// Draw renders the HUD at the top-left, one line every 20 pixels.
func (h *HUD) Draw(data HUDData) {
	t := h.renderer.Theme
	for i, line := range data.Lines() {
		color := t.HUDColor
		if line == "PAUSED" {
			color = rl.Yellow
		}
		rl.DrawText(line, 10, 10+int32(i)*20, t.HUDFontSize, color)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
