package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swirl/systems"
)

// SliderDescriptor binds a slider to one float field of ForceSettings.
type SliderDescriptor struct {
	Label    string
	Min, Max float32
	Field    func(*systems.ForceSettings) *float32
}

// ToggleDescriptor binds a check box to one bool field of ForceSettings.
type ToggleDescriptor struct {
	Label string
	Field func(*systems.ForceSettings) *bool
}

// TuningSliders lists the force constants the panel exposes.
var TuningSliders = []SliderDescriptor{
	{"G", 0, 5000, func(s *systems.ForceSettings) *float32 { return &s.GravitationalConstant }},
	{"Attraction", 0, 100, func(s *systems.ForceSettings) *float32 { return &s.AttractionMultiplier }},
	{"Repulsion", 0, 20, func(s *systems.ForceSettings) *float32 { return &s.RepulsionMultiplier }},
	{"Color req", -3, 3, func(s *systems.ForceSettings) *float32 { return &s.AttractionColorRequirement }},
}

// TuningToggles lists the force composition switches the panel exposes.
var TuningToggles = []ToggleDescriptor{
	{"Repulsion term", func(s *systems.ForceSettings) *bool { return &s.RepulsionEnabled }},
	{"Color term", func(s *systems.ForceSettings) *bool { return &s.ColorEnabled }},
	{"Accumulate", func(s *systems.ForceSettings) *bool { return &s.Accumulate }},
}

// TuningPanel edits ForceSettings live. Reset restores the startup values.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	initial  systems.ForceSettings
}

// NewTuningPanel creates a hidden panel. initial is restored by Reset.
func NewTuningPanel(x, y, width int32, initial systems.ForceSettings) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		initial:  initial,
	}
}

// IsVisible returns whether the panel is shown.
func (p *TuningPanel) IsVisible() bool {
	return p.visible
}

// Toggle switches panel visibility.
func (p *TuningPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Height returns the panel height for the current descriptor set.
func (p *TuningPanel) Height() int32 {
	t := p.renderer.Theme
	rows := int32(len(TuningSliders))*2 + int32(len(TuningToggles)) + 1
	return t.Padding*3 + t.LineHeight + rows*(t.LineHeight+6) + 24
}

// Contains reports whether a screen point lies over the visible panel.
// Used to keep panel clicks from spawning particles.
func (p *TuningPanel) Contains(sx, sy float32) bool {
	if !p.visible {
		return false
	}
	return sx >= float32(p.x) && sx <= float32(p.x+p.width) &&
		sy >= float32(p.y) && sy <= float32(p.y+p.Height())
}

// Draw renders the panel and returns the edited settings and whether any
// value changed.
func (p *TuningPanel) Draw(current systems.ForceSettings) (systems.ForceSettings, bool) {
	if !p.visible {
		return current, false
	}

	r := p.renderer
	t := r.Theme
	r.DrawPanel(p.x, p.y, p.width, p.Height())

	x := float32(p.x + t.Padding)
	y := p.y + t.Padding
	rl.DrawText("Forces", int32(x), y, 16, rl.White)
	y += t.LineHeight + 4

	next := current
	sliderW := float32(p.width - t.Padding*2 - 50)
	for _, sd := range TuningSliders {
		v := sd.Field(&next)
		y = r.DrawLabelValue(int32(x), y, sd.Label, fmt.Sprintf("%.2f", *v))
		*v = gui.SliderBar(
			rl.Rectangle{X: x + 20, Y: float32(y), Width: sliderW - 20, Height: 14},
			"", "",
			*v, sd.Min, sd.Max,
		)
		y += t.LineHeight + 12
	}

	y = r.DrawSectionHeader(int32(x), y, "Terms")
	for _, td := range TuningToggles {
		b := td.Field(&next)
		*b = gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 14, Height: 14}, td.Label, *b)
		y += t.LineHeight + 6
	}

	if gui.Button(rl.Rectangle{X: x, Y: float32(y + 4), Width: 100, Height: 20}, "Reset") {
		next = p.initial
	}

	return next, next != current
}
