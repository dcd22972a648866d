package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"helium/internal/engine"
)

// UIPanel is a simple background panel/container
type UIPanel struct {
	engine.BaseComponent

	// Background color
	Color rl.Color

	// Border settings
	BorderColor  rl.Color
	BorderWidth  int32
	BorderRadius float32 // Rounded corners (0 = sharp)
}

func NewUIPanel() *UIPanel {
	return &UIPanel{
		Color:       rl.NewColor(30, 30, 40, 200),
		BorderColor: rl.NewColor(60, 60, 75, 255),
		BorderWidth: 1,
	}
}

func newUIPanel(props map[string]any) (engine.Component, error) {
	p := NewUIPanel()
	p.Color = propColor(props, "color", p.Color)
	p.BorderColor = propColor(props, "borderColor", p.BorderColor)
	p.BorderWidth = int32(engine.PropInt(props, "borderWidth", int(p.BorderWidth)))
	p.BorderRadius = engine.PropFloat(props, "borderRadius", 0)
	return p, nil
}

// Draw renders the panel background
func (p *UIPanel) Draw(rect rl.Rectangle) {
	if p.BorderRadius > 0 && rect.Height > 0 {
		rl.DrawRectangleRounded(rect, p.BorderRadius/rect.Height, 8, p.Color)
		if p.BorderWidth > 0 {
			rl.DrawRectangleRoundedLinesEx(rect, p.BorderRadius/rect.Height, 8, float32(p.BorderWidth), p.BorderColor)
		}
		return
	}
	rl.DrawRectangleRec(rect, p.Color)
	if p.BorderWidth > 0 {
		rl.DrawRectangleLinesEx(rect, float32(p.BorderWidth), p.BorderColor)
	}
}
