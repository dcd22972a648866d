package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"helium/internal/engine"
)

// ButtonState tracks the current visual state of a button
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonHovered
	ButtonPressed
	ButtonDisabled
)

// UIButton is an interactive button element
type UIButton struct {
	engine.BaseComponent

	Label     string
	FontSize  int32
	TextColor rl.Color

	// Visual colors for each state
	NormalColor   rl.Color
	HoverColor    rl.Color
	PressedColor  rl.Color
	DisabledColor rl.Color

	// Border
	BorderColor rl.Color
	BorderWidth int32

	// Current state
	State    ButtonState
	Disabled bool

	// Unity-style event - supports multiple listeners
	OnClick engine.Event

	// For detecting click (press and release on same button)
	wasPressed bool
}

func NewUIButton() *UIButton {
	return &UIButton{
		FontSize:      20,
		TextColor:     rl.RayWhite,
		NormalColor:   rl.NewColor(60, 60, 70, 255),
		HoverColor:    rl.NewColor(80, 80, 95, 255),
		PressedColor:  rl.NewColor(100, 100, 120, 255),
		DisabledColor: rl.NewColor(40, 40, 45, 255),
		BorderColor:   rl.NewColor(100, 100, 115, 255),
		BorderWidth:   1,
		State:         ButtonNormal,
	}
}

func newUIButton(props map[string]any) (engine.Component, error) {
	b := NewUIButton()
	b.Label = engine.PropString(props, "label", b.Label)
	b.FontSize = int32(engine.PropInt(props, "fontSize", int(b.FontSize)))
	b.TextColor = propColor(props, "textColor", b.TextColor)
	b.NormalColor = propColor(props, "normalColor", b.NormalColor)
	b.HoverColor = propColor(props, "hoverColor", b.HoverColor)
	b.PressedColor = propColor(props, "pressedColor", b.PressedColor)
	b.DisabledColor = propColor(props, "disabledColor", b.DisabledColor)
	b.BorderColor = propColor(props, "borderColor", b.BorderColor)
	b.BorderWidth = int32(engine.PropInt(props, "borderWidth", int(b.BorderWidth)))
	b.Disabled = engine.PropBool(props, "disabled", false)
	return b, nil
}

func (b *UIButton) color() rl.Color {
	if b.Disabled {
		return b.DisabledColor
	}
	switch b.State {
	case ButtonHovered:
		return b.HoverColor
	case ButtonPressed:
		return b.PressedColor
	default:
		return b.NormalColor
	}
}

// Draw renders the button background and label
func (b *UIButton) Draw(rect rl.Rectangle) {
	rl.DrawRectangleRec(rect, b.color())

	if b.BorderWidth > 0 {
		rl.DrawRectangleLinesEx(rect, float32(b.BorderWidth), b.BorderColor)
	}

	if b.Label != "" {
		w := float32(rl.MeasureText(b.Label, b.FontSize))
		x := rect.X + (rect.Width-w)/2
		y := rect.Y + (rect.Height-float32(b.FontSize))/2
		rl.DrawText(b.Label, int32(x), int32(y), b.FontSize, b.TextColor)
	}
}

// HandleInput processes mouse input for the button
func (b *UIButton) HandleInput(rect rl.Rectangle, mousePos rl.Vector2, pressed, down, released bool) {
	if b.Disabled {
		b.State = ButtonDisabled
		return
	}

	if pointInRect(mousePos, rect) {
		if down {
			b.State = ButtonPressed
			b.wasPressed = true
		} else {
			b.State = ButtonHovered
		}

		// Click detection: released while hovering and was pressed on this button
		if released && b.wasPressed {
			b.wasPressed = false
			b.OnClick.Invoke()
		}
	} else {
		b.State = ButtonNormal
		if released {
			b.wasPressed = false
		}
	}
}
