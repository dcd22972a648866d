package components

import (
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"helium/internal/engine"
)

// TextAlignment controls horizontal text alignment
type TextAlignment int

const (
	TextAlignLeft TextAlignment = iota
	TextAlignCenter
	TextAlignRight
)

var textAlignmentNames = map[string]TextAlignment{
	"left":   TextAlignLeft,
	"center": TextAlignCenter,
	"right":  TextAlignRight,
}

// UIText displays text on screen. The text may be changed from any goroutine.
type UIText struct {
	engine.BaseComponent

	FontSize  int32
	Color     rl.Color
	Alignment TextAlignment

	mu   sync.Mutex
	text string
}

func NewUIText() *UIText {
	return &UIText{
		text:      "Text",
		FontSize:  20,
		Color:     rl.White,
		Alignment: TextAlignLeft,
	}
}

func newUIText(props map[string]any) (engine.Component, error) {
	t := NewUIText()
	t.text = engine.PropString(props, "text", t.text)
	t.FontSize = int32(engine.PropInt(props, "fontSize", int(t.FontSize)))
	t.Color = propColor(props, "color", t.Color)
	if a, ok := textAlignmentNames[engine.PropString(props, "alignment", "")]; ok {
		t.Alignment = a
	}
	return t, nil
}

func (t *UIText) SetText(text string) {
	t.mu.Lock()
	t.text = text
	t.mu.Unlock()
}

func (t *UIText) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

// Draw renders the text within the given rect
func (t *UIText) Draw(rect rl.Rectangle) {
	text := t.Text()
	if text == "" {
		return
	}
	x, y := t.origin(rect, float32(rl.MeasureText(text, t.FontSize)))
	rl.DrawText(text, int32(x), int32(y), t.FontSize, t.Color)
}

// origin aligns a line of textWidth pixels in rect, vertically centered.
func (t *UIText) origin(rect rl.Rectangle, textWidth float32) (float32, float32) {
	var x float32
	switch t.Alignment {
	case TextAlignLeft:
		x = rect.X
	case TextAlignCenter:
		x = rect.X + (rect.Width-textWidth)/2
	case TextAlignRight:
		x = rect.X + rect.Width - textWidth
	}
	y := rect.Y + (rect.Height-float32(t.FontSize))/2
	return x, y
}
