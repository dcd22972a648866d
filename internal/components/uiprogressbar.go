package components

import (
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"helium/internal/engine"
)

// UIProgressBar displays a fill-based progress indicator (loading, health, etc.)
// The value may be changed from any goroutine.
type UIProgressBar struct {
	engine.BaseComponent

	MaxValue float32

	// Colors
	BackgroundColor rl.Color
	FillColor       rl.Color
	BorderColor     rl.Color

	// Border width (0 = no border)
	BorderWidth int32

	// Fill direction
	FillFromRight bool // If true, fills from right to left

	mu    sync.Mutex
	value float32
}

func NewUIProgressBar() *UIProgressBar {
	return &UIProgressBar{
		MaxValue:        100,
		BackgroundColor: rl.NewColor(40, 40, 50, 255),
		FillColor:       rl.NewColor(80, 200, 80, 255), // Green
		BorderColor:     rl.NewColor(60, 60, 75, 255),
		BorderWidth:     1,
	}
}

func newUIProgressBar(props map[string]any) (engine.Component, error) {
	pb := NewUIProgressBar()
	pb.MaxValue = engine.PropFloat(props, "maxValue", pb.MaxValue)
	pb.value = engine.PropFloat(props, "value", 0)
	pb.BackgroundColor = propColor(props, "backgroundColor", pb.BackgroundColor)
	pb.FillColor = propColor(props, "fillColor", pb.FillColor)
	pb.BorderColor = propColor(props, "borderColor", pb.BorderColor)
	pb.BorderWidth = int32(engine.PropInt(props, "borderWidth", int(pb.BorderWidth)))
	pb.FillFromRight = engine.PropBool(props, "fillFromRight", false)
	return pb, nil
}

// GetPercent returns the fill percentage (0-1)
func (pb *UIProgressBar) GetPercent() float32 {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.MaxValue <= 0 {
		return 0
	}
	p := pb.value / pb.MaxValue
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// SetPercent sets value based on percentage (0-1)
func (pb *UIProgressBar) SetPercent(percent float32) {
	pb.mu.Lock()
	pb.value = percent * pb.MaxValue
	pb.mu.Unlock()
}

// fillRect returns the filled part of rect.
func (pb *UIProgressBar) fillRect(rect rl.Rectangle) rl.Rectangle {
	fillWidth := rect.Width * pb.GetPercent()
	x := rect.X
	if pb.FillFromRight {
		x = rect.X + rect.Width - fillWidth
	}
	return rl.Rectangle{X: x, Y: rect.Y, Width: fillWidth, Height: rect.Height}
}

// Draw renders the progress bar
func (pb *UIProgressBar) Draw(rect rl.Rectangle) {
	rl.DrawRectangleRec(rect, pb.BackgroundColor)

	if fill := pb.fillRect(rect); fill.Width > 0 {
		rl.DrawRectangleRec(fill, pb.FillColor)
	}

	if pb.BorderWidth > 0 {
		rl.DrawRectangleLinesEx(rect, float32(pb.BorderWidth), pb.BorderColor)
	}
}
