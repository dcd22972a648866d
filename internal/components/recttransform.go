package components

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"helium/internal/engine"
)

// Anchor presets for common UI layouts (like Unity)
type AnchorPreset int

const (
	AnchorTopLeft AnchorPreset = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorMiddleLeft
	AnchorMiddleCenter
	AnchorMiddleRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
	AnchorStretchAll
)

var anchorPresetNames = map[string]AnchorPreset{
	"top-left":      AnchorTopLeft,
	"top-center":    AnchorTopCenter,
	"top-right":     AnchorTopRight,
	"middle-left":   AnchorMiddleLeft,
	"middle-center": AnchorMiddleCenter,
	"middle-right":  AnchorMiddleRight,
	"bottom-left":   AnchorBottomLeft,
	"bottom-center": AnchorBottomCenter,
	"bottom-right":  AnchorBottomRight,
	"stretch":       AnchorStretchAll,
}

// RectTransform positions UI elements in screen space with anchoring support.
// Anchors are relative to the parent rect (0-1 range, y down); offsets and
// sizes are in pixels.
type RectTransform struct {
	engine.BaseComponent

	AnchorMin rl.Vector2
	AnchorMax rl.Vector2

	// Pivot point within the element (0-1 range)
	Pivot rl.Vector2

	// Position offset from anchor (in pixels)
	// When anchors are same point: this is position relative to anchor
	// When anchors differ: this is inset from edges
	AnchoredPosition rl.Vector2

	// Size of the element (when anchors are same point)
	SizeDelta rl.Vector2

	// Computed screen rectangle (updated each frame)
	screenRect rl.Rectangle
}

func NewRectTransform() *RectTransform {
	return &RectTransform{
		AnchorMin:        rl.Vector2{X: 0.5, Y: 0.5},
		AnchorMax:        rl.Vector2{X: 0.5, Y: 0.5},
		Pivot:            rl.Vector2{X: 0.5, Y: 0.5},
		AnchoredPosition: rl.Vector2{X: 0, Y: 0},
		SizeDelta:        rl.Vector2{X: 100, Y: 30},
	}
}

func newRectTransform(props map[string]any) (engine.Component, error) {
	rt := NewRectTransform()
	if name, ok := props["anchor"].(string); ok {
		preset, ok := anchorPresetNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown anchor %q", name)
		}
		rt.SetAnchorPreset(preset)
	}
	rt.AnchorMin = propVector2(props, "anchorMin", rt.AnchorMin)
	rt.AnchorMax = propVector2(props, "anchorMax", rt.AnchorMax)
	rt.Pivot = propVector2(props, "pivot", rt.Pivot)
	rt.AnchoredPosition = propVector2(props, "position", rt.AnchoredPosition)
	rt.SizeDelta = propVector2(props, "size", rt.SizeDelta)
	return rt, nil
}

// SetAnchorPreset configures anchors using common presets
func (rt *RectTransform) SetAnchorPreset(preset AnchorPreset) {
	switch preset {
	case AnchorTopLeft:
		rt.setPoint(0, 0)
	case AnchorTopCenter:
		rt.setPoint(0.5, 0)
	case AnchorTopRight:
		rt.setPoint(1, 0)
	case AnchorMiddleLeft:
		rt.setPoint(0, 0.5)
	case AnchorMiddleCenter:
		rt.setPoint(0.5, 0.5)
	case AnchorMiddleRight:
		rt.setPoint(1, 0.5)
	case AnchorBottomLeft:
		rt.setPoint(0, 1)
	case AnchorBottomCenter:
		rt.setPoint(0.5, 1)
	case AnchorBottomRight:
		rt.setPoint(1, 1)
	case AnchorStretchAll:
		rt.AnchorMin = rl.Vector2{X: 0, Y: 0}
		rt.AnchorMax = rl.Vector2{X: 1, Y: 1}
		rt.Pivot = rl.Vector2{X: 0.5, Y: 0.5}
		rt.SizeDelta = rl.Vector2{}
	}
}

// setPoint anchors and pivots the element at the same relative point.
func (rt *RectTransform) setPoint(x, y float32) {
	rt.AnchorMin = rl.Vector2{X: x, Y: y}
	rt.AnchorMax = rl.Vector2{X: x, Y: y}
	rt.Pivot = rl.Vector2{X: x, Y: y}
}

// GetScreenRect returns the computed screen-space rectangle
func (rt *RectTransform) GetScreenRect() rl.Rectangle {
	return rt.screenRect
}

// CalculateRect computes screen position based on parent rect and anchors
func (rt *RectTransform) CalculateRect(parentRect rl.Rectangle) {
	anchorMinX := parentRect.X + parentRect.Width*rt.AnchorMin.X
	anchorMinY := parentRect.Y + parentRect.Height*rt.AnchorMin.Y
	anchorMaxX := parentRect.X + parentRect.Width*rt.AnchorMax.X
	anchorMaxY := parentRect.Y + parentRect.Height*rt.AnchorMax.Y

	var x, y, width, height float32

	if rt.AnchorMin == rt.AnchorMax {
		// Point anchor - position relative to anchor point
		width = rt.SizeDelta.X
		height = rt.SizeDelta.Y
		x = anchorMinX + rt.AnchoredPosition.X - width*rt.Pivot.X
		y = anchorMinY + rt.AnchoredPosition.Y - height*rt.Pivot.Y
	} else {
		// Stretched anchors - SizeDelta acts as insets
		x = anchorMinX + rt.AnchoredPosition.X
		y = anchorMinY + rt.AnchoredPosition.Y
		width = (anchorMaxX - anchorMinX) + rt.SizeDelta.X
		height = (anchorMaxY - anchorMinY) + rt.SizeDelta.Y
	}

	rt.screenRect = rl.Rectangle{X: x, Y: y, Width: width, Height: height}
}

// ContainsPoint checks if a screen point is inside this rect
func (rt *RectTransform) ContainsPoint(point rl.Vector2) bool {
	return pointInRect(point, rt.screenRect)
}
