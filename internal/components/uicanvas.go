package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"helium/internal/engine"
)

// rectDrawer is implemented by UI elements laid out by a canvas.
type rectDrawer interface {
	Draw(rect rl.Rectangle)
}

// inputHandler is implemented by UI elements reacting to the mouse.
type inputHandler interface {
	HandleInput(rect rl.Rectangle, mousePos rl.Vector2, pressed, down, released bool)
}

// MouseState is one frame of mouse input.
type MouseState struct {
	Position                rl.Vector2
	Pressed, Down, Released bool
}

// UICanvas is the root container for UI elements.
// Attach to a GameObject and add UI element children.
// The canvas handles layout calculation and drawing order.
type UICanvas struct {
	engine.BaseComponent

	// Screen returns the root rect and Mouse the current input. Both default
	// to the raylib window.
	Screen func() rl.Rectangle
	Mouse  func() MouseState
}

func NewUICanvas() *UICanvas {
	return &UICanvas{
		Screen: windowRect,
		Mouse:  windowMouse,
	}
}

func newUICanvas(map[string]any) (engine.Component, error) {
	return NewUICanvas(), nil
}

func windowRect() rl.Rectangle {
	return rl.Rectangle{
		Width:  float32(rl.GetScreenWidth()),
		Height: float32(rl.GetScreenHeight()),
	}
}

func windowMouse() MouseState {
	return MouseState{
		Position: rl.GetMousePosition(),
		Pressed:  rl.IsMouseButtonPressed(rl.MouseLeftButton),
		Down:     rl.IsMouseButtonDown(rl.MouseLeftButton),
		Released: rl.IsMouseButtonReleased(rl.MouseLeftButton),
	}
}

// Draw renders all UI elements under this canvas
func (c *UICanvas) Draw() {
	c.layout(func(g *engine.GameObject, rect rl.Rectangle) {
		for _, comp := range g.Components() {
			if d, ok := comp.(rectDrawer); ok {
				d.Draw(rect)
			}
		}
	})
}

// Update handles UI interaction (clicks, hover)
func (c *UICanvas) Update(deltaTime float32) {
	mouse := c.Mouse()
	c.layout(func(g *engine.GameObject, rect rl.Rectangle) {
		for _, comp := range g.Components() {
			if h, ok := comp.(inputHandler); ok {
				h.HandleInput(rect, mouse.Position, mouse.Pressed, mouse.Down, mouse.Released)
			}
		}
	})
}

// layout walks the active UI tree below the canvas, parents first.
func (c *UICanvas) layout(visit func(g *engine.GameObject, rect rl.Rectangle)) {
	g := c.GetGameObject()
	if g == nil {
		return
	}
	layoutElement(g, c.Screen(), visit)
}

func layoutElement(g *engine.GameObject, parentRect rl.Rectangle, visit func(*engine.GameObject, rl.Rectangle)) {
	if g == nil || !g.IsActive() {
		return
	}

	currentRect := parentRect
	if rt := engine.GetComponent[*RectTransform](g); rt != nil {
		rt.CalculateRect(parentRect)
		currentRect = rt.GetScreenRect()
	}
	visit(g, currentRect)

	for _, child := range g.Children {
		layoutElement(child, currentRect, visit)
	}
}
