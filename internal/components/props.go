package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"helium/internal/assets"
	"helium/internal/engine"
)

// propColor reads an [r, g, b, a] array or a color name like "skyblue".
func propColor(props map[string]any, key string, fallback rl.Color) rl.Color {
	if c, ok := engine.PropColor(props, key); ok {
		return rl.NewColor(c[0], c[1], c[2], c[3])
	}
	if name, ok := props[key].(string); ok {
		if c, ok := assets.LookupColor(name); ok {
			return c
		}
	}
	return fallback
}

func propVector2(props map[string]any, key string, fallback rl.Vector2) rl.Vector2 {
	if v, ok := engine.PropVec2(props, key); ok {
		return rl.Vector2{X: v[0], Y: v[1]}
	}
	return fallback
}

func pointInRect(p rl.Vector2, r rl.Rectangle) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}
