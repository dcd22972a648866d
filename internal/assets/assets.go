// Package assets shares textures between loaded scenes and resolves the
// color names scene files may use instead of [r, g, b, a] arrays.
package assets

import (
	"strings"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Color name mapping for scene files
var colorByName = map[string]rl.Color{
	"red":       rl.Red,
	"blue":      rl.Blue,
	"green":     rl.Green,
	"purple":    rl.Purple,
	"orange":    rl.Orange,
	"yellow":    rl.Yellow,
	"gold":      rl.Gold,
	"white":     rl.White,
	"raywhite":  rl.RayWhite,
	"gray":      rl.Gray,
	"lightgray": rl.LightGray,
	"darkgray":  rl.DarkGray,
	"black":     rl.Black,
	"blank":     rl.Blank,
	"pink":      rl.Pink,
	"maroon":    rl.Maroon,
	"brown":     rl.Brown,
	"beige":     rl.Beige,
	"skyblue":   rl.SkyBlue,
	"darkblue":  rl.DarkBlue,
	"lime":      rl.Lime,
	"darkgreen": rl.DarkGreen,
}

// LookupColor returns the raylib color for a case-insensitive name.
func LookupColor(name string) (rl.Color, bool) {
	c, ok := colorByName[strings.ToLower(name)]
	return c, ok
}

type textureEntry struct {
	texture rl.Texture2D
	refs    int
}

// Cache reference-counts textures by path. A texture is unloaded when the
// last scene using it releases it. Acquire and Release must be called on
// the render thread.
type Cache struct {
	mu       sync.Mutex
	textures map[string]*textureEntry
	load     func(path string) rl.Texture2D
	unload   func(rl.Texture2D)
}

func NewCache() *Cache {
	return &Cache{
		textures: make(map[string]*textureEntry),
		load:     rl.LoadTexture,
		unload:   rl.UnloadTexture,
	}
}

// Textures is the cache used by UI components.
var Textures = NewCache()

func (c *Cache) Acquire(path string) rl.Texture2D {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, exists := c.textures[path]; exists {
		e.refs++
		return e.texture
	}

	texture := c.load(path)
	c.textures[path] = &textureEntry{texture: texture, refs: 1}
	return texture
}

func (c *Cache) Release(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, exists := c.textures[path]
	if !exists {
		return
	}
	if e.refs--; e.refs > 0 {
		return
	}
	delete(c.textures, path)
	if e.texture.ID > 0 {
		c.unload(e.texture)
	}
}

// Len returns the number of textures currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.textures)
}
