package components

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"helium/internal/assets"
	"helium/internal/engine"
)

// UIImage displays a texture or solid color rectangle. The texture is
// acquired from the shared cache on Start and released when its scene unloads.
type UIImage struct {
	engine.BaseComponent

	TexturePath string
	texture     rl.Texture2D
	acquired    bool

	// Fallback color if no texture
	Color rl.Color

	// Tint applied to texture
	Tint rl.Color

	PreserveAspect bool
}

func NewUIImage() *UIImage {
	return &UIImage{
		Color: rl.White,
		Tint:  rl.White,
	}
}

func newUIImage(props map[string]any) (engine.Component, error) {
	i := NewUIImage()
	i.TexturePath = engine.PropString(props, "texture", "")
	i.Color = propColor(props, "color", i.Color)
	i.Tint = propColor(props, "tint", i.Tint)
	i.PreserveAspect = engine.PropBool(props, "preserveAspect", false)
	return i, nil
}

func (i *UIImage) Start() {
	if i.TexturePath != "" {
		i.texture = assets.Textures.Acquire(i.TexturePath)
		i.acquired = true
	}
}

// Unload releases the texture.
func (i *UIImage) Unload() {
	if i.acquired {
		assets.Textures.Release(i.TexturePath)
		i.texture = rl.Texture2D{}
		i.acquired = false
	}
}

// Draw renders the image within the given rect
func (i *UIImage) Draw(rect rl.Rectangle) {
	if i.texture.ID == 0 {
		rl.DrawRectangleRec(rect, i.Color)
		return
	}

	destRect := rect
	if i.PreserveAspect {
		destRect = fitAspect(rect, float32(i.texture.Width)/float32(i.texture.Height))
	}
	sourceRect := rl.Rectangle{
		Width:  float32(i.texture.Width),
		Height: float32(i.texture.Height),
	}
	rl.DrawTexturePro(i.texture, sourceRect, destRect, rl.Vector2{}, 0, i.Tint)
}

// fitAspect returns the largest rect with the given aspect centered in rect.
func fitAspect(rect rl.Rectangle, aspect float32) rl.Rectangle {
	if rect.Height <= 0 || aspect <= 0 {
		return rect
	}
	var dest rl.Rectangle
	if aspect > rect.Width/rect.Height {
		// Texture is wider - fit to width
		dest.Width = rect.Width
		dest.Height = rect.Width / aspect
		dest.X = rect.X
		dest.Y = rect.Y + (rect.Height-dest.Height)/2
	} else {
		// Texture is taller - fit to height
		dest.Height = rect.Height
		dest.Width = rect.Height * aspect
		dest.X = rect.X + (rect.Width-dest.Width)/2
		dest.Y = rect.Y
	}
	return dest
}
