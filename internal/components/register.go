// Package components holds the screen-space UI components scenes are built from.
package components

import "helium/internal/engine"

func init() {
	Register(engine.DefaultRegistry)
}

// Register adds every UI component factory to reg.
func Register(reg *engine.Registry) {
	reg.Register("UICanvas", newUICanvas)
	reg.Register("RectTransform", newRectTransform)
	reg.Register("UIText", newUIText)
	reg.Register("UIButton", newUIButton)
	reg.Register("UIProgressBar", newUIProgressBar)
	reg.Register("UIPanel", newUIPanel)
	reg.Register("UIImage", newUIImage)
	reg.Register("SplashScreenUI", newSplashScreenUI)
}
