package components

import (
	"fmt"

	"helium/internal/engine"
	"helium/internal/loading"
)

// SplashScreenUI mirrors loading progress onto text and bar elements found
// by object name in its scene.
type SplashScreenUI struct {
	engine.BaseComponent

	ProgressTextObject    string
	DescriptionTextObject string
	ProgressBarObject     string

	progressText    *UIText
	descriptionText *UIText
	progressBar     *UIProgressBar
}

func newSplashScreenUI(props map[string]any) (engine.Component, error) {
	return &SplashScreenUI{
		ProgressTextObject:    engine.PropString(props, "progressText", "ProgressText"),
		DescriptionTextObject: engine.PropString(props, "descriptionText", "DescriptionText"),
		ProgressBarObject:     engine.PropString(props, "progressBar", "ProgressBar"),
	}, nil
}

func (s *SplashScreenUI) Start() {
	g := s.GetGameObject()
	if g == nil || g.Scene == nil {
		return
	}
	s.progressText = engine.GetComponent[*UIText](g.Scene.FindByName(s.ProgressTextObject))
	s.descriptionText = engine.GetComponent[*UIText](g.Scene.FindByName(s.DescriptionTextObject))
	s.progressBar = engine.GetComponent[*UIProgressBar](g.Scene.FindByName(s.ProgressBarObject))
}

// UpdateProgress shows p. Missing elements are skipped.
func (s *SplashScreenUI) UpdateProgress(p loading.Progress) {
	if s.progressText != nil {
		s.progressText.SetText(FormatPercent(p.Progress))
	}
	if s.descriptionText != nil {
		s.descriptionText.SetText(p.Description)
	}
	if s.progressBar != nil {
		s.progressBar.SetPercent(p.Progress)
	}
}

// FormatPercent renders a 0-1 fraction as a percentage with two decimals.
func FormatPercent(progress float32) string {
	return fmt.Sprintf("%.2f%%", progress*100)
}
