package entrypoints

import (
	"context"
	"errors"

	"helium/internal/engine"
	"helium/internal/orchestrator"
)

// PreloadEntryPoint is the boot scene. Once ready it replaces itself with
// NextScene.
type PreloadEntryPoint struct {
	orchestrator.BaseEntryPoint
	NextScene engine.SceneRef

	orch *orchestrator.Orchestrator
}

func newPreload(deps Deps, props map[string]any) (*PreloadEntryPoint, error) {
	next := engine.SceneRef(engine.PropString(props, "nextScene", ""))
	if next.IsZero() {
		return nil, errors.New("nextScene is required")
	}
	return &PreloadEntryPoint{
		BaseEntryPoint: baseFromProps(props),
		NextScene:      next,
		orch:           deps.Orchestrator,
	}, nil
}

func (p *PreloadEntryPoint) OnReady(ctx context.Context) error {
	if err := p.BaseEntryPoint.OnReady(ctx); err != nil {
		return err
	}
	return p.orch.LoadScene(ctx, orchestrator.LoadSingle, p.NextScene, nil)
}
