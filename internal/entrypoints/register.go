// Package entrypoints provides the stock scene entry points: a preload hop,
// a splash screen with simulated loading, a button menu and tengo scripts.
package entrypoints

import (
	"context"
	"log/slog"

	"helium/internal/engine"
	"helium/internal/orchestrator"
)

// Deps are shared by every entry point created from a scene file.
type Deps struct {
	Orchestrator *orchestrator.Orchestrator
	Logger       *slog.Logger
	// Context bounds transitions started from UI input.
	Context context.Context
}

// Register adds the entry point factories to reg.
func Register(reg *engine.Registry, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}

	reg.Register("PreloadEntryPoint", factory(deps, newPreload))
	reg.Register("SplashScreenEntryPoint", factory(deps, newSplashScreen))
	reg.Register("MenuEntryPoint", factory(deps, newMenu))
	reg.Register("ScriptedEntryPoint", factory(deps, newScripted))
}

func baseFromProps(props map[string]any) orchestrator.BaseEntryPoint {
	return orchestrator.BaseEntryPoint{
		SceneRoot: engine.PropString(props, "sceneRoot", orchestrator.DefaultSceneRoot),
	}
}

func factory[T engine.Component](deps Deps, build func(Deps, map[string]any) (T, error)) engine.ScriptFactory {
	return func(props map[string]any) (engine.Component, error) {
		ep, err := build(deps, props)
		if err != nil {
			return nil, err
		}
		return ep, nil
	}
}
