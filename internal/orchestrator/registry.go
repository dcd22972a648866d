package orchestrator

import "helium/internal/engine"

// LoadMode selects whether a load replaces every loaded scene or layers on top.
type LoadMode int

const (
	// LoadSingle exits and unloads every previously loaded scene.
	LoadSingle LoadMode = iota
	// LoadAdditive keeps the loaded scenes.
	LoadAdditive
)

func (m LoadMode) String() string {
	switch m {
	case LoadSingle:
		return "single"
	case LoadAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// Registry is the host scene manager the orchestrator drives. Loads are
// always additive; the orchestrator implements single-mode on top.
type Registry interface {
	LoadSceneAsync(ref engine.SceneRef) Operation
	UnloadSceneAsync(scene *engine.Scene) Operation
	// SceneByRef returns the first loaded scene for ref, or nil.
	SceneByRef(ref engine.SceneRef) *engine.Scene
	// LoadedScenes lists loaded scenes in host enumeration order.
	LoadedScenes() []*engine.Scene
	ActiveScene() *engine.Scene
	SetActiveScene(scene *engine.Scene) error
}

// Operation is a pending host load or unload. Completion callbacks receive
// the affected scene. A callback registered after completion runs at once.
type Operation interface {
	ID() string
	OnCompleted(fn func(scene *engine.Scene, err error))
}
