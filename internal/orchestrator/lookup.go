package orchestrator

import "helium/internal/engine"

// EntryPointIn returns the first entry point found on the scene's root
// objects. Children are not searched.
func EntryPointIn(scene *engine.Scene) (EntryPoint, bool) {
	return ComponentInSceneRoot[EntryPoint](scene)
}

// EntryPointOf is EntryPointIn with NopEntryPoint for scenes without one.
func EntryPointOf(scene *engine.Scene) EntryPoint {
	if ep, ok := EntryPointIn(scene); ok {
		return ep
	}
	return NopEntryPoint
}

// ComponentInSceneRoot returns the first T attached directly to a root object.
func ComponentInSceneRoot[T any](scene *engine.Scene) (T, bool) {
	var zero T
	if scene == nil {
		return zero, false
	}
	for _, root := range scene.RootGameObjects() {
		for _, c := range root.Components() {
			if typed, ok := c.(T); ok {
				return typed, true
			}
		}
	}
	return zero, false
}

// ComponentInRoot returns the first T on a root object or its descendants,
// searching each root's subtree before moving to the next root.
func ComponentInRoot[T any](scene *engine.Scene) (T, bool) {
	var zero T
	if scene == nil {
		return zero, false
	}
	for _, root := range scene.RootGameObjects() {
		if found, ok := engine.GetComponentInChildren[T](root); ok {
			return found, true
		}
	}
	return zero, false
}
