package orchestrator

import (
	"context"

	"helium/internal/engine"
	"helium/internal/loading"
)

// DefaultSceneRoot is the root object BaseEntryPoint activates in OnReady.
const DefaultSceneRoot = "ROOT"

// EntryPoint owns the lifecycle hooks of one scene. It lives as a component
// on one of the scene's root objects.
type EntryPoint interface {
	// OnSceneEnter runs once the host finished loading the scene. Work added
	// to batch runs right after, with progress reported to the caller.
	OnSceneEnter(ctx context.Context, batch *loading.Batch) error
	// OnReady runs after the batch completed.
	OnReady(ctx context.Context) error
	// OnSceneExit runs right before the scene is unloaded.
	OnSceneExit(ctx context.Context) error
	// OnActivate runs right after the scene became the active scene.
	OnActivate(ctx context.Context) error
	// OnDeactivate runs right after the scene lost its active status.
	OnDeactivate(ctx context.Context) error
}

// BaseEntryPoint implements every hook as a no-op, except OnReady which
// activates the scene root object. Embed it and override what you need.
type BaseEntryPoint struct {
	engine.BaseComponent
	SceneRoot string
}

func (b *BaseEntryPoint) OnSceneEnter(ctx context.Context, batch *loading.Batch) error {
	return nil
}

func (b *BaseEntryPoint) OnReady(ctx context.Context) error {
	b.activateRoot()
	return nil
}

func (b *BaseEntryPoint) OnSceneExit(ctx context.Context) error {
	return nil
}

func (b *BaseEntryPoint) OnActivate(ctx context.Context) error {
	return nil
}

func (b *BaseEntryPoint) OnDeactivate(ctx context.Context) error {
	return nil
}

// Scene returns the scene the entry point's object belongs to.
func (b *BaseEntryPoint) Scene() *engine.Scene {
	if g := b.GetGameObject(); g != nil {
		return g.Scene
	}
	return nil
}

func (b *BaseEntryPoint) activateRoot() {
	scene := b.Scene()
	if scene == nil {
		return
	}
	name := b.SceneRoot
	if name == "" {
		name = DefaultSceneRoot
	}
	if root := scene.FindByName(name); root != nil {
		root.SetActive(true)
	}
}

// nopEntryPoint stands in for scenes without an entry point.
type nopEntryPoint struct{}

func (nopEntryPoint) OnSceneEnter(context.Context, *loading.Batch) error { return nil }
func (nopEntryPoint) OnReady(context.Context) error                      { return nil }
func (nopEntryPoint) OnSceneExit(context.Context) error                  { return nil }
func (nopEntryPoint) OnActivate(context.Context) error                   { return nil }
func (nopEntryPoint) OnDeactivate(context.Context) error                 { return nil }

// NopEntryPoint is the entry point used for scenes that do not carry one.
var NopEntryPoint EntryPoint = nopEntryPoint{}
