package game

import (
	"context"
	"path"

	"helium/internal/engine"
	"helium/internal/orchestrator"
	"helium/internal/world"
)

// watch reloads the active scene when its file, or any script, changes.
// The returned func stops watching.
func (g *Game) watch() func() {
	if !g.cfg.Scenes.Watch {
		return func() {}
	}
	watcher, err := world.NewWatcher(g.cfg.Scenes.Dir)
	if err != nil {
		g.logger.Warn("scene watcher disabled", "error", err)
		return func() {}
	}

	go func() {
		for {
			select {
			case ref, ok := <-watcher.Events:
				if !ok {
					return
				}
				target, reload := reloadTarget(g.World.ActiveScene(), ref)
				if !reload {
					continue
				}
				g.logger.Info("reloading scene", "scene", target, "changed", ref)
				g.Transition("reload", func(ctx context.Context) error {
					return g.Orchestrator.LoadScene(ctx, orchestrator.LoadSingle, target, nil)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				g.logger.Warn("scene watcher error", "error", err)
			}
		}
	}()

	return func() { _ = watcher.Close() }
}

// reloadTarget decides whether a change to changed should reload active.
func reloadTarget(active *engine.Scene, changed engine.SceneRef) (engine.SceneRef, bool) {
	if active == nil || active.Ref.IsZero() {
		return "", false
	}
	if path.Ext(string(changed)) == ".tengo" || changed.Clean() == active.Ref.Clean() {
		return active.Ref, true
	}
	return "", false
}
