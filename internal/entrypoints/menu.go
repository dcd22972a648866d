package entrypoints

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"helium/internal/components"
	"helium/internal/engine"
	"helium/internal/orchestrator"
)

// MenuButton opens Scene when the UIButton on Object is clicked.
type MenuButton struct {
	Object string
	Scene  engine.SceneRef
}

// MenuEntryPoint wires its scene's buttons to single-mode scene loads while
// the scene is ready. Clicks during a running transition are ignored.
type MenuEntryPoint struct {
	orchestrator.BaseEntryPoint
	Buttons []MenuButton

	orch   *orchestrator.Orchestrator
	logger *slog.Logger
	ctx    context.Context

	mu      sync.Mutex
	wired   []*components.UIButton
	busy    atomic.Bool
	running sync.WaitGroup
}

func newMenu(deps Deps, props map[string]any) (*MenuEntryPoint, error) {
	m := &MenuEntryPoint{
		BaseEntryPoint: baseFromProps(props),
		orch:           deps.Orchestrator,
		logger:         deps.Logger,
		ctx:            deps.Context,
	}
	for i, b := range engine.PropMaps(props, "buttons") {
		button := MenuButton{
			Object: engine.PropString(b, "object", ""),
			Scene:  engine.SceneRef(engine.PropString(b, "scene", "")),
		}
		if button.Object == "" || button.Scene.IsZero() {
			return nil, fmt.Errorf("buttons[%d]: object and scene are required", i)
		}
		m.Buttons = append(m.Buttons, button)
	}
	return m, nil
}

func (m *MenuEntryPoint) OnReady(ctx context.Context) error {
	if err := m.BaseEntryPoint.OnReady(ctx); err != nil {
		return err
	}

	scene := m.Scene()
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.Buttons {
		btn := engine.GetComponent[*components.UIButton](scene.FindByName(b.Object))
		if btn == nil {
			m.logger.Warn("menu button not found", "scene", scene.Name, "object", b.Object)
			continue
		}
		ref := b.Scene
		btn.OnClick.AddListener(func() { m.open(ref) })
		m.wired = append(m.wired, btn)
	}
	return nil
}

func (m *MenuEntryPoint) OnSceneExit(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, btn := range m.wired {
		btn.OnClick.RemoveAllListeners()
	}
	m.wired = nil
	return nil
}

// Wait blocks until the transition started by a click, if any, finished.
func (m *MenuEntryPoint) Wait() {
	m.running.Wait()
}

// open starts the transition on its own goroutine; click handlers run on
// the render thread.
func (m *MenuEntryPoint) open(ref engine.SceneRef) {
	if !m.busy.CompareAndSwap(false, true) {
		m.logger.Debug("transition already running", "scene", ref)
		return
	}
	m.running.Add(1)
	go func() {
		defer m.running.Done()
		defer m.busy.Store(false)
		if err := m.orch.LoadScene(m.ctx, orchestrator.LoadSingle, ref, nil); err != nil {
			m.logger.Error("menu transition failed", "scene", ref, "error", err)
		}
	}()
}
