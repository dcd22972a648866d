package orchestrator

import (
	"context"
	"sync"

	"helium/internal/engine"
	"helium/internal/loading"
)

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func (l *eventLog) reset() {
	l.mu.Lock()
	l.events = nil
	l.mu.Unlock()
}

func (l *eventLog) count(event string) int {
	n := 0
	for _, e := range l.snapshot() {
		if e == event {
			n++
		}
	}
	return n
}

func (l *eventLog) index(event string) int {
	for i, e := range l.snapshot() {
		if e == event {
			return i
		}
	}
	return -1
}

// recordingEntryPoint logs every hook as "<name>:<hook>".
type recordingEntryPoint struct {
	BaseEntryPoint
	name  string
	log   *eventLog
	steps []string
	fail  map[string]error
}

func (e *recordingEntryPoint) OnSceneEnter(ctx context.Context, batch *loading.Batch) error {
	e.log.add(e.name + ":enter")
	for _, step := range e.steps {
		step := step
		if err := batch.AddAsync(func(context.Context) error {
			e.log.add(e.name + ":batch")
			return e.fail[step]
		}, step); err != nil {
			return err
		}
	}
	return e.fail["enter"]
}

func (e *recordingEntryPoint) OnReady(ctx context.Context) error {
	e.log.add(e.name + ":ready")
	if err := e.BaseEntryPoint.OnReady(ctx); err != nil {
		return err
	}
	return e.fail["ready"]
}

func (e *recordingEntryPoint) OnSceneExit(ctx context.Context) error {
	e.log.add(e.name + ":exit")
	return e.fail["exit"]
}

func (e *recordingEntryPoint) OnActivate(ctx context.Context) error {
	e.log.add(e.name + ":activate")
	return e.fail["activate"]
}

func (e *recordingEntryPoint) OnDeactivate(ctx context.Context) error {
	e.log.add(e.name + ":deactivate")
	return e.fail["deactivate"]
}

type marker struct {
	engine.BaseComponent
	label string
}

// buildScene returns a factory for a scene with an entry point object and an
// inactive ROOT holding a marker component on a child.
func buildScene(name string, ep *recordingEntryPoint) func() *engine.Scene {
	return func() *engine.Scene {
		scene := engine.NewScene(name)
		entry := engine.NewGameObject("ENTRY_POINT")
		if ep != nil {
			entry.AddComponent(ep)
		}
		scene.AddGameObject(entry)

		root := engine.NewGameObject("ROOT")
		root.SetActive(false)
		scene.AddGameObject(root)

		child := engine.NewGameObject("content")
		child.AddComponent(&marker{label: name})
		root.AddChild(child)
		scene.AddGameObject(child)
		return scene
	}
}
