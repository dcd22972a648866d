// Package world hosts the loaded scenes. Scene files are read on worker
// goroutines; attaching scenes and firing completions happen on the thread
// that calls Pump, once per frame.
package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"helium/internal/engine"
	"helium/internal/orchestrator"
)

// ErrNotLoaded is returned when unloading or activating a scene that is not loaded.
var ErrNotLoaded = errors.New("world: scene not loaded")

// unloader is implemented by components holding resources that must be
// released when their scene goes away.
type unloader interface {
	Unload()
}

type World struct {
	dir      string
	registry *engine.Registry
	logger   *slog.Logger

	mu     sync.Mutex
	scenes []*engine.Scene
	active *engine.Scene
	queue  []func()

	// SceneLoaded and SceneUnloaded fire from Pump.
	SceneLoaded   engine.EventWithArg[*engine.Scene]
	SceneUnloaded engine.EventWithArg[*engine.Scene]
}

var _ orchestrator.Registry = (*World)(nil)

type Option func(*World)

// WithRegistry sets the component registry used to build scene objects.
func WithRegistry(r *engine.Registry) Option {
	return func(w *World) {
		if r != nil {
			w.registry = r
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a world loading scene files from dir.
func New(dir string, opts ...Option) *World {
	w := &World{
		dir:      dir,
		registry: engine.DefaultRegistry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the scenes directory.
func (w *World) Dir() string {
	return w.dir
}

// LoadSceneAsync reads the scene file for ref in the background. The scene
// is attached, started and reported on the next Pump after parsing ends.
func (w *World) LoadSceneAsync(ref engine.SceneRef) orchestrator.Operation {
	ref = ref.Clean()
	op := newOperation()
	w.logger.Debug("loading scene", "ref", ref, "op", op.id)

	go func() {
		sf, err := ReadSceneFile(w.scenePath(ref))
		w.post(func() {
			if err != nil {
				w.logger.Error("scene load failed", "ref", ref, "op", op.id, "error", err)
				op.complete(nil, fmt.Errorf("load %s: %w", ref, err))
				return
			}
			scene := w.buildScene(ref, sf)
			w.attach(scene)
			scene.Start()
			w.SceneLoaded.Invoke(scene)
			op.complete(scene, nil)
		})
	}()
	return op
}

// UnloadSceneAsync detaches scene on the next Pump.
func (w *World) UnloadSceneAsync(scene *engine.Scene) orchestrator.Operation {
	op := newOperation()
	w.post(func() {
		if !w.detach(scene) {
			op.complete(nil, ErrNotLoaded)
			return
		}
		release(scene)
		w.SceneUnloaded.Invoke(scene)
		op.complete(scene, nil)
	})
	return op
}

func (w *World) SceneByRef(ref engine.SceneRef) *engine.Scene {
	ref = ref.Clean()
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range w.scenes {
		if s.Ref == ref {
			return s
		}
	}
	return nil
}

func (w *World) LoadedScenes() []*engine.Scene {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]*engine.Scene(nil), w.scenes...)
}

func (w *World) ActiveScene() *engine.Scene {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *World) SetActiveScene(scene *engine.Scene) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if indexOf(w.scenes, scene) < 0 {
		return ErrNotLoaded
	}
	w.active = scene
	return nil
}

// Pump runs queued attach, detach and completion work on the caller's goroutine.
func (w *World) Pump() {
	w.mu.Lock()
	queue := w.queue
	w.queue = nil
	w.mu.Unlock()
	for _, fn := range queue {
		fn()
	}
}

// Run pumps the world and updates its scenes every interval until ctx ends.
// It stands in for a render loop when no window is open.
func (w *World) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			w.Pump()
			w.Update(float32(now.Sub(last).Seconds()))
			last = now
		}
	}
}

// Update advances every loaded scene.
func (w *World) Update(deltaTime float32) {
	for _, s := range w.LoadedScenes() {
		s.Update(deltaTime)
	}
}

// Draw renders loaded scenes in load order.
func (w *World) Draw() {
	for _, s := range w.LoadedScenes() {
		s.Draw()
	}
}

// Close releases every loaded scene immediately.
func (w *World) Close() {
	w.mu.Lock()
	scenes := w.scenes
	w.scenes = nil
	w.active = nil
	w.queue = nil
	w.mu.Unlock()
	for _, s := range scenes {
		release(s)
	}
}

func (w *World) post(fn func()) {
	w.mu.Lock()
	w.queue = append(w.queue, fn)
	w.mu.Unlock()
}

func (w *World) attach(scene *engine.Scene) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scenes = append(w.scenes, scene)
	if w.active == nil {
		w.active = scene
	}
	w.logger.Info("scene loaded", "scene", scene.Name, "ref", scene.Ref, "loaded", len(w.scenes))
}

func (w *World) detach(scene *engine.Scene) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	idx := indexOf(w.scenes, scene)
	if idx < 0 {
		return false
	}
	w.scenes = append(w.scenes[:idx], w.scenes[idx+1:]...)
	if w.active == scene {
		w.active = nil
		if len(w.scenes) > 0 {
			w.active = w.scenes[0]
		}
	}
	w.logger.Info("scene unloaded", "scene", scene.Name, "ref", scene.Ref, "loaded", len(w.scenes))
	return true
}

func release(scene *engine.Scene) {
	for _, g := range scene.GameObjects {
		for _, c := range g.Components() {
			if u, ok := c.(unloader); ok {
				u.Unload()
			}
		}
	}
}

func indexOf(scenes []*engine.Scene, scene *engine.Scene) int {
	for i, s := range scenes {
		if s == scene {
			return i
		}
	}
	return -1
}

// operation is a pending load or unload. Completion callbacks run on the
// goroutine that completes it, or immediately when added afterwards.
type operation struct {
	id string

	mu        sync.Mutex
	done      bool
	scene     *engine.Scene
	err       error
	callbacks []func(*engine.Scene, error)
}

func newOperation() *operation {
	return &operation{id: uuid.NewString()}
}

func (op *operation) ID() string {
	return op.id
}

func (op *operation) OnCompleted(fn func(*engine.Scene, error)) {
	if fn == nil {
		return
	}
	op.mu.Lock()
	if op.done {
		scene, err := op.scene, op.err
		op.mu.Unlock()
		fn(scene, err)
		return
	}
	op.callbacks = append(op.callbacks, fn)
	op.mu.Unlock()
}

func (op *operation) complete(scene *engine.Scene, err error) {
	op.mu.Lock()
	if op.done {
		op.mu.Unlock()
		return
	}
	op.done = true
	op.scene = scene
	op.err = err
	callbacks := op.callbacks
	op.callbacks = nil
	op.mu.Unlock()
	for _, cb := range callbacks {
		cb(scene, err)
	}
}
