// Package orchestrator sequences scene transitions on top of a host scene
// registry and drives each scene's entry point through its lifecycle hooks.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"helium/internal/engine"
	"helium/internal/loading"
)

var (
	// ErrSceneNotLoaded is returned when an operation targets a scene that is not loaded.
	ErrSceneNotLoaded = errors.New("orchestrator: scene not loaded")
	// ErrNoRegistry is returned by an orchestrator created without a host registry.
	ErrNoRegistry = errors.New("orchestrator: no scene registry")
)

// Orchestrator owns the host registry and the lifecycle state of every scene
// it loaded. Its methods block until the transition completed, so callers on
// the render thread should run them on their own goroutine.
type Orchestrator struct {
	registry Registry
	logger   *slog.Logger

	mu      sync.Mutex
	states  map[*engine.Scene]SceneState
	loading map[engine.SceneRef]int

	unloadsMu sync.Mutex
	unloads   *errgroup.Group
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func New(registry Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry: registry,
		logger:   slog.Default(),
		states:   make(map[*engine.Scene]SceneState),
		loading:  make(map[engine.SceneRef]int),
		unloads:  new(errgroup.Group),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Registry returns the host registry the orchestrator drives.
func (o *Orchestrator) Registry() Registry {
	return o.registry
}

// LoadScene loads ref and runs the new scene's entry point through enter,
// batch processing, activation and ready. In LoadSingle mode every scene
// loaded beforehand is exited and unloaded in the background.
func (o *Orchestrator) LoadScene(ctx context.Context, mode LoadMode, ref engine.SceneRef, progress loading.ProgressFunc) error {
	_, err := o.loadScene(ctx, mode, ref, progress)
	return err
}

// LoadSceneAs loads ref like LoadScene and returns the first T found on the
// new scene's root objects or their descendants.
func LoadSceneAs[T any](ctx context.Context, o *Orchestrator, mode LoadMode, ref engine.SceneRef, progress loading.ProgressFunc) (T, bool, error) {
	var zero T
	scene, err := o.loadScene(ctx, mode, ref, progress)
	if err != nil {
		return zero, false, err
	}
	found, ok := ComponentInRoot[T](scene)
	return found, ok, nil
}

func (o *Orchestrator) loadScene(ctx context.Context, mode LoadMode, ref engine.SceneRef, progress loading.ProgressFunc) (*engine.Scene, error) {
	if o.registry == nil {
		return nil, ErrNoRegistry
	}
	ref = ref.Clean()

	// Scenes already exiting belong to an earlier transition.
	var closing []*engine.Scene
	if mode == LoadSingle {
		for _, scene := range o.registry.LoadedScenes() {
			if o.stateOf(scene) != StateExiting {
				closing = append(closing, scene)
			}
		}
	}

	o.beginLoading(ref)
	scene, err := o.await(ctx, o.registry.LoadSceneAsync(ref))
	o.endLoading(ref)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", ref, err)
	}
	if scene == nil {
		return nil, fmt.Errorf("load scene %s: %w", ref, ErrSceneNotLoaded)
	}

	for _, old := range closing {
		o.exit(ctx, old)
		o.unloadDetached(old)
	}

	ep, ok := EntryPointIn(scene)
	if !ok {
		o.logger.Warn("scene has no entry point", "scene", scene.Name, "ref", ref)
		ep = NopEntryPoint
	}
	o.setState(scene, StateEntered)
	o.logger.Info("entered scene", "scene", scene.Name, "ref", ref, "mode", mode)

	batch := loading.NewBatch()
	if err := ep.OnSceneEnter(ctx, batch); err != nil {
		return scene, fmt.Errorf("enter scene %s: %w", scene.Name, err)
	}
	if err := batch.Process(ctx, progress); err != nil {
		return scene, fmt.Errorf("enter scene %s: %w", scene.Name, err)
	}

	if o.remaining() == 1 {
		if err := o.registry.SetActiveScene(scene); err != nil {
			return scene, fmt.Errorf("activate scene %s: %w", scene.Name, err)
		}
		if err := o.activate(ctx, scene); err != nil {
			return scene, err
		}
	}

	if err := ep.OnReady(ctx); err != nil {
		return scene, fmt.Errorf("ready scene %s: %w", scene.Name, err)
	}
	if o.stateOf(scene) == StateEntered {
		o.setState(scene, StateReady)
	}
	return scene, nil
}

// MakeActive marks the first loaded scene matching ref as the host's active
// scene, then notifies every loaded scene: the target is activated and all
// others are deactivated.
func (o *Orchestrator) MakeActive(ctx context.Context, ref engine.SceneRef) error {
	if o.registry == nil {
		return ErrNoRegistry
	}
	target := o.registry.SceneByRef(ref.Clean())
	if target == nil {
		return fmt.Errorf("make active %s: %w", ref, ErrSceneNotLoaded)
	}
	if err := o.registry.SetActiveScene(target); err != nil {
		return fmt.Errorf("make active %s: %w", ref, err)
	}

	for _, scene := range o.registry.LoadedScenes() {
		if scene == target {
			if err := o.activate(ctx, scene); err != nil {
				return err
			}
			continue
		}
		if err := o.deactivate(ctx, scene); err != nil {
			return err
		}
	}
	return nil
}

// RequestClosure exits and unloads the first loaded scene matching ref and
// waits for the host to confirm. It reports false when no other loaded scene
// outside the exiting state remains to take over. A scene that is not loaded
// counts as closed.
func (o *Orchestrator) RequestClosure(ctx context.Context, ref engine.SceneRef) (bool, error) {
	if o.registry == nil {
		return false, ErrNoRegistry
	}
	ref = ref.Clean()
	scene := o.registry.SceneByRef(ref)
	if scene == nil {
		o.logger.Warn("scene is already unloaded", "scene", ref.Name(), "ref", ref)
		return true, nil
	}

	// Scenes already on their way out cannot take over.
	var others []*engine.Scene
	for _, other := range o.registry.LoadedScenes() {
		if other != scene && o.stateOf(other) != StateExiting {
			others = append(others, other)
		}
	}
	if len(others) == 0 {
		o.logger.Warn("cannot unload last scene", "scene", scene.Name, "ref", ref)
		return false, nil
	}

	if o.registry.ActiveScene() == scene {
		if err := o.deactivate(ctx, scene); err != nil {
			return false, err
		}
		next := others[0]
		if err := o.registry.SetActiveScene(next); err != nil {
			return false, fmt.Errorf("promote scene %s: %w", next.Name, err)
		}
		if err := o.activate(ctx, next); err != nil {
			return false, err
		}
	}

	o.exit(ctx, scene)
	if _, err := o.await(ctx, o.registry.UnloadSceneAsync(scene)); err != nil {
		return false, fmt.Errorf("unload scene %s: %w", scene.Name, err)
	}
	o.forget(scene)
	return true, nil
}

// WaitUnloads blocks until every background unload started so far finished.
// It returns the first unload error.
func (o *Orchestrator) WaitUnloads(ctx context.Context) error {
	o.unloadsMu.Lock()
	g := o.unloads
	o.unloads = new(errgroup.Group)
	o.unloadsMu.Unlock()

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State reports the lifecycle state of the first loaded scene matching ref.
func (o *Orchestrator) State(ref engine.SceneRef) SceneState {
	if o.registry == nil {
		return StateUnloaded
	}
	ref = ref.Clean()
	if scene := o.registry.SceneByRef(ref); scene != nil {
		return o.stateOf(scene)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.loading[ref] > 0 {
		return StateLoading
	}
	return StateUnloaded
}

// SceneState reports the lifecycle state of a scene instance.
func (o *Orchestrator) SceneState(scene *engine.Scene) SceneState {
	return o.stateOf(scene)
}

// EntryPoint returns the entry point of the first loaded scene matching ref.
func (o *Orchestrator) EntryPoint(ref engine.SceneRef) (EntryPoint, bool) {
	if o.registry == nil {
		return nil, false
	}
	return EntryPointIn(o.registry.SceneByRef(ref.Clean()))
}

func (o *Orchestrator) activate(ctx context.Context, scene *engine.Scene) error {
	o.setState(scene, StateActive)
	o.logger.Info("activated scene", "scene", scene.Name)
	if err := EntryPointOf(scene).OnActivate(ctx); err != nil {
		return fmt.Errorf("activate scene %s: %w", scene.Name, err)
	}
	return nil
}

func (o *Orchestrator) deactivate(ctx context.Context, scene *engine.Scene) error {
	if o.stateOf(scene) != StateExiting {
		o.setState(scene, StateInactive)
	}
	o.logger.Info("deactivated scene", "scene", scene.Name)
	if err := EntryPointOf(scene).OnDeactivate(ctx); err != nil {
		return fmt.Errorf("deactivate scene %s: %w", scene.Name, err)
	}
	return nil
}

// exit runs the exit hook. Its error is logged; the unload goes ahead.
func (o *Orchestrator) exit(ctx context.Context, scene *engine.Scene) {
	o.setState(scene, StateExiting)
	o.logger.Info("exited scene", "scene", scene.Name)
	if err := EntryPointOf(scene).OnSceneExit(ctx); err != nil {
		o.logger.Error("scene exit hook failed", "scene", scene.Name, "error", err)
	}
}

func (o *Orchestrator) unloadDetached(scene *engine.Scene) {
	l := newLatch()
	op := o.registry.UnloadSceneAsync(scene)
	op.OnCompleted(func(s *engine.Scene, err error) {
		if !l.resolve(s, err) {
			o.logger.Warn("operation completed more than once", "op", op.ID())
		}
	})

	// Go runs under the lock so WaitUnloads cannot swap the group between
	// reading it and registering the unload.
	o.unloadsMu.Lock()
	defer o.unloadsMu.Unlock()
	o.unloads.Go(func() error {
		_, err := l.wait(context.Background())
		o.forget(scene)
		if err != nil {
			o.logger.Error("background unload failed", "scene", scene.Name, "error", err)
			return fmt.Errorf("unload scene %s: %w", scene.Name, err)
		}
		return nil
	})
}

func (o *Orchestrator) await(ctx context.Context, op Operation) (*engine.Scene, error) {
	l := newLatch()
	op.OnCompleted(func(scene *engine.Scene, err error) {
		if !l.resolve(scene, err) {
			o.logger.Warn("operation completed more than once", "op", op.ID())
		}
	})
	return l.wait(ctx)
}

// remaining counts loaded scenes that are not being closed.
func (o *Orchestrator) remaining() int {
	n := 0
	for _, scene := range o.registry.LoadedScenes() {
		if o.stateOf(scene) != StateExiting {
			n++
		}
	}
	return n
}

func (o *Orchestrator) beginLoading(ref engine.SceneRef) {
	o.mu.Lock()
	o.loading[ref]++
	o.mu.Unlock()
}

func (o *Orchestrator) endLoading(ref engine.SceneRef) {
	o.mu.Lock()
	if o.loading[ref]--; o.loading[ref] <= 0 {
		delete(o.loading, ref)
	}
	o.mu.Unlock()
}

func (o *Orchestrator) setState(scene *engine.Scene, state SceneState) {
	o.mu.Lock()
	o.states[scene] = state
	o.mu.Unlock()
}

func (o *Orchestrator) stateOf(scene *engine.Scene) SceneState {
	if scene == nil {
		return StateUnloaded
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if state, ok := o.states[scene]; ok {
		return state
	}
	return StateUnloaded
}

func (o *Orchestrator) forget(scene *engine.Scene) {
	o.mu.Lock()
	delete(o.states, scene)
	o.mu.Unlock()
}
