package orchestrator

import (
	"errors"
	"fmt"
	"sync"

	"helium/internal/engine"
)

var (
	errMissingScene = errors.New("fake: no such scene")
	errNotLoaded    = errors.New("fake: scene not loaded")
)

type fakeOp struct {
	id string

	mu        sync.Mutex
	done      bool
	scene     *engine.Scene
	err       error
	callbacks []func(*engine.Scene, error)
	fireTwice bool
}

func (op *fakeOp) ID() string { return op.id }

func (op *fakeOp) OnCompleted(fn func(*engine.Scene, error)) {
	op.mu.Lock()
	if op.done {
		scene, err, twice := op.scene, op.err, op.fireTwice
		op.mu.Unlock()
		fn(scene, err)
		if twice {
			fn(nil, errors.New("fake: second completion"))
		}
		return
	}
	op.callbacks = append(op.callbacks, fn)
	op.mu.Unlock()
}

func (op *fakeOp) complete(scene *engine.Scene, err error) {
	op.mu.Lock()
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

type pendingLoad struct {
	op  *fakeOp
	ref engine.SceneRef
}

type pendingUnload struct {
	op    *fakeOp
	scene *engine.Scene
}

// fakeRegistry completes loads and unloads synchronously unless told to hold them.
type fakeRegistry struct {
	mu        sync.Mutex
	factories map[engine.SceneRef]func() *engine.Scene
	loaded    []*engine.Scene
	active    *engine.Scene
	nextID    int

	holdLoads      bool
	holdUnloads    bool
	fireTwice      bool
	pendingLoads   []pendingLoad
	pendingUnloads []pendingUnload
	loadRequested  chan engine.SceneRef
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		factories:     make(map[engine.SceneRef]func() *engine.Scene),
		loadRequested: make(chan engine.SceneRef, 16),
	}
}

func (r *fakeRegistry) define(ref engine.SceneRef, build func() *engine.Scene) {
	r.factories[ref] = build
}

func (r *fakeRegistry) newOp() *fakeOp {
	r.nextID++
	return &fakeOp{id: fmt.Sprintf("op-%d", r.nextID), fireTwice: r.fireTwice}
}

func (r *fakeRegistry) LoadSceneAsync(ref engine.SceneRef) Operation {
	r.mu.Lock()
	op := r.newOp()
	if r.holdLoads {
		r.pendingLoads = append(r.pendingLoads, pendingLoad{op: op, ref: ref})
		r.mu.Unlock()
		r.loadRequested <- ref
		return op
	}
	r.mu.Unlock()
	r.finishLoad(op, ref)
	return op
}

func (r *fakeRegistry) finishLoad(op *fakeOp, ref engine.SceneRef) {
	r.mu.Lock()
	build, ok := r.factories[ref]
	if !ok {
		r.mu.Unlock()
		op.complete(nil, fmt.Errorf("%s: %w", ref, errMissingScene))
		return
	}
	scene := build()
	scene.Ref = ref
	r.loaded = append(r.loaded, scene)
	if r.active == nil {
		r.active = scene
	}
	r.mu.Unlock()
	op.complete(scene, nil)
}

func (r *fakeRegistry) flushLoads() {
	r.mu.Lock()
	pending := r.pendingLoads
	r.pendingLoads = nil
	r.mu.Unlock()
	for _, p := range pending {
		r.finishLoad(p.op, p.ref)
	}
}

func (r *fakeRegistry) UnloadSceneAsync(scene *engine.Scene) Operation {
	r.mu.Lock()
	op := r.newOp()
	if r.holdUnloads {
		r.pendingUnloads = append(r.pendingUnloads, pendingUnload{op: op, scene: scene})
		r.mu.Unlock()
		return op
	}
	r.mu.Unlock()
	r.finishUnload(op, scene)
	return op
}

func (r *fakeRegistry) finishUnload(op *fakeOp, scene *engine.Scene) {
	r.mu.Lock()
	idx := -1
	for i, s := range r.loaded {
		if s == scene {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		op.complete(nil, errNotLoaded)
		return
	}
	r.loaded = append(r.loaded[:idx], r.loaded[idx+1:]...)
	if r.active == scene {
		r.active = nil
		if len(r.loaded) > 0 {
			r.active = r.loaded[0]
		}
	}
	r.mu.Unlock()
	op.complete(scene, nil)
}

func (r *fakeRegistry) flushUnloads() {
	r.mu.Lock()
	pending := r.pendingUnloads
	r.pendingUnloads = nil
	r.mu.Unlock()
	for _, p := range pending {
		r.finishUnload(p.op, p.scene)
	}
}

func (r *fakeRegistry) SceneByRef(ref engine.SceneRef) *engine.Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.loaded {
		if s.Ref == ref {
			return s
		}
	}
	return nil
}

func (r *fakeRegistry) LoadedScenes() []*engine.Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*engine.Scene(nil), r.loaded...)
}

func (r *fakeRegistry) ActiveScene() *engine.Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *fakeRegistry) SetActiveScene(scene *engine.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.loaded {
		if s == scene {
			r.active = scene
			return nil
		}
	}
	return errNotLoaded
}
