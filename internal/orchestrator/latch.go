package orchestrator

import (
	"context"
	"sync"

	"helium/internal/engine"
)

// latch bridges a callback-based host completion into a blocking wait.
// It resolves exactly once; later resolutions are ignored.
type latch struct {
	once  sync.Once
	done  chan struct{}
	scene *engine.Scene
	err   error
}

func newLatch() *latch {
	return &latch{done: make(chan struct{})}
}

// resolve records the result. It reports false if the latch was already resolved.
func (l *latch) resolve(scene *engine.Scene, err error) bool {
	resolved := false
	l.once.Do(func() {
		l.scene = scene
		l.err = err
		resolved = true
		close(l.done)
	})
	return resolved
}

func (l *latch) wait(ctx context.Context) (*engine.Scene, error) {
	select {
	case <-l.done:
		return l.scene, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
