// Package loading runs ordered batches of named loading actions and reports
// fractional progress after each one.
package loading

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrBatchSealed is returned when an action is added to a batch that has
// already started processing.
var ErrBatchSealed = errors.New("loading: batch already processed")

// Progress is reported once before the first action and once after each
// completed action.
type Progress struct {
	Progress    float32
	Description string
}

// ProgressFunc receives progress events. A nil ProgressFunc drops them.
type ProgressFunc func(Progress)

type action struct {
	description string
	run         func(ctx context.Context) error
}

// Batch is a FIFO queue of loading actions. It is consumed exactly once.
type Batch struct {
	mu      sync.Mutex
	actions []action
	sealed  bool
}

func NewBatch() *Batch {
	return &Batch{}
}

// Add enqueues a synchronous action.
func (b *Batch) Add(fn func(), description string) error {
	if fn == nil {
		return b.enqueue(action{description: description, run: func(context.Context) error { return nil }})
	}
	return b.enqueue(action{description: description, run: func(context.Context) error {
		fn()
		return nil
	}})
}

// AddAsync enqueues an action that blocks until its work is done.
func (b *Batch) AddAsync(fn func(ctx context.Context) error, description string) error {
	if fn == nil {
		fn = func(context.Context) error { return nil }
	}
	return b.enqueue(action{description: description, run: fn})
}

func (b *Batch) enqueue(a action) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sealed {
		return ErrBatchSealed
	}
	b.actions = append(b.actions, a)
	return nil
}

// Len returns the number of queued actions.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.actions)
}

// Process runs every queued action in insertion order, one at a time.
//
// progress fires first with (0, "") when there is work and (1, "") when the
// batch is empty, then with (processed/total, description) after each action.
// The first failing action aborts the batch; its error is returned and no
// progress event is emitted for it. Processing seals the batch.
func (b *Batch) Process(ctx context.Context, progress ProgressFunc) error {
	b.mu.Lock()
	if b.sealed {
		b.mu.Unlock()
		return ErrBatchSealed
	}
	b.sealed = true
	actions := b.actions
	b.actions = nil
	b.mu.Unlock()

	report := func(p Progress) {
		if progress != nil {
			progress(p)
		}
	}

	total := len(actions)
	if total == 0 {
		report(Progress{Progress: 1})
		return nil
	}
	report(Progress{Progress: 0})

	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("loading %q: %w", a.description, err)
		}
		if err := a.run(ctx); err != nil {
			return fmt.Errorf("loading %q: %w", a.description, err)
		}
		report(Progress{
			Progress:    float32(i+1) / float32(total),
			Description: a.description,
		})
	}
	return nil
}
