package engine

import "sync"

// Event is a Unity-style multi-cast event system.
// Allows multiple listeners to subscribe to a single event. Listeners may be
// added from any goroutine; Invoke calls them on the invoking goroutine.
type Event struct {
	mu        sync.Mutex
	listeners []func()
}

// AddListener adds a callback to be invoked when the event fires
func (e *Event) AddListener(callback func()) {
	if callback == nil {
		return
	}
	e.mu.Lock()
	e.listeners = append(e.listeners, callback)
	e.mu.Unlock()
}

// RemoveAllListeners clears all listeners
func (e *Event) RemoveAllListeners() {
	e.mu.Lock()
	e.listeners = nil
	e.mu.Unlock()
}

// Invoke calls all registered listeners
func (e *Event) Invoke() {
	e.mu.Lock()
	listeners := e.listeners
	e.mu.Unlock()
	for _, listener := range listeners {
		listener()
	}
}

// GetListenerCount returns the number of registered listeners (for debugging)
func (e *Event) GetListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// EventWithArg is a generic event with one argument
type EventWithArg[T any] struct {
	mu        sync.Mutex
	listeners []func(T)
}

func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.mu.Lock()
	e.listeners = append(e.listeners, callback)
	e.mu.Unlock()
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.mu.Lock()
	e.listeners = nil
	e.mu.Unlock()
}

func (e *EventWithArg[T]) Invoke(arg T) {
	e.mu.Lock()
	listeners := e.listeners
	e.mu.Unlock()
	for _, listener := range listeners {
		listener(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}
