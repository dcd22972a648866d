package engine

import "testing"

func TestEventInvokesInOrder(t *testing.T) {
	var e Event
	var calls []int
	e.AddListener(func() { calls = append(calls, 1) })
	e.AddListener(nil)
	e.AddListener(func() { calls = append(calls, 2) })

	if got := e.GetListenerCount(); got != 2 {
		t.Fatalf("expected 2 listeners, got %d", got)
	}
	e.Invoke()
	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("calls = %v", calls)
	}

	e.RemoveAllListeners()
	e.Invoke()
	if len(calls) != 2 {
		t.Errorf("listeners should be gone, calls = %v", calls)
	}
}

func TestEventListenerAddedDuringInvoke(t *testing.T) {
	var e Event
	late := 0
	e.AddListener(func() {
		e.AddListener(func() { late++ })
	})

	e.Invoke()
	if late != 0 {
		t.Error("a listener added during Invoke should wait for the next one")
	}
	e.Invoke()
	if late != 1 {
		t.Errorf("late = %d, want 1", late)
	}
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[string]
	var got []string
	e.AddListener(func(s string) { got = append(got, s) })
	e.Invoke("a")
	e.Invoke("b")
	if len(got) != 2 || got[1] != "b" {
		t.Errorf("got = %v", got)
	}
	e.RemoveAllListeners()
	if e.GetListenerCount() != 0 {
		t.Error("expected no listeners")
	}
}
