package core

import "sync"

// Host guards the single panel instance. Creation is exclusive: while one
// instance is active, Show hands back that instance instead of a new one.
type Host[T comparable] struct {
	mu      sync.Mutex
	current T
	active  bool
}

// Show returns the active instance and false, or creates one with create
// and returns it and true
func (h *Host[T]) Show(create func() T) (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active {
		return h.current, false
	}
	h.current = create()
	h.active = true
	return h.current, true
}

// Current returns the active instance, if any
func (h *Host[T]) Current() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current, h.active
}

// Release clears the active instance when it is v. Releasing a stale
// instance is a no-op.
func (h *Host[T]) Release(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active && h.current == v {
		var zero T
		h.current = zero
		h.active = false
	}
}
