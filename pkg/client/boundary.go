package client

import "sync"

// DefaultFallback is shown once the boundary has tripped.
const DefaultFallback = "Something went wrong. Please reload the page."

// Boundary replaces a panicking render with a static failure message. It is a
// one-shot latch: once tripped every Render returns the fallback until an
// explicit Reload. There is no internal recovery path.
type Boundary struct {
	mu       sync.Mutex
	tripped  bool
	fallback string
}

// NewBoundary builds a boundary with the given fallback message; empty means
// DefaultFallback.
func NewBoundary(fallback string) *Boundary {
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &Boundary{fallback: fallback}
}

// Tripped reports whether the latch has fired.
func (b *Boundary) Tripped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tripped
}

// Render runs the guarded function and returns its output. A panic trips the
// latch and yields the fallback, as does every later call.
func (b *Boundary) Render(fn func() string) (out string) {
	b.mu.Lock()
	if b.tripped {
		b.mu.Unlock()
		return b.fallback
	}
	b.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			b.mu.Lock()
			b.tripped = true
			b.mu.Unlock()
			out = b.fallback
		}
	}()
	return fn()
}

// Reload resets the latch. It models the full-page reload affordance and is
// the only way back to normal rendering.
func (b *Boundary) Reload() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tripped = false
}
