// Package surface models a drawing surface whose pixel size is owned by the
// host and may change between frames.
package surface

import (
	"sync"

	"sorana/internal/lifecycle"
)

// Surface holds the host's current pixel dimensions and the resize
// listeners registered against it.
type Surface struct {
	mu        sync.Mutex
	width     int
	height    int
	listeners map[int]func(width, height int)
	next      int
}

// New creates a surface of the given size. Negative sizes clamp to zero.
func New(width, height int) *Surface {
	s := &Surface{listeners: make(map[int]func(int, int))}
	s.width, s.height = clamp(width), clamp(height)
	return s
}

// Size reads the current pixel dimensions.
func (s *Surface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Empty reports whether nothing can be drawn on the surface.
func (s *Surface) Empty() bool {
	w, h := s.Size()
	return w == 0 || h == 0
}

// Resize applies new dimensions and notifies listeners when they changed.
func (s *Surface) Resize(width, height int) {
	width, height = clamp(width), clamp(height)

	s.mu.Lock()
	if width == s.width && height == s.height {
		s.mu.Unlock()
		return
	}
	s.width, s.height = width, height
	fns := make([]func(int, int), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(width, height)
	}
}

// OnResize registers fn for every size change. The returned release removes
// the listener.
func (s *Surface) OnResize(fn func(width, height int)) lifecycle.Release {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Listeners reports how many resize listeners are registered.
func (s *Surface) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
