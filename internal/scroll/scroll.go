// Package scroll turns scroll measurements into a normalised progress
// fraction and publishes it at most once per rendered frame.
package scroll

import (
	"math"

	"sorana/internal/lifecycle"
)

// State is the derived scroll position of a document.
type State struct {
	Fraction float64
}

// Percent is the fraction expressed as a width percentage for a progress bar.
func (s State) Percent() float64 {
	return s.Fraction * 100
}

// Fraction computes offset / (total - viewport) clamped to [0,1]. A document
// that does not scroll yields 0.
func Fraction(offset, total, viewport float64) float64 {
	scrollable := total - viewport
	if scrollable <= 0 || math.IsNaN(scrollable) || math.IsNaN(offset) {
		return 0
	}
	f := offset / scrollable
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// Tracker coalesces scroll notifications. Notify only records the latest
// measurement; Flush recomputes once per frame and publishes to subscribers.
// A Tracker belongs to the event loop and is not safe for concurrent use.
type Tracker struct {
	offset, total, viewport float64
	dirty                   bool
	state                   State

	subs map[int]func(State)
	next int
}

// NewTracker creates a tracker at fraction 0.
func NewTracker() *Tracker {
	return &Tracker{subs: make(map[int]func(State))}
}

// Notify records a scroll measurement.
func (t *Tracker) Notify(offset, total, viewport float64) {
	if offset == t.offset && total == t.total && viewport == t.viewport && !t.dirty {
		return
	}
	t.offset, t.total, t.viewport = offset, total, viewport
	t.dirty = true
}

// Flush recomputes the state if a notification arrived since the last flush.
// It reports whether subscribers were notified.
func (t *Tracker) Flush() (State, bool) {
	if !t.dirty {
		return t.state, false
	}
	t.dirty = false
	t.state = State{Fraction: Fraction(t.offset, t.total, t.viewport)}
	for _, fn := range t.subs {
		fn(t.state)
	}
	return t.state, true
}

// State returns the last flushed state.
func (t *Tracker) State() State {
	return t.state
}

// Subscribe registers fn for every published state. The returned release
// removes it.
func (t *Tracker) Subscribe(fn func(State)) lifecycle.Release {
	id := t.next
	t.next++
	t.subs[id] = fn
	return func() { delete(t.subs, id) }
}

// Subscribers reports how many subscribers are registered.
func (t *Tracker) Subscribers() int {
	return len(t.subs)
}
