// Package lifecycle pairs every timer, listener and frame handle a view
// acquires with a release that runs when the view is torn down.
package lifecycle

import (
	"log/slog"
	"sync"
)

// Release frees one acquired resource. Calling it more than once is a no-op
// when it was returned by Scope.Add.
type Release func()

// Scope owns the releases of one activated view.
type Scope struct {
	name   string
	logger *slog.Logger

	mu       sync.Mutex
	releases map[int]Release
	next     int
	closed   bool
}

// NewScope creates an open scope. A nil logger falls back to slog.Default().
func NewScope(name string, logger *slog.Logger) *Scope {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scope{
		name:     name,
		logger:   logger,
		releases: make(map[int]Release),
	}
}

// Add registers release with the scope and returns a Release that runs it
// early and forgets it. Adding to a closed scope runs release immediately
// so nothing outlives the view.
func (s *Scope) Add(release Release) Release {
	if release == nil {
		return func() {}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.run(release)
		return func() {}
	}
	id := s.next
	s.next++
	s.releases[id] = release
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		r, ok := s.releases[id]
		delete(s.releases, id)
		s.mu.Unlock()
		if ok {
			s.run(r)
		}
	}
}

// Live reports how many acquisitions have not been released yet.
func (s *Scope) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.releases)
}

// Closed reports whether Close has run.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close runs every outstanding release. Releases are independent: one that
// panics is logged and the rest still run. Close is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	pending := s.releases
	s.releases = make(map[int]Release)
	s.mu.Unlock()

	for _, r := range pending {
		s.run(r)
	}
	s.logger.Debug("scope closed", "scope", s.name, "released", len(pending))
}

func (s *Scope) run(r Release) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("release panicked", "scope", s.name, "panic", rec)
		}
	}()
	r()
}
