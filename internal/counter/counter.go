// Package counter keeps a process-wide copy of the remote reward-token
// counter, refreshed on a fixed cadence with last-known-good semantics.
package counter

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"sorana/internal/lifecycle"
)

// ErrRunning is returned by Start when the synchronizer is already polling.
var ErrRunning = errors.New("counter: synchronizer already running")

// DefaultInterval is the polling cadence.
const DefaultInterval = 5 * time.Second

// State is the latest known counter value and whether the last sync worked.
type State struct {
	Value      int64
	LastSyncOK bool
}

// Synchronizer polls a Fetcher and is the only writer of State. Views read
// it through State or Subscribe. Overlapping fetches are allowed; whichever
// response arrives last wins.
type Synchronizer struct {
	fetcher  Fetcher
	interval time.Duration
	logger   *slog.Logger
	metrics  *syncMetrics

	mu      sync.RWMutex
	state   State
	subs    map[int]chan State
	nextSub int

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithInterval sets the polling cadence.
func WithInterval(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMeter records sync outcomes on m instead of the global meter.
func WithMeter(m metric.Meter) Option {
	return func(s *Synchronizer) {
		s.metrics = &syncMetrics{meter: m}
	}
}

// New creates a stopped synchronizer with value 0.
func New(f Fetcher, opts ...Option) (*Synchronizer, error) {
	s := &Synchronizer{
		fetcher:  f,
		interval: DefaultInterval,
		logger:   slog.Default(),
		subs:     make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = &syncMetrics{meter: meter()}
	}
	if err := s.metrics.init(); err != nil {
		return nil, err
	}
	return s, nil
}

// State returns the latest known state.
func (s *Synchronizer) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Interval is the polling cadence.
func (s *Synchronizer) Interval() time.Duration {
	return s.interval
}

// Sync performs one fetch and applies its outcome. A failure keeps the
// current value and clears LastSyncOK; it is logged, never returned. If ctx
// is cancelled by the time the response arrives the result is discarded.
func (s *Synchronizer) Sync(ctx context.Context) State {
	value, err := s.fetcher.Fetch(ctx)

	s.mu.Lock()
	if ctx.Err() != nil {
		st := s.state
		s.mu.Unlock()
		return st
	}
	if err != nil {
		s.state.LastSyncOK = false
	} else {
		s.state = State{Value: value, LastSyncOK: true}
	}
	st := s.state
	s.publishLocked(st)
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("counter sync failed", "error", err, "value", st.Value)
		s.metrics.failure(ctx)
	} else {
		s.logger.Debug("counter synced", "value", st.Value)
		s.metrics.success(ctx)
	}
	return st
}

// Start syncs immediately and then every interval until the returned
// release runs or ctx ends. Responses that arrive after release are dropped.
// The value gauge is observed only while the synchronizer runs.
func (s *Synchronizer) Start(ctx context.Context) (lifecycle.Release, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.cancel != nil {
		return nil, ErrRunning
	}
	reg, err := s.metrics.observe(s.State)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel, s.done = cancel, done
	go s.run(ctx, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
			if err := reg.Unregister(); err != nil {
				s.logger.Warn("unregistering counter gauge", "error", err)
			}
			s.runMu.Lock()
			s.cancel, s.done = nil, nil
			s.runMu.Unlock()
		})
	}, nil
}

// Running reports whether the polling loop is active.
func (s *Synchronizer) Running() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.cancel != nil
}

func (s *Synchronizer) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.spawn(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.spawn(ctx)
		}
	}
}

// spawn runs one sync without blocking the ticker, so a slow response can
// overlap the next tick.
func (s *Synchronizer) spawn(ctx context.Context) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("counter sync panicked", "panic", rec)
			}
		}()
		s.Sync(ctx)
	}()
}

// Subscribe returns a channel that receives every state the synchronizer
// publishes, starting with the current one. The channel holds only the
// newest state; a slow reader skips intermediate values. The release closes
// the channel.
func (s *Synchronizer) Subscribe() (<-chan State, lifecycle.Release) {
	ch := make(chan State, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.state
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}

// Subscribers reports how many subscriptions are open.
func (s *Synchronizer) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Synchronizer) publishLocked(st State) {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}
