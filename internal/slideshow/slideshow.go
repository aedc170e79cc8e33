// Package slideshow cycles an ordered image sequence on a fixed cadence and
// crossfades between consecutive images.
package slideshow

import (
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sorana/internal/lifecycle"
)

// ErrNoImages is returned when a slideshow is built without images.
var ErrNoImages = errors.New("slideshow: no images")

const (
	DefaultInterval = 5 * time.Second
	DefaultFade     = time.Second
)

// State is the image sequence and the index currently shown.
type State struct {
	Images       []string
	CurrentIndex int
}

// Timer advances a slideshow every interval. The crossfade runs for fade
// after each advance and is measured against the frame time the caller
// passes in, not against ticks.
type Timer struct {
	state      State
	previous   int
	advancedAt time.Time
	ticks      int

	interval time.Duration
	fade     time.Duration
	task     *lifecycle.Task
	logger   *slog.Logger
	stop     lifecycle.Release
}

// New creates a stopped slideshow over images.
func New(images []string, interval, fade time.Duration, logger *slog.Logger) (*Timer, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if fade < 0 {
		fade = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Timer{
		state:    State{Images: append([]string(nil), images...)},
		interval: interval,
		fade:     fade,
		task:     lifecycle.NewTask("slideshow", interval),
		logger:   logger,
	}, nil
}

// Start registers the slideshow timer with scope and schedules the first tick.
func (t *Timer) Start(scope *lifecycle.Scope) tea.Cmd {
	if t.task.Running() {
		return nil
	}
	t.stop = scope.Add(t.task.Cancel)
	return t.task.Start()
}

// Stop cancels the timer.
func (t *Timer) Stop() {
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

func (t *Timer) Running() bool { return t.task.Running() }

// Update advances on the slideshow's own ticks and schedules the next one.
func (t *Timer) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(lifecycle.TickMsg)
	if !ok || !t.task.Accept(tick) {
		return nil
	}
	return lifecycle.Safely(t.logger, t.task.String(), func() tea.Cmd {
		t.Advance(tick.Time)
		return t.task.Next()
	})
}

// Advance moves to the next image with wraparound and starts a crossfade at now.
func (t *Timer) Advance(now time.Time) {
	t.previous = t.state.CurrentIndex
	t.state.CurrentIndex = (t.state.CurrentIndex + 1) % len(t.state.Images)
	t.advancedAt = now
	t.ticks++
}

// State returns a copy of the current state.
func (t *Timer) State() State {
	return State{
		Images:       append([]string(nil), t.state.Images...),
		CurrentIndex: t.state.CurrentIndex,
	}
}

func (t *Timer) Index() int              { return t.state.CurrentIndex }
func (t *Timer) Current() string         { return t.state.Images[t.state.CurrentIndex] }
func (t *Timer) Ticks() int              { return t.ticks }
func (t *Timer) Interval() time.Duration { return t.interval }

// Fade describes the two images visible at one instant and their opacities.
type Fade struct {
	Outgoing, Incoming               int
	OutgoingOpacity, IncomingOpacity float64
}

// Settled reports whether only the incoming image is visible.
func (f Fade) Settled() bool {
	return f.Outgoing == f.Incoming || f.IncomingOpacity >= 1
}

// Crossfade reports what is visible at now. Before the first advance, and
// once the fade has finished, only the current image shows.
func (t *Timer) Crossfade(now time.Time) Fade {
	cur := t.state.CurrentIndex
	f := Fade{Outgoing: cur, Incoming: cur, IncomingOpacity: 1}
	if t.advancedAt.IsZero() || t.previous == cur {
		return f
	}
	progress := 1.0
	if t.fade > 0 {
		progress = float64(now.Sub(t.advancedAt)) / float64(t.fade)
	}
	switch {
	case progress < 0:
		progress = 0
	case progress > 1:
		progress = 1
	}
	if progress >= 1 {
		return f
	}
	f.Outgoing = t.previous
	f.OutgoingOpacity = 1 - progress
	f.IncomingOpacity = progress
	return f
}
