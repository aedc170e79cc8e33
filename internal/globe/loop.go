package globe

import (
	"image"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fogleman/gg"

	"sorana/internal/lifecycle"
	"sorana/internal/surface"
)

// Loop redraws a Scene every frame while its view is active. The elapsed
// time of a frame is measured from the first frame's timestamp, so angles
// are recomputed from scratch each time.
type Loop struct {
	scene   Scene
	surface *surface.Surface
	task    *lifecycle.Task
	logger  *slog.Logger

	dc      *gg.Context
	origin  time.Time
	elapsed time.Duration
	frames  int
	stale   bool

	releases []lifecycle.Release
}

// NewLoop creates a stopped loop drawing scene onto s every frameInterval.
func NewLoop(s *surface.Surface, scene Scene, frameInterval time.Duration, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		scene:   scene,
		surface: s,
		task:    lifecycle.NewTask("globe-frame", frameInterval),
		logger:  logger,
	}
}

// Start registers the resize listener and the frame handle with scope and
// schedules the first frame. Starting a running loop is a no-op.
func (l *Loop) Start(scope *lifecycle.Scope) tea.Cmd {
	if l.task.Running() {
		return nil
	}
	l.origin = time.Time{}
	l.releases = []lifecycle.Release{
		scope.Add(l.surface.OnResize(l.onResize)),
		scope.Add(l.task.Cancel),
	}
	return l.task.Start()
}

// Stop revokes the frame handle and removes the resize listener.
func (l *Loop) Stop() {
	for _, r := range l.releases {
		r()
	}
	l.releases = nil
}

// Running reports whether frames are still being scheduled.
func (l *Loop) Running() bool {
	return l.task.Running()
}

// Update draws a frame when msg is this loop's pending tick and schedules
// the next one. Other messages are ignored.
func (l *Loop) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(lifecycle.TickMsg)
	if !ok || !l.task.Accept(tick) {
		return nil
	}
	return lifecycle.Safely(l.logger, l.task.String(), func() tea.Cmd {
		if l.origin.IsZero() {
			l.origin = tick.Time
		}
		l.Frame(tick.Time.Sub(l.origin))
		return l.task.Next()
	})
}

// Frame re-measures the surface and draws the scene at elapsed time t.
// A zero-sized surface skips drawing.
func (l *Loop) Frame(t time.Duration) {
	w, h := l.surface.Size()
	if w == 0 || h == 0 {
		l.dc = nil
		return
	}
	if l.stale || l.dc == nil || l.dc.Width() != w || l.dc.Height() != h {
		l.dc = gg.NewContext(w, h)
		l.stale = false
	}
	l.scene.Draw(l.dc, t)
	l.elapsed = t
	l.frames++
}

// Image is the most recently drawn frame, or nil before the first frame.
func (l *Loop) Image() image.Image {
	if l.dc == nil {
		return nil
	}
	return l.dc.Image()
}

// Elapsed is the time parameter of the last drawn frame.
func (l *Loop) Elapsed() time.Duration { return l.elapsed }

// Frames counts drawn frames.
func (l *Loop) Frames() int { return l.frames }

func (l *Loop) onResize(width, height int) {
	l.stale = true
	l.logger.Debug("globe surface resized", "width", width, "height", height)
}
