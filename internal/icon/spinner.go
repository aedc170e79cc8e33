package icon

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sorana/internal/lifecycle"
)

// Spinner keeps the elapsed time that drives every icon of a view. It ticks
// once per RotationStep, the cadence at which the glyph angle changes.
type Spinner struct {
	task    *lifecycle.Task
	logger  *slog.Logger
	origin  time.Time
	elapsed time.Duration
	stop    lifecycle.Release
}

// NewSpinner creates a stopped spinner.
func NewSpinner(logger *slog.Logger) *Spinner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Spinner{
		task:   lifecycle.NewTask("icon-spin", RotationStep),
		logger: logger,
	}
}

// Start registers the spinner's timer with scope and schedules its first tick.
func (s *Spinner) Start(scope *lifecycle.Scope) tea.Cmd {
	if s.task.Running() {
		return nil
	}
	s.origin = time.Time{}
	s.elapsed = 0
	s.stop = scope.Add(s.task.Cancel)
	return s.task.Start()
}

// Stop cancels the timer.
func (s *Spinner) Stop() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

func (s *Spinner) Running() bool { return s.task.Running() }

// Elapsed is the time parameter to draw icons with.
func (s *Spinner) Elapsed() time.Duration { return s.elapsed }

// Update advances the elapsed time on the spinner's own ticks.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(lifecycle.TickMsg)
	if !ok || !s.task.Accept(tick) {
		return nil
	}
	return lifecycle.Safely(s.logger, s.task.String(), func() tea.Cmd {
		if s.origin.IsZero() {
			s.origin = tick.Time
		}
		s.elapsed = tick.Time.Sub(s.origin)
		return s.task.Next()
	})
}
