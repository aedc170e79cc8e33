package lifecycle

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastTaskID int64

func nextTaskID() int {
	return int(atomic.AddInt64(&lastTaskID, 1))
}

// TickMsg is delivered by the event loop when a Task's delay has elapsed.
type TickMsg struct {
	ID   int
	Tag  int
	Time time.Time
}

// Task is a cancellable repeating task scheduled on the bubbletea loop.
// Each scheduled tick carries the task's ID and a tag; Cancel bumps the tag
// so a tick already in flight is recognised as stale and never rescheduled.
//
// A Task is owned by the event loop and is not safe for concurrent use.
type Task struct {
	name     string
	id       int
	tag      int
	interval time.Duration
	running  bool
}

// NewTask creates a stopped task that fires every interval.
func NewTask(name string, interval time.Duration) *Task {
	return &Task{
		name:     name,
		id:       nextTaskID(),
		interval: interval,
	}
}

func (t *Task) ID() int                 { return t.id }
func (t *Task) Name() string            { return t.name }
func (t *Task) Interval() time.Duration { return t.interval }
func (t *Task) Running() bool           { return t.running }

// Start marks the task running and schedules the first tick.
func (t *Task) Start() tea.Cmd {
	t.running = true
	t.tag++
	return t.schedule()
}

// Accept reports whether msg is the tick this task is currently waiting for.
func (t *Task) Accept(msg TickMsg) bool {
	return t.running && msg.ID == t.id && msg.Tag == t.tag
}

// Next schedules the following tick. It returns nil once the task has been
// cancelled, which ends the chain.
func (t *Task) Next() tea.Cmd {
	if !t.running {
		return nil
	}
	t.tag++
	return t.schedule()
}

// Cancel revokes the pending tick. It is safe to call on a stopped task.
func (t *Task) Cancel() {
	t.running = false
	t.tag++
}

// Msg builds the message the pending tick would deliver at now. It lets a
// caller fire the task immediately instead of waiting for the interval.
func (t *Task) Msg(now time.Time) TickMsg {
	return TickMsg{ID: t.id, Tag: t.tag, Time: now}
}

func (t *Task) String() string {
	return fmt.Sprintf("%s#%d", t.name, t.id)
}

func (t *Task) schedule() tea.Cmd {
	id, tag := t.id, t.tag
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return TickMsg{ID: id, Tag: tag, Time: now}
	})
}

// Safely runs fn and converts a panic into a logged error so a failing
// callback never stops the event loop. The returned command is nil on panic.
func Safely(logger *slog.Logger, name string, fn func() tea.Cmd) (cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			if logger == nil {
				logger = slog.Default()
			}
			logger.Error("callback panicked", "callback", name, "panic", rec)
			cmd = nil
		}
	}()
	return fn()
}
