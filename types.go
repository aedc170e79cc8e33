package main

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sorana/internal/counter"
	"sorana/internal/globe"
	"sorana/internal/icon"
	"sorana/internal/lifecycle"
	"sorana/internal/reveal"
	"sorana/internal/scroll"
	"sorana/internal/slideshow"
	"sorana/internal/surface"
)

type model struct {
	width   int
	height  int
	view    View
	help    bool
	scrollY int
	config  *Config
	logger  *slog.Logger

	// scope owns everything the active view acquired.
	scope     *lifecycle.Scope
	frame     *lifecycle.Task
	lastFrame time.Time
	now       time.Time

	tracker  *scroll.Tracker
	progress *progressBar
	springs  map[string]*reveal.Spring

	surface    *surface.Surface
	globe      *globe.Loop
	spinner    *icon.Spinner
	slideshow  *slideshow.Timer
	compositor *slideshow.Compositor

	counterFeed <-chan counter.State
	count       counter.State

	initCmd        tea.Cmd
	errorMessage   string
	successMessage string
	messageSeq     int
}

// progressBar is the scroll tracker's visual subscriber.
type progressBar struct {
	state scroll.State
}

func (p *progressBar) Set(s scroll.State) { p.state = s }

type counterMsg counter.State

type statusMsg struct {
	text string
	err  bool
}

type clearStatusMsg struct {
	seq int
}
