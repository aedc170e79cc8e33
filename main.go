package main

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sorana/internal/counter"
	"sorana/internal/globe"
	"sorana/internal/halfblock"
	"sorana/internal/icon"
	"sorana/internal/lifecycle"
	"sorana/internal/reveal"
	"sorana/internal/scroll"
	"sorana/internal/slideshow"
	"sorana/internal/surface"
)

func main() {
	Execute()
}

// initialModel builds the page with the home view active. feed delivers
// the process-wide counter state; it may be nil when no synchronizer runs.
func initialModel(cfg *Config, logger *slog.Logger, feed <-chan counter.State) model {
	if logger == nil {
		logger = slog.Default()
	}
	s := surface.New(0, 0)
	m := model{
		config:      cfg,
		logger:      logger,
		frame:       lifecycle.NewTask("view-frame", cfg.FrameInterval),
		tracker:     scroll.NewTracker(),
		progress:    &progressBar{},
		springs:     make(map[string]*reveal.Spring),
		surface:     s,
		globe:       globe.NewLoop(s, globe.DefaultScene(), cfg.FrameInterval, logger),
		spinner:     icon.NewSpinner(logger),
		counterFeed: feed,
	}

	show, err := slideshow.New(cfg.SlideshowImages, cfg.SlideshowInterval, cfg.SlideshowFade, logger)
	if err != nil {
		logger.Warn("slideshow disabled", "error", err)
	} else {
		m.slideshow = show
		if m.compositor, err = slideshow.NewCompositor(logger); err != nil {
			logger.Warn("slideshow compositor unavailable", "error", err)
		}
	}

	m.initCmd = m.activate(ViewHome)
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, waitForCount(m.counterFeed))
}

// waitForCount bridges one counter update into the event loop. The chain
// ends when the subscription is released and the channel closes.
func waitForCount(feed <-chan counter.State) tea.Cmd {
	if feed == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-feed
		if !ok {
			return nil
		}
		return counterMsg(st)
	}
}

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(messageTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.surface.Resize(globeWidth(m.width), halfblock.PixelHeight(globeRows))
		m.scrollTo(m.scrollY)
		return m, nil

	case lifecycle.TickMsg:
		if m.frame.Accept(msg) {
			return m, m.onFrame(msg.Time)
		}
		cmds := []tea.Cmd{m.globe.Update(msg), m.spinner.Update(msg)}
		if m.slideshow != nil {
			cmds = append(cmds, m.slideshow.Update(msg))
		}
		return m, tea.Batch(cmds...)

	case counterMsg:
		m.count = counter.State(msg)
		return m, waitForCount(m.counterFeed)

	case statusMsg:
		m.messageSeq++
		if msg.err {
			m.errorMessage, m.successMessage = msg.text, ""
		} else {
			m.errorMessage, m.successMessage = "", msg.text
		}
		return m, clearStatusAfter(m.messageSeq)

	case clearStatusMsg:
		if msg.seq == m.messageSeq {
			m.errorMessage, m.successMessage = "", ""
		}
		return m, nil

	case tea.MouseMsg:
		if !m.help {
			m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.help {
		switch key {
		case "ctrl+c":
			m.deactivate()
			return m, tea.Quit
		case "esc", "q", "?":
			m.help = false
		}
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		m.deactivate()
		return m, tea.Quit
	case "?":
		m.help = true
	case "1":
		return m, m.switchView(ViewHome)
	case "2":
		return m, m.switchView(ViewRoadmap)
	case "3":
		return m, m.switchView(ViewContact)
	case "tab", "l", "right":
		return m, m.switchView(m.view.Next())
	case "shift+tab", "h", "left":
		return m, m.switchView(m.view.Prev())
	case "f":
		return m, m.jumpToAnchor(ViewContact, anchorFAQ)
	case "t":
		return m, m.jumpToAnchor(ViewRoadmap, anchorRoadmap)
	case "p":
		return m, m.jumpToAnchor(ViewHome, anchorProducts)
	case "y":
		return m, m.copyCmd()
	case "e":
		return m, m.exportCmd()
	default:
		m.handleScrollKey(key)
	}
	return m, nil
}

func (m *model) jumpToAnchor(v View, anchor string) tea.Cmd {
	cmd := m.switchView(v)
	m.jumpTo(anchor)
	return cmd
}

// onFrame is the per-frame work of the active view: flush coalesced scroll
// notifications once, then advance the drift springs.
func (m *model) onFrame(now time.Time) tea.Cmd {
	return lifecycle.Safely(m.logger, m.frame.String(), func() tea.Cmd {
		var dt time.Duration
		if !m.lastFrame.IsZero() {
			dt = now.Sub(m.lastFrame)
		}
		m.lastFrame, m.now = now, now

		m.tracker.Flush()
		m.stepSprings(m.layout(false), dt)
		return m.frame.Next()
	})
}

func (m *model) stepSprings(blocks []block, dt time.Duration) {
	viewport := float64(m.viewportHeight())
	for _, b := range blocks {
		if b.reveal == nil {
			continue
		}
		target := b.reveal.Params(float64(b.start-m.scrollY), float64(b.height()), viewport).TranslateX
		s, ok := m.springs[b.id]
		if !ok {
			s = reveal.NewSpring()
			m.springs[b.id] = s
		}
		s.Step(target, dt)
	}
}
