package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"sorana/internal/lifecycle"
)

// activate tears down the current view and acquires everything v needs in
// a fresh scope. The returned command schedules the first ticks.
func (m *model) activate(v View) tea.Cmd {
	m.deactivate()

	m.view = v
	m.scrollY = 0
	m.lastFrame = m.now
	m.scope = lifecycle.NewScope("view:"+v.String(), m.logger)
	m.scope.Add(m.tracker.Subscribe(m.progress.Set))
	m.scope.Add(m.frame.Cancel)

	cmds := []tea.Cmd{m.frame.Start()}
	switch v {
	case ViewHome:
		cmds = append(cmds, m.spinner.Start(m.scope))
	case ViewRoadmap:
		cmds = append(cmds, m.spinner.Start(m.scope))
		if m.slideshow != nil {
			cmds = append(cmds, m.slideshow.Start(m.scope))
		}
	case ViewContact:
		cmds = append(cmds, m.globe.Start(m.scope))
	}
	m.notifyScroll()

	m.logger.Debug("view activated", "view", v.String(), "live", m.scope.Live())
	return tea.Batch(cmds...)
}

// deactivate releases every listener and timer the active view acquired.
func (m *model) deactivate() {
	if m.scope == nil {
		return
	}
	m.scope.Close()
	for id := range m.springs {
		delete(m.springs, id)
	}
	m.logger.Debug("view deactivated", "view", m.view.String())
}

func (m *model) switchView(v View) tea.Cmd {
	if v == m.view && m.scope != nil && !m.scope.Closed() {
		return nil
	}
	return m.activate(v)
}

func (m *model) viewportHeight() int {
	h := m.height - headerHeight - statusHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m *model) maxScroll() int {
	doc := m.layout(false)
	if over := documentHeight(doc) - m.viewportHeight(); over > 0 {
		return over
	}
	return 0
}

func (m *model) scrollBy(delta int) {
	m.scrollTo(m.scrollY + delta)
}

func (m *model) scrollTo(y int) {
	if limit := m.maxScroll(); y > limit {
		y = limit
	}
	if y < 0 {
		y = 0
	}
	m.scrollY = y
	m.notifyScroll()
}

// notifyScroll records the current measurement. The tracker coalesces
// notifications and recomputes once on the next frame.
func (m *model) notifyScroll() {
	doc := m.layout(false)
	m.tracker.Notify(float64(m.scrollY), float64(documentHeight(doc)), float64(m.viewportHeight()))
}

// jumpTo scrolls so the block with the given id sits at the top of the
// viewport. It reports whether the anchor exists on the active view.
func (m *model) jumpTo(anchor string) bool {
	for _, b := range m.layout(false) {
		if b.id == anchor {
			m.scrollTo(b.start)
			return true
		}
	}
	return false
}

func (m *model) handleScrollKey(key string) bool {
	page := m.viewportHeight() - 1
	if page < 1 {
		page = 1
	}
	switch key {
	case "j", "down":
		m.scrollBy(1)
	case "k", "up":
		m.scrollBy(-1)
	case "J", "shift+down":
		m.scrollBy(getScrollSpeed(key))
	case "K", "shift+up":
		m.scrollBy(-getScrollSpeed(key))
	case "pgdown", " ", "ctrl+d":
		m.scrollBy(page)
	case "pgup", "ctrl+u":
		m.scrollBy(-page)
	case "g", "home":
		m.scrollTo(0)
	case "G", "end":
		m.scrollTo(m.maxScroll())
	default:
		return false
	}
	return true
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.scrollBy(-3)
	case tea.MouseWheelDown:
		m.scrollBy(3)
	}
}

func getScrollSpeed(key string) int {
	switch key {
	case "J", "K", "shift+down", "shift+up":
		return 3
	default:
		return 1
	}
}
