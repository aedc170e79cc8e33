package main

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sorana/internal/counter"
)

func testConfig() *Config {
	return &Config{
		APIBaseURL:        "http://127.0.0.1:1",
		LogLevel:          "debug",
		CounterInterval:   5 * time.Second,
		CounterTimeout:    time.Second,
		SlideshowInterval: 5 * time.Second,
		SlideshowFade:     time.Second,
		SlideshowImages:   []string{"missing-a.png", "missing-b.png", "missing-c.png"},
		FrameInterval:     33 * time.Millisecond,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestModel(t *testing.T) model {
	t.Helper()
	m := initialModel(testConfig(), testLogger(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	return next.(model)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(model)
	}
	return m, cmd
}

func TestInitialModel_ActivatesHome(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, ViewHome, m.view)
	assert.True(t, m.frame.Running())
	assert.True(t, m.spinner.Running())
	assert.False(t, m.globe.Running())
	assert.False(t, m.slideshow.Running())
	assert.Equal(t, 1, m.tracker.Subscribers())
	assert.Equal(t, 3, m.scope.Live())
	assert.NotNil(t, m.Init())
}

func TestSwitchView_ReleasesPreviousScope(t *testing.T) {
	m := newTestModel(t)
	home := m.scope

	m, _ = press(t, m, "3")
	assert.True(t, home.Closed())
	assert.Equal(t, ViewContact, m.view)
	assert.False(t, m.spinner.Running())
	assert.True(t, m.globe.Running())
	assert.Equal(t, 1, m.surface.Listeners())
	assert.Equal(t, 1, m.tracker.Subscribers())

	contact := m.scope
	m, _ = press(t, m, "2")
	assert.True(t, contact.Closed())
	assert.False(t, m.globe.Running())
	assert.Equal(t, 0, m.surface.Listeners())
	assert.True(t, m.spinner.Running())
	assert.True(t, m.slideshow.Running())
	assert.Equal(t, 1, m.tracker.Subscribers())
}

func TestSwitchView_SameViewKeepsScope(t *testing.T) {
	m := newTestModel(t)
	scope := m.scope

	m, cmd := press(t, m, "1")
	assert.Nil(t, cmd)
	assert.Same(t, scope, m.scope)
	assert.False(t, scope.Closed())
}

func TestTabCyclesViews(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "tab")
	assert.Equal(t, ViewRoadmap, m.view)
	m, _ = press(t, m, "tab", "tab")
	assert.Equal(t, ViewHome, m.view)
	m, _ = press(t, m, "h")
	assert.Equal(t, ViewContact, m.view)
}

func TestQuit_ReleasesEverything(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "3")

	m, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.scope.Closed())
	assert.False(t, m.frame.Running())
	assert.False(t, m.globe.Running())
	assert.Equal(t, 0, m.surface.Listeners())
	assert.Equal(t, 0, m.tracker.Subscribers())
}

func TestFrame_FlushesScrollOnce(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "down", "down", "j")
	assert.Equal(t, 3, m.scrollY)
	assert.Zero(t, m.progress.state.Fraction)

	next, cmd := m.Update(m.frame.Msg(time.Now()))
	m = next.(model)
	assert.NotNil(t, cmd)
	assert.Greater(t, m.progress.state.Fraction, 0.0)
	assert.LessOrEqual(t, m.progress.state.Fraction, 1.0)
}

func TestFrame_StaleTickAfterSwitchIsIgnored(t *testing.T) {
	m := newTestModel(t)
	stale := m.frame.Msg(time.Now())

	m, _ = press(t, m, "2")
	next, _ := m.Update(stale)
	m = next.(model)

	assert.True(t, m.now.IsZero())
	assert.Empty(t, m.springs)
}

func TestFrame_StepsSprings(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "2")

	now := time.Now()
	next, _ := m.Update(m.frame.Msg(now))
	m = next.(model)
	require.NotEmpty(t, m.springs)
	assert.Equal(t, now, m.now)

	for _, b := range m.layout(false) {
		if b.reveal == nil {
			continue
		}
		target := b.reveal.Params(float64(b.start-m.scrollY), float64(b.height()), float64(m.viewportHeight())).TranslateX
		assert.InDelta(t, target, m.springs[b.id].Value(), 1e-9, b.id)
	}
}

func TestScroll_ClampsToDocument(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "k")
	assert.Equal(t, 0, m.scrollY)

	m, _ = press(t, m, "G")
	assert.Equal(t, m.maxScroll(), m.scrollY)
	assert.Positive(t, m.scrollY)

	m, _ = press(t, m, "j")
	assert.Equal(t, m.maxScroll(), m.scrollY)
}

func TestMouseWheelScrolls(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.MouseMsg{Type: tea.MouseWheelDown})
	m = next.(model)
	assert.Equal(t, 3, m.scrollY)

	next, _ = m.Update(tea.MouseMsg{Type: tea.MouseWheelUp})
	m = next.(model)
	assert.Equal(t, 0, m.scrollY)
}

func TestJumpToFAQ(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "f")
	assert.Equal(t, ViewContact, m.view)

	var faq block
	for _, b := range m.layout(false) {
		if b.id == anchorFAQ {
			faq = b
		}
	}
	require.Equal(t, anchorFAQ, faq.id)
	assert.Equal(t, min(faq.start, m.maxScroll()), m.scrollY)
}

func TestJumpTo_UnknownAnchor(t *testing.T) {
	m := newTestModel(t)
	assert.False(t, m.jumpTo("nowhere"))
	assert.Equal(t, 0, m.scrollY)
}

func TestCounterMsg_UpdatesDisplay(t *testing.T) {
	m := initialModel(testConfig(), testLogger(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	m = next.(model)

	next, cmd := m.Update(counterMsg(counter.State{Value: 1500, LastSyncOK: true}))
	m = next.(model)

	assert.Nil(t, cmd)
	assert.Equal(t, int64(1500), m.count.Value)
	assert.Contains(t, m.View(), "1,500")
	assert.Equal(t, "1,500", m.copyText())
}

func TestWaitForCount(t *testing.T) {
	assert.Nil(t, waitForCount(nil))

	feed := make(chan counter.State, 1)
	feed <- counter.State{Value: 7, LastSyncOK: true}
	assert.Equal(t, counterMsg(counter.State{Value: 7, LastSyncOK: true}), waitForCount(feed)())

	close(feed)
	assert.Nil(t, waitForCount(feed)())
}

func TestStatusMessages(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(statusMsg{text: "Copied 1,500"})
	m = next.(model)
	require.NotNil(t, cmd)
	assert.Equal(t, "Copied 1,500", m.successMessage)

	next, _ = m.Update(statusMsg{text: "boom", err: true})
	m = next.(model)
	assert.Equal(t, "boom", m.errorMessage)
	assert.Empty(t, m.successMessage)

	next, _ = m.Update(clearStatusMsg{seq: m.messageSeq - 1})
	m = next.(model)
	assert.Equal(t, "boom", m.errorMessage)

	next, _ = m.Update(clearStatusMsg{seq: m.messageSeq})
	m = next.(model)
	assert.Empty(t, m.errorMessage)
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "?")
	assert.True(t, m.help)
	assert.Contains(t, m.View(), "Sorana Help")

	m, _ = press(t, m, "j")
	assert.Equal(t, 0, m.scrollY)

	m, _ = press(t, m, "?")
	assert.False(t, m.help)
}

func TestCopyText_ContactEmail(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "3")
	assert.Equal(t, contactChannels[0].Email, m.copyText())
}

func TestInitialModel_NoSlides(t *testing.T) {
	cfg := testConfig()
	cfg.SlideshowImages = nil
	m := initialModel(cfg, testLogger(), nil)

	assert.Nil(t, m.slideshow)
	m, _ = press(t, m, "2")
	assert.Equal(t, ViewRoadmap, m.view)
	for _, b := range m.layout(false) {
		assert.NotEqual(t, "slideshow", b.id)
	}
}
