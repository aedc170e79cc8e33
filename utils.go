package main

import (
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

var errNoClipboard = errors.New("no clipboard utility available")

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, err: isErr}
	}
}

func writeClipboardText(text string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	return clipboard.WriteAll(text)
}

// copyText is what `y` copies on the active view.
func (m *model) copyText() string {
	if m.view == ViewContact && len(contactChannels) > 0 {
		return contactChannels[0].Email
	}
	return humanize.Comma(m.count.Value)
}

func (m *model) copyCmd() tea.Cmd {
	text := m.copyText()
	return func() tea.Msg {
		if err := writeClipboardText(text); err != nil {
			return statusMsg{text: "Copy failed: " + err.Error(), err: true}
		}
		return statusMsg{text: "Copied " + text}
	}
}
