// Package logging configures the process slog logger. The terminal UI owns
// stdout, so interactive runs log to a file under the logs directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Manager owns the configured logger and the file behind it, if any.
type Manager struct {
	logger *slog.Logger
	file   *os.File
	path   string
}

// NewManager creates an unconfigured manager.
func NewManager() *Manager {
	return &Manager{}
}

// ParseLevel converts a string log level to slog.Level. Unknown values map
// to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup points the logger at w with RFC3339 UTC timestamps. A nil writer
// discards everything.
func (m *Manager) Setup(w io.Writer, level string) {
	if w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}
	m.logger = slog.New(slog.NewTextHandler(w, opts))
	m.logger.Debug("logging initialized", "level", level)
}

// SetupFile opens (appending) the session log under dir and logs to it.
func (m *Manager) SetupFile(dir, name, level string, sessionStart time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating logs directory: %w", err)
	}
	path := FilePath(dir, name, sessionStart)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening log file: %w", err)
	}
	m.file, m.path = f, path
	m.Setup(f, level)
	return path, nil
}

// FilePath builds the session log path, e.g. sorana.20261017_093000.log.
func FilePath(dir, name string, sessionStart time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s.%s.log", name, sessionStart.Format("20060102_150405")))
}

// Logger returns the configured logger, or slog.Default() before Setup.
func (m *Manager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Path is the open session log file, or "" when none is open.
func (m *Manager) Path() string {
	return m.path
}

// Close closes the log file opened by SetupFile. It is safe to call twice.
func (m *Manager) Close() error {
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file, m.path = nil, ""
	return err
}
