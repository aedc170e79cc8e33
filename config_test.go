package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sorana.yaml")
	cfg := `
apiBaseUrl: http://localhost:8080/
logLevel: debug
counter:
  interval: 2s
slideshow:
  images:
    - a.png
    - b.png
exportDirectory: ` + filepath.Join(dir, "out") + `
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	c, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", c.APIBaseURL)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 2*time.Second, c.CounterInterval)
	assert.Equal(t, 4*time.Second, c.CounterTimeout)
	assert.Equal(t, []string{"a.png", "b.png"}, c.SlideshowImages)
	assert.Equal(t, filepath.Join(dir, "out"), c.ExportDirectory)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.sorana.io", c.APIBaseURL)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 5*time.Second, c.CounterInterval)
	assert.Equal(t, 5*time.Second, c.SlideshowInterval)
	assert.Equal(t, time.Second, c.SlideshowFade)
	assert.Equal(t, 33*time.Millisecond, c.FrameInterval)
	assert.Equal(t, []string{
		"images/satellite.png",
		"images/www.png",
		"images/aaron.png",
		"images/iran.png",
		"images/web3.png",
	}, c.SlideshowImages)
	assert.Empty(t, c.ExportDirectory)
	assert.True(t, filepath.IsAbs(c.LogsDir))
}

func TestLoadConfig_RcFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SORANA_COUNTER_INTERVAL", "10s")
	t.Setenv("SORANA_SLIDESHOW_IMAGES", "x.jpg, y.jpg")
	require.NoError(t, os.WriteFile(filepath.Join(home, configFileName), []byte("logsDir: ~/logs\n"), 0o644))

	c, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "logs"), c.LogsDir)
	assert.Equal(t, 10*time.Second, c.CounterInterval)
	assert.Equal(t, []string{"x.jpg", "y.jpg"}, c.SlideshowImages)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetExportPath(t *testing.T) {
	t.Parallel()

	c := &Config{}
	path, err := c.GetExportPath("globe.png")
	require.NoError(t, err)
	assert.Equal(t, "globe.png", path)

	c.ExportDirectory = filepath.Join(t.TempDir(), "exports")
	path, err = c.GetExportPath("globe.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.ExportDirectory, "globe.png"), path)
	assert.DirExists(t, c.ExportDirectory)
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, splitList("a, ,b"))
	assert.Equal(t, []string{"a", "1"}, splitList([]any{"a", 1}))
	assert.Nil(t, splitList(nil))
}
