package main

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sorana/internal/globe"
	"sorana/internal/slideshow"
)

func TestParseScene(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"globe", "slideshow", "icons"} {
		s, err := parseScene(name)
		require.NoError(t, err)
		assert.Equal(t, Scene(name), s)
	}
	_, err := parseScene("starfield")
	assert.ErrorContains(t, err, "unknown scene")
}

func TestExportFrames_Globe(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths, err := exportFrames(context.Background(), testConfig(), frameOptions{
		Scene:    SceneGlobe,
		Count:    4,
		Interval: 250 * time.Millisecond,
		Width:    64,
		Height:   64,
		Dir:      dir,
		Caption:  true,
	}, testLogger())
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for i, p := range paths {
		assert.Equal(t, filepath.Join(dir, "globe-000"+string(rune('0'+i))+".png"), p)
		img, err := gg.LoadImage(p)
		require.NoError(t, err)
		assert.Equal(t, 64, img.Bounds().Dx())
	}
}

func TestExportFrames_Invalid(t *testing.T) {
	t.Parallel()

	_, err := exportFrames(context.Background(), testConfig(), frameOptions{Scene: SceneGlobe, Count: 0, Width: 8, Height: 8, Dir: t.TempDir()}, testLogger())
	assert.ErrorContains(t, err, "frame count")

	_, err = exportFrames(context.Background(), testConfig(), frameOptions{Scene: SceneGlobe, Count: 1, Dir: t.TempDir()}, testLogger())
	assert.ErrorContains(t, err, "invalid frame size")
}

func TestExportFrames_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := exportFrames(ctx, testConfig(), frameOptions{Scene: SceneIcons, Count: 3, Width: 32, Height: 8, Dir: t.TempDir()}, testLogger())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderFrame_MatchesScene(t *testing.T) {
	t.Parallel()

	img, err := renderFrame(SceneGlobe, testConfig(), 50, 50, 1500*time.Millisecond, testLogger())
	require.NoError(t, err)
	want := globe.DefaultScene().Render(50, 50, 1500*time.Millisecond)
	assert.Equal(t, want.At(25, 5), img.At(25, 5))
}

func TestRenderIcons(t *testing.T) {
	t.Parallel()

	img := renderIcons(128, 32, 0)
	assert.Equal(t, 128, img.Bounds().Dx())
	r, g, b, _ := img.At(0, 0).RGBA()
	br, bg, bb, _ := globe.Background.RGBA()
	assert.Equal(t, []uint32{br, bg, bb}, []uint32{r, g, b})

	assert.Equal(t, 2, renderIcons(2, 2, 0).Bounds().Dx())
}

func TestRenderSlideshow_AdvancesPerInterval(t *testing.T) {
	t.Parallel()

	var loaded []string
	solid := func(c color.Color) *gg.Context {
		dc := gg.NewContext(4, 4)
		dc.SetColor(c)
		dc.Clear()
		return dc
	}
	colors := map[string]color.Color{
		"missing-a.png": color.RGBA{R: 0xff, A: 0xff},
		"missing-b.png": color.RGBA{G: 0xff, A: 0xff},
		"missing-c.png": color.RGBA{B: 0xff, A: 0xff},
	}
	comp, err := slideshow.NewCompositorWithLoader(func(path string) (image.Image, error) {
		loaded = append(loaded, path)
		return solid(colors[path]).Image(), nil
	}, testLogger())
	require.NoError(t, err)

	img, err := renderSlideshow(comp, testConfig(), 8, 8, 12*time.Second, testLogger())
	require.NoError(t, err)

	r, g, b, _ := img.At(4, 4).RGBA()
	assert.Zero(t, r)
	assert.Zero(t, g)
	assert.Positive(t, b)
	assert.Contains(t, loaded, "missing-c.png")
}

func TestExportCmd_WritesFile(t *testing.T) {
	m := newTestModel(t)
	m.config.ExportDirectory = t.TempDir()
	m, _ = press(t, m, "3")

	cmd := m.exportCmd()
	require.NotNil(t, cmd)
	msg, ok := cmd().(statusMsg)
	require.True(t, ok)
	require.False(t, msg.err, msg.text)

	entries, err := os.ReadDir(m.config.ExportDirectory)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "sorana-globe-")
}

func TestCurrentScene(t *testing.T) {
	m := newTestModel(t)

	s, _ := m.currentScene()
	assert.Equal(t, SceneIcons, s)

	m, _ = press(t, m, "2")
	s, _ = m.currentScene()
	assert.Equal(t, SceneSlideshow, s)

	m, _ = press(t, m, "3")
	s, _ = m.currentScene()
	assert.Equal(t, SceneGlobe, s)
}
