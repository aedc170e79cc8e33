package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/sync/errgroup"

	"sorana/internal/globe"
	"sorana/internal/icon"
	"sorana/internal/slideshow"
)

type Scene string

const (
	SceneGlobe     Scene = "globe"
	SceneSlideshow Scene = "slideshow"
	SceneIcons     Scene = "icons"
)

func parseScene(name string) (Scene, error) {
	switch s := Scene(name); s {
	case SceneGlobe, SceneSlideshow, SceneIcons:
		return s, nil
	default:
		return "", fmt.Errorf("unknown scene %q (want globe, slideshow or icons)", name)
	}
}

var iconKinds = []icon.Kind{icon.Search, icon.Globe, icon.Satellite, icon.Zap}

// renderIcons lays the icons out side by side on the page background.
func renderIcons(width, height int, t time.Duration) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(globe.Background)
	dc.Clear()
	cell := width / len(iconKinds)
	if cell == 0 {
		return dc.Image()
	}
	size := min(cell, height)
	for i, k := range iconKinds {
		img := icon.Icon{Kind: k}.Render(size, size, t)
		dc.DrawImage(img, i*cell+(cell-size)/2, (height-size)/2)
	}
	return dc.Image()
}

// renderSlideshow reconstructs the slideshow at elapsed t from a fresh timer,
// advancing it once per elapsed interval.
func renderSlideshow(comp *slideshow.Compositor, cfg *Config, width, height int, t time.Duration, logger *slog.Logger) (image.Image, error) {
	timer, err := slideshow.New(cfg.SlideshowImages, cfg.SlideshowInterval, cfg.SlideshowFade, logger)
	if err != nil {
		return nil, err
	}
	base := time.Unix(0, 0)
	for i := 1; time.Duration(i)*timer.Interval() <= t; i++ {
		timer.Advance(base.Add(time.Duration(i) * timer.Interval()))
	}
	return comp.Render(width, height, timer, base.Add(t)), nil
}

func captionFace(size float64) (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// withCaption copies img and writes text along its bottom edge.
func withCaption(img image.Image, text string) (image.Image, error) {
	face, err := captionFace(12)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContextForImage(img)
	dc.SetFontFace(face)
	dc.SetColor(color.NRGBA{R: globe.Neon.R, G: globe.Neon.G, B: globe.Neon.B, A: 0xcc})
	dc.DrawStringAnchored(text, 8, float64(dc.Height())-8, 0, 0)
	return dc.Image(), nil
}

func caption(scene Scene, t time.Duration) string {
	return fmt.Sprintf("sorana · %s · t=%.2fs", scene, t.Seconds())
}

type frameOptions struct {
	Scene    Scene
	Count    int
	Interval time.Duration
	Width    int
	Height   int
	Dir      string
	Caption  bool
}

func renderFrame(scene Scene, cfg *Config, width, height int, t time.Duration, logger *slog.Logger) (image.Image, error) {
	switch scene {
	case SceneGlobe:
		return globe.DefaultScene().Render(width, height, t), nil
	case SceneIcons:
		return renderIcons(width, height, t), nil
	case SceneSlideshow:
		comp, err := slideshow.NewCompositor(logger)
		if err != nil {
			return nil, err
		}
		return renderSlideshow(comp, cfg, width, height, t, logger)
	default:
		return nil, fmt.Errorf("unknown scene %q", scene)
	}
}

// exportFrames renders opts.Count frames of a scene spaced opts.Interval
// apart and writes them as numbered PNGs. Frames render in parallel; each
// depends only on its own elapsed time.
func exportFrames(ctx context.Context, cfg *Config, opts frameOptions, logger *slog.Logger) ([]string, error) {
	if opts.Count < 1 {
		return nil, fmt.Errorf("frame count must be positive, got %d", opts.Count)
	}
	if opts.Width < 1 || opts.Height < 1 {
		return nil, fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, opts.Count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < opts.Count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t := time.Duration(i) * opts.Interval
			img, err := renderFrame(opts.Scene, cfg, opts.Width, opts.Height, t, logger)
			if err != nil {
				return fmt.Errorf("rendering frame %d: %w", i, err)
			}
			if opts.Caption {
				if img, err = withCaption(img, caption(opts.Scene, t)); err != nil {
					return err
				}
			}
			path := filepath.Join(opts.Dir, fmt.Sprintf("%s-%04d.png", opts.Scene, i))
			if err := gg.SavePNG(path, img); err != nil {
				return fmt.Errorf("saving frame %d: %w", i, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("frames exported", "scene", string(opts.Scene), "count", opts.Count, "dir", opts.Dir)
	return paths, nil
}

// currentScene is the visual the active view shows and its time parameter.
func (m *model) currentScene() (Scene, time.Duration) {
	switch m.view {
	case ViewContact:
		return SceneGlobe, m.globe.Elapsed()
	case ViewRoadmap:
		if m.slideshow != nil && m.compositor != nil {
			return SceneSlideshow, time.Duration(m.slideshow.Ticks()) * m.slideshow.Interval()
		}
	}
	return SceneIcons, m.spinner.Elapsed()
}

// exportCmd renders the current visual on the event loop, where the live
// slideshow state may be read, and writes the file in the background.
func (m *model) exportCmd() tea.Cmd {
	scene, t := m.currentScene()
	var img image.Image
	switch scene {
	case SceneGlobe:
		img = globe.DefaultScene().Render(512, 512, t)
	case SceneSlideshow:
		img = m.compositor.Render(960, 540, m.slideshow, m.now)
	default:
		img = renderIcons(512, 128, t)
	}

	name := fmt.Sprintf("sorana-%s-%s.png", scene, time.Now().Format("20060102-150405"))
	path, err := m.config.GetExportPath(name)
	if err != nil {
		return statusCmd("Export failed: "+err.Error(), true)
	}
	logger := m.logger
	return func() tea.Msg {
		captioned, err := withCaption(img, caption(scene, t))
		if err == nil {
			err = gg.SavePNG(path, captioned)
		}
		if err != nil {
			logger.Error("export failed", "path", path, "error", err)
			return statusMsg{text: "Export failed: " + err.Error(), err: true}
		}
		logger.Info("frame exported", "path", path)
		return statusMsg{text: "Exported " + path}
	}
}
