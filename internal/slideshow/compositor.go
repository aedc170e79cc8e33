package slideshow

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	placeholderFill = color.RGBA{R: 0x14, G: 0x14, B: 0x14, A: 0xFF}
	neon            = color.RGBA{R: 0x39, G: 0xFF, B: 0x14, A: 0xFF}
)

// dimAlpha darkens the composed frame so text drawn on top stays readable.
const dimAlpha = 0x80

// Loader decodes the image at path.
type Loader func(path string) (image.Image, error)

// Compositor draws the visible slides of a Timer onto a gg context. Decoded
// images are cached, and scaled copies are kept for the last drawn size
// only. An image that fails to load is replaced by a labelled placeholder
// and the failure is logged once.
type Compositor struct {
	load   Loader
	face   font.Face
	logger *slog.Logger

	decoded map[string]image.Image
	scaled  map[string]*image.RGBA
	size    image.Point
	failed  map[string]bool
}

// NewCompositor creates a compositor that loads images with gg.LoadImage.
func NewCompositor(logger *slog.Logger) (*Compositor, error) {
	return NewCompositorWithLoader(gg.LoadImage, logger)
}

// NewCompositorWithLoader creates a compositor with a custom loader.
func NewCompositorWithLoader(load Loader, logger *slog.Logger) (*Compositor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &Compositor{
		load:    load,
		face:    face,
		logger:  logger,
		decoded: make(map[string]image.Image),
		scaled:  make(map[string]*image.RGBA),
		failed:  make(map[string]bool),
	}, nil
}

// Draw composes the frame visible at now onto dc.
func (c *Compositor) Draw(dc *gg.Context, t *Timer, now time.Time) {
	dst, ok := dc.Image().(draw.Image)
	if !ok {
		return
	}
	w, h := dc.Width(), dc.Height()
	if w == 0 || h == 0 {
		return
	}

	dc.SetColor(color.Black)
	dc.Clear()

	images := t.state.Images
	f := t.Crossfade(now)
	if !f.Settled() {
		c.blend(dst, c.slide(images[f.Outgoing], w, h), f.OutgoingOpacity)
	}
	c.blend(dst, c.slide(images[f.Incoming], w, h), f.IncomingOpacity)

	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{A: dimAlpha}), image.Point{}, draw.Over)
}

// Render composes the frame visible at now onto a fresh width×height image.
func (c *Compositor) Render(width, height int, t *Timer, now time.Time) image.Image {
	dc := gg.NewContext(width, height)
	c.Draw(dc, t, now)
	return dc.Image()
}

func (c *Compositor) blend(dst draw.Image, src *image.RGBA, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity >= 1 {
		draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(opacity * 255)})
	draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, mask, image.Point{}, draw.Over)
}

// slide returns path scaled to cover width×height, centred and cropped.
func (c *Compositor) slide(path string, width, height int) *image.RGBA {
	if size := image.Pt(width, height); size != c.size {
		clear(c.scaled)
		c.size = size
	}
	if img, ok := c.scaled[path]; ok {
		return img
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	src, err := c.decode(path)
	if err != nil {
		c.placeholder(out, path)
	} else {
		draw.CatmullRom.Scale(out, out.Bounds(), src, coverRect(src.Bounds(), width, height), draw.Src, nil)
	}
	c.scaled[path] = out
	return out
}

func (c *Compositor) decode(path string) (image.Image, error) {
	if img, ok := c.decoded[path]; ok {
		return img, nil
	}
	img, err := c.load(path)
	if err != nil {
		if !c.failed[path] {
			c.logger.Warn("slide image unavailable", "path", path, "error", err)
			c.failed[path] = true
		}
		return nil, err
	}
	c.decoded[path] = img
	return img, nil
}

func (c *Compositor) placeholder(dst *image.RGBA, path string) {
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(placeholderFill)
	dc.Clear()
	dc.SetFontFace(c.face)
	dc.SetColor(neon)
	w, h := float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy())
	dc.DrawStringAnchored(filepath.Base(path), w/2, h/2, 0.5, 0.5)
}

// coverRect is the centred region of src with the aspect ratio of
// width×height, so scaling it fills the target without distortion.
func coverRect(src image.Rectangle, width, height int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 || width == 0 || height == 0 {
		return src
	}
	// compare sw/sh against width/height without floating point
	if sw*height > width*sh {
		cw := sh * width / height
		x0 := src.Min.X + (sw-cw)/2
		return image.Rect(x0, src.Min.Y, x0+cw, src.Max.Y)
	}
	ch := sw * height / width
	y0 := src.Min.Y + (sh-ch)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+ch)
}
