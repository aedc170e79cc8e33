// Package icon draws the rotating product glyphs of the roadmap, each with a
// pulsing ring behind it.
package icon

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/fogleman/gg"
)

// Kind selects the glyph an icon draws.
type Kind int

const (
	Search Kind = iota
	Globe
	Satellite
	Zap
)

func (k Kind) String() string {
	switch k {
	case Search:
		return "search"
	case Globe:
		return "globe"
	case Satellite:
		return "satellite"
	case Zap:
		return "zap"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	// RotationStep is how long the glyph holds each whole degree.
	RotationStep = 50 * time.Millisecond
	// PulsePeriod is one full grow-and-shrink of the ring.
	PulsePeriod = 2 * time.Second
)

var neon = color.RGBA{R: 0x39, G: 0xFF, B: 0x14, A: 0xFF}

// Rotation is the glyph angle in degrees after elapsed time t. It advances
// one degree every RotationStep and wraps at 360.
func Rotation(t time.Duration) float64 {
	if t < 0 {
		t = 0
	}
	return float64(int64(t/RotationStep) % 360)
}

// Pulse returns the ring's scale (1 → 1.2 → 1) and opacity (0.5 → 1 → 0.5)
// at elapsed time t, eased in and out over PulsePeriod.
func Pulse(t time.Duration) (scale, opacity float64) {
	if t < 0 {
		t = 0
	}
	phase := float64(t%PulsePeriod) / float64(PulsePeriod)
	var k float64
	if phase < 0.5 {
		k = easeInOut(phase * 2)
	} else {
		k = easeInOut((1 - phase) * 2)
	}
	return 1 + 0.2*k, 0.5 + 0.5*k
}

func easeInOut(x float64) float64 {
	return (1 - math.Cos(math.Pi*x)) / 2
}

// Icon is a glyph drawn centred on its canvas.
type Icon struct {
	Kind Kind
}

// Draw renders the icon at elapsed time t filling dc.
func (i Icon) Draw(dc *gg.Context, t time.Duration) {
	w, h := float64(dc.Width()), float64(dc.Height())
	cx, cy := w/2, h/2
	size := math.Min(w, h) / 2

	scale, opacity := Pulse(t)
	dc.SetColor(color.NRGBA{R: neon.R, G: neon.G, B: neon.B, A: uint8(opacity * 0.5 * 255)})
	dc.SetLineWidth(math.Max(1, size/20))
	dc.DrawCircle(cx, cy, size*0.8*scale)
	dc.Stroke()

	dc.Push()
	dc.RotateAbout(gg.Radians(Rotation(t)), cx, cy)
	dc.SetColor(neon)
	dc.SetLineWidth(math.Max(1, size/12))
	g := size * 0.4
	switch i.Kind {
	case Search:
		dc.DrawCircle(cx-g*0.2, cy-g*0.2, g*0.6)
		dc.Stroke()
		dc.DrawLine(cx+g*0.25, cy+g*0.25, cx+g, cy+g)
		dc.Stroke()
	case Globe:
		dc.DrawCircle(cx, cy, g)
		dc.Stroke()
		dc.DrawEllipse(cx, cy, g*0.45, g)
		dc.Stroke()
		dc.DrawLine(cx-g, cy, cx+g, cy)
		dc.Stroke()
	case Satellite:
		dc.DrawRectangle(cx-g*0.25, cy-g*0.25, g*0.5, g*0.5)
		dc.Fill()
		dc.DrawRectangle(cx-g, cy-g*0.15, g*0.6, g*0.3)
		dc.Stroke()
		dc.DrawRectangle(cx+g*0.4, cy-g*0.15, g*0.6, g*0.3)
		dc.Stroke()
	case Zap:
		dc.MoveTo(cx+g*0.2, cy-g)
		dc.LineTo(cx-g*0.5, cy+g*0.1)
		dc.LineTo(cx, cy+g*0.1)
		dc.LineTo(cx-g*0.2, cy+g)
		dc.LineTo(cx+g*0.5, cy-g*0.1)
		dc.LineTo(cx, cy-g*0.1)
		dc.ClosePath()
		dc.Fill()
	}
	dc.Pop()
}

// Render draws the icon at t onto a fresh width×height image with a
// transparent background.
func (i Icon) Render(width, height int, t time.Duration) image.Image {
	dc := gg.NewContext(width, height)
	i.Draw(dc, t)
	return dc.Image()
}
