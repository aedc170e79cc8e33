// Package globe draws the contact page's wireframe globe with markers
// orbiting its centre, as a pure function of elapsed time.
package globe

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/fogleman/gg"
)

const (
	latitudeLines  = 4
	longitudeLines = 12
	radiusFactor   = 0.8
	gridAlpha      = 0.3
)

var (
	Neon       = color.RGBA{R: 0x39, G: 0xFF, B: 0x14, A: 0xFF}
	Background = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xFF}
)

// Marker orbits the globe centre. Its angle is BaseAngle + t·AngularVelocity
// with t in milliseconds, so its position never depends on earlier frames.
type Marker struct {
	BaseAngle       float64
	AngularVelocity float64 // radians per millisecond
	DistanceFactor  float64 // fraction of the globe radius, in (0,1]
}

// Angle is the marker's absolute angle after elapsed time t.
func (m Marker) Angle(t time.Duration) float64 {
	ms := float64(t) / float64(time.Millisecond)
	return m.BaseAngle + ms*m.AngularVelocity
}

// Position places the marker on a globe centred at (cx, cy) with radius r.
func (m Marker) Position(cx, cy, r float64, t time.Duration) (x, y float64) {
	a := m.Angle(t)
	d := r * m.DistanceFactor
	return cx + math.Cos(a)*d, cy + math.Sin(a)*d
}

// DefaultMarkers are the four orbiting locations of the contact globe.
func DefaultMarkers() []Marker {
	return []Marker{
		{BaseAngle: 0, AngularVelocity: 1.0 / 1000, DistanceFactor: 0.8},
		{BaseAngle: math.Pi / 2, AngularVelocity: 1.0 / 1500, DistanceFactor: 0.9},
		{BaseAngle: math.Pi, AngularVelocity: 1.0 / 2000, DistanceFactor: 0.85},
		{BaseAngle: 3 * math.Pi / 2, AngularVelocity: 1.0 / 1800, DistanceFactor: 0.95},
	}
}

// Scene is the static configuration of the globe drawing.
type Scene struct {
	Markers     []Marker
	Color       color.RGBA
	Background  color.Color
	LineWidth   float64
	PointRadius float64
}

// DefaultScene is the globe as drawn on the contact page.
func DefaultScene() Scene {
	return Scene{
		Markers:     DefaultMarkers(),
		Color:       Neon,
		Background:  Background,
		LineWidth:   2,
		PointRadius: 3,
	}
}

// Radius is the globe radius for a surface centred at (cx, cy).
func Radius(cx, cy float64) float64 {
	return radiusFactor * math.Min(cx, cy)
}

// Draw renders the scene at elapsed time t onto dc, filling the context.
func (s Scene) Draw(dc *gg.Context, t time.Duration) {
	w, h := float64(dc.Width()), float64(dc.Height())
	cx, cy := w/2, h/2
	r := Radius(cx, cy)

	if s.Background != nil {
		dc.SetColor(s.Background)
		dc.Clear()
	}
	dc.SetLineWidth(s.LineWidth)

	dc.SetColor(s.Color)
	dc.DrawCircle(cx, cy, r)
	dc.Stroke()

	dc.SetColor(s.faded())
	for i := 1; i <= latitudeLines; i++ {
		dc.DrawCircle(cx, cy, r*float64(i)/5)
		dc.Stroke()
	}
	for i := 0; i < longitudeLines; i++ {
		a := float64(i) / longitudeLines * 2 * math.Pi
		dc.DrawLine(cx, cy, cx+math.Cos(a)*r, cy+math.Sin(a)*r)
		dc.Stroke()
	}

	dc.SetColor(s.Color)
	for _, m := range s.Markers {
		x, y := m.Position(cx, cy, r, t)
		dc.DrawCircle(x, y, s.PointRadius)
		dc.Fill()
	}
}

// Render draws the scene at t onto a fresh width×height image.
func (s Scene) Render(width, height int, t time.Duration) image.Image {
	dc := gg.NewContext(width, height)
	s.Draw(dc, t)
	return dc.Image()
}

func (s Scene) faded() color.Color {
	return color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: uint8(math.Round(gridAlpha * 255))}
}
