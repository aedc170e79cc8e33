// Package reveal maps a section's visibility progress to the opacity, scale
// and horizontal drift it is drawn with.
package reveal

import "math"

// Keyframe pins Value at progress At.
type Keyframe struct {
	At    float64
	Value float64
}

// Curve is a piecewise-linear mapping through keyframes sorted by At.
// Inputs outside the first and last keyframe clamp to the end values.
type Curve []Keyframe

// At evaluates the curve at p.
func (c Curve) At(p float64) float64 {
	if len(c) == 0 {
		return 0
	}
	if math.IsNaN(p) || p <= c[0].At {
		return c[0].Value
	}
	last := c[len(c)-1]
	if p >= last.At {
		return last.Value
	}
	for i := 1; i < len(c); i++ {
		lo, hi := c[i-1], c[i]
		if p > hi.At {
			continue
		}
		span := hi.At - lo.At
		if span <= 0 {
			return hi.Value
		}
		return lo.Value + (hi.Value-lo.Value)*(p-lo.At)/span
	}
	return last.Value
}

var (
	OpacityCurve = Curve{{0, 0}, {0.2, 1}, {0.8, 1}, {1, 0}}
	ScaleCurve   = Curve{{0, 0.8}, {0.2, 1}, {0.8, 1}, {1, 0.8}}
	DriftCurve   = Curve{{0, 100}, {1, -100}}
)

func Opacity(p float64) float64    { return OpacityCurve.At(p) }
func Scale(p float64) float64      { return ScaleCurve.At(p) }
func TranslateX(p float64) float64 { return DriftCurve.At(p) }

// Params are the visual parameters of a section at one progress value.
type Params struct {
	Opacity    float64
	Scale      float64
	TranslateX float64
}

// At computes all parameters for progress p.
func At(p float64) Params {
	return Params{
		Opacity:    Opacity(p),
		Scale:      Scale(p),
		TranslateX: TranslateX(p),
	}
}

// Section is a scroll-bound region of a document. Progress is 0 while the
// section's top sits at EntryThreshold of the viewport height and 1 once its
// bottom has passed ExitThreshold. The defaults (1 and 0) track the section
// from entering at the bottom edge to leaving at the top edge.
type Section struct {
	ID             string
	EntryThreshold float64
	ExitThreshold  float64
}

// NewSection creates a section with the default entry/exit window.
func NewSection(id string) Section {
	return Section{ID: id, EntryThreshold: 1, ExitThreshold: 0}
}

// Progress computes visibility progress for a section whose top is top units
// below the viewport's top edge and which is height units tall.
func (s Section) Progress(top, height, viewport float64) float64 {
	start := viewport * s.EntryThreshold
	end := viewport*s.ExitThreshold - height
	window := start - end
	if window <= 0 {
		return 0
	}
	p := (start - top) / window
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Params computes the visual parameters for the section at the given layout.
func (s Section) Params(top, height, viewport float64) Params {
	return At(s.Progress(top, height, viewport))
}
