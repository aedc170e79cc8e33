// Package halfblock rasterises an image into terminal cells. Each cell shows
// two vertically stacked pixels: the upper one as the foreground of "▀" and
// the lower one as its background.
package halfblock

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const glyph = "▀"

// Rows is the number of terminal rows needed for a surface height in pixels.
func Rows(pixelHeight int) int {
	return (pixelHeight + 1) / 2
}

// PixelHeight is the surface height in pixels that fills rows terminal rows.
func PixelHeight(rows int) int {
	if rows < 0 {
		return 0
	}
	return rows * 2
}

type cell struct {
	fg, bg string
}

// Render converts img to one string per terminal row joined by newlines.
// Transparent pixels are composited over bg. Runs of identical cells share
// one style to keep the escape sequences short.
func Render(img image.Image, bg color.Color) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	if b.Empty() {
		return ""
	}

	var out strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			out.WriteByte('\n')
		}
		var run cell
		n := 0
		for x := b.Min.X; x < b.Max.X; x++ {
			c := cell{fg: hex(over(img.At(x, y), bg))}
			if y+1 < b.Max.Y {
				c.bg = hex(over(img.At(x, y+1), bg))
			} else {
				c.bg = hex(bg)
			}
			if n > 0 && c == run {
				n++
				continue
			}
			flush(&out, run, n)
			run, n = c, 1
		}
		flush(&out, run, n)
	}
	return out.String()
}

func flush(out *strings.Builder, c cell, n int) {
	if n == 0 {
		return
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.fg)).
		Background(lipgloss.Color(c.bg))
	out.WriteString(style.Render(strings.Repeat(glyph, n)))
}

// over composites c onto an opaque bg.
func over(c, bg color.Color) color.Color {
	r, g, b, a := c.RGBA()
	if a == 0xffff {
		return c
	}
	br, bgG, bb, _ := bg.RGBA()
	inv := 0xffff - a
	return color.RGBA64{
		R: uint16(r + br*inv/0xffff),
		G: uint16(g + bgG*inv/0xffff),
		B: uint16(b + bb*inv/0xffff),
		A: 0xffff,
	}
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
