package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"sorana/internal/globe"
	"sorana/internal/halfblock"
	"sorana/internal/icon"
	"sorana/internal/reveal"
)

type lineKind int

const (
	kindBody lineKind = iota
	kindTitle
	kindAccent
	kindDim
	kindRaw // pre-rendered half-block pixels
)

type line struct {
	text string
	kind lineKind
}

// block is one laid-out piece of a view's document. Blocks with a reveal
// section fade, scale and drift with their position in the viewport.
type block struct {
	id     string
	lines  []line
	start  int
	reveal *reveal.Section
}

func (b block) height() int { return len(b.lines) }

func revealBlock(id string, lines []line) block {
	s := reveal.NewSection(id)
	return block{id: id, lines: lines, reveal: &s}
}

var kindColors = map[lineKind]color.RGBA{
	kindBody:   {R: 0xe5, G: 0xe5, B: 0xe5, A: 0xff},
	kindTitle:  globe.Neon,
	kindAccent: globe.Neon,
	kindDim:    {R: 0x7a, G: 0x7a, B: 0x7a, A: 0xff},
}

var (
	logoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#39FF14")).Bold(true)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#7a7a7a"))
	activeTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0a0a0a")).Background(lipgloss.Color("#39FF14")).Padding(0, 1)
	barFillStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#39FF14"))
	barTrackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2a2a2a"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555"))
)

// blend mixes c toward the page background; opacity 1 leaves c unchanged.
func blend(c color.RGBA, opacity float64) string {
	opacity = math.Max(0, math.Min(1, opacity))
	bg := globe.Background
	mix := func(fg, back uint8) uint8 {
		return uint8(math.Round(float64(back) + (float64(fg)-float64(back))*opacity))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B))
}

func lineStyle(kind lineKind, opacity float64) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(blend(kindColors[kind], opacity)))
	if kind == kindTitle {
		s = s.Bold(true)
	}
	return s
}

func wrap(text string, width int, kind lineKind) []line {
	rendered := lipgloss.NewStyle().Width(width).Render(text)
	var out []line
	for _, l := range strings.Split(rendered, "\n") {
		out = append(out, line{text: strings.TrimRight(l, " "), kind: kind})
	}
	return out
}

func (m *model) contentWidth() int {
	w := m.width - 2*driftColumns - 2
	return max(20, min(w, 96))
}

// layout builds the active view's document. Without images the pixel rows
// are blank placeholders of the same height, which is all scrolling needs.
func (m *model) layout(withImages bool) []block {
	var blocks []block
	switch m.view {
	case ViewHome:
		blocks = m.homeBlocks(withImages)
	case ViewRoadmap:
		blocks = m.roadmapBlocks(withImages)
	case ViewContact:
		blocks = m.contactBlocks(withImages)
	}
	blocks = append(blocks, footerBlock())

	y := 0
	for i := range blocks {
		blocks[i].start = y
		y += blocks[i].height() + 1
	}
	return blocks
}

func documentHeight(blocks []block) int {
	if len(blocks) == 0 {
		return 0
	}
	last := blocks[len(blocks)-1]
	return last.start + last.height()
}

func (m *model) homeBlocks(withImages bool) []block {
	cw := m.contentWidth()
	hero := []line{{text: "S O R A N A", kind: kindTitle}}
	hero = append(hero, wrap(tagline, cw, kindDim)...)

	blocks := []block{
		{id: "hero", lines: hero},
		{id: "counter", lines: m.counterLines()},
		{id: anchorProducts, lines: []line{{text: "products", kind: kindTitle}}},
	}
	for i, p := range products {
		lines := m.iconLines(p.Icon, withImages)
		lines = append(lines,
			line{text: p.Title, kind: kindTitle},
			line{text: p.Status, kind: kindAccent},
		)
		lines = append(lines, wrap(p.Description, cw, kindBody)...)
		blocks = append(blocks, revealBlock(fmt.Sprintf("product-%d", i+1), lines))
	}

	signup := []line{{text: "join the alpha", kind: kindTitle}}
	signup = append(signup, wrap("run `sorana signup --email you@example.com` to reserve your spot.", cw, kindBody)...)
	return append(blocks, revealBlock("signup", signup))
}

func (m *model) roadmapBlocks(withImages bool) []block {
	cw := m.contentWidth()
	hero := []line{{text: "roadmap", kind: kindTitle}}
	hero = append(hero, wrap("three phases to a web owned by the people who use it.", cw, kindDim)...)
	blocks := []block{{id: "hero", lines: hero}}

	for _, p := range phases {
		lines := m.iconLines(p.Icon, withImages)
		lines = append(lines, line{text: p.Title, kind: kindTitle})
		lines = append(lines, wrap(p.Description, cw, kindBody)...)
		for _, h := range p.Highlights {
			lines = append(lines, wrap("▸ "+h, cw, kindAccent)...)
		}
		blocks = append(blocks, revealBlock(p.ID, lines))
	}

	blocks = append(blocks, block{id: anchorRoadmap, lines: []line{{text: "timeline", kind: kindTitle}}})
	for i, ms := range milestones {
		lines := []line{{text: ms.Date, kind: kindAccent}}
		lines = append(lines, wrap(ms.Description, cw, kindBody)...)
		blocks = append(blocks, revealBlock(fmt.Sprintf("milestone-%d", i+1), lines))
	}

	if m.slideshow != nil {
		lines := m.imageLines(slideshowRows, withImages, func() image.Image {
			if m.compositor == nil {
				return nil
			}
			return m.compositor.Render(cw, halfblock.PixelHeight(slideshowRows), m.slideshow, m.now)
		})
		lines = append(lines,
			line{text: "join the revolution", kind: kindTitle},
			line{text: "the future of the internet is decentralized.", kind: kindDim},
		)
		blocks = append(blocks, block{id: "slideshow", lines: lines})
	}
	return blocks
}

func (m *model) contactBlocks(withImages bool) []block {
	cw := m.contentWidth()
	globeLines := m.imageLines(globeRows, withImages, m.globe.Image)
	team := []line{{text: "global team, global vision", kind: kindTitle}}
	team = append(team, wrap("headquartered in london under plawlabs ltd and expanding to the netherlands, singapore and san francisco.", cw, kindDim)...)
	blocks := []block{
		{id: "contact", lines: []line{{text: "contact us", kind: kindTitle}}},
		{id: "globe", lines: center(globeLines, globeWidth(m.width), cw)},
		revealBlock("team", team),
	}
	for i, c := range contactChannels {
		lines := []line{{text: c.Title, kind: kindAccent}}
		lines = append(lines, wrap(c.Description, cw, kindBody)...)
		lines = append(lines, line{text: c.Email, kind: kindDim})
		blocks = append(blocks, revealBlock(fmt.Sprintf("channel-%d", i+1), lines))
	}

	blocks = append(blocks, block{id: anchorFAQ, lines: []line{{text: "frequently asked questions", kind: kindTitle}}})
	for i, q := range faqItems {
		lines := wrap(q.Question, cw, kindAccent)
		lines = append(lines, wrap(q.Answer, cw, kindBody)...)
		blocks = append(blocks, revealBlock(fmt.Sprintf("faq-%d", i+1), lines))
	}
	return blocks
}

func footerBlock() block {
	lines := make([]line, 0, len(socialLinks)+1)
	for _, l := range socialLinks {
		lines = append(lines, line{text: fmt.Sprintf("%s %-9s %s", l.Kind.Glyph(), l.Kind.Label(), l.URL), kind: kindDim})
	}
	lines = append(lines, line{text: copyright, kind: kindDim})
	return block{id: "footer", lines: lines}
}

func (m *model) counterLines() []line {
	status := line{text: "● live", kind: kindAccent}
	if !m.count.LastSyncOK {
		status = line{text: "○ offline, showing the last known total", kind: kindDim}
	}
	return []line{
		{text: "total srt earned", kind: kindDim},
		{text: humanize.Comma(m.count.Value) + " SRT", kind: kindTitle},
		status,
	}
}

func (m *model) iconLines(kind icon.Kind, withImages bool) []line {
	size := halfblock.PixelHeight(iconRows)
	return m.imageLines(iconRows, withImages, func() image.Image {
		return icon.Icon{Kind: kind}.Render(size, size, m.spinner.Elapsed())
	})
}

// imageLines rasterises render into exactly rows lines.
func (m *model) imageLines(rows int, withImages bool, render func() image.Image) []line {
	out := make([]line, rows)
	for i := range out {
		out[i] = line{kind: kindRaw}
	}
	if !withImages {
		return out
	}
	img := render()
	if img == nil {
		return out
	}
	for i, l := range strings.Split(halfblock.Render(img, globe.Background), "\n") {
		if i >= rows {
			break
		}
		out[i].text = l
	}
	return out
}

func center(lines []line, itemWidth, width int) []line {
	pad := (width - itemWidth) / 2
	if pad <= 0 {
		return lines
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		lines[i].text = prefix + lines[i].text
	}
	return lines
}

func globeWidth(termWidth int) int {
	return max(0, min(halfblock.PixelHeight(globeRows), termWidth))
}

func (m *model) blockParams(b block, viewport int) reveal.Params {
	if b.reveal == nil {
		return reveal.Params{Opacity: 1, Scale: 1}
	}
	top := float64(b.start - m.scrollY)
	p := b.reveal.Params(top, float64(b.height()), float64(viewport))
	if s, ok := m.springs[b.id]; ok {
		p.TranslateX = s.Value()
	}
	return p
}

// indent converts scale and drift into a left margin in columns.
func (m *model) indent(p reveal.Params) int {
	inset := int(math.Round((1 - p.Scale) * float64(m.contentWidth()) / 2))
	shift := int(math.Round(p.TranslateX / 100 * driftColumns))
	return max(0, 1+driftColumns+inset+shift)
}

func (m *model) renderBlock(b block, viewport int) []string {
	p := m.blockParams(b, viewport)
	prefix := strings.Repeat(" ", m.indent(p))
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		text := l.text
		if l.kind != kindRaw && text != "" {
			text = lineStyle(l.kind, p.Opacity).Render(text)
		}
		out[i] = prefix + text
	}
	return out
}

func (m *model) renderDocument(blocks []block) []string {
	viewport := m.viewportHeight()
	out := make([]string, 0, documentHeight(blocks))
	for i, b := range blocks {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, m.renderBlock(b, viewport)...)
	}
	return out
}

func progressCells(fraction float64, width int) int {
	if width <= 0 {
		return 0
	}
	n := int(math.Round(fraction * float64(width)))
	return max(0, min(n, width))
}

func (m *model) headerView() string {
	tabs := make([]string, 0, len(views))
	for _, v := range views {
		if v == m.view {
			tabs = append(tabs, activeTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(v.String()))
		}
	}
	left := logoStyle.Render("sorana") + "  " + strings.Join(tabs, " ")
	right := barFillStyle.Render(humanize.Comma(m.count.Value) + " srt")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))

	filled := progressCells(m.progress.state.Fraction, m.width)
	bar := barFillStyle.Render(strings.Repeat("━", filled)) +
		barTrackStyle.Render(strings.Repeat("─", max(0, m.width-filled)))

	return left + strings.Repeat(" ", gap) + right + "\n" + bar
}

func (m *model) statusLine() string {
	status := fmt.Sprintf("View: %s | Scroll: %.0f%%", strings.ToUpper(m.view.String()), m.progress.state.Percent())
	if m.successMessage != "" {
		status += fmt.Sprintf(" | %s", m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	doc := m.renderDocument(m.layout(true))
	viewport := m.viewportHeight()
	start := min(m.scrollY, len(doc))
	end := min(start+viewport, len(doc))
	visible := append([]string(nil), doc[start:end]...)
	for len(visible) < viewport {
		visible = append(visible, "")
	}

	var result strings.Builder
	result.WriteString(m.headerView())
	result.WriteString("\n")
	result.WriteString(strings.Join(visible, "\n"))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) helpView() string {
	helpLines := []string{
		"Sorana Help",
		"===========",
		"",
		"Views:",
		"------",
		"  1/2/3            Home, roadmap, contact",
		"  Tab/l/→          Next view",
		"  Shift+Tab/h/←    Previous view",
		"",
		"Scrolling:",
		"----------",
		"  j/↓  k/↑         Scroll one line",
		"  J/K              Scroll three lines",
		"  Space/PgDn/PgUp  Scroll one page",
		"  g/G              Top / bottom",
		"  Mouse wheel      Scroll",
		"",
		"Anchors:",
		"--------",
		"  f                Jump to the FAQ",
		"  t                Jump to the timeline",
		"  p                Jump to the products",
		"",
		"General:",
		"--------",
		"  y                Copy the SRT total (contact: the contact email)",
		"  e                Export the current visual as PNG",
		"  ?                Toggle this help screen",
		"  q/Ctrl+C         Quit",
	}
	visible := helpLines
	if h := m.height - 1; h > 0 && h < len(visible) {
		visible = visible[:h]
	}
	return strings.Join(visible, "\n") + "\nHelp | ? or Esc to close"
}
