package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/eqsteps/pkg/layout"
	"github.com/matzehuels/eqsteps/pkg/render"
)

// TextOption configures terminal rendering.
type TextOption func(*textRenderer)

type textRenderer struct {
	cellWidth  float64
	cellHeight float64
	color      bool
	caption    bool
}

// WithCellSize sets how many scene pixels one character cell covers
// (default 10x20).
func WithCellSize(w, h float64) TextOption {
	return func(r *textRenderer) { r.cellWidth, r.cellHeight = w, h }
}

// WithoutColor disables ANSI styling.
func WithoutColor() TextOption { return func(r *textRenderer) { r.color = false } }

func WithTextCaption() TextOption { return func(r *textRenderer) { r.caption = true } }

// cell is one character of the grid with the style it is drawn with.
type cell struct {
	r     rune
	style lipgloss.Style
	set   bool
}

var (
	styleProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleCaption  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// RenderText draws the scene on a character grid. Terms are placed at the
// cell under their frame center; fully transparent items are skipped and
// items below half opacity are drawn faint.
func RenderText(s render.Scene, opts ...TextOption) string {
	r := textRenderer{cellWidth: 10, cellHeight: 20, color: true}
	for _, opt := range opts {
		opt(&r)
	}

	cols := max(1, int(math.Ceil(s.Width/r.cellWidth)))
	rows := max(1, int(math.Ceil(s.Height/r.cellHeight)))
	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
	}

	for _, e := range elements(s.Frames) {
		f := e.frame
		if f.Opacity <= 0.05 || f.Scale <= 0 {
			continue
		}
		st := r.style(f)
		cx, cy := center(f)
		row := clamp(int(cy/r.cellHeight), 0, rows-1)
		if e.divider {
			from := clamp(int(math.Round(f.X/r.cellWidth)), 0, cols-1)
			to := clamp(int(math.Round((f.X+f.Width)/r.cellWidth)), from+1, cols)
			for c := from; c < to; c++ {
				grid[row][c] = cell{r: '─', style: st, set: true}
			}
			continue
		}
		runes := []rune(e.text)
		start := int(math.Round(cx/r.cellWidth)) - len(runes)/2
		for i, ch := range runes {
			if c := start + i; c >= 0 && c < cols {
				grid[row][c] = cell{r: ch, style: st, set: true}
			}
		}
	}

	var b strings.Builder
	for _, line := range grid {
		b.WriteString(strings.TrimRight(r.line(line), " "))
		b.WriteByte('\n')
	}
	bar := int(math.Round(s.Progress * float64(cols)))
	b.WriteString(r.paint(styleProgress, strings.Repeat("━", bar)))
	b.WriteByte('\n')
	if r.caption && s.Caption != "" {
		b.WriteString(r.paint(styleCaption, s.Caption))
		b.WriteByte('\n')
	}
	return b.String()
}

func (r textRenderer) style(f layout.Frame) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(f.Color.Hex()))
	if f.Opacity < 0.5 {
		st = st.Faint(true)
	} else if f.Opacity > 0.8 {
		st = st.Bold(true)
	}
	return st
}

func (r textRenderer) paint(st lipgloss.Style, s string) string {
	if !r.color || s == "" {
		return s
	}
	return st.Render(s)
}

// line renders one grid row, grouping runs of cells that share a style.
func (r textRenderer) line(cells []cell) string {
	var b strings.Builder
	var run strings.Builder
	var cur *lipgloss.Style
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur != nil {
			b.WriteString(r.paint(*cur, run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}
	for i := range cells {
		c := &cells[i]
		var st *lipgloss.Style
		if c.set {
			st = &c.style
		}
		if !sameStyle(st, cur) {
			flush()
			cur = st
		}
		if c.set {
			run.WriteRune(c.r)
		} else {
			run.WriteByte(' ')
		}
	}
	flush()
	return b.String()
}

func sameStyle(a, b *lipgloss.Style) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.GetForeground() == b.GetForeground() && a.GetFaint() == b.GetFaint() && a.GetBold() == b.GetBold()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
