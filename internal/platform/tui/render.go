package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-terrain/internal/terrain"
)

// Mark is an overlay drawn over a block.
type Mark uint8

// Overlays in increasing priority.
const (
	MarkNone Mark = iota
	MarkPreview
	MarkFlash
	MarkCursor
)

// Viewport is the visible window of the grid, in cells.
type Viewport struct {
	X, Y int // Top-left cell
	W, H int // Size in cells
}

// Contains reports whether c is visible.
func (v Viewport) Contains(c terrain.Coord) bool {
	return c.X >= v.X && c.X < v.X+v.W && c.Y >= v.Y && c.Y < v.Y+v.H
}

// GridRenderer draws a grid with a theme. Each block takes CellW columns and
// CellH rows on screen.
type GridRenderer struct {
	Theme Theme
	CellW int
	CellH int

	colors map[string]lipgloss.Style
}

// NewGridRenderer creates a renderer. Cell sizes below one are raised to one.
func NewGridRenderer(theme Theme, cellW, cellH int) *GridRenderer {
	return &GridRenderer{
		Theme:  theme,
		CellW:  max(cellW, 1),
		CellH:  max(cellH, 1),
		colors: make(map[string]lipgloss.Style),
	}
}

// style returns the style for a block with the given overlay.
func (r *GridRenderer) style(bt terrain.BlockType, mark Mark) lipgloss.Style {
	switch mark {
	case MarkCursor:
		return r.Theme.Cursor
	case MarkFlash:
		return r.Theme.Flash
	case MarkPreview:
		return r.Theme.Preview
	}
	if bt.Empty || !r.Theme.UseBlockColors || bt.Color == "" {
		return r.Theme.Air
	}

	s, ok := r.colors[bt.Color]
	if !ok {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color(bt.Color))
		r.colors[bt.Color] = s
	}
	return s
}

// runKey identifies cells that can share one styled run.
type runKey struct {
	mark  Mark
	color string
	empty bool
}

func (r *GridRenderer) key(bt terrain.BlockType, mark Mark) runKey {
	if mark != MarkNone {
		return runKey{mark: mark}
	}
	if bt.Empty || !r.Theme.UseBlockColors {
		return runKey{empty: true}
	}
	return runKey{color: bt.Color}
}

// Render converts the visible part of the grid to a styled string.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func (r *GridRenderer) Render(g *terrain.Grid, view Viewport, marks map[terrain.Coord]Mark) string {
	if !g.Alive() {
		return ""
	}

	x0, y0 := max(view.X, 0), max(view.Y, 0)
	x1 := min(view.X+view.W, g.Width())
	y1 := min(view.Y+view.H, g.Height())
	if x1 <= x0 || y1 <= y0 {
		return ""
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow((x1-x0)*r.CellW*(y1-y0)*r.CellH*2 + (y1-y0)*r.CellH)

	var run strings.Builder
	for y := y0; y < y1; y++ {
		var line strings.Builder

		// Group consecutive cells with the same style for efficiency
		x := x0
		for x < x1 {
			c := terrain.C(x, y)
			bt, _ := g.Get(c)
			mark := marks[c]
			start := r.key(bt, mark)
			style := r.style(bt, mark)

			run.Reset()
			for x < x1 {
				c = terrain.C(x, y)
				bt, _ = g.Get(c)
				mark = marks[c]
				if r.key(bt, mark) != start {
					break
				}
				glyph := bt.Glyph
				if bt.Empty {
					glyph = ' '
				}
				for range r.CellW {
					run.WriteRune(glyph)
				}
				x++
			}
			line.WriteString(style.Render(run.String()))
		}

		rendered := line.String()
		for range r.CellH {
			if sb.Len() > 0 {
				sb.WriteRune('\n')
			}
			sb.WriteString(rendered)
		}
	}
	return sb.String()
}
