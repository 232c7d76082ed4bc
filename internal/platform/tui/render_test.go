package tui

import (
	"testing"

	"github.com/vovakirdan/tui-terrain/internal/terrain"
)

// bands is a 3x4 grid with one row of each default type.
func bands(t *testing.T) *terrain.Grid {
	t.Helper()
	l := terrain.DefaultLayers(4)
	l.Horizon = 0
	l.DirtDepth = 1
	g, err := terrain.NewGrid(3, 4, terrain.DefaultRegistry(), l.Generator())
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	return g
}

func TestRenderGrid(t *testing.T) {
	g := bands(t)

	tests := []struct {
		name     string
		cellW    int
		cellH    int
		view     Viewport
		expected string
	}{
		{
			name:     "full grid",
			cellW:    1,
			cellH:    1,
			view:     Viewport{W: 3, H: 4},
			expected: "   \n\"\"\"\n%%%\n###",
		},
		{
			name:     "wide cells",
			cellW:    2,
			cellH:    1,
			view:     Viewport{W: 3, H: 4},
			expected: "      \n\"\"\"\"\"\"\n%%%%%%\n######",
		},
		{
			name:     "tall cells",
			cellW:    1,
			cellH:    2,
			view:     Viewport{X: 2, Y: 2, W: 1, H: 2},
			expected: "%\n%\n#\n#",
		},
		{
			name:     "cropped",
			cellW:    1,
			cellH:    1,
			view:     Viewport{X: 1, Y: 1, W: 5, H: 2},
			expected: "\"\"\n%%",
		},
		{
			name:     "outside",
			cellW:    1,
			cellH:    1,
			view:     Viewport{X: 5, Y: 5, W: 2, H: 2},
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewGridRenderer(MonochromeTheme(), tc.cellW, tc.cellH)
			if got := r.Render(g, tc.view, nil); got != tc.expected {
				t.Errorf("Render() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestRenderReleasedGrid(t *testing.T) {
	g := bands(t)
	g.Destroy()

	r := NewGridRenderer(DefaultTheme(), 2, 1)
	if got := r.Render(g, Viewport{W: 3, H: 4}, nil); got != "" {
		t.Errorf("expected empty render, got %q", got)
	}
}

func TestViewportContains(t *testing.T) {
	v := Viewport{X: 2, Y: 3, W: 4, H: 2}
	tests := []struct {
		c        terrain.Coord
		expected bool
	}{
		{terrain.C(2, 3), true},
		{terrain.C(5, 4), true},
		{terrain.C(6, 4), false},
		{terrain.C(2, 5), false},
		{terrain.C(1, 3), false},
	}
	for _, tc := range tests {
		if got := v.Contains(tc.c); got != tc.expected {
			t.Errorf("Contains(%v) = %v, expected %v", tc.c, got, tc.expected)
		}
	}
}
