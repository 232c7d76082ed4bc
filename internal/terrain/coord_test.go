package terrain_test

import (
	"testing"

	"github.com/vovakirdan/tui-terrain/internal/terrain"
)

func TestScreenToCell(t *testing.T) {
	tests := []struct {
		name     string
		pos      terrain.Vec
		size     float64
		expected terrain.Coord
	}{
		{"origin", terrain.Vec{X: 0, Y: 0}, 20, terrain.C(0, 0)},
		{"inside first block", terrain.Vec{X: 19.9, Y: 19.9}, 20, terrain.C(0, 0)},
		{"block edge", terrain.Vec{X: 20, Y: 40}, 20, terrain.C(1, 2)},
		{"arbitrary", terrain.Vec{X: 45, Y: 30}, 20, terrain.C(2, 1)},
		{"negative floors down", terrain.Vec{X: -1, Y: 5}, 20, terrain.C(-1, 0)},
		{"zero size", terrain.Vec{X: 10, Y: 10}, 0, terrain.InvalidCoord},
		{"negative size", terrain.Vec{X: 10, Y: 10}, -5, terrain.InvalidCoord},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := terrain.ScreenToCell(tc.pos, tc.size); got != tc.expected {
				t.Errorf("ScreenToCell(%v, %v) = %v, expected %v", tc.pos, tc.size, got, tc.expected)
			}
		})
	}
}

func TestScreenToCellXY(t *testing.T) {
	got := terrain.ScreenToCellXY(terrain.Vec{X: 5, Y: 3}, 2, 1)
	if got != terrain.C(2, 3) {
		t.Errorf("expected (2,3), got %v", got)
	}
}

func TestCoordNeighbors(t *testing.T) {
	n := terrain.C(4, 7).Neighbors()
	expected := [4]terrain.Coord{
		terrain.C(3, 7),
		terrain.C(5, 7),
		terrain.C(4, 6),
		terrain.C(4, 8),
	}
	if n != expected {
		t.Errorf("Neighbors() = %v, expected %v", n, expected)
	}

	if s := terrain.C(2, -3).String(); s != "(2,-3)" {
		t.Errorf("String() = %q", s)
	}
}
