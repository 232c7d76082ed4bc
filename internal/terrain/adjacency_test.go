package terrain_test

import (
	"testing"

	"github.com/vovakirdan/tui-terrain/internal/terrain"
)

func TestAnyAdjacentSingleCell(t *testing.T) {
	g, err := terrain.NewGrid(1, 1, terrain.DefaultRegistry(), uniform(terrain.StoneID))
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}

	always := func(*terrain.Grid, terrain.Coord, terrain.TypeID) bool { return true }
	if g.AnyAdjacent(terrain.C(0, 0), always, terrain.AirID) {
		t.Error("a 1x1 grid has no in-bounds neighbors")
	}
}

func TestAnyAdjacentOrder(t *testing.T) {
	g, err := terrain.NewGrid(3, 3, terrain.DefaultRegistry(), uniform(terrain.StoneID))
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}

	tests := []struct {
		name     string
		origin   terrain.Coord
		expected []terrain.Coord
	}{
		{"center", terrain.C(1, 1), []terrain.Coord{terrain.C(0, 1), terrain.C(2, 1), terrain.C(1, 0), terrain.C(1, 2)}},
		{"top-left corner", terrain.C(0, 0), []terrain.Coord{terrain.C(1, 0), terrain.C(0, 1)}},
		{"bottom-right corner", terrain.C(2, 2), []terrain.Coord{terrain.C(1, 2), terrain.C(2, 1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var visited []terrain.Coord
			record := func(_ *terrain.Grid, c terrain.Coord, _ terrain.TypeID) bool {
				visited = append(visited, c)
				return false
			}

			if g.AnyAdjacent(tc.origin, record, terrain.AirID) {
				t.Error("predicate never holds, expected false")
			}
			if len(visited) != len(tc.expected) {
				t.Fatalf("visited %v, expected %v", visited, tc.expected)
			}
			for i := range visited {
				if visited[i] != tc.expected[i] {
					t.Errorf("visit %d: got %v, expected %v", i, visited[i], tc.expected[i])
				}
			}
		})
	}
}

func TestAnyAdjacentShortCircuits(t *testing.T) {
	g, err := terrain.NewGrid(3, 3, terrain.DefaultRegistry(), uniform(terrain.StoneID))
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}

	calls := 0
	pred := func(*terrain.Grid, terrain.Coord, terrain.TypeID) bool {
		calls++
		return true
	}
	if !g.AnyAdjacent(terrain.C(1, 1), pred, terrain.AirID) {
		t.Error("expected true")
	}
	if calls != 1 {
		t.Errorf("expected 1 predicate call, got %d", calls)
	}
}

func TestTypePredicates(t *testing.T) {
	g, err := terrain.CreateGrid(10, 10)
	if err != nil {
		t.Fatalf("CreateGrid() failed: %v", err)
	}

	// Horizon at row 5, grass at row 6.
	if !g.IsType(terrain.C(0, 6), terrain.GrassID) {
		t.Error("expected grass at (0,6)")
	}
	if !g.IsNotType(terrain.C(0, 6), terrain.AirID) {
		t.Error("grass is not air")
	}
	if g.IsType(terrain.C(-1, 6), terrain.GrassID) || g.IsNotType(terrain.C(-1, 6), terrain.GrassID) {
		t.Error("out-of-bounds cells match nothing")
	}

	if !g.AnyAdjacent(terrain.C(0, 6), (*terrain.Grid).IsType, terrain.AirID) {
		t.Error("grass row touches air above it")
	}
	if g.AnyAdjacent(terrain.C(4, 8), (*terrain.Grid).IsType, terrain.AirID) {
		t.Error("buried dirt does not touch air")
	}

	g.Destroy()
	if g.IsType(terrain.C(0, 6), terrain.GrassID) || g.IsNotType(terrain.C(0, 6), terrain.AirID) {
		t.Error("released grid matches nothing")
	}
	if g.AnyAdjacent(terrain.C(0, 6), (*terrain.Grid).IsNotType, terrain.GrassID) {
		t.Error("released grid has no neighbors")
	}
}

func TestCanDestroy(t *testing.T) {
	g, err := terrain.CreateGrid(80, 50)
	if err != nil {
		t.Fatalf("CreateGrid() failed: %v", err)
	}
	rules := terrain.NewRules(terrain.GrassID, terrain.DirtID)

	tests := []struct {
		name     string
		coord    terrain.Coord
		expected bool
	}{
		{"surface grass", terrain.C(5, 26), true},
		{"buried dirt", terrain.C(5, 30), false},
		{"air", terrain.C(5, 10), false},
		{"out of bounds", terrain.C(80, 26), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.CanDestroy(tc.coord, rules); got != tc.expected {
				t.Errorf("CanDestroy(%v) = %v, expected %v", tc.coord, got, tc.expected)
			}
		})
	}

	// Exposed stone is still protected when it is not removable.
	g.SetBlock(terrain.C(5, 37), g.Registry().Air())
	if g.CanDestroy(terrain.C(5, 38), rules) {
		t.Error("stone is not in the removable set")
	}
	if !g.CanDestroy(terrain.C(5, 38), terrain.DefaultRules(g.Registry())) {
		t.Error("default rules allow digging exposed stone")
	}
}

func TestCanBuild(t *testing.T) {
	g, err := terrain.CreateGrid(80, 50)
	if err != nil {
		t.Fatalf("CreateGrid() failed: %v", err)
	}

	tests := []struct {
		name     string
		coord    terrain.Coord
		expected bool
	}{
		{"air above grass", terrain.C(5, 25), true},
		{"floating air", terrain.C(5, 10), false},
		{"occupied cell", terrain.C(5, 26), false},
		{"out of bounds", terrain.C(-1, 25), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.CanBuild(tc.coord); got != tc.expected {
				t.Errorf("CanBuild(%v) = %v, expected %v", tc.coord, got, tc.expected)
			}
		})
	}
}
