package terrain

import (
	"fmt"
	"math"
)

// Coord represents a cell position on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Neighbors returns the four orthogonal neighbors in the order
// west, east, north, south. Some may lie outside any grid.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		c.Add(-1, 0),
		c.Add(1, 0),
		c.Add(0, -1),
		c.Add(0, 1),
	}
}

// Vec is a continuous screen-space position.
type Vec struct {
	X, Y float64
}

// InvalidCoord is returned by coordinate transforms that cannot map a position.
var InvalidCoord = Coord{X: -1, Y: -1}

// ScreenToCell maps a screen position to the cell under it for square blocks
// of blockSize pixels.
func ScreenToCell(pos Vec, blockSize float64) Coord {
	return ScreenToCellXY(pos, blockSize, blockSize)
}

// ScreenToCellXY maps a screen position to a cell for blocks that are
// blockW wide and blockH tall. Positions left of or above the origin map to
// negative cells, which callers reject with Grid.InBounds.
func ScreenToCellXY(pos Vec, blockW, blockH float64) Coord {
	if !(blockW > 0) || !(blockH > 0) {
		return InvalidCoord
	}
	return Coord{
		X: int(math.Floor(pos.X / blockW)),
		Y: int(math.Floor(pos.Y / blockH)),
	}
}
