package terrain

import (
	"errors"
	"fmt"
	"strings"
)

// MaxCells bounds the storage a single grid may request.
const MaxCells = 1 << 24

// Grid errors.
var (
	ErrInvalidSize = errors.New("terrain: grid dimensions must be positive")
	ErrTooLarge    = errors.New("terrain: grid too large")
)

// Generator assigns the initial block type of a cell.
// It must be a pure function of the column and row.
type Generator func(x, y int) TypeID

// Grid is a fixed-size 2D array of blocks.
// Blocks are stored in row-major order: index = y*width + x.
// A nil or destroyed grid is inert: reads report nothing and writes are ignored.
type Grid struct {
	width  int
	height int
	reg    *Registry
	blocks []Block
}

// NewGrid allocates a width x height grid and fills it using gen.
// No grid is returned if the dimensions are unusable or gen yields a type
// the registry does not know.
func NewGrid(width, height int, reg *Registry, gen Generator) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width > MaxCells/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrTooLarge, width, height, MaxCells)
	}
	if reg == nil {
		return nil, errors.New("terrain: nil block registry")
	}
	if gen == nil {
		return nil, errors.New("terrain: nil generator")
	}

	g := &Grid{
		width:  width,
		height: height,
		reg:    reg,
		blocks: make([]Block, width*height),
	}
	if err := g.Fill(gen); err != nil {
		return nil, err
	}
	return g, nil
}

// CreateGrid builds a grid with the default block set and layered terrain.
func CreateGrid(width, height int) (*Grid, error) {
	reg := DefaultRegistry()
	return NewGrid(width, height, reg, DefaultLayers(height).Generator())
}

// Fill overwrites every cell with the type gen assigns to it.
// On error the grid is left unchanged.
func (g *Grid) Fill(gen Generator) error {
	if !g.Alive() {
		return errors.New("terrain: grid released")
	}

	next := make([]Block, len(g.blocks))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			id := gen(x, y)
			t, ok := g.reg.Type(id)
			if !ok {
				return fmt.Errorf("%w: id %d at (%d,%d)", ErrUnknownType, id, x, y)
			}
			next[y*g.width+x] = Block{Coord: C(x, y), Type: t}
		}
	}
	copy(g.blocks, next)
	return nil
}

// Alive reports whether the grid holds storage.
func (g *Grid) Alive() bool {
	return g != nil && g.blocks != nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	if g == nil {
		return 0
	}
	return g.height
}

// Registry returns the block types the grid was built with.
func (g *Grid) Registry() *Registry {
	if g == nil {
		return nil
	}
	return g.reg
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.width + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	if g == nil {
		return false
	}
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Get returns the block type at c.
// Reports false if c is out of bounds or the grid was released.
func (g *Grid) Get(c Coord) (BlockType, bool) {
	if !g.Alive() || !g.InBounds(c) {
		return BlockType{}, false
	}
	return g.blocks[g.index(c)].Type, true
}

// Block returns the stored block at c, or nil if there is none.
func (g *Grid) Block(c Coord) *Block {
	if !g.Alive() || !g.InBounds(c) {
		return nil
	}
	return &g.blocks[g.index(c)]
}

// SetBlock replaces the type at c. Returns false and changes nothing if c is
// out of bounds or the grid was released.
func (g *Grid) SetBlock(c Coord, t BlockType) bool {
	b := g.Block(c)
	if b == nil {
		return false
	}
	b.Type = t
	return true
}

// ForEach calls fn for every block in row-major order.
func (g *Grid) ForEach(fn func(Block)) {
	if !g.Alive() {
		return
	}
	for _, b := range g.blocks {
		fn(b)
	}
}

// Destroy releases the grid storage. Safe to call more than once.
func (g *Grid) Destroy() {
	if g == nil {
		return
	}
	g.blocks = nil
}

// Count returns the number of blocks of the given type.
func (g *Grid) Count(id TypeID) int {
	count := 0
	g.ForEach(func(b Block) {
		if b.Type.ID == id {
			count++
		}
	})
	return count
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	clone := &Grid{
		width:  g.width,
		height: g.height,
		reg:    g.reg,
	}
	if g.blocks != nil {
		clone.blocks = make([]Block, len(g.blocks))
		copy(clone.blocks, g.blocks)
	}
	return clone
}

// Equal returns true if two grids have the same dimensions and block types.
func (g *Grid) Equal(other *Grid) bool {
	if !g.Alive() || !other.Alive() {
		return false
	}
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i, b := range g.blocks {
		if b.Type.ID != other.blocks[i].Type.ID {
			return false
		}
	}
	return true
}

// String renders the grid using each type's glyph, one row per line.
func (g *Grid) String() string {
	if !g.Alive() {
		return ""
	}
	var sb strings.Builder
	sb.Grow(g.width*g.height + g.height)
	for y := 0; y < g.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.blocks[g.index(C(x, y))].Type.Glyph)
		}
	}
	return sb.String()
}
