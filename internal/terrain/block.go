// Package terrain provides the destructible terrain core: block types,
// the block grid, adjacency checks and blast propagation.
// This package is UI-agnostic and deterministic.
package terrain

import (
	"errors"
	"fmt"
	"math"
)

// TypeID identifies a block type inside a Registry.
type TypeID uint8

// Type ids of the built-in block set.
const (
	AirID TypeID = iota
	StoneID
	DirtID
	GrassID
)

// Registry errors.
var (
	ErrNoTypes     = errors.New("terrain: no block types")
	ErrNoAir       = errors.New("terrain: registry has no empty block type")
	ErrUnknownType = errors.New("terrain: unknown block type")
)

// BlockType is the immutable category of a block.
type BlockType struct {
	ID         TypeID
	Name       string
	Resistance float64 // Energy a blast ray spends crossing this block
	Empty      bool    // Air-like: nothing to destroy, nothing to stand on
	Color      string  // Terminal color hint (ANSI 256 code or hex)
	Glyph      rune    // Character used by plain-text renderings
}

// Block is the terrain unit stored at one grid cell.
type Block struct {
	Coord Coord
	Type  BlockType

	// pending marks the block for removal during a single Explode call.
	pending bool
}

// Pending reports whether the block is marked by an in-progress blast.
// Always false outside of blast propagation.
func (b Block) Pending() bool {
	return b.pending
}

// Registry is a fixed set of block types indexed by id.
type Registry struct {
	byID   []BlockType
	known  []bool
	byName map[string]TypeID
	air    TypeID
}

// NewRegistry validates the given types and builds a registry from them.
// At least one type must be empty; the lowest-id empty type becomes Air.
func NewRegistry(types []BlockType) (*Registry, error) {
	if len(types) == 0 {
		return nil, ErrNoTypes
	}

	maxID := TypeID(0)
	for _, t := range types {
		if t.ID > maxID {
			maxID = t.ID
		}
	}

	r := &Registry{
		byID:   make([]BlockType, int(maxID)+1),
		known:  make([]bool, int(maxID)+1),
		byName: make(map[string]TypeID, len(types)),
	}

	hasAir := false
	for _, t := range types {
		if t.Name == "" {
			return nil, fmt.Errorf("terrain: block type %d has no name", t.ID)
		}
		if r.known[t.ID] {
			return nil, fmt.Errorf("terrain: duplicate block type id %d", t.ID)
		}
		if _, dup := r.byName[t.Name]; dup {
			return nil, fmt.Errorf("terrain: duplicate block type name %q", t.Name)
		}
		if math.IsNaN(t.Resistance) || t.Resistance < 0 {
			return nil, fmt.Errorf("terrain: block type %q has invalid resistance %v", t.Name, t.Resistance)
		}
		if t.Glyph == 0 {
			t.Glyph = '?'
		}

		r.byID[t.ID] = t
		r.known[t.ID] = true
		r.byName[t.Name] = t.ID

		if t.Empty && (!hasAir || t.ID < r.air) {
			r.air = t.ID
			hasAir = true
		}
	}

	if !hasAir {
		return nil, ErrNoAir
	}
	return r, nil
}

// DefaultBlockTypes returns the built-in air, stone, dirt and grass types.
func DefaultBlockTypes() []BlockType {
	return []BlockType{
		{ID: AirID, Name: "air", Resistance: 0.0, Empty: true, Color: "255", Glyph: ' '},
		{ID: StoneID, Name: "stone", Resistance: 0.2, Color: "245", Glyph: '#'},
		{ID: DirtID, Name: "dirt", Resistance: 0.0, Color: "130", Glyph: '%'},
		{ID: GrassID, Name: "grass", Resistance: 0.1, Color: "34", Glyph: '"'},
	}
}

// DefaultRegistry returns a registry holding DefaultBlockTypes.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultBlockTypes())
	if err != nil {
		panic(err) // built-in table is known to be valid
	}
	return r
}

// Type returns the block type with the given id.
func (r *Registry) Type(id TypeID) (BlockType, bool) {
	if int(id) >= len(r.byID) || !r.known[id] {
		return BlockType{}, false
	}
	return r.byID[id], true
}

// Lookup returns the block type with the given name.
func (r *Registry) Lookup(name string) (BlockType, bool) {
	id, ok := r.byName[name]
	if !ok {
		return BlockType{}, false
	}
	return r.byID[id], true
}

// Air returns the type blasts leave behind.
func (r *Registry) Air() BlockType {
	return r.byID[r.air]
}

// Types returns all registered types sorted by id.
func (r *Registry) Types() []BlockType {
	out := make([]BlockType, 0, len(r.byName))
	for id, ok := range r.known {
		if ok {
			out = append(out, r.byID[id])
		}
	}
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.byName)
}
