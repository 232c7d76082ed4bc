package terrain

import "github.com/zyedidia/generic/mapset"

// Predicate tests a cell against a type id.
// The method expressions (*Grid).IsType and (*Grid).IsNotType are predicates.
type Predicate func(g *Grid, c Coord, id TypeID) bool

// IsType reports whether the block at c has type id.
// False when c is out of bounds or the grid was released.
func (g *Grid) IsType(c Coord, id TypeID) bool {
	t, ok := g.Get(c)
	return ok && t.ID == id
}

// IsNotType reports whether the block at c has a type other than id.
// False when c is out of bounds or the grid was released.
func (g *Grid) IsNotType(c Coord, id TypeID) bool {
	t, ok := g.Get(c)
	return ok && t.ID != id
}

// AnyAdjacent reports whether pred holds for at least one in-bounds
// orthogonal neighbor of origin. Neighbors are checked west, east, north,
// south and the first match wins.
func (g *Grid) AnyAdjacent(origin Coord, pred Predicate, id TypeID) bool {
	if !g.Alive() {
		return false
	}
	for _, n := range origin.Neighbors() {
		if !g.InBounds(n) {
			continue
		}
		if pred(g, n, id) {
			return true
		}
	}
	return false
}

// Rules gates the player's single-cell edits.
type Rules struct {
	// Removable holds the types a player may dig out.
	Removable mapset.Set[TypeID]
}

// NewRules returns rules allowing the given types to be removed.
func NewRules(removable ...TypeID) Rules {
	set := mapset.New[TypeID]()
	for _, id := range removable {
		set.Put(id)
	}
	return Rules{Removable: set}
}

// DefaultRules allows digging every non-empty type of reg.
func DefaultRules(reg *Registry) Rules {
	ids := make([]TypeID, 0, reg.Len())
	for _, t := range reg.Types() {
		if !t.Empty {
			ids = append(ids, t.ID)
		}
	}
	return NewRules(ids...)
}

// CanDestroy reports whether the block at c may be dug out: its type must be
// removable and it must touch open air.
func (g *Grid) CanDestroy(c Coord, rules Rules) bool {
	t, ok := g.Get(c)
	if !ok || !rules.Removable.Has(t.ID) {
		return false
	}
	return g.AnyAdjacent(c, (*Grid).IsType, g.reg.Air().ID)
}

// CanBuild reports whether a block may be placed at c: the cell must be air
// and rest against at least one solid neighbor.
func (g *Grid) CanBuild(c Coord) bool {
	if !g.Alive() {
		return false
	}
	air := g.reg.Air().ID
	if !g.IsType(c, air) {
		return false
	}
	return g.AnyAdjacent(c, (*Grid).IsNotType, air)
}
