package terrain

import "math"

// DefaultFalloff is the energy a ray loses per step regardless of what it
// crosses.
const DefaultFalloff = 0.2

// BlastParams configures one explosion.
type BlastParams struct {
	Power   float64 // Energy budget of each ray
	Rays    int     // Number of rays cast, evenly spaced around the origin
	Falloff float64 // Per-step spreading loss
}

// Valid reports whether the parameters can destroy anything at all.
func (p BlastParams) Valid() bool {
	return p.Power > 0 && p.Rays > 0 && p.Falloff > 0 &&
		!math.IsInf(p.Power, 1) && !math.IsInf(p.Falloff, 1)
}

// MaxTravel returns the most steps any ray can take.
func (p BlastParams) MaxTravel() int {
	if !p.Valid() {
		return 0
	}
	steps := math.Ceil(p.Power / p.Falloff)
	if steps > MaxCells {
		return MaxCells
	}
	return int(steps)
}

// Change records a block removed by a blast.
type Change struct {
	Coord  Coord
	Before BlockType
}

// BlastResult describes the outcome of one explosion.
type BlastResult struct {
	Origin    Coord
	Params    BlastParams
	MaxTravel int
	Destroyed []Change // One entry per destroyed cell, in discovery order
	Applied   bool     // False for previews
}

// Count returns the number of destroyed blocks.
func (r BlastResult) Count() int {
	return len(r.Destroyed)
}

// CountByType returns destroyed block counts keyed by type name.
func (r BlastResult) CountByType() map[string]int {
	counts := make(map[string]int)
	for _, c := range r.Destroyed {
		counts[c.Before.Name]++
	}
	return counts
}

// Explode runs a blast with the default falloff and removes every block
// it reaches.
func (g *Grid) Explode(origin Coord, power float64, rays int) BlastResult {
	return g.ExplodeWith(origin, BlastParams{Power: power, Rays: rays, Falloff: DefaultFalloff})
}

// ExplodeWith runs a blast with explicit parameters. Blocks are first marked
// by all rays and only then replaced with air, so every block is destroyed
// at most once and no ray sees another ray's damage.
func (g *Grid) ExplodeWith(origin Coord, p BlastParams) BlastResult {
	res := BlastResult{Origin: origin, Params: p, MaxTravel: p.MaxTravel()}
	marked := g.mark(origin, p)
	if len(marked) == 0 {
		return res
	}

	air := g.reg.Air()
	res.Destroyed = make([]Change, len(marked))
	for i, b := range marked {
		res.Destroyed[i] = Change{Coord: b.Coord, Before: b.Type}
		b.Type = air
		b.pending = false
	}
	res.Applied = true
	return res
}

// Preview reports what ExplodeWith would destroy without changing the grid.
func (g *Grid) Preview(origin Coord, p BlastParams) BlastResult {
	res := BlastResult{Origin: origin, Params: p, MaxTravel: p.MaxTravel()}
	marked := g.mark(origin, p)
	if len(marked) == 0 {
		return res
	}

	res.Destroyed = make([]Change, len(marked))
	for i, b := range marked {
		res.Destroyed[i] = Change{Coord: b.Coord, Before: b.Type}
		b.pending = false
	}
	return res
}

// mark casts every ray and returns the blocks it flagged as pending.
// The caller must clear the flag on each returned block.
func (g *Grid) mark(origin Coord, p BlastParams) []*Block {
	if !g.Alive() || !p.Valid() || !g.InBounds(origin) {
		return nil
	}

	// A unit-step ray leaves the grid within width+height steps.
	reach := min(p.MaxTravel(), g.width+g.height)
	if reach == 0 {
		return nil
	}
	capacity := len(g.blocks)
	if p.Rays <= capacity/reach {
		capacity = p.Rays * reach
	}
	marked := make([]*Block, 0, capacity)

	angleStep := 2 * math.Pi / float64(p.Rays)
	// Cells are taken by rounding the ray position offset by half a cell.
	cx := float64(origin.X) + 0.5
	cy := float64(origin.Y) + 0.5

	for r := 0; r < p.Rays; r++ {
		angle := angleStep * float64(r)
		dx, dy := math.Cos(angle), math.Sin(angle)
		remaining := p.Power - p.Falloff

		for step := 0; step < reach; step++ {
			c := Coord{
				X: int(math.Round(cx + float64(step)*dx)),
				Y: int(math.Round(cy + float64(step)*dy)),
			}
			if !g.InBounds(c) {
				break
			}

			b := &g.blocks[g.index(c)]
			remaining -= b.Type.Resistance + p.Falloff
			if remaining <= 0 {
				break
			}
			if !b.pending && !b.Type.Empty {
				b.pending = true
				marked = append(marked, b)
			}
		}
	}
	return marked
}
