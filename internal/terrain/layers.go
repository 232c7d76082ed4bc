package terrain

// DefaultDirtDepth is the thickness of the dirt band below the grass line.
const DefaultDirtDepth = 10

// Layers describes flat layered terrain: open space down to the horizon,
// one grass row, a dirt band and stone below it.
type Layers struct {
	Horizon   int // Last row of open space
	DirtDepth int
	Air       TypeID
	Grass     TypeID
	Dirt      TypeID
	Stone     TypeID
}

// DefaultLayers returns the built-in layout for a grid of the given height,
// with the horizon at the middle row.
func DefaultLayers(height int) Layers {
	return Layers{
		Horizon:   height / 2,
		DirtDepth: DefaultDirtDepth,
		Air:       AirID,
		Grass:     GrassID,
		Dirt:      DirtID,
		Stone:     StoneID,
	}
}

// GrassLine returns the row holding grass.
func (l Layers) GrassLine() int {
	return l.Horizon + 1
}

// At returns the type of row y.
func (l Layers) At(y int) TypeID {
	grass := l.GrassLine()
	switch {
	case y <= l.Horizon:
		return l.Air
	case y == grass:
		return l.Grass
	case y <= grass+l.DirtDepth:
		return l.Dirt
	default:
		return l.Stone
	}
}

// Generator returns a Generator producing this layout in every column.
func (l Layers) Generator() Generator {
	return func(_, y int) TypeID {
		return l.At(y)
	}
}
