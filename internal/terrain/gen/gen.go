// Package gen provides the built-in terrain generators. Importing it
// registers them with the generator registry.
package gen

import (
	"errors"

	"github.com/vovakirdan/tui-terrain/internal/registry"
	"github.com/vovakirdan/tui-terrain/internal/terrain"
)

var errNoBlocks = errors.New("no block registry")

func init() {
	registry.Register("layered", "Flat layers: open sky, a grass row, a dirt band and stone below", newLayered)
	registry.Register("noise", "Rolling simplex-noise surface with carved caves", newNoise)
}

// baseLayers resolves the configured layer names for the requested height.
func baseLayers(p registry.Params) (terrain.Layers, error) {
	if p.Blocks == nil {
		return terrain.Layers{}, errNoBlocks
	}
	return p.Terrain.ResolveLayers(p.Blocks, p.Height)
}
