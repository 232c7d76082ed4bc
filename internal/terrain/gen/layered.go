package gen

import (
	"github.com/vovakirdan/tui-terrain/internal/registry"
	"github.com/vovakirdan/tui-terrain/internal/terrain"
)

func newLayered(p registry.Params) (terrain.Generator, error) {
	l, err := baseLayers(p)
	if err != nil {
		return nil, err
	}
	return l.Generator(), nil
}
