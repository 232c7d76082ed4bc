package gen

import (
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/vovakirdan/tui-terrain/internal/registry"
	"github.com/vovakirdan/tui-terrain/internal/terrain"
)

// caveSeedOffset separates the cave field from the surface field.
const caveSeedOffset = 7919

// newNoise shifts the layered horizon per column by simplex noise and
// carves caves below the grass line where a second noise field exceeds the
// cave threshold. The same seed always yields the same terrain.
func newNoise(p registry.Params) (terrain.Generator, error) {
	base, err := baseLayers(p)
	if err != nil {
		return nil, err
	}

	nc := p.Terrain.Noise
	if nc.Frequency < 0 || nc.Amplitude < 0 || nc.CaveFrequency < 0 {
		return nil, fmt.Errorf("noise parameters must not be negative: %+v", nc)
	}

	surface := opensimplex.New(p.Terrain.Seed)
	caves := opensimplex.New(p.Terrain.Seed + caveSeedOffset)

	return func(x, y int) terrain.TypeID {
		l := base
		offset := surface.Eval2(float64(x)*nc.Frequency, 0) * nc.Amplitude
		l.Horizon += int(math.Round(offset))

		if nc.CaveThreshold > 0 && y > l.GrassLine() {
			v := caves.Eval2(float64(x)*nc.CaveFrequency, float64(y)*nc.CaveFrequency)
			if v > nc.CaveThreshold {
				return l.Air
			}
		}
		return l.At(y)
	}, nil
}
