package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-terrain/internal/terrain"
)

//go:embed defaults/terrain.yaml
var defaultTerrainYAML []byte

// DefaultConfig returns the built-in configuration: an 80x50 world of layered
// terrain with the four default block types.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:       80,
			Height:      50,
			BlockWidth:  2, // Terminal cells are about twice as tall as wide
			BlockHeight: 1,
		},
		Terrain: TerrainConfig{
			Generator: "layered",
			Horizon:   0.5,
			DirtDepth: terrain.DefaultDirtDepth,
			Seed:      0,
			Layers: LayerConfig{
				Air:   "air",
				Grass: "grass",
				Dirt:  "dirt",
				Stone: "stone",
			},
			Noise: NoiseConfig{
				Frequency:     0.05,
				Amplitude:     6,
				CaveFrequency: 0.12,
				CaveThreshold: 0.45,
			},
		},
		Blast: BlastConfig{
			Power:     2.0,
			Rays:      40,
			Falloff:   terrain.DefaultFalloff,
			PowerStep: 0.5,
		},
		Blocks: []BlockConfig{
			{ID: 0, Name: "air", Resistance: 0, Empty: true, Color: "255", Glyph: " "},
			{ID: 1, Name: "stone", Resistance: 0.2, Color: "245", Glyph: "#"},
			{ID: 2, Name: "dirt", Resistance: 0.0, Color: "130", Glyph: "%"},
			{ID: 3, Name: "grass", Resistance: 0.1, Color: "34", Glyph: "\""},
		},
		Actions: ActionsConfig{
			Gate:      true,
			Removable: []string{"grass", "dirt", "stone"},
			Build:     []string{"dirt", "stone", "grass"},
		},
		Display: DisplayConfig{
			FPS:        30,
			FlashTicks: 6,
			Theme:      "default",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTerrainYAML
}
