// Package config provides YAML-based configuration loading for the terrain
// engine: world size, terrain generation, blast defaults, block types and
// action rules.
package config

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-terrain/internal/terrain"
)

// Config is the complete terrain configuration.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Terrain TerrainConfig `yaml:"terrain"`
	Blast   BlastConfig   `yaml:"blast"`
	Blocks  []BlockConfig `yaml:"blocks"`
	Actions ActionsConfig `yaml:"actions"`
	Display DisplayConfig `yaml:"display"`
}

// WorldConfig defines the grid dimensions and the on-screen block size.
type WorldConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	BlockWidth  float64 `yaml:"block_width"`  // Screen columns per block
	BlockHeight float64 `yaml:"block_height"` // Screen rows per block
}

// TerrainConfig selects and tunes the terrain generator.
type TerrainConfig struct {
	Generator string      `yaml:"generator"`
	Horizon   float64     `yaml:"horizon"` // Fraction of the height left open, 0.0 to 1.0
	DirtDepth int         `yaml:"dirt_depth"`
	Seed      int64       `yaml:"seed"`
	Layers    LayerConfig `yaml:"layers"`
	Noise     NoiseConfig `yaml:"noise"`
}

// LayerConfig names the block types used for each terrain layer.
type LayerConfig struct {
	Air   string `yaml:"air"`
	Grass string `yaml:"grass"`
	Dirt  string `yaml:"dirt"`
	Stone string `yaml:"stone"`
}

// NoiseConfig tunes the noise generator.
type NoiseConfig struct {
	Frequency     float64 `yaml:"frequency"`      // Surface noise frequency per column
	Amplitude     float64 `yaml:"amplitude"`      // Max surface offset in rows
	CaveFrequency float64 `yaml:"cave_frequency"` // Cave noise frequency per cell
	CaveThreshold float64 `yaml:"cave_threshold"` // Noise above this carves air; 0 disables caves
}

// BlastConfig holds the default explosion parameters.
type BlastConfig struct {
	Power     float64 `yaml:"power"`
	Rays      int     `yaml:"rays"`
	Falloff   float64 `yaml:"falloff"`
	PowerStep float64 `yaml:"power_step"` // Interactive power adjustment
}

// BlockConfig defines one block type.
type BlockConfig struct {
	ID         int     `yaml:"id"`
	Name       string  `yaml:"name"`
	Resistance float64 `yaml:"resistance"`
	Empty      bool    `yaml:"empty"`
	Color      string  `yaml:"color"`
	Glyph      string  `yaml:"glyph"`
}

// ActionsConfig defines which single-block edits are allowed.
type ActionsConfig struct {
	Gate      bool     `yaml:"gate"`      // Apply adjacency rules to dig and build
	Removable []string `yaml:"removable"` // Types that may be dug
	Build     []string `yaml:"build"`     // Types offered for building, in cycle order
}

// DisplayConfig defines presentation settings.
type DisplayConfig struct {
	FPS        int    `yaml:"fps"`
	FlashTicks int    `yaml:"flash_ticks"` // Ticks a blast stays highlighted
	Theme      string `yaml:"theme"`       // "default" or "mono"
}

// Validate checks the configuration for values the engine cannot use.
func (c Config) Validate() error {
	w := c.World
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("config: world size %dx%d must be positive", w.Width, w.Height)
	}
	if w.Width*w.Height > terrain.MaxCells {
		return fmt.Errorf("config: world size %dx%d exceeds %d cells", w.Width, w.Height, terrain.MaxCells)
	}
	if w.BlockWidth <= 0 || w.BlockHeight <= 0 {
		return fmt.Errorf("config: block size %vx%v must be positive", w.BlockWidth, w.BlockHeight)
	}

	t := c.Terrain
	if t.Generator == "" {
		return fmt.Errorf("config: terrain generator is required")
	}
	if t.Horizon < 0 || t.Horizon > 1 || math.IsNaN(t.Horizon) {
		return fmt.Errorf("config: terrain horizon %v must be within 0..1", t.Horizon)
	}
	if t.DirtDepth < 0 {
		return fmt.Errorf("config: terrain dirt_depth %d must not be negative", t.DirtDepth)
	}

	b := c.Blast
	if !(b.Power >= 0) || math.IsInf(b.Power, 1) {
		return fmt.Errorf("config: blast power %v must be a finite non-negative number", b.Power)
	}
	if b.Rays < 0 {
		return fmt.Errorf("config: blast rays %d must not be negative", b.Rays)
	}
	if !(b.Falloff > 0) || math.IsInf(b.Falloff, 1) {
		return fmt.Errorf("config: blast falloff %v must be positive", b.Falloff)
	}
	if b.PowerStep < 0 {
		return fmt.Errorf("config: blast power_step %v must not be negative", b.PowerStep)
	}

	reg, err := c.Registry()
	if err != nil {
		return err
	}
	if _, err := c.Rules(reg); err != nil {
		return err
	}
	if _, err := c.BuildTypes(reg); err != nil {
		return err
	}
	if _, err := c.Layers(reg, w.Height); err != nil {
		return err
	}

	if c.Display.FPS <= 0 {
		return fmt.Errorf("config: display fps %d must be positive", c.Display.FPS)
	}
	if c.Display.FlashTicks < 0 {
		return fmt.Errorf("config: display flash_ticks %d must not be negative", c.Display.FlashTicks)
	}
	switch c.Display.Theme {
	case "default", "mono":
	default:
		return fmt.Errorf("config: unknown display theme %q", c.Display.Theme)
	}
	return nil
}

// Registry builds the block type registry described by Blocks.
func (c Config) Registry() (*terrain.Registry, error) {
	types := make([]terrain.BlockType, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		if b.ID < 0 || b.ID > math.MaxUint8 {
			return nil, fmt.Errorf("config: block %q id %d out of range", b.Name, b.ID)
		}
		glyph, _ := utf8.DecodeRuneInString(b.Glyph)
		if glyph == utf8.RuneError {
			glyph = 0
		}
		types = append(types, terrain.BlockType{
			ID:         terrain.TypeID(b.ID),
			Name:       b.Name,
			Resistance: b.Resistance,
			Empty:      b.Empty,
			Color:      b.Color,
			Glyph:      glyph,
		})
	}

	reg, err := terrain.NewRegistry(types)
	if err != nil {
		return nil, fmt.Errorf("config: blocks: %w", err)
	}
	return reg, nil
}

// Rules builds the dig rules from Actions.Removable.
func (c Config) Rules(reg *terrain.Registry) (terrain.Rules, error) {
	ids := make([]terrain.TypeID, 0, len(c.Actions.Removable))
	for _, name := range c.Actions.Removable {
		t, err := lookup(reg, name)
		if err != nil {
			return terrain.Rules{}, fmt.Errorf("config: actions.removable: %w", err)
		}
		ids = append(ids, t.ID)
	}
	return terrain.NewRules(ids...), nil
}

// BuildTypes resolves Actions.Build into block types. Empty types cannot be
// built.
func (c Config) BuildTypes(reg *terrain.Registry) ([]terrain.BlockType, error) {
	if len(c.Actions.Build) == 0 {
		return nil, fmt.Errorf("config: actions.build must name at least one type")
	}
	types := make([]terrain.BlockType, 0, len(c.Actions.Build))
	for _, name := range c.Actions.Build {
		t, err := lookup(reg, name)
		if err != nil {
			return nil, fmt.Errorf("config: actions.build: %w", err)
		}
		if t.Empty {
			return nil, fmt.Errorf("config: actions.build: %q is empty", name)
		}
		types = append(types, t)
	}
	return types, nil
}

// Layers resolves the terrain layer names for a grid of the given height.
func (c Config) Layers(reg *terrain.Registry, height int) (terrain.Layers, error) {
	return c.Terrain.ResolveLayers(reg, height)
}

// ResolveLayers maps layer names to type ids and places the horizon for a
// grid of the given height.
func (t TerrainConfig) ResolveLayers(reg *terrain.Registry, height int) (terrain.Layers, error) {
	l := terrain.Layers{
		Horizon:   int(t.Horizon * float64(height)),
		DirtDepth: t.DirtDepth,
	}

	layers := []struct {
		field string
		name  string
		dst   *terrain.TypeID
	}{
		{"air", t.Layers.Air, &l.Air},
		{"grass", t.Layers.Grass, &l.Grass},
		{"dirt", t.Layers.Dirt, &l.Dirt},
		{"stone", t.Layers.Stone, &l.Stone},
	}
	for _, layer := range layers {
		bt, err := lookup(reg, layer.name)
		if err != nil {
			return terrain.Layers{}, fmt.Errorf("config: terrain.layers.%s: %w", layer.field, err)
		}
		*layer.dst = bt.ID
	}
	return l, nil
}

// BlastParams returns the configured default blast.
func (c Config) BlastParams() terrain.BlastParams {
	return terrain.BlastParams{
		Power:   c.Blast.Power,
		Rays:    c.Blast.Rays,
		Falloff: c.Blast.Falloff,
	}
}

func lookup(reg *terrain.Registry, name string) (terrain.BlockType, error) {
	t, ok := reg.Lookup(name)
	if !ok {
		return terrain.BlockType{}, fmt.Errorf("%w %q", terrain.ErrUnknownType, name)
	}
	return t, nil
}
