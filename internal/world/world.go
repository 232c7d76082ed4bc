// Package world ties the terrain core to configuration, generators, logging
// and blast history. A World owns one grid at a time and applies the action
// rules to every edit made through it.
package world

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-terrain/internal/config"
	"github.com/vovakirdan/tui-terrain/internal/registry"
	"github.com/vovakirdan/tui-terrain/internal/storage"
	"github.com/vovakirdan/tui-terrain/internal/terrain"
)

// Action errors.
var (
	ErrOutOfBounds  = errors.New("out of bounds")
	ErrNotRemovable = errors.New("block cannot be dug")
	ErrNoSupport    = errors.New("nothing to build against")
	ErrOccupied     = errors.New("cell is not empty")
	ErrNothingThere = errors.New("nothing to dig")
)

// Recorder persists blast history.
type Recorder interface {
	RecordBlast(rec storage.BlastRecord) (int64, error)
}

// Stats counts what happened during the session.
type Stats struct {
	Blasts    int
	Destroyed int
	Dug       int
	Built     int
}

// World is one terrain editing session.
type World struct {
	cfg      config.Config
	reg      *terrain.Registry
	grid     *terrain.Grid
	rules    terrain.Rules
	build    []terrain.BlockType
	buildIdx int
	blast    terrain.BlastParams
	seed     int64

	logger   *log.Logger
	recorder Recorder
	stats    Stats
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		w.logger = l
	}
}

// WithRecorder enables blast history.
func WithRecorder(r Recorder) Option {
	return func(w *World) {
		w.recorder = r
	}
}

// New validates cfg and generates the initial grid.
func New(cfg config.Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	rules, err := cfg.Rules(reg)
	if err != nil {
		return nil, err
	}
	build, err := cfg.BuildTypes(reg)
	if err != nil {
		return nil, err
	}

	w := &World{
		cfg:    cfg,
		reg:    reg,
		rules:  rules,
		build:  build,
		blast:  cfg.BlastParams(),
		seed:   cfg.Terrain.Seed,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}

	grid, err := w.generate(cfg.World.Width, cfg.World.Height)
	if err != nil {
		return nil, err
	}
	w.grid = grid
	return w, nil
}

// generate builds a fresh grid with the configured generator.
func (w *World) generate(width, height int) (*terrain.Grid, error) {
	t := w.cfg.Terrain
	t.Seed = w.seed

	gen, err := registry.Create(t.Generator, registry.Params{
		Width:   width,
		Height:  height,
		Blocks:  w.reg,
		Terrain: t,
	})
	if err != nil {
		return nil, err
	}

	grid, err := terrain.NewGrid(width, height, w.reg, gen)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}

	w.logger.Info("grid built",
		"generator", t.Generator,
		"width", width,
		"height", height,
		"seed", w.seed,
	)
	return grid, nil
}

// Grid returns the current grid. It changes after Resize.
func (w *World) Grid() *terrain.Grid {
	return w.grid
}

// Registry returns the block type registry.
func (w *World) Registry() *terrain.Registry {
	return w.reg
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.Config {
	return w.cfg
}

// Seed returns the generator seed of the current grid.
func (w *World) Seed() int64 {
	return w.seed
}

// Stats returns the session counters.
func (w *World) Stats() Stats {
	return w.stats
}

// BuildType returns the block type placed by Build.
func (w *World) BuildType() terrain.BlockType {
	return w.build[w.buildIdx]
}

// CycleBuildType selects the next buildable type and returns it.
func (w *World) CycleBuildType() terrain.BlockType {
	w.buildIdx = (w.buildIdx + 1) % len(w.build)
	return w.BuildType()
}

// BlastParams returns the parameters used by Detonate and Preview.
func (w *World) BlastParams() terrain.BlastParams {
	return w.blast
}

// AdjustPower changes the blast power by delta, never going below zero.
func (w *World) AdjustPower(delta float64) terrain.BlastParams {
	w.blast.Power = math.Max(0, w.blast.Power+delta)
	return w.blast
}

// Dig replaces the block at c with air. With gating on, the block must be a
// removable type and touch air.
func (w *World) Dig(c terrain.Coord) error {
	bt, ok := w.grid.Get(c)
	if !ok {
		return w.reject("dig", c, ErrOutOfBounds)
	}
	if bt.Empty {
		return w.reject("dig", c, ErrNothingThere)
	}
	if w.cfg.Actions.Gate && !w.grid.CanDestroy(c, w.rules) {
		return w.reject("dig", c, ErrNotRemovable)
	}

	w.grid.SetBlock(c, w.reg.Air())
	w.stats.Dug++
	w.logger.Debug("dug", "at", c, "type", bt.Name)
	return nil
}

// Build places the current build type at c. With gating on, the cell must be
// empty and touch a solid block.
func (w *World) Build(c terrain.Coord) error {
	bt, ok := w.grid.Get(c)
	if !ok {
		return w.reject("build", c, ErrOutOfBounds)
	}
	if !bt.Empty {
		return w.reject("build", c, ErrOccupied)
	}
	if w.cfg.Actions.Gate && !w.grid.CanBuild(c) {
		return w.reject("build", c, ErrNoSupport)
	}

	t := w.BuildType()
	w.grid.SetBlock(c, t)
	w.stats.Built++
	w.logger.Debug("built", "at", c, "type", t.Name)
	return nil
}

func (w *World) reject(action string, c terrain.Coord, err error) error {
	w.logger.Debug("action rejected", "action", action, "at", c, "reason", err)
	return fmt.Errorf("%s %s: %w", action, c, err)
}

// Detonate explodes the current blast at c and records it.
func (w *World) Detonate(c terrain.Coord) terrain.BlastResult {
	res := w.grid.ExplodeWith(c, w.blast)
	if !w.grid.InBounds(c) || !w.blast.Valid() {
		w.logger.Debug("blast ignored", "at", c, "power", w.blast.Power, "rays", w.blast.Rays)
		return res
	}

	w.stats.Blasts++
	w.stats.Destroyed += res.Count()
	w.logger.Debug("blast",
		"at", c,
		"power", w.blast.Power,
		"rays", w.blast.Rays,
		"falloff", w.blast.Falloff,
		"destroyed", res.Count(),
	)

	w.record(res)
	return res
}

// Preview reports what Detonate would destroy at c without changing the grid.
func (w *World) Preview(c terrain.Coord) terrain.BlastResult {
	return w.grid.Preview(c, w.blast)
}

func (w *World) record(res terrain.BlastResult) {
	if w.recorder == nil {
		return
	}

	_, err := w.recorder.RecordBlast(storage.BlastRecord{
		OriginX:    res.Origin.X,
		OriginY:    res.Origin.Y,
		Power:      res.Params.Power,
		Rays:       res.Params.Rays,
		Falloff:    res.Params.Falloff,
		Destroyed:  res.Count(),
		GridWidth:  w.grid.Width(),
		GridHeight: w.grid.Height(),
		Generator:  w.cfg.Terrain.Generator,
		Seed:       w.seed,
		Types:      res.CountByType(),
	})
	if err != nil {
		w.logger.Warn("could not record blast", "error", err)
	}
}

// Regenerate refills the grid in place with the given seed.
func (w *World) Regenerate(seed int64) error {
	prev := w.seed
	w.seed = seed

	t := w.cfg.Terrain
	t.Seed = seed
	gen, err := registry.Create(t.Generator, registry.Params{
		Width:   w.grid.Width(),
		Height:  w.grid.Height(),
		Blocks:  w.reg,
		Terrain: t,
	})
	if err != nil {
		w.seed = prev
		return err
	}
	if err := w.grid.Fill(gen); err != nil {
		w.seed = prev
		return fmt.Errorf("world: %w", err)
	}

	w.logger.Info("grid regenerated", "seed", seed)
	return nil
}

// Resize replaces the grid with a freshly generated one of the new size.
// The old grid is released only once the new one exists.
func (w *World) Resize(width, height int) error {
	grid, err := w.generate(width, height)
	if err != nil {
		w.logger.Warn("resize failed", "width", width, "height", height, "error", err)
		return err
	}

	w.grid.Destroy()
	w.grid = grid
	return nil
}

// Close releases the grid.
func (w *World) Close() {
	w.grid.Destroy()
}
