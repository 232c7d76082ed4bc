package world

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-terrain/internal/config"
	"github.com/vovakirdan/tui-terrain/internal/storage"
	"github.com/vovakirdan/tui-terrain/internal/terrain"
	_ "github.com/vovakirdan/tui-terrain/internal/terrain/gen"
)

type fakeRecorder struct {
	records []storage.BlastRecord
	err     error
}

func (f *fakeRecorder) RecordBlast(rec storage.BlastRecord) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.records = append(f.records, rec)
	return int64(len(f.records)), nil
}

func newWorld(t *testing.T, mutate func(*config.Config), opts ...Option) *World {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	w, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(w.Close)
	return w
}

func typeAt(t *testing.T, w *World, c terrain.Coord) terrain.BlockType {
	t.Helper()
	bt, ok := w.Grid().Get(c)
	if !ok {
		t.Fatalf("no block at %v", c)
	}
	return bt
}

func TestNewBuildsDefaultGrid(t *testing.T) {
	w := newWorld(t, nil)

	expected, err := terrain.CreateGrid(80, 50)
	if err != nil {
		t.Fatalf("CreateGrid() failed: %v", err)
	}
	if !w.Grid().Equal(expected) {
		t.Error("default world should match CreateGrid(80, 50)")
	}
	if w.BuildType().Name != "dirt" {
		t.Errorf("expected dirt as first build type, got %q", w.BuildType().Name)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"invalid config", func(c *config.Config) { c.World.Width = 0 }},
		{"unknown generator", func(c *config.Config) { c.Terrain.Generator = "volcano" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDigGated(t *testing.T) {
	w := newWorld(t, nil)

	tests := []struct {
		name     string
		coord    terrain.Coord
		expected error
	}{
		{"surface grass", terrain.C(5, 26), nil},
		{"buried dirt", terrain.C(5, 30), ErrNotRemovable},
		{"air", terrain.C(5, 10), ErrNothingThere},
		{"out of bounds", terrain.C(-1, 0), ErrOutOfBounds},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := w.Dig(tc.coord)
			if !errors.Is(err, tc.expected) {
				t.Errorf("Dig(%v) = %v, expected %v", tc.coord, err, tc.expected)
			}
		})
	}

	if !typeAt(t, w, terrain.C(5, 26)).Empty {
		t.Error("dug grass should now be air")
	}
	if w.Stats().Dug != 1 {
		t.Errorf("expected 1 dig, got %d", w.Stats().Dug)
	}

	// The dirt below the hole is now exposed.
	if err := w.Dig(terrain.C(5, 27)); err != nil {
		t.Errorf("exposed dirt should be diggable: %v", err)
	}
}

func TestDigUngated(t *testing.T) {
	w := newWorld(t, func(c *config.Config) { c.Actions.Gate = false })

	if err := w.Dig(terrain.C(5, 40)); err != nil {
		t.Fatalf("ungated dig failed: %v", err)
	}
	if !typeAt(t, w, terrain.C(5, 40)).Empty {
		t.Error("expected air after ungated dig")
	}
}

func TestBuild(t *testing.T) {
	w := newWorld(t, nil)

	if err := w.Build(terrain.C(5, 25)); err != nil {
		t.Fatalf("Build() on the surface failed: %v", err)
	}
	if got := typeAt(t, w, terrain.C(5, 25)); got.Name != "dirt" {
		t.Errorf("expected dirt, got %q", got.Name)
	}

	if err := w.Build(terrain.C(5, 10)); !errors.Is(err, ErrNoSupport) {
		t.Errorf("floating build: got %v, expected %v", err, ErrNoSupport)
	}
	if err := w.Build(terrain.C(5, 26)); !errors.Is(err, ErrOccupied) {
		t.Errorf("occupied build: got %v, expected %v", err, ErrOccupied)
	}
	if err := w.Build(terrain.C(80, 25)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("out of bounds build: got %v, expected %v", err, ErrOutOfBounds)
	}

	if next := w.CycleBuildType(); next.Name != "stone" {
		t.Errorf("expected stone after cycling, got %q", next.Name)
	}
	// Stacks on the dirt just placed.
	if err := w.Build(terrain.C(5, 24)); err != nil {
		t.Fatalf("Build() on placed block failed: %v", err)
	}
	if got := typeAt(t, w, terrain.C(5, 24)); got.Name != "stone" {
		t.Errorf("expected stone, got %q", got.Name)
	}
	if w.Stats().Built != 2 {
		t.Errorf("expected 2 builds, got %d", w.Stats().Built)
	}

	w.CycleBuildType()
	if w.CycleBuildType().Name != "dirt" {
		t.Error("build types should wrap around")
	}
}

func TestDetonateRecords(t *testing.T) {
	rec := &fakeRecorder{}
	w := newWorld(t, nil, WithRecorder(rec))

	res := w.Detonate(terrain.C(40, 30))
	if res.Count() == 0 {
		t.Fatal("expected blast to destroy blocks")
	}
	for _, ch := range res.Destroyed {
		if !typeAt(t, w, ch.Coord).Empty {
			t.Errorf("%v should be air after the blast", ch.Coord)
		}
	}

	if len(rec.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(rec.records))
	}
	r := rec.records[0]
	if r.OriginX != 40 || r.OriginY != 30 || r.Destroyed != res.Count() {
		t.Errorf("unexpected record %+v", r)
	}
	if r.GridWidth != 80 || r.GridHeight != 50 || r.Generator != "layered" {
		t.Errorf("grid details not recorded: %+v", r)
	}
	sum := 0
	for _, n := range r.Types {
		sum += n
	}
	if sum != res.Count() {
		t.Errorf("type counts sum to %d, expected %d", sum, res.Count())
	}

	stats := w.Stats()
	if stats.Blasts != 1 || stats.Destroyed != res.Count() {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestDetonateIgnored(t *testing.T) {
	rec := &fakeRecorder{}
	w := newWorld(t, nil, WithRecorder(rec))

	if res := w.Detonate(terrain.C(-5, 3)); res.Count() != 0 {
		t.Error("out-of-bounds blast should destroy nothing")
	}

	w.AdjustPower(-100)
	if p := w.BlastParams().Power; p != 0 {
		t.Errorf("power should clamp at 0, got %v", p)
	}
	if res := w.Detonate(terrain.C(40, 30)); res.Count() != 0 {
		t.Error("zero-power blast should destroy nothing")
	}

	if len(rec.records) != 0 {
		t.Errorf("ignored blasts should not be recorded, got %d", len(rec.records))
	}
	if w.Stats().Blasts != 0 {
		t.Errorf("ignored blasts should not be counted")
	}
}

func TestRecorderFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	rec := &fakeRecorder{err: errors.New("disk full")}
	w := newWorld(t, nil, WithRecorder(rec), WithLogger(log.New(&buf)))

	if res := w.Detonate(terrain.C(40, 30)); res.Count() == 0 {
		t.Error("blast should still apply when recording fails")
	}
	if !strings.Contains(buf.String(), "could not record blast") {
		t.Errorf("expected warning in log, got %q", buf.String())
	}
}

func TestPreviewDoesNotMutate(t *testing.T) {
	w := newWorld(t, nil)
	before := w.Grid().Clone()

	res := w.Preview(terrain.C(40, 30))
	if res.Count() == 0 || res.Applied {
		t.Errorf("unexpected preview %+v", res)
	}
	if !w.Grid().Equal(before) {
		t.Error("preview changed the grid")
	}

	applied := w.Detonate(terrain.C(40, 30))
	if applied.Count() != res.Count() {
		t.Errorf("preview predicted %d, blast destroyed %d", res.Count(), applied.Count())
	}
}

func TestRegenerate(t *testing.T) {
	w := newWorld(t, func(c *config.Config) { c.Terrain.Generator = "noise" })
	first := w.Grid().Clone()

	w.Detonate(terrain.C(40, 30))
	if err := w.Regenerate(w.Seed()); err != nil {
		t.Fatalf("Regenerate() failed: %v", err)
	}
	if !w.Grid().Equal(first) {
		t.Error("regenerating with the same seed should restore the terrain")
	}

	if err := w.Regenerate(99); err != nil {
		t.Fatalf("Regenerate() failed: %v", err)
	}
	if w.Seed() != 99 {
		t.Errorf("expected seed 99, got %d", w.Seed())
	}
	if w.Grid().Equal(first) {
		t.Error("a new seed should produce different terrain")
	}
}

func TestResize(t *testing.T) {
	w := newWorld(t, nil)
	old := w.Grid()

	if err := w.Resize(30, 20); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}
	if w.Grid().Width() != 30 || w.Grid().Height() != 20 {
		t.Errorf("expected 30x20, got %dx%d", w.Grid().Width(), w.Grid().Height())
	}
	if old.Alive() {
		t.Error("old grid should be released")
	}

	// Horizon scales with the height.
	if got := typeAt(t, w, terrain.C(0, 11)); got.ID != terrain.GrassID {
		t.Errorf("expected grass at row 11, got %q", got.Name)
	}

	current := w.Grid()
	if err := w.Resize(0, 5); err == nil {
		t.Error("expected error for zero width")
	}
	if w.Grid() != current || !current.Alive() {
		t.Error("failed resize should keep the current grid")
	}
}
