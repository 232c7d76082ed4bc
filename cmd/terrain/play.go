package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-terrain/internal/config"
	"github.com/vovakirdan/tui-terrain/internal/platform/tui"
	"github.com/vovakirdan/tui-terrain/internal/world"
)

var (
	flagWidth     int
	flagHeight    int
	flagGenerator string
	flagFit       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Edit and blow up terrain interactively",
	Long: `Open the interactive terrain editor.

Controls:
  Arrows/hjkl  - Move cursor
  D            - Dig the block under the cursor
  B            - Build the selected block type
  T            - Cycle block type
  Space/E      - Explode at the cursor
  P            - Toggle blast preview
  [ / ]        - Less / more blast power
  R            - Regenerate terrain
  + / -        - Bigger / smaller world
  ?            - Help
  Q/Ctrl+C     - Quit

Mouse:
  Move         - Move cursor
  Left click   - Explode
  Right click  - Build

Examples:
  terrain play
  terrain play --fit
  terrain play --generator noise --seed 7
  terrain play --width 120 --height 60`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addWorldFlags(playCmd)
	playCmd.Flags().BoolVar(&flagFit, "fit", false, "Size the world to the terminal")
}

// addWorldFlags registers the flags that override the world section.
func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagWidth, "width", 0, "World width in blocks (overrides config)")
	cmd.Flags().IntVar(&flagHeight, "height", 0, "World height in blocks (overrides config)")
	cmd.Flags().StringVar(&flagGenerator, "generator", "", "Terrain generator (overrides config)")
}

// applyWorldFlags copies world overrides into cfg.
func applyWorldFlags(cfg *config.Config) {
	if flagWidth > 0 {
		cfg.World.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.World.Height = flagHeight
	}
	if flagGenerator != "" {
		cfg.Terrain.Generator = flagGenerator
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	applyWorldFlags(&cfg)

	if flagFit {
		// Leave one row for the HUD and one for help
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cfg.World.Width = max(int(float64(w)/cfg.World.BlockWidth), 1)
			cfg.World.Height = max(int(float64(h-2)/cfg.World.BlockHeight), 1)
		}
	}

	logger, closeLog := newLogger(true)
	defer closeLog()

	opts := []world.Option{world.WithLogger(logger)}
	store := openStore(logger)
	if store != nil {
		defer store.Close()
		opts = append(opts, world.WithRecorder(store))
	}

	w, err := world.New(cfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating world: %v\n", err)
		os.Exit(1)
	}
	defer w.Close()

	if err := tui.Run(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stats := w.Stats()
	logger.Info("session ended",
		"blasts", stats.Blasts,
		"destroyed", stats.Destroyed,
		"dug", stats.Dug,
		"built", stats.Built,
	)
}
