// terrain is a destructible 2D terrain sandbox for the terminal.
//
// Usage:
//
//	terrain play              - Edit and blow up terrain interactively
//	terrain blast --x --y     - Run one blast headless and print the result
//	terrain types             - List block types
//	terrain generators        - List terrain generators
//	terrain history           - Show recorded blasts
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.terrain, ./configs)
//	--db <path>         - Blast history database (default: ~/.terrain/history.db)
//	--seed <value>      - Terrain seed (overrides config)
//	--log-level <level> - debug, info, warn, error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-terrain/internal/config"
	"github.com/vovakirdan/tui-terrain/internal/storage"
	// Import generators to register them
	_ "github.com/vovakirdan/tui-terrain/internal/terrain/gen"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "terrain",
	Short: "Destructible terrain in your terminal",
	Long: `Terrain is a 2D block world you can dig, build on and blow up.

Available commands:
  play        - Interactive editor
  blast       - Run one blast and print what it destroyed
  types       - List block types
  generators  - List terrain generators
  history     - Show recorded blasts

Examples:
  terrain play
  terrain play --generator noise --seed 42
  terrain blast --x 40 --y 30 --power 3
  terrain history --limit 20`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.terrain/history.db", "Path to blast history database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Terrain seed (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(blastCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(generatorsCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the command logger. Interactive commands pass
// quiet=true so that logs never reach the terminal unless --log-file is set.
// The returned function closes the log file, if any.
func newLogger(quiet bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		out = f
		closeFn = func() { f.Close() }
	case quiet:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "terrain",
		Level:           level,
	})
	return logger, closeFn
}

// loadConfig loads the configuration and applies global overrides.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Terrain.Seed = flagSeed
	}
	return cfg
}

// openStore opens the history database. A missing store only disables
// history, so failures are logged and nil is returned.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
