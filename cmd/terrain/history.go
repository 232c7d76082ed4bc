package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-terrain/internal/platform/tui"
	"github.com/vovakirdan/tui-terrain/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded blasts",
	Long: `Display the most recent blasts and how many blocks of each type were
destroyed overall. Opens an interactive table on a terminal; use --plain
for text output.

Examples:
  terrain history
  terrain history --limit 50 --plain
  terrain history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of blasts to show")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print text instead of the interactive table")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded blasts")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width = w
			height = h
		}
		cfg := loadConfig(cmd)
		if err := tui.RunHistory(store, flagLimit, width, height, tui.ThemeByName(cfg.Display.Theme)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printHistory(store)
}

func printHistory(store *storage.Store) {
	blasts, err := store.RecentBlasts(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving blasts: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Blast History")
	fmt.Println()

	if len(blasts) == 0 {
		fmt.Println("No blasts recorded yet.")
		fmt.Println()
		fmt.Println("Run 'terrain play' or 'terrain blast' to record one!")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-10s  %-6s  %-5s  %-9s  %-16s  %s\n", "#", "Origin", "Power", "Rays", "Destroyed", "Date", "Types")
	fmt.Printf("  %-5s  %-10s  %-6s  %-5s  %-9s  %-16s  %s\n", "-", "------", "-----", "----", "---------", "----", "-----")

	for _, b := range blasts {
		origin := fmt.Sprintf("(%d,%d)", b.OriginX, b.OriginY)
		dateStr := b.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-5d  %-10s  %-6.1f  %-5d  %-9d  %-16s  %s\n",
			b.ID, origin, b.Power, b.Rays, b.Destroyed, dateStr, tui.FormatTypeCounts(b.Types))
	}

	// Show totals
	fmt.Println()
	totals, err := store.Totals()
	if err == nil {
		fmt.Printf("Total: %d blasts, %d blocks destroyed, biggest %d\n",
			totals.Blasts, totals.Destroyed, totals.Biggest)
	}
	if types, err := store.TypeTotals(); err == nil && len(types) > 0 {
		counts := make(map[string]int, len(types))
		for _, t := range types {
			counts[t.Name] = int(t.Count)
		}
		fmt.Printf("By type: %s\n", tui.FormatTypeCounts(counts))
	}
}
