package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List block types",
	Long:  `Shows the block types defined by the loaded config and what each one allows.`,
	Args:  cobra.NoArgs,
	Run:   runTypes,
}

func runTypes(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)

	reg, err := cfg.Registry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rules, err := cfg.Rules(reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	buildable := make(map[string]bool)
	if types, err := cfg.BuildTypes(reg); err == nil {
		for _, t := range types {
			buildable[t.Name] = true
		}
	}

	fmt.Println("Block types:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, t := range reg.Types() {
		maxNameLen = max(maxNameLen, len(t.Name))
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-6s  %-10s  %s\n", "ID", maxNameLen, "Name", "Glyph", "Resistance", "Flags")
	fmt.Printf("  %-3s  %-*s  %-6s  %-10s  %s\n", "--", maxNameLen, "----", "-----", "----------", "-----")

	for _, t := range reg.Types() {
		var flags []string
		if t.ID == reg.Air().ID {
			flags = append(flags, "air")
		} else if t.Empty {
			flags = append(flags, "empty")
		}
		if rules.Removable.Has(t.ID) {
			flags = append(flags, "diggable")
		}
		if buildable[t.Name] {
			flags = append(flags, "buildable")
		}

		glyph := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render(fmt.Sprintf("%q", t.Glyph))
		fmt.Printf("  %-3d  %-*s  %s  %-10.2f  %v\n",
			t.ID, maxNameLen, t.Name, glyph+pad(lipgloss.Width(glyph), 6), t.Resistance, flags)
	}
}

// pad returns the spaces needed to widen a cell of width w to n.
func pad(w, n int) string {
	if w >= n {
		return ""
	}
	return fmt.Sprintf("%*s", n-w, "")
}
