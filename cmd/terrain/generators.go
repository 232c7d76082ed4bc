package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-terrain/internal/registry"
)

var generatorsCmd = &cobra.Command{
	Use:   "generators",
	Short: "List terrain generators",
	Long:  `Shows the terrain generators that can be selected with terrain.generator or --generator.`,
	Args:  cobra.NoArgs,
	Run:   runGenerators,
}

func runGenerators(cmd *cobra.Command, args []string) {
	gens := registry.List()

	if len(gens) == 0 {
		fmt.Println("No generators available.")
		return
	}

	fmt.Println("Available generators:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, g := range gens {
		maxNameLen = max(maxNameLen, len(g.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, g := range gens {
		fmt.Printf("  %-*s  %s\n", maxNameLen, g.Name, g.Description)
	}

	fmt.Println()
	fmt.Println("Run 'terrain play --generator <name>' to use one.")
}
