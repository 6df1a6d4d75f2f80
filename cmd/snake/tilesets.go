package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
)

var tilesetsCmd = &cobra.Command{
	Use:   "tilesets",
	Short: "List embedded terminal tilesets",
	Long: `Shows the tilesets compiled into the binary. A glyphs.yaml file in the
configured assets path overrides any of them.`,
	Run: runTilesets,
}

func runTilesets(cmd *cobra.Command, args []string) {
	sets := registry.List()

	if len(sets) == 0 {
		fmt.Println("No tilesets available.")
		return
	}

	fmt.Println("Available tilesets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range sets {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range sets {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'snake play --tileset <id>' to use one.")
}
