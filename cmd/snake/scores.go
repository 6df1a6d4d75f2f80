package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagReset bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best score",
	Long: `Display the best score recorded in the database.

Examples:
  snake scores
  snake scores --db ./snake.db
  snake scores --reset`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Forget the recorded best score")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening high score database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagReset {
		if err := store.Delete(snake.HighScoreKey); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting best score: %v\n", err)
			return
		}
		fmt.Println("Best score cleared.")
		return
	}

	entry, ok, err := store.Lookup(snake.HighScoreKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving best score: %v\n", err)
		return
	}

	fmt.Println("Snake - Best Score")
	fmt.Println()
	if !ok {
		fmt.Println("No score recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-6s  %s\n", "Best", "Set")
	fmt.Printf("  %-6s  %s\n", "----", "---")
	fmt.Printf("  %-6s  %s\n", entry.Value, entry.UpdatedAt.Format("2006-01-02 15:04"))
}
