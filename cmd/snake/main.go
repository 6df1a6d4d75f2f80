// snake is the classic Snake game for the terminal, SSH and headless rendering.
//
// Usage:
//
//	snake play               - Play in this terminal
//	snake serve              - Start SSH server for remote play
//	snake scores             - Show or reset the best score
//	snake tilesets           - List embedded terminal tilesets
//	snake render             - Replay a seeded run and save the board as PNG
//
// Global flags:
//
//	--fps <rate>       - Display frame rate (default: 60)
//	--seed <value>     - RNG seed for reproducible apples
//	--db <path>        - Database path (default: ~/.arcade/snake.db)
//	--config <path>    - Custom snake.yaml
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic grid game in your terminal",
	Long: `Snake steers a growing snake around a square grid to eat apples.
Every few apples the snake speeds up; hitting a wall or itself ends the run.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View or reset the best score
  tilesets  - List embedded terminal tilesets
  render    - Replay a seeded run headlessly and write a PNG

Examples:
  snake play
  snake play --backend tcell --tileset ascii
  snake serve --ssh :2222
  snake render --seed 42 --ticks 30 --turn 5:up --out board.png`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/snake.db", "Path to high score database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(tilesetsCmd)
	rootCmd.AddCommand(renderCmd)
}

// loadConfig resolves the snake config, falling back to defaults with a warning.
func loadConfig() config.SnakeConfig {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// newLogger builds a leveled logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
