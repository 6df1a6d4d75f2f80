package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/assets"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/frame"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render"
)

var (
	flagTicks     int
	flagTurns     []string
	flagOut       string
	flagSize      int
	flagDPR       float64
	flagAssetsDir string
	flagTilePx    int
	flagDebug     bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Replay a seeded run headlessly and write the board as PNG",
	Long: `Run the engine on a simulated clock for a number of ticks, applying
scripted turns, then save the final board (with the game over overlay if
the snake died) as a PNG image.

Turns are written tick:direction, where direction is up, down, left or
right (or its first letter). A turn is queued just before that tick runs.

Sprites are drawn procedurally unless --assets points at a directory of
PNG sprites named after their ids (apple.png, head_up.png, ...).

Examples:
  snake render --seed 42 --out board.png
  snake render --seed 7 --ticks 40 --turn 3:up --turn 8:left
  snake render --size 300 --dpr 2 --assets ./images/snake`,
	Args: cobra.NoArgs,
	Run:  runRender,
}

func init() {
	renderCmd.Flags().IntVar(&flagTicks, "ticks", 20, "Maximum number of ticks to simulate")
	renderCmd.Flags().StringArrayVar(&flagTurns, "turn", nil, "Scripted turn as tick:direction (repeatable)")
	renderCmd.Flags().StringVar(&flagOut, "out", "snake.png", "Output PNG path")
	renderCmd.Flags().IntVar(&flagSize, "size", 400, "Display size of the board in pixels")
	renderCmd.Flags().Float64Var(&flagDPR, "dpr", 1, "Device pixel ratio of the backing image")
	renderCmd.Flags().StringVar(&flagAssetsDir, "assets", "", "Directory of PNG sprites (procedural tiles if empty)")
	renderCmd.Flags().IntVar(&flagTilePx, "tile-px", assets.DefaultTilePx, "Procedural tile size in pixels")
	renderCmd.Flags().BoolVar(&flagDebug, "debug", false, "Print the final engine state")
}

// turn is a direction queued before a given tick.
type turn struct {
	tick uint64
	dir  snake.Direction
}

func parseTurn(s string) (turn, error) {
	at, name, ok := strings.Cut(s, ":")
	if !ok {
		return turn{}, fmt.Errorf("turn %q: want tick:direction", s)
	}
	tick, err := strconv.ParseUint(strings.TrimSpace(at), 10, 64)
	if err != nil {
		return turn{}, fmt.Errorf("turn %q: bad tick: %w", s, err)
	}
	dir, err := snake.ParseDirection(name)
	if err != nil {
		return turn{}, fmt.Errorf("turn %q: %w", s, err)
	}
	return turn{tick: tick, dir: dir}, nil
}

// replay drives an engine on a manual clock, one tick per fired frame,
// until ticks have run or the game ends.
func replay(ctx context.Context, e *snake.Engine, clock *frame.ManualClock, queue *frame.Queue, ticks int, turns []turn) (snake.Snapshot, error) {
	if err := e.Start(ctx); err != nil {
		return snake.Snapshot{}, err
	}
	for range ticks {
		snap := e.Snapshot()
		if snap.GameOver {
			break
		}
		for _, t := range turns {
			if t.tick == snap.Tick {
				e.QueueDirection(t.dir)
			}
		}
		queue.Fire(clock.Advance(snap.Step))
	}
	return e.Snapshot(), nil
}

func runRender(cmd *cobra.Command, _ []string) {
	if err := renderPNG(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func renderPNG(ctx context.Context) error {
	logger := newLogger(os.Stderr, "snake-render")

	turns := make([]turn, 0, len(flagTurns))
	for _, s := range flagTurns {
		t, err := parseTurn(s)
		if err != nil {
			return err
		}
		turns = append(turns, t)
	}

	cfg := loadConfig()
	var provider snake.AssetProvider = assets.Tiles{Px: flagTilePx}
	if flagAssetsDir != "" {
		cfg.Assets.Path = flagAssetsDir
		provider = assets.PNG{}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	snap, canvas, err := simulate(ctx, cfg, provider, seed, turns, logger)
	if err != nil {
		return err
	}

	f, err := os.Create(flagOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", flagOut, err)
	}
	if err := canvas.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", flagOut, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("wrote board",
		"path", flagOut,
		"seed", seed,
		"ticks", snap.Tick,
		"score", snap.Score,
		"length", len(snap.Snake),
		"game_over", snap.GameOver,
	)
	return nil
}

// simulate replays a run onto a fresh canvas. High scores are never persisted.
func simulate(ctx context.Context, cfg config.SnakeConfig, provider snake.AssetProvider, seed int64, turns []turn, logger *log.Logger) (snake.Snapshot, *render.Canvas, error) {
	canvas := render.NewCanvas(flagSize, flagDPR)
	clock := frame.NewManualClock(time.Unix(0, 0))
	queue := frame.NewQueue()

	e := snake.New(cfg, snake.Deps{
		Clock:     clock,
		Scheduler: queue,
		Assets:    provider,
		Surface:   canvas,
		Logger:    logger,
		Seed:      seed,
	})
	defer e.Destroy()

	snap, err := replay(ctx, e, clock, queue, flagTicks, turns)
	if err != nil {
		return snake.Snapshot{}, nil, err
	}
	if flagDebug {
		fmt.Print(e.DebugState())
	}
	return snap, canvas, nil
}
