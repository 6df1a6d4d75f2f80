package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/assets"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/console"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/render"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagBackend string
	flagTileset string
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Snake in this terminal",
	Long: `Start a game of Snake.

Controls:
  Arrows/WASD/ZQSD  - Steer (a direction also starts the game)
  Space             - Start/Pause
  R/Enter           - Play again after game over
  Esc/Ctrl+C        - Quit
  ?                 - Toggle full help (tea backend)
  Ctrl+S            - Save a text screenshot (tea backend)

The tea backend also shows a clickable d-pad and pauses when the
terminal loses focus.

Backends:
  tea    - Bubble Tea UI with HUD, d-pad and help (default)
  tcell  - Minimal tcell loop that rings the bell on game over

Examples:
  snake play
  snake play --tileset ascii
  snake play --backend tcell
  snake play --config ./my-snake.yaml --log-file /tmp/snake.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "tea", "Terminal backend: tea or tcell")
	playCmd.Flags().StringVar(&flagTileset, "tileset", "", "Embedded tileset id (see 'snake tilesets')")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the game screen hides stderr)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if err := play(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(ctx context.Context) error {
	cfg := loadConfig()
	if flagTileset != "" {
		cfg.Assets.Tileset = flagTileset
	}
	if !registry.Exists(cfg.Assets.Tileset) {
		return fmt.Errorf("unknown tileset %q, run 'snake tilesets' to see available tilesets", cfg.Assets.Tileset)
	}
	if flagBackend != "tea" && flagBackend != "tcell" {
		return fmt.Errorf("unknown backend %q (want tea or tcell)", flagBackend)
	}

	// Get terminal size and warn if the board will not fit
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	needW := cfg.Grid.Size*render.CellCols + 2
	needH := cfg.Grid.Size + 3
	if width < needW || height < needH {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the board needs %dx%d\n", width, height, needW, needH)
	}

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "snake")

	// Open high score storage
	var kv snake.KeyValueStore
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open high score database: %v\n", err)
		// Continue without storage - game still works
	} else {
		defer store.Close()
		kv = store
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		FrameRate: flagFPS,
		Seed:      flagSeed,
	}
	provider := assets.Glyphs{Tileset: cfg.Assets.Tileset}

	if flagBackend == "tcell" {
		return runConsole(ctx, console.Options{
			Config:  cfg,
			Runtime: rt,
			Assets:  provider,
			Store:   kv,
			Logger:  logger,
		})
	}
	return tui.Run(ctx, tui.Options{
		Config:  cfg,
		Runtime: rt,
		Assets:  provider,
		Store:   kv,
		Logger:  logger,
	})
}

func runConsole(ctx context.Context, opts console.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return console.New(screen, opts).Run(ctx)
}
