// Package console runs the snake engine directly on a tcell screen.
// It is the lightweight alternative to the Bubble Tea front end: a ticker
// select loop drives the frame queue and the terminal bell marks game over.
package console

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/frame"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render"
)

// Options configures a console session.
type Options struct {
	Config  config.SnakeConfig
	Runtime core.RuntimeConfig
	Assets  snake.AssetProvider
	Store   snake.KeyValueStore // May be nil
	Logger  *log.Logger
}

// Input is the engine's input source for tcell events.
type Input struct {
	core.Dispatcher
}

// KeyIntent maps a tcell key event to an intent.
func KeyIntent(ev *tcell.EventKey) core.Intent {
	switch ev.Key() {
	case tcell.KeyUp:
		return core.IntentUp
	case tcell.KeyDown:
		return core.IntentDown
	case tcell.KeyLeft:
		return core.IntentLeft
	case tcell.KeyRight:
		return core.IntentRight
	case tcell.KeyEnter:
		return core.IntentRestart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return core.IntentQuit
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'w', 'z':
			return core.IntentUp
		case 's':
			return core.IntentDown
		case 'a', 'q':
			return core.IntentLeft
		case 'd':
			return core.IntentRight
		case ' ':
			return core.IntentPauseToggle
		case 'r':
			return core.IntentRestart
		}
	}
	return core.IntentNone
}

// Console owns a tcell screen and one engine.
type Console struct {
	screen    tcell.Screen
	engine    *snake.Engine
	surface   *render.ScreenSurface
	queue     *frame.Queue
	input     *Input
	logger    *log.Logger
	frameRate int
}

// New wires an engine to an initialized screen. Sprite loading starts immediately.
func New(screen tcell.Screen, opts Options) *Console {
	cfg := opts.Config.Normalize()
	rt := opts.Runtime
	if rt.FrameRate <= 0 {
		rt.FrameRate = core.DefaultConfig().FrameRate
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	c := &Console{
		screen:    screen,
		surface:   render.NewScreenSurface(cfg.Grid.Size),
		queue:     frame.NewQueue(),
		input:     &Input{},
		logger:    logger,
		frameRate: rt.FrameRate,
	}
	c.engine = snake.New(cfg, snake.Deps{
		Clock:      frame.SystemClock{},
		Scheduler:  c.queue,
		Assets:     opts.Assets,
		Store:      opts.Store,
		Surface:    c.surface,
		Inputs:     []snake.InputSource{c.input},
		Logger:     logger,
		Seed:       rt.Seed,
		OnGameOver: c.bell,
	})
	return c
}

// Engine exposes the console's engine.
func (c *Console) Engine() *snake.Engine {
	return c.engine
}

func (c *Console) bell(snake.Snapshot) {
	if err := c.screen.Beep(); err != nil {
		c.logger.Debug("beep failed", "error", err)
	}
}

// Run blocks until the player quits or ctx is done. The caller owns the
// screen's Init and Fini.
func (c *Console) Run(ctx context.Context) error {
	defer c.engine.Destroy()

	if err := c.engine.WaitAssets(ctx); err != nil {
		return fmt.Errorf("load sprites: %w", err)
	}
	c.screen.EnableFocus()
	c.screen.HideCursor()
	c.engine.RefreshSize()
	c.draw()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go c.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(time.Second / time.Duration(c.frameRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if c.queue.Fire(now) > 0 {
				c.draw()
			}
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !c.handleEvent(ctx, ev) {
				return nil
			}
			c.draw()
		}
	}
}

// handleEvent applies one event. It returns false when the player quits.
func (c *Console) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.deliver(ctx, KeyIntent(ev))
	case *tcell.EventFocus:
		if !ev.Focused {
			c.input.Dispatch(core.IntentPause)
		}
	case *tcell.EventResize:
		c.screen.Sync()
		c.engine.RefreshSize()
	}
	return true
}

func (c *Console) deliver(ctx context.Context, i core.Intent) bool {
	if i == core.IntentQuit {
		return false
	}
	// A direction on the ready screen starts the run before steering it
	if i.IsDirection() && c.engine.Phase() == snake.PhaseReady {
		if err := c.engine.Start(ctx); err != nil {
			c.logger.Warn("cannot start", "error", err)
			return true
		}
	}
	c.input.Dispatch(i)
	return true
}

var hudStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)

// draw copies the HUD and the board buffer to the terminal.
func (c *Console) draw() {
	c.screen.Clear()

	snap := c.engine.Snapshot()
	hud := fmt.Sprintf("SNAKE  Score %d  Best %d  Speed %d  [%s]", snap.Score, snap.HighScore, snap.Speed, snap.Phase)
	col := 0
	for _, r := range hud {
		c.screen.SetContent(col, 0, r, nil, hudStyle)
		col++
	}

	board := c.surface.Screen()
	for y := range board.Height() {
		for x := range board.Width() {
			cell := board.GetCell(x, y)
			c.screen.SetContent(x, y+1, cell.Rune, nil, styleFor(cell.Color))
		}
	}
	c.screen.Show()
}

// styleFor maps a core.Color to a tcell style.
func styleFor(color core.Color) tcell.Style {
	code := color.ANSI()
	if code < 0 {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.PaletteColor(code))
}
