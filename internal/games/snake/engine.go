// Package snake implements the Snake game engine: a fixed-timestep grid
// simulation with directional sprite rendering, speed progression and a
// persisted best score. All platform concerns (time, frames, input, assets,
// storage, drawing) are injected.
package snake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/frame"
)

// ErrDestroyed is returned by Start after Destroy.
var ErrDestroyed = errors.New("snake: engine destroyed")

// Deps are the collaborators injected into an Engine.
type Deps struct {
	Clock     Clock         // Defaults to the system clock
	Scheduler Scheduler     // Required to run; defaults to an unpumped queue
	Assets    AssetProvider // nil renders the background only
	Store     KeyValueStore // nil disables high score persistence
	Surface   Surface       // nil skips rendering
	Inputs    []InputSource
	Logger    *log.Logger // nil discards
	Seed      int64       // Apple placement seed

	// OnGameOver runs after the game over transition, e.g. to ring a bell.
	OnGameOver func(Snapshot)
}

// Engine owns one snake game. It is not safe for concurrent use: every method
// must be called from the goroutine that pumps the scheduler.
type Engine struct {
	cfg        config.SnakeConfig
	clock      Clock
	scheduler  Scheduler
	store      KeyValueStore
	surface    Surface
	logger     *log.Logger
	rng        *rand.Rand
	onGameOver func(Snapshot)

	state     State
	phase     Phase
	ticks     uint64
	highScore int

	// Fixed-timestep accumulator
	step    time.Duration
	acc     time.Duration
	last    time.Time
	frameID uint64 // 0 when no frame is scheduled

	// Asset batch, published by the loader goroutine closing assetsDone
	assetsDone chan struct{}
	loaded     map[SpriteID]Sprite
	loadErr    error
	cancelLoad context.CancelFunc
	sprites    map[SpriteID]Sprite

	unsubscribe []func()
	destroyed   bool
}

// New creates an engine in the Ready phase. Sprite loading starts immediately
// in the background; Start waits for it.
func New(cfg config.SnakeConfig, deps Deps) *Engine {
	cfg = cfg.Normalize()

	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := deps.Clock
	if clock == nil {
		clock = frame.SystemClock{}
	}
	scheduler := deps.Scheduler
	if scheduler == nil {
		scheduler = frame.NewQueue()
	}

	e := &Engine{
		cfg:        cfg,
		clock:      clock,
		scheduler:  scheduler,
		store:      deps.Store,
		surface:    deps.Surface,
		logger:     logger,
		rng:        rand.New(rand.NewSource(deps.Seed)),
		onGameOver: deps.OnGameOver,
		assetsDone: make(chan struct{}),
	}

	e.highScore = e.readHighScore()
	e.resetState()

	ctx, cancel := context.WithCancel(context.Background())
	e.cancelLoad = cancel
	go e.loadAssets(ctx, deps.Assets)

	for _, in := range deps.Inputs {
		if in == nil {
			continue
		}
		e.unsubscribe = append(e.unsubscribe, in.Subscribe(e.HandleIntent))
	}

	if f, ok := e.surface.(Fitter); ok {
		f.Fit(cfg.Grid.Size)
	}

	return e
}

// Config returns the normalized configuration in use.
func (e *Engine) Config() config.SnakeConfig {
	return e.cfg
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// HighScore returns the best score known to the engine.
func (e *Engine) HighScore() int {
	return e.highScore
}

// loadAssets runs on its own goroutine. Results are written before assetsDone
// closes and only read after it.
func (e *Engine) loadAssets(ctx context.Context, provider AssetProvider) {
	defer close(e.assetsDone)
	if provider == nil {
		return
	}
	sprites, err := provider.Load(ctx, e.cfg.Assets.Path, SpriteIDs)
	if err != nil {
		e.loadErr = fmt.Errorf("snake: load sprites from %s: %w", e.cfg.Assets.Path, err)
		return
	}
	e.loaded = sprites
}

// WaitAssets blocks until the sprite batch finished loading or ctx is done.
// It returns the batch error, if any. Safe to call from any goroutine.
func (e *Engine) WaitAssets(ctx context.Context) error {
	select {
	case <-e.assetsDone:
		return e.loadErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start waits for sprites, then moves Ready or Paused to Running. A finished
// game is reset first. Starting a running engine is a no-op.
func (e *Engine) Start(ctx context.Context) error {
	if e.destroyed {
		return ErrDestroyed
	}
	if err := e.WaitAssets(ctx); err != nil {
		e.logger.Error("cannot start", "error", err)
		return err
	}
	e.adoptSprites()

	if e.phase == PhaseGameOver {
		e.Reset()
	}
	if e.phase == PhaseRunning {
		return nil
	}

	e.phase = PhaseRunning
	e.last = e.clock.Now()
	e.acc = 0
	e.frameID = e.scheduler.RequestFrame(e.Frame)
	e.logger.Debug("running", "speed", e.state.Speed, "step", e.step)
	return nil
}

// Pause halts a running engine. No ticks or renders happen until Start.
func (e *Engine) Pause() {
	if e.phase != PhaseRunning {
		return
	}
	e.cancelFrame()
	e.phase = PhasePaused
	e.logger.Debug("paused", "score", e.state.Score)
}

// TogglePause pauses a running engine and starts any other one, except after
// game over where it does nothing.
func (e *Engine) TogglePause(ctx context.Context) error {
	if e.state.GameOver {
		return nil
	}
	if e.phase == PhaseRunning {
		e.Pause()
		return nil
	}
	return e.Start(ctx)
}

// Reset discards the current run and shows a fresh board in the Ready phase.
func (e *Engine) Reset() {
	e.cancelFrame()
	e.resetState()
	e.phase = PhaseReady
	e.ticks = 0
	e.RefreshSize()
}

// QueueDirection buffers a turn for the next tick. It reports whether the turn
// was accepted: only while running, and never the reverse of the committed or
// already queued direction.
func (e *Engine) QueueDirection(d Direction) bool {
	if e.phase != PhaseRunning || e.state.GameOver {
		return false
	}
	if d.Opposite(e.state.Current) || d.Opposite(e.state.Pending) {
		return false
	}
	e.state.Pending = d
	return true
}

// HandleIntent applies a normalized input intent. Subscribed input sources
// call it; hosts may call it directly.
func (e *Engine) HandleIntent(i core.Intent) {
	switch i {
	case core.IntentUp:
		e.QueueDirection(DirUp)
	case core.IntentDown:
		e.QueueDirection(DirDown)
	case core.IntentLeft:
		e.QueueDirection(DirLeft)
	case core.IntentRight:
		e.QueueDirection(DirRight)
	case core.IntentPause:
		e.Pause()
	case core.IntentPauseToggle:
		if e.state.GameOver {
			return
		}
		if e.phase == PhaseRunning {
			e.Pause()
			return
		}
		e.startIfLoaded()
	case core.IntentRestart:
		if e.phase == PhaseGameOver || e.phase == PhaseReady {
			e.startIfLoaded()
		}
	}
}

// startIfLoaded starts without blocking the input path on sprite loading.
func (e *Engine) startIfLoaded() {
	select {
	case <-e.assetsDone:
	default:
		e.logger.Debug("start ignored while sprites load")
		return
	}
	if err := e.Start(context.Background()); err != nil && !errors.Is(err, ErrDestroyed) {
		e.logger.Warn("start from input failed", "error", err)
	}
}

// RefreshSize refits a layout-dependent surface to the grid and redraws.
// Once sprites have loaded the redraw shows the board even before Start.
func (e *Engine) RefreshSize() {
	if f, ok := e.surface.(Fitter); ok {
		f.Fit(e.cfg.Grid.Size)
	}
	e.adoptSprites()
	e.render()
}

// adoptSprites takes the loaded batch if loading has finished.
func (e *Engine) adoptSprites() {
	select {
	case <-e.assetsDone:
		e.sprites = e.loaded
	default:
	}
}

// Destroy stops the engine for good and tears down every input subscription.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.cancelFrame()
	if e.phase == PhaseRunning {
		e.phase = PhasePaused
	}
	e.cancelLoad()
	for _, unsub := range e.unsubscribe {
		unsub()
	}
	e.unsubscribe = nil
}

// Frame is the scheduler callback. It runs every whole step elapsed since the
// previous frame, then renders exactly once.
func (e *Engine) Frame(now time.Time) {
	if e.phase != PhaseRunning {
		return
	}
	e.frameID = e.scheduler.RequestFrame(e.Frame)

	dt := now.Sub(e.last)
	if dt < 0 {
		dt = 0
	}
	e.last = now
	e.acc += dt

	for e.acc >= e.step && !e.state.GameOver {
		e.tick()
		e.acc -= e.step
	}

	e.render()
}

func (e *Engine) cancelFrame() {
	if e.frameID != 0 {
		e.scheduler.CancelFrame(e.frameID)
		e.frameID = 0
	}
}

func (e *Engine) render() {
	if e.surface == nil {
		return
	}
	Render(e.surface, e.Snapshot(), e.sprites)
}
