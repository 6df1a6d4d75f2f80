package snake

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/frame"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type memStore struct {
	values map[string]string
	getErr error
	setErr error
	sets   int
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.values[key], nil
}

func (s *memStore) Set(key, value string) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

// maxStore adds an in-place raise to memStore.
type maxStore struct {
	*memStore
}

func (s maxStore) SetMax(key string, n int) (int, error) {
	if s.setErr != nil {
		return 0, s.setErr
	}
	cur, _ := strconv.Atoi(s.values[key])
	if n > cur {
		s.sets++
		s.values[key] = strconv.Itoa(n)
		return n, nil
	}
	return cur, nil
}

// stubAssets hands out each sprite id as its own handle.
type stubAssets struct {
	err error
}

func (a stubAssets) Load(_ context.Context, _ string, ids []SpriteID) (map[SpriteID]Sprite, error) {
	if a.err != nil {
		return nil, a.err
	}
	out := make(map[SpriteID]Sprite, len(ids))
	for _, id := range ids {
		out[id] = id
	}
	return out, nil
}

// blockingAssets never finishes until its context is cancelled.
type blockingAssets struct{}

func (blockingAssets) Load(ctx context.Context, _ string, _ []SpriteID) (map[SpriteID]Sprite, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type recordingSurface struct {
	clears  int
	scrims  int
	fits    []int
	sprites map[Cell]Sprite
	lines   map[int]string
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{sprites: make(map[Cell]Sprite), lines: make(map[int]string)}
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.sprites = make(map[Cell]Sprite)
	s.lines = make(map[int]string)
}

func (s *recordingSurface) DrawSprite(sp Sprite, at Cell) { s.sprites[at] = sp }
func (s *recordingSurface) Scrim()                        { s.scrims++ }
func (s *recordingSurface) DrawTextCentered(line int, text string) {
	s.lines[line] = text
}
func (s *recordingSurface) Fit(gridSize int) { s.fits = append(s.fits, gridSize) }

type fakeInput struct {
	core.Dispatcher
	unsubscribed int
}

func (f *fakeInput) Subscribe(handler func(core.Intent)) func() {
	unsub := f.Dispatcher.Subscribe(handler)
	return func() {
		f.unsubscribed++
		unsub()
	}
}

type harness struct {
	engine  *Engine
	clock   *frame.ManualClock
	queue   *frame.Queue
	surface *recordingSurface
	store   *memStore
}

// newHarness builds an engine on manual time. Zero-valued deps get working fakes.
func newHarness(t *testing.T, cfg config.SnakeConfig, deps Deps) *harness {
	t.Helper()
	h := &harness{
		clock:   frame.NewManualClock(epoch),
		queue:   frame.NewQueue(),
		surface: newRecordingSurface(),
		store:   newMemStore(),
	}
	deps.Clock = h.clock
	deps.Scheduler = h.queue
	if deps.Assets == nil {
		deps.Assets = stubAssets{}
	}
	if deps.Store == nil {
		deps.Store = h.store
	} else if s, ok := deps.Store.(*memStore); ok {
		h.store = s
	}
	deps.Surface = h.surface
	h.engine = New(cfg, deps)
	t.Cleanup(h.engine.Destroy)
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	if err := h.engine.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
}

// advance moves time forward and delivers one display frame.
func (h *harness) advance(d time.Duration) {
	h.queue.Fire(h.clock.Advance(d))
}

// step advances exactly one tick interval at the current speed.
func (h *harness) step() {
	h.advance(h.engine.step)
}

func TestNewEngineInitialState(t *testing.T) {
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{Seed: 1})
	snap := h.engine.Snapshot()

	want := []Cell{{X: 9, Y: 10}, {X: 8, Y: 10}, {X: 7, Y: 10}}
	if !reflect.DeepEqual(snap.Snake, want) {
		t.Errorf("Snake = %v, expected %v", snap.Snake, want)
	}
	if snap.Phase != PhaseReady {
		t.Errorf("Phase = %v, expected ready", snap.Phase)
	}
	if snap.Current != DirRight || snap.Pending != DirRight {
		t.Errorf("direction = %v/%v, expected right/right", snap.Current, snap.Pending)
	}
	if snap.Speed != 8 || snap.Step != 125*time.Millisecond {
		t.Errorf("Speed = %d Step = %v, expected 8 and 125ms", snap.Speed, snap.Step)
	}
	for _, c := range snap.Snake {
		if c == snap.Apple {
			t.Errorf("apple %v placed on the snake", snap.Apple)
		}
	}
	if len(h.surface.fits) != 1 || h.surface.fits[0] != 20 {
		t.Errorf("surface fits = %v, expected [20]", h.surface.fits)
	}
}

func TestZeroConfigRunsAtDefaultSpeeds(t *testing.T) {
	h := newHarness(t, config.SnakeConfig{}, Deps{})

	if got := h.engine.Config(); got != config.DefaultSnakeConfig() {
		t.Errorf("Config() = %+v, expected defaults", got)
	}
	snap := h.engine.Snapshot()
	if snap.Speed != config.DefaultInitialSpeed || snap.Step != time.Second/config.DefaultInitialSpeed {
		t.Errorf("Speed = %d Step = %v, expected %d and %v",
			snap.Speed, snap.Step, config.DefaultInitialSpeed, time.Second/config.DefaultInitialSpeed)
	}

	h.engine.state.Score = config.DefaultStepEvery
	h.engine.maybeSpeedUp()
	if h.engine.state.Speed != config.DefaultInitialSpeed+1 {
		t.Errorf("Speed = %d after %d apples, expected %d",
			h.engine.state.Speed, config.DefaultStepEvery, config.DefaultInitialSpeed+1)
	}
}

func TestStartRunsOnFrames(t *testing.T) {
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{})
	h.start(t)

	if h.engine.Phase() != PhaseRunning {
		t.Fatalf("Phase = %v, expected running", h.engine.Phase())
	}
	if !h.queue.Pending() {
		t.Fatal("Start should request a frame")
	}

	// Starting twice is a no-op
	h.start(t)
	if h.queue.Fire(h.clock.Now()) != 1 {
		t.Error("second Start should not schedule another frame")
	}
}

func TestFrameTicksPerElapsedStepAndRendersOnce(t *testing.T) {
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{})
	h.engine.state.Apple = Cell{X: 0, Y: 0}
	h.start(t)

	clears := h.surface.clears
	h.advance(3*h.engine.step + 10*time.Millisecond)

	if h.engine.ticks != 3 {
		t.Errorf("ticks = %d, expected 3", h.engine.ticks)
	}
	if h.surface.clears != clears+1 {
		t.Errorf("frame rendered %d times, expected once", h.surface.clears-clears)
	}
	if h.engine.acc != 10*time.Millisecond {
		t.Errorf("accumulator = %v, expected 10ms carried over", h.engine.acc)
	}

	// Short frames only accumulate
	h.advance(100 * time.Millisecond)
	if h.engine.ticks != 3 {
		t.Errorf("ticks = %d after 110ms accumulated, expected 3", h.engine.ticks)
	}
	h.advance(15 * time.Millisecond)
	if h.engine.ticks != 4 {
		t.Errorf("ticks = %d after a full step accumulated, expected 4", h.engine.ticks)
	}
}

func TestPauseIsIdempotent(t *testing.T) {
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{})
	h.engine.state.Apple = Cell{X: 0, Y: 0}
	h.start(t)
	h.step()

	h.engine.Pause()
	once := h.engine.Snapshot()
	h.engine.Pause()
	twice := h.engine.Snapshot()

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second Pause changed state:\n%+v\n%+v", once, twice)
	}
	if h.engine.Phase() != PhasePaused {
		t.Errorf("Phase = %v, expected paused", h.engine.Phase())
	}
	if h.queue.Pending() {
		t.Error("paused engine should not have a scheduled frame")
	}

	clears := h.surface.clears
	h.advance(10 * time.Second)
	if h.engine.ticks != once.Tick || h.surface.clears != clears {
		t.Error("paused engine ticked or rendered")
	}
}

func TestResumeDoesNotCatchUp(t *testing.T) {
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{})
	h.engine.state.Apple = Cell{X: 0, Y: 0}
	h.start(t)
	h.engine.Pause()

	h.clock.Advance(time.Hour)
	h.start(t)
	h.queue.Fire(h.clock.Now())

	if h.engine.ticks != 0 {
		t.Errorf("ticks = %d after resume, expected 0", h.engine.ticks)
	}
}

func TestTogglePause(t *testing.T) {
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{})
	ctx := context.Background()

	if err := h.engine.TogglePause(ctx); err != nil {
		t.Fatal(err)
	}
	if h.engine.Phase() != PhaseRunning {
		t.Fatalf("Phase = %v, expected running", h.engine.Phase())
	}
	if err := h.engine.TogglePause(ctx); err != nil {
		t.Fatal(err)
	}
	if h.engine.Phase() != PhasePaused {
		t.Fatalf("Phase = %v, expected paused", h.engine.Phase())
	}

	h.engine.endGame("test", Cell{})
	if err := h.engine.TogglePause(ctx); err != nil {
		t.Fatal(err)
	}
	if h.engine.Phase() != PhaseGameOver {
		t.Errorf("TogglePause after game over moved to %v", h.engine.Phase())
	}
}

func TestResetRestoresCanonicalStateAndRenders(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Size = 12
	h := newHarness(t, cfg, Deps{})
	h.engine.state.Apple = Cell{X: 0, Y: 0}
	h.start(t)
	h.step()
	h.engine.state.Score = 4

	clears := h.surface.clears
	h.engine.Reset()
	snap := h.engine.Snapshot()

	want := []Cell{{X: 5, Y: 6}, {X: 4, Y: 6}, {X: 3, Y: 6}}
	if !reflect.DeepEqual(snap.Snake, want) {
		t.Errorf("Snake = %v, expected %v", snap.Snake, want)
	}
	if snap.Phase != PhaseReady || snap.Score != 0 || snap.GameOver || snap.Tick != 0 {
		t.Errorf("unexpected state after Reset: %+v", snap)
	}
	if h.queue.Pending() {
		t.Error("Reset should cancel the scheduled frame")
	}
	if h.surface.clears != clears+1 {
		t.Errorf("Reset rendered %d times, expected once", h.surface.clears-clears)
	}
}

func TestStartAfterGameOverResets(t *testing.T) {
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{})
	h.start(t)
	h.engine.state.Score = 2
	h.engine.endGame("test", Cell{})

	h.start(t)
	snap := h.engine.Snapshot()
	if snap.Phase != PhaseRunning || snap.GameOver || snap.Score != 0 {
		t.Errorf("Start after game over should reset and run, got %+v", snap)
	}
	if snap.HighScore != 2 {
		t.Errorf("HighScore = %d, expected 2 to survive the reset", snap.HighScore)
	}
}

func TestStartSurfacesAssetFailure(t *testing.T) {
	boom := errors.New("missing head_up.png")
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{Assets: stubAssets{err: boom}})

	err := h.engine.Start(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Start() error = %v, expected to wrap %v", err, boom)
	}
	if h.engine.Phase() != PhaseReady || h.queue.Pending() {
		t.Error("failed Start should leave the engine idle")
	}
}

func TestStartHonoursContext(t *testing.T) {
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{Assets: blockingAssets{}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.engine.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, expected context.Canceled", err)
	}
}

func TestStartWithoutAssetsRendersBackgroundOnly(t *testing.T) {
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{Assets: stubAssets{}})
	if err := h.engine.WaitAssets(context.Background()); err != nil {
		t.Fatal(err)
	}
	h.engine.loaded = nil
	h.start(t)
	h.step()

	if len(h.surface.sprites) != 0 {
		t.Errorf("drew %d sprites without a sprite set", len(h.surface.sprites))
	}
}

func TestRefreshSizeShowsBoardOnceLoaded(t *testing.T) {
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{})
	if err := h.engine.WaitAssets(context.Background()); err != nil {
		t.Fatal(err)
	}
	h.engine.RefreshSize()

	if h.engine.Phase() != PhaseReady {
		t.Fatalf("phase = %v, expected ready", h.engine.Phase())
	}
	if got := h.surface.sprites[Cell{X: 9, Y: 10}]; got != Sprite(SpriteHeadRight) {
		t.Errorf("head sprite = %v, expected %v", got, SpriteHeadRight)
	}
}

func TestDestroyTearsDownInputs(t *testing.T) {
	keys, pad := &fakeInput{}, &fakeInput{}
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{Inputs: []InputSource{keys, pad}})
	h.start(t)

	h.engine.Destroy()
	h.engine.Destroy()

	if keys.unsubscribed != 1 || pad.unsubscribed != 1 {
		t.Errorf("unsubscribed %d/%d times, expected exactly once each", keys.unsubscribed, pad.unsubscribed)
	}
	if keys.Subscribers() != 0 || pad.Subscribers() != 0 {
		t.Error("handlers still subscribed after Destroy")
	}
	if h.queue.Pending() {
		t.Error("Destroy should cancel the scheduled frame")
	}
	if err := h.engine.Start(context.Background()); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Start() after Destroy = %v, expected ErrDestroyed", err)
	}
}

func TestIntentsFromInputSource(t *testing.T) {
	in := &fakeInput{}
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{Inputs: []InputSource{in}})
	if err := h.engine.WaitAssets(context.Background()); err != nil {
		t.Fatal(err)
	}

	in.Dispatch(core.IntentPauseToggle)
	if h.engine.Phase() != PhaseRunning {
		t.Fatalf("pause toggle from ready should start, got %v", h.engine.Phase())
	}

	in.Dispatch(core.IntentUp)
	if h.engine.state.Pending != DirUp {
		t.Errorf("Pending = %v, expected up", h.engine.state.Pending)
	}

	in.Dispatch(core.IntentPause)
	if h.engine.Phase() != PhasePaused {
		t.Errorf("focus loss should pause, got %v", h.engine.Phase())
	}
	in.Dispatch(core.IntentPause)
	if h.engine.Phase() != PhasePaused {
		t.Errorf("second focus loss should keep paused, got %v", h.engine.Phase())
	}

	// Restart only applies to ready and finished runs
	in.Dispatch(core.IntentRestart)
	if h.engine.Phase() != PhasePaused {
		t.Errorf("restart while paused should be ignored, got %v", h.engine.Phase())
	}

	in.Dispatch(core.IntentPauseToggle)
	h.engine.endGame("test", Cell{})
	in.Dispatch(core.IntentPauseToggle)
	if h.engine.Phase() != PhaseGameOver {
		t.Errorf("pause toggle after game over should be ignored, got %v", h.engine.Phase())
	}
	in.Dispatch(core.IntentRestart)
	if h.engine.Phase() != PhaseRunning || h.engine.state.GameOver {
		t.Errorf("restart after game over should run a fresh game, got %v", h.engine.Phase())
	}
}

func TestPauseToggleIgnoredWhileAssetsLoad(t *testing.T) {
	in := &fakeInput{}
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{Assets: blockingAssets{}, Inputs: []InputSource{in}})

	in.Dispatch(core.IntentPauseToggle)
	if h.engine.Phase() != PhaseReady {
		t.Errorf("Phase = %v, expected ready until sprites load", h.engine.Phase())
	}
}

func TestHighScoreRead(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		getErr   error
		expected int
	}{
		{name: "missing", stored: "", expected: 0},
		{name: "valid", stored: "17", expected: 17},
		{name: "padded", stored: " 5\n", expected: 5},
		{name: "non-numeric", stored: "lots", expected: 0},
		{name: "negative", stored: "-3", expected: 0},
		{name: "store error", getErr: errors.New("storage disabled"), expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			store.getErr = tc.getErr
			if tc.stored != "" {
				store.values[HighScoreKey] = tc.stored
			}
			h := newHarness(t, config.DefaultSnakeConfig(), Deps{Store: store})
			if got := h.engine.HighScore(); got != tc.expected {
				t.Errorf("HighScore() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestHighScoreOnlyWrittenWhenBeaten(t *testing.T) {
	store := newMemStore()
	store.values[HighScoreKey] = "10"
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{Store: store})
	h.start(t)

	h.engine.state.Score = 4
	h.engine.endGame("test", Cell{})
	if store.sets != 0 || store.values[HighScoreKey] != "10" {
		t.Errorf("lower score written: sets=%d value=%q", store.sets, store.values[HighScoreKey])
	}

	h.start(t)
	h.engine.state.Score = 11
	h.engine.endGame("test", Cell{})
	if store.values[HighScoreKey] != "11" {
		t.Errorf("stored high score = %q, expected 11", store.values[HighScoreKey])
	}
}

func TestHighScoreWriteFailureIgnored(t *testing.T) {
	store := newMemStore()
	store.setErr = errors.New("quota exceeded")
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{Store: store})
	h.start(t)

	h.engine.state.Score = 3
	h.engine.endGame("test", Cell{})

	if store.sets != 1 {
		t.Errorf("Set called %d times, expected 1", store.sets)
	}
	if h.engine.HighScore() != 3 {
		t.Errorf("HighScore() = %d, expected in-memory best 3", h.engine.HighScore())
	}
}

func TestSharedStoreNeverLowersBest(t *testing.T) {
	tests := []struct {
		name  string
		store func(*memStore) KeyValueStore
	}{
		{name: "get and set", store: func(m *memStore) KeyValueStore { return m }},
		{name: "set max", store: func(m *memStore) KeyValueStore { return maxStore{m} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mem := newMemStore()
			mem.values[HighScoreKey] = "5"
			store := tc.store(mem)

			a := newHarness(t, config.DefaultSnakeConfig(), Deps{Store: store})
			b := newHarness(t, config.DefaultSnakeConfig(), Deps{Store: store})
			a.start(t)
			b.start(t)

			a.engine.state.Score = 10
			a.engine.endGame("test", Cell{})
			b.engine.state.Score = 7
			b.engine.endGame("test", Cell{})

			if got := mem.values[HighScoreKey]; got != "10" {
				t.Errorf("stored best = %q, expected 10", got)
			}
			if mem.sets != 1 {
				t.Errorf("store written %d times, expected 1", mem.sets)
			}
			if got := b.engine.HighScore(); got != 10 {
				t.Errorf("second engine HighScore() = %d, expected stored 10", got)
			}
			if got := b.engine.Snapshot().HighScore; got != 10 {
				t.Errorf("second engine snapshot best = %d, expected 10", got)
			}
		})
	}
}

func TestSetMaxFailureKeepsInMemoryBest(t *testing.T) {
	mem := newMemStore()
	mem.setErr = errors.New("disk full")
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{Store: maxStore{mem}})
	h.start(t)

	h.engine.state.Score = 4
	h.engine.endGame("test", Cell{})
	if h.engine.HighScore() != 4 {
		t.Errorf("HighScore() = %d, expected 4", h.engine.HighScore())
	}
}

func TestNilStoreDisablesPersistence(t *testing.T) {
	e := New(config.DefaultSnakeConfig(), Deps{Clock: frame.NewManualClock(epoch), Scheduler: frame.NewQueue()})
	defer e.Destroy()

	e.state.Score = 9
	e.endGame("test", Cell{})
	if e.HighScore() != 9 {
		t.Errorf("HighScore() = %d, expected 9", e.HighScore())
	}
}

func TestOnGameOverHook(t *testing.T) {
	var got []Snapshot
	h := newHarness(t, config.DefaultSnakeConfig(), Deps{
		OnGameOver: func(s Snapshot) { got = append(got, s) },
	})
	h.start(t)
	h.engine.state.Score = 6
	h.engine.endGame("test", Cell{})

	if len(got) != 1 {
		t.Fatalf("hook fired %d times, expected 1", len(got))
	}
	if !got[0].GameOver || got[0].Score != 6 || got[0].HighScore != 6 {
		t.Errorf("hook snapshot = %+v", got[0])
	}
}
