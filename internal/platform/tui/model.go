package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/frame"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render"
)

// Options configures one game session.
type Options struct {
	Config  config.SnakeConfig
	Runtime core.RuntimeConfig
	Assets  snake.AssetProvider
	Store   snake.KeyValueStore // May be nil
	Logger  *log.Logger
}

// Model is the Bubble Tea model for one snake session.
// The engine owns the game; the model pumps its frame queue and forwards input.
type Model struct {
	ctx     context.Context
	engine  *snake.Engine
	surface *render.ScreenSurface
	queue   *frame.Queue
	input   *TeaInput
	keys    KeyMap
	help    help.Model
	pad     DPad

	frameRate int
	pumping   bool // A FrameMsg is in flight
	ready     bool // Sprites loaded
	quitting  bool
	err       error
}

// NewModel builds a session and its engine. Sprite loading starts immediately.
func NewModel(ctx context.Context, opts Options) Model {
	cfg := opts.Config.Normalize()
	rt := opts.Runtime
	if rt.FrameRate <= 0 {
		rt.FrameRate = core.DefaultConfig().FrameRate
	}
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	surface := render.NewScreenSurface(cfg.Grid.Size)
	queue := frame.NewQueue()
	keys := DefaultKeyMap()

	// HUD on row 0, board below it, then a blank row and the pad
	boardW := cfg.Grid.Size*render.CellCols + 2
	boardH := cfg.Grid.Size + 2
	pad := NewDPad(max(0, (boardW-PadWidth)/2), boardH+2)
	input := NewTeaInput(keys, pad)

	engine := snake.New(cfg, snake.Deps{
		Clock:     frame.SystemClock{},
		Scheduler: queue,
		Assets:    opts.Assets,
		Store:     opts.Store,
		Surface:   surface,
		Inputs:    []snake.InputSource{input},
		Logger:    opts.Logger,
		Seed:      rt.Seed,
	})

	return Model{
		ctx:       ctx,
		engine:    engine,
		surface:   surface,
		queue:     queue,
		input:     input,
		keys:      keys,
		help:      help.New(),
		pad:       pad,
		frameRate: rt.FrameRate,
	}
}

// Engine exposes the session's engine.
func (m Model) Engine() *snake.Engine {
	return m.engine
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Init waits for sprites off the UI goroutine.
func (m Model) Init() tea.Cmd {
	return waitAssetsCmd(m.ctx, m.engine)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case assetsMsg:
		return m.handleAssets(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.deliver(m.input.MouseIntent(msg))

	case tea.BlurMsg:
		return m.deliver(core.IntentPause)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.engine.RefreshSize()
		return m, nil

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

func (m Model) handleAssets(msg assetsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = fmt.Errorf("load sprites: %w", msg.err)
		m.quitting = true
		m.engine.Destroy()
		return m, tea.Quit
	}
	m.ready = true
	m.engine.RefreshSize()
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}
	return m.deliver(m.input.KeyIntent(msg))
}

// deliver routes an intent to the engine and starts frame pumping if the
// engine asked for a frame.
func (m Model) deliver(i core.Intent) (tea.Model, tea.Cmd) {
	if i == core.IntentQuit {
		m.quitting = true
		m.engine.Destroy()
		return m, tea.Quit
	}
	if !m.ready || i == core.IntentNone {
		return m, nil
	}

	// A direction on the ready screen starts the run before steering it
	if i.IsDirection() && m.engine.Phase() == snake.PhaseReady {
		if err := m.engine.Start(m.ctx); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
	}
	m.input.Dispatch(i)

	return m.pump()
}

func (m Model) pump() (tea.Model, tea.Cmd) {
	if m.pumping || !m.queue.Pending() {
		return m, nil
	}
	m.pumping = true
	return m, frameCmd(m.frameRate)
}

// handleFrame fires the engine's pending frame and keeps pumping while it
// requests more.
func (m Model) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	m.pumping = false
	m.queue.Fire(time.Time(msg))
	return m.pump()
}

// saveScreenshot saves the current board to a text file.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("snake_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.surface.Screen().String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}
	if m.quitting {
		return ""
	}
	if !m.ready {
		return statusStyle.Render("Loading sprites...")
	}

	pad := lipgloss.NewStyle().MarginLeft(m.pad.X).Render(m.pad.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderHUD(m.engine.Snapshot(), m.engine.Config().Speed),
		RenderScreen(m.surface.Screen()),
		"",
		pad,
		"",
		m.help.View(m.keys),
	)
}

// Run starts the Bubble Tea program for a local session.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(ctx, opts)

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // D-pad clicks
		tea.WithReportFocus(),     // Pause on blur
	)

	final, err := p.Run()
	model.engine.Destroy()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// errorView renders a fatal session error for SSH clients.
func errorView(err error) string {
	return errorStyle.Render("snake: " + err.Error())
}
