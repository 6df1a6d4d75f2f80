// Package tui provides the Bubble Tea integration for the snake engine.
// It handles the terminal UI loop, input mapping and frame pumping.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// FrameMsg is sent once per display frame while the engine has a frame pending.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that delivers the next display frame.
func frameCmd(frameRate int) tea.Cmd {
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// assetsMsg reports the end of sprite loading.
type assetsMsg struct {
	err error
}

// waitAssetsCmd blocks off the UI goroutine until the engine's sprites load.
func waitAssetsCmd(ctx context.Context, e *snake.Engine) tea.Cmd {
	return func() tea.Msg {
		return assetsMsg{err: e.WaitAssets(ctx)}
	}
}
