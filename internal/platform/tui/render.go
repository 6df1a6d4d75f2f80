package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	statStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	statusStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// styleFor maps a core.Color to a lipgloss foreground style.
func styleFor(c core.Color) lipgloss.Style {
	code := c.ANSI()
	if code < 0 {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(code)))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}

// speedBarWidth is the number of segments in the HUD speed gauge.
const speedBarWidth = 6

// RenderHUD draws the one-line status bar above the board.
func RenderHUD(snap snake.Snapshot, speed config.SpeedConfig) string {
	stats := fmt.Sprintf("Score %d  Best %d  Speed %d", snap.Score, snap.HighScore, snap.Speed)
	return titleStyle.Render("SNAKE") + "  " +
		statStyle.Render(stats) + " " +
		titleStyle.Render(speedBar(speed.Level(snap.Speed), speedBarWidth)) + "  " +
		statusStyle.Render(statusLine(snap.Phase))
}

// speedBar draws level (0.0 to 1.0) as a segmented gauge.
func speedBar(level float64, width int) string {
	filled := int(math.Round(level * float64(width)))
	filled = core.Clamp(filled, 0, width)
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

func statusLine(p snake.Phase) string {
	switch p {
	case snake.PhaseReady:
		return "space or arrows to start"
	case snake.PhasePaused:
		return "paused"
	case snake.PhaseGameOver:
		return "r to play again"
	default:
		return ""
	}
}
