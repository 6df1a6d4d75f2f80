// Package render provides the drawing surfaces the snake engine renders to:
// a character grid for terminals and an RGBA raster for image output.
package render

import (
	"github.com/vovakirdan/tui-snake/internal/assets"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// CellCols is the number of terminal columns one grid cell occupies.
// Terminal cells are about twice as tall as wide, so two columns keep the board square.
const CellCols = 2

// ScreenSurface draws the board onto a core.Screen inside a one-character border.
// Sprites must be assets.Glyph values; anything else is skipped.
type ScreenSurface struct {
	screen *core.Screen
	grid   int

	Border core.Color
	Text   core.Color
}

// NewScreenSurface creates a surface sized for gridSize.
func NewScreenSurface(gridSize int) *ScreenSurface {
	s := &ScreenSurface{
		screen: core.NewScreen(0, 0),
		Border: core.ColorGreen,
		Text:   core.ColorBrightWhite,
	}
	s.Fit(gridSize)
	return s
}

// Fit resizes the screen to the board plus its border.
func (s *ScreenSurface) Fit(gridSize int) {
	s.grid = gridSize
	s.screen.Resize(gridSize*CellCols+2, gridSize+2)
}

// Screen returns the backing buffer.
func (s *ScreenSurface) Screen() *core.Screen {
	return s.screen
}

// Clear blanks the board and redraws the border.
func (s *ScreenSurface) Clear() {
	s.screen.Clear()
	s.screen.DrawBox(core.NewRect(0, 0, s.screen.Width(), s.screen.Height()), s.Border)
}

// DrawSprite writes a glyph's two runes into the cell at.
func (s *ScreenSurface) DrawSprite(sp snake.Sprite, at snake.Cell) {
	g, ok := sp.(assets.Glyph)
	if !ok || at.X < 0 || at.Y < 0 || at.X >= s.grid || at.Y >= s.grid {
		return
	}
	x, y := 1+at.X*CellCols, 1+at.Y
	s.screen.SetCell(x, y, g.Runes[0], g.Color)
	s.screen.SetCell(x+1, y, g.Runes[1], g.Color)
}

// Scrim dims everything drawn so far.
func (s *ScreenSurface) Scrim() {
	s.screen.Dim()
}

// DrawTextCentered writes text centered on the board, line rows from the middle.
func (s *ScreenSurface) DrawTextCentered(line int, text string) {
	s.screen.DrawTextCentered(1+s.grid/2+line, text, s.Text)
}
