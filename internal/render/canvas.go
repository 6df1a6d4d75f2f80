package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// MinDisplaySize is the smallest layout size a canvas accepts, in display units.
const MinDisplaySize = 100

var (
	Background = color.RGBA{0xe8, 0xff, 0xe1, 0xff}
	ScrimColor = color.RGBA{0, 0, 0, 0xb3} // 70% black
	TextColor  = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

const textLineHeight = 18 // basicfont pixels between centered lines

// Canvas is an RGBA raster surface. Its backing resolution is the display
// size times the pixel ratio, independent of how large it is shown.
// Sprites must implement image.Image; anything else is skipped.
type Canvas struct {
	img     *image.RGBA
	display int
	ratio   float64
	grid    int
	cell    int
}

// NewCanvas creates a canvas for a square display of the given size.
// Sizes below MinDisplaySize are raised; a non-positive ratio means 1.
func NewCanvas(display int, pixelRatio float64) *Canvas {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	c := &Canvas{
		display: max(MinDisplaySize, display),
		ratio:   pixelRatio,
	}
	c.Fit(1)
	return c
}

// Fit reallocates the backing image and derives the cell size for gridSize.
func (c *Canvas) Fit(gridSize int) {
	backing := int(float64(c.display) * c.ratio)
	c.grid = max(1, gridSize)
	c.cell = backing / c.grid
	c.img = image.NewRGBA(image.Rect(0, 0, backing, backing))
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// CellSize returns the edge of one grid cell in backing pixels.
func (c *Canvas) CellSize() int {
	return c.cell
}

// Clear paints the background over the whole canvas.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
}

// DrawSprite scales an image into one grid cell with nearest-neighbour sampling.
func (c *Canvas) DrawSprite(sp snake.Sprite, at snake.Cell) {
	src, ok := sp.(image.Image)
	if !ok {
		return
	}
	dr := image.Rect(at.X*c.cell, at.Y*c.cell, (at.X+1)*c.cell, (at.Y+1)*c.cell)
	draw.NearestNeighbor.Scale(c.img, dr, src, src.Bounds(), draw.Over, nil)
}

// Scrim darkens the whole canvas with a translucent black overlay.
func (c *Canvas) Scrim() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(ScrimColor), image.Point{}, draw.Over)
}

// DrawTextCentered draws text at native font size offscreen, then scales it
// up with the canvas so it stays legible at high pixel ratios.
func (c *Canvas) DrawTextCentered(line int, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	w := d.MeasureString(text).Ceil()
	h := face.Height
	if w == 0 {
		return
	}

	off := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Dst = off
	d.Src = image.NewUniform(TextColor)
	d.Dot = fixed.P(0, face.Ascent)
	d.DrawString(text)

	size := c.img.Bounds().Dx()
	k := max(1, size/(MinDisplaySize*2))
	cx := (size - w*k) / 2
	cy := size/2 + line*textLineHeight*k - h*k/2

	dr := image.Rect(cx, cy, cx+w*k, cy+h*k)
	draw.NearestNeighbor.Scale(c.img, dr, off, off.Bounds(), draw.Over, nil)
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}
