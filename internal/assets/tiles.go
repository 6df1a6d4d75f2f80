package assets

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// DefaultTilePx is the edge length of procedurally drawn tiles.
const DefaultTilePx = 16

var (
	bodyColor  = color.RGBA{0x43, 0xa0, 0x47, 0xff}
	headColor  = color.RGBA{0x2e, 0x7d, 0x32, 0xff}
	tailColor  = color.RGBA{0x66, 0xbb, 0x6a, 0xff}
	appleColor = color.RGBA{0xe5, 0x39, 0x35, 0xff}
	eyeColor   = color.RGBA{0x10, 0x10, 0x10, 0xff}
)

// side is a set of cell edges a snake tile connects to.
type side uint8

const (
	sideUp side = 1 << iota
	sideDown
	sideLeft
	sideRight
)

var bodySides = map[snake.SpriteID]side{
	snake.SpriteBodyHorizontal:  sideLeft | sideRight,
	snake.SpriteBodyVertical:    sideUp | sideDown,
	snake.SpriteBodyTopLeft:     sideUp | sideLeft,
	snake.SpriteBodyTopRight:    sideUp | sideRight,
	snake.SpriteBodyBottomLeft:  sideDown | sideLeft,
	snake.SpriteBodyBottomRight: sideDown | sideRight,
}

// Heads and tails connect to the body on the side opposite to where they point.
var (
	headSides = map[snake.SpriteID]side{
		snake.SpriteHeadUp:    sideDown,
		snake.SpriteHeadDown:  sideUp,
		snake.SpriteHeadLeft:  sideRight,
		snake.SpriteHeadRight: sideLeft,
	}
	tailSides = map[snake.SpriteID]side{
		snake.SpriteTailUp:    sideDown,
		snake.SpriteTailDown:  sideUp,
		snake.SpriteTailLeft:  sideRight,
		snake.SpriteTailRight: sideLeft,
	}
)

// Tiles draws every sprite procedurally. It needs no files, so headless
// rendering works without an asset directory.
type Tiles struct {
	Px int // Tile edge in pixels; 0 means DefaultTilePx
}

// Load implements snake.AssetProvider. basePath is ignored.
func (t Tiles) Load(ctx context.Context, _ string, ids []snake.SpriteID) (map[snake.SpriteID]snake.Sprite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	px := t.Px
	if px <= 0 {
		px = DefaultTilePx
	}

	out := make(map[snake.SpriteID]snake.Sprite, len(ids))
	for _, id := range ids {
		img, err := drawTile(id, px)
		if err != nil {
			return nil, err
		}
		out[id] = img
	}
	return out, nil
}

func drawTile(id snake.SpriteID, px int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, px, px))

	if id == snake.SpriteApple {
		fillDisc(img, px/2, px/2, px*3/8, appleColor)
		return img, nil
	}
	if s, ok := bodySides[id]; ok {
		drawPipe(img, s, px/2, bodyColor)
		return img, nil
	}
	if s, ok := headSides[id]; ok {
		drawPipe(img, s, px/2, headColor)
		fillDisc(img, px/2, px/2, px*3/8, headColor)
		fillDisc(img, px/2, px/2, max(1, px/10), eyeColor)
		return img, nil
	}
	if s, ok := tailSides[id]; ok {
		drawPipe(img, s, px/4, tailColor)
		return img, nil
	}
	return nil, fmt.Errorf("assets: no tile for %s", id)
}

// drawPipe fills a centred square of width w and extends it to each connected edge.
func drawPipe(img *image.RGBA, s side, w int, c color.Color) {
	px := img.Bounds().Dx()
	lo, hi := (px-w)/2, (px+w)/2
	src := image.NewUniform(c)

	draw.Draw(img, image.Rect(lo, lo, hi, hi), src, image.Point{}, draw.Src)
	if s&sideUp != 0 {
		draw.Draw(img, image.Rect(lo, 0, hi, hi), src, image.Point{}, draw.Src)
	}
	if s&sideDown != 0 {
		draw.Draw(img, image.Rect(lo, lo, hi, px), src, image.Point{}, draw.Src)
	}
	if s&sideLeft != 0 {
		draw.Draw(img, image.Rect(0, lo, hi, hi), src, image.Point{}, draw.Src)
	}
	if s&sideRight != 0 {
		draw.Draw(img, image.Rect(lo, lo, px, hi), src, image.Point{}, draw.Src)
	}
}

func fillDisc(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r && image.Pt(x, y).In(img.Bounds()) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
