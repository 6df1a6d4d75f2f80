package snake

import "fmt"

// Render draws snap onto dst. It clears the board, draws the apple and every
// segment with its resolved sprite, and overlays the final score after game
// over. Without sprites only the background is drawn.
func Render(dst Surface, snap Snapshot, sprites map[SpriteID]Sprite) {
	if dst == nil {
		return
	}
	dst.Clear()
	if len(sprites) == 0 {
		return
	}

	draw := func(id SpriteID, at Cell) {
		if s, ok := sprites[id]; ok {
			dst.DrawSprite(s, at)
		}
	}

	draw(SpriteApple, snap.Apple)

	for i, seg := range snap.Snake {
		id, ok := SegmentSprite(snap.Snake, i, snap.Current)
		if !ok {
			continue
		}
		draw(id, seg)
	}

	if snap.GameOver {
		dst.Scrim()
		dst.DrawTextCentered(-1, "Game Over")
		dst.DrawTextCentered(1, fmt.Sprintf("Score: %d - Best: %d", snap.Score, snap.HighScore))
	}
}
