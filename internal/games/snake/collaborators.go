package snake

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// HighScoreKey is the persistence slot holding the best score as a decimal string.
const HighScoreKey = "snakeHighScoreV1"

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

// Scheduler invokes one-shot frame callbacks aligned with the display refresh.
// Handles are non-zero.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) uint64
	CancelFrame(id uint64)
}

// InputSource delivers normalized intents. Handlers are called on the goroutine
// that owns the engine. The returned func ends the subscription.
type InputSource interface {
	Subscribe(handler func(core.Intent)) (unsubscribe func())
}

// Sprite is a ready-to-draw handle produced by an AssetProvider and consumed by
// the Surface that understands it (a glyph for terminals, an image for rasters).
type Sprite any

// AssetProvider loads a batch of sprites from a base path. Any single failure
// fails the whole batch.
type AssetProvider interface {
	Load(ctx context.Context, basePath string, ids []SpriteID) (map[SpriteID]Sprite, error)
}

// KeyValueStore is a string-keyed persistence slot. Get returns "" and a nil
// error for a missing key.
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// MaxStore is implemented by stores that can raise an integer value in one
// step. SetMax writes n under key only when it exceeds the stored value and
// returns the value held afterwards.
type MaxStore interface {
	SetMax(key string, n int) (int, error)
}

// Surface is a 2D drawing target addressed in grid cells.
type Surface interface {
	// Clear paints the background over the whole board.
	Clear()
	// DrawSprite draws a sprite into one grid cell.
	DrawSprite(s Sprite, at Cell)
	// Scrim darkens the whole board with a translucent overlay.
	Scrim()
	// DrawTextCentered draws one line of text centered horizontally.
	// line is an offset in text lines from the vertical center (-1 above, 1 below).
	DrawTextCentered(line int, text string)
}

// Fitter is implemented by surfaces whose backing size depends on the layout.
type Fitter interface {
	Fit(gridSize int)
}
