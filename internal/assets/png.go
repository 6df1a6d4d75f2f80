package assets

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// PNG decodes <base>/<id>.png for every sprite concurrently.
// The first failure cancels the remaining loads and fails the batch.
type PNG struct {
	FS fs.FS // nil reads from the OS filesystem
}

// Load implements snake.AssetProvider.
func (p PNG) Load(ctx context.Context, basePath string, ids []snake.SpriteID) (map[snake.SpriteID]snake.Sprite, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	out := make(map[snake.SpriteID]snake.Sprite, len(ids))

	for _, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := p.decode(basePath, string(id)+".png")
			if err != nil {
				return fmt.Errorf("assets: load %s: %w", id, err)
			}
			mu.Lock()
			out[id] = img
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p PNG) decode(basePath, name string) (image.Image, error) {
	var (
		r   io.ReadCloser
		err error
	)
	if p.FS != nil {
		r, err = p.FS.Open(path.Join(basePath, name))
	} else {
		r, err = os.Open(filepath.Join(basePath, name))
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return png.Decode(r)
}
