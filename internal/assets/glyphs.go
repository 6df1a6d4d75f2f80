// Package assets provides the sprite loaders used by the snake engine:
// two-column glyphs for terminals, decoded PNG files and procedurally drawn
// raster tiles for headless rendering.
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// GlyphFile is the file name a custom tileset is read from under the asset path.
const GlyphFile = "glyphs.yaml"

//go:embed tilesets/*.yaml
var embedded embed.FS

func init() {
	registerEmbedded("box", "Box drawing")
	registerEmbedded("ascii", "Plain ASCII")
}

func registerEmbedded(id, title string) {
	registry.Register(id, title, func() ([]byte, error) {
		return embedded.ReadFile("tilesets/" + id + ".yaml")
	})
}

// Glyph is a terminal sprite: exactly two runes filling one grid cell.
type Glyph struct {
	Runes [2]rune
	Color core.Color
}

func (g Glyph) String() string {
	return string(g.Runes[:])
}

// Tileset is a parsed glyph definition file.
type Tileset struct {
	Title  string
	Glyphs map[snake.SpriteID]Glyph
}

type tilesetFile struct {
	Title   string                `yaml:"title"`
	Sprites map[string]glyphEntry `yaml:"sprites"`
}

type glyphEntry struct {
	Text  string `yaml:"text"`
	Color string `yaml:"color"`
}

// ParseTileset decodes a tileset YAML document. One-rune glyphs are padded
// with a space; longer ones are rejected.
func ParseTileset(data []byte) (Tileset, error) {
	var raw tilesetFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Tileset{}, fmt.Errorf("assets: parse tileset: %w", err)
	}

	ts := Tileset{Title: raw.Title, Glyphs: make(map[snake.SpriteID]Glyph, len(raw.Sprites))}
	for name, entry := range raw.Sprites {
		g, err := parseGlyph(entry)
		if err != nil {
			return Tileset{}, fmt.Errorf("assets: sprite %q: %w", name, err)
		}
		ts.Glyphs[snake.SpriteID(name)] = g
	}
	return ts, nil
}

func parseGlyph(e glyphEntry) (Glyph, error) {
	color, err := core.ParseColor(e.Color)
	if err != nil {
		return Glyph{}, err
	}

	g := Glyph{Runes: [2]rune{' ', ' '}, Color: color}
	switch n := utf8.RuneCountInString(e.Text); {
	case n == 0:
		return Glyph{}, errors.New("empty glyph")
	case n > 2:
		return Glyph{}, fmt.Errorf("glyph %q wider than two columns", e.Text)
	}
	i := 0
	for _, r := range e.Text {
		g.Runes[i] = r
		i++
	}
	return g, nil
}

// Glyphs loads terminal sprites. A glyphs.yaml under the base path wins over
// the embedded tileset named by Tileset.
type Glyphs struct {
	Tileset string
}

// Load implements snake.AssetProvider.
func (g Glyphs) Load(ctx context.Context, basePath string, ids []snake.SpriteID) (map[snake.SpriteID]snake.Sprite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(basePath, GlyphFile))
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		data, err = registry.Open(g.Tileset)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("assets: read %s: %w", GlyphFile, err)
	}

	ts, err := ParseTileset(data)
	if err != nil {
		return nil, err
	}

	out := make(map[snake.SpriteID]snake.Sprite, len(ids))
	for _, id := range ids {
		glyph, ok := ts.Glyphs[id]
		if !ok {
			return nil, fmt.Errorf("assets: tileset %q has no glyph for %s", ts.Title, id)
		}
		out[id] = glyph
	}
	return out, nil
}
