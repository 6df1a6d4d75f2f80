// Package registry provides a global registry of terminal tilesets.
// Tilesets register themselves in init() functions, allowing the CLI and the
// glyph asset provider to discover them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Source returns the raw YAML definition of a tileset.
type Source func() ([]byte, error)

// TilesetInfo contains metadata about a registered tileset.
type TilesetInfo struct {
	ID    string
	Title string
}

var (
	sources = make(map[string]Source)
	titles  = make(map[string]string)
	mu      sync.RWMutex
)

// Register adds a tileset source to the registry.
// Typically called from an init() function.
// Panics if a tileset with the same ID is already registered.
func Register(id, title string, src Source) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := sources[id]; exists {
		panic(fmt.Sprintf("registry: tileset %q already registered", id))
	}

	sources[id] = src
	titles[id] = title
}

// List returns information about all registered tilesets, sorted by ID.
func List() []TilesetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]TilesetInfo, 0, len(sources))
	for id := range sources {
		result = append(result, TilesetInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Open returns the definition of a tileset by its ID.
// Returns an error if the tileset ID is not registered.
func Open(id string) ([]byte, error) {
	mu.RLock()
	src, ok := sources[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown tileset %q", id)
	}

	data, err := src()
	if err != nil {
		return nil, fmt.Errorf("registry: read tileset %q: %w", id, err)
	}
	return data, nil
}

// Exists checks if a tileset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := sources[id]
	return ok
}
