package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Size: DefaultGridSize,
		},
		Speed: SpeedConfig{
			Initial:   DefaultInitialSpeed,
			StepEvery: DefaultStepEvery,
			Max:       DefaultMaxSpeed,
		},
		Assets: AssetsConfig{
			Path:    DefaultAssetsPath,
			Tileset: DefaultTileset,
		},
	}
}
