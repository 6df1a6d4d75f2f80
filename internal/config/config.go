// Package config provides YAML-based configuration loading for the snake engine.
package config

import (
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Limits applied by Normalize.
const (
	MinGridSize     = 8
	DefaultGridSize = 20

	MinInitialSpeed     = 4
	MaxInitialSpeed     = 20
	DefaultInitialSpeed = 8

	MinStepEvery     = 1
	MaxStepEvery     = 10
	DefaultStepEvery = 3

	SpeedCeiling    = 30
	DefaultMaxSpeed = 14

	DefaultAssetsPath = "images/snake/"
	DefaultTileset    = "box"
)

// SnakeConfig contains all construction parameters for the snake engine.
type SnakeConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Speed  SpeedConfig  `yaml:"speed"`
	Assets AssetsConfig `yaml:"assets"`
}

// GridConfig defines the playfield.
type GridConfig struct {
	Size int `yaml:"size"` // Cells per side; 0 means default
}

// SpeedConfig defines movement speed in cells per second and its progression.
type SpeedConfig struct {
	Initial   int `yaml:"initial"`
	StepEvery int `yaml:"step_every"` // Speed up every N apples
	Max       int `yaml:"max"`
}

// AssetsConfig locates sprite assets.
type AssetsConfig struct {
	Path    string `yaml:"path"`    // Base directory for sprite files
	Tileset string `yaml:"tileset"` // Embedded terminal tileset when Path has no glyphs.yaml
}

// Normalize returns a copy with every field clamped into its legal range.
// A zero field means "use default", so SnakeConfig{} normalizes to
// DefaultSnakeConfig(). Negative speeds are clamped like any other value.
func (c SnakeConfig) Normalize() SnakeConfig {
	out := c

	if out.Grid.Size <= 0 {
		out.Grid.Size = DefaultGridSize
	}
	out.Grid.Size = max(MinGridSize, out.Grid.Size)

	if out.Speed.Initial == 0 {
		out.Speed.Initial = DefaultInitialSpeed
	}
	if out.Speed.StepEvery == 0 {
		out.Speed.StepEvery = DefaultStepEvery
	}
	if out.Speed.Max == 0 {
		out.Speed.Max = DefaultMaxSpeed
	}

	out.Speed.Initial = core.Clamp(out.Speed.Initial, MinInitialSpeed, MaxInitialSpeed)
	out.Speed.StepEvery = core.Clamp(out.Speed.StepEvery, MinStepEvery, MaxStepEvery)
	out.Speed.Max = core.Clamp(out.Speed.Max, out.Speed.Initial, SpeedCeiling)

	if out.Assets.Path == "" {
		out.Assets.Path = DefaultAssetsPath
	}
	out.Assets.Path = strings.ReplaceAll(out.Assets.Path, `\`, "/")
	if out.Assets.Tileset == "" {
		out.Assets.Tileset = DefaultTileset
	}

	return out
}
