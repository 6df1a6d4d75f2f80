package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeClamps(t *testing.T) {
	tests := []struct {
		name     string
		in       SnakeConfig
		expected SnakeConfig
	}{
		{
			name:     "defaults untouched",
			in:       DefaultSnakeConfig(),
			expected: DefaultSnakeConfig(),
		},
		{
			name: "zero grid and path use defaults",
			in: SnakeConfig{
				Speed: SpeedConfig{Initial: 8, StepEvery: 3, Max: 14},
			},
			expected: DefaultSnakeConfig(),
		},
		{
			name: "small grid raised to minimum",
			in: SnakeConfig{
				Grid:  GridConfig{Size: 5},
				Speed: SpeedConfig{Initial: 8, StepEvery: 3, Max: 14},
			},
			expected: SnakeConfig{
				Grid:   GridConfig{Size: 8},
				Speed:  SpeedConfig{Initial: 8, StepEvery: 3, Max: 14},
				Assets: AssetsConfig{Path: DefaultAssetsPath, Tileset: DefaultTileset},
			},
		},
		{
			name: "speeds clamped",
			in: SnakeConfig{
				Grid:  GridConfig{Size: 30},
				Speed: SpeedConfig{Initial: 2, StepEvery: 25, Max: 99},
			},
			expected: SnakeConfig{
				Grid:   GridConfig{Size: 30},
				Speed:  SpeedConfig{Initial: 4, StepEvery: 10, Max: 30},
				Assets: AssetsConfig{Path: DefaultAssetsPath, Tileset: DefaultTileset},
			},
		},
		{
			name:     "zero value uses defaults",
			in:       SnakeConfig{},
			expected: DefaultSnakeConfig(),
		},
		{
			name: "zero speeds use defaults",
			in: SnakeConfig{
				Grid:  GridConfig{Size: 12},
				Speed: SpeedConfig{Initial: 10},
			},
			expected: SnakeConfig{
				Grid:   GridConfig{Size: 12},
				Speed:  SpeedConfig{Initial: 10, StepEvery: 3, Max: 14},
				Assets: AssetsConfig{Path: DefaultAssetsPath, Tileset: DefaultTileset},
			},
		},
		{
			name: "zero max defaults then clamps to initial",
			in: SnakeConfig{
				Speed: SpeedConfig{Initial: 18, StepEvery: 2},
			},
			expected: SnakeConfig{
				Grid:   GridConfig{Size: 20},
				Speed:  SpeedConfig{Initial: 18, StepEvery: 2, Max: 18},
				Assets: AssetsConfig{Path: DefaultAssetsPath, Tileset: DefaultTileset},
			},
		},
		{
			name: "negative speeds clamped",
			in: SnakeConfig{
				Speed: SpeedConfig{Initial: -1, StepEvery: -5, Max: 9},
			},
			expected: SnakeConfig{
				Grid:   GridConfig{Size: 20},
				Speed:  SpeedConfig{Initial: 4, StepEvery: 1, Max: 9},
				Assets: AssetsConfig{Path: DefaultAssetsPath, Tileset: DefaultTileset},
			},
		},
		{
			name: "max below initial raised to initial",
			in: SnakeConfig{
				Speed: SpeedConfig{Initial: 12, StepEvery: -1, Max: 6},
			},
			expected: SnakeConfig{
				Grid:   GridConfig{Size: 20},
				Speed:  SpeedConfig{Initial: 12, StepEvery: 1, Max: 12},
				Assets: AssetsConfig{Path: DefaultAssetsPath, Tileset: DefaultTileset},
			},
		},
		{
			name: "backslashes in asset path",
			in: SnakeConfig{
				Speed:  SpeedConfig{Initial: 8, StepEvery: 3, Max: 14},
				Assets: AssetsConfig{Path: `images\snake\`, Tileset: "ascii"},
			},
			expected: SnakeConfig{
				Grid:   GridConfig{Size: 20},
				Speed:  SpeedConfig{Initial: 8, StepEvery: 3, Max: 14},
				Assets: AssetsConfig{Path: "images/snake/", Tileset: "ascii"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if got != tc.expected {
				t.Errorf("Normalize() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestParseSnakeKeepsDefaultsForMissingFields(t *testing.T) {
	cfg, err := ParseSnake([]byte("speed:\n  initial: 10\n"))
	if err != nil {
		t.Fatalf("ParseSnake() failed: %v", err)
	}
	if cfg.Speed.Initial != 10 {
		t.Errorf("Initial = %d, expected 10", cfg.Speed.Initial)
	}
	if cfg.Grid.Size != DefaultGridSize || cfg.Speed.Max != DefaultMaxSpeed {
		t.Errorf("missing fields should keep defaults, got %+v", cfg)
	}
}

func TestParseSnakeInvalidYAML(t *testing.T) {
	if _, err := ParseSnake([]byte("grid: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  size: 12\nspeed:\n  max: 40\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.Grid.Size != 12 {
		t.Errorf("Grid.Size = %d, expected 12", cfg.Grid.Size)
	}
	if cfg.Speed.Max != SpeedCeiling {
		t.Errorf("Speed.Max = %d, expected clamp to %d", cfg.Speed.Max, SpeedCeiling)
	}
}

func TestLoadSnakeMissingCustomPath(t *testing.T) {
	if _, err := LoadSnake(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseSnake(defaultSnakeYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("embedded defaults %+v differ from DefaultSnakeConfig %+v", cfg, DefaultSnakeConfig())
	}
}
