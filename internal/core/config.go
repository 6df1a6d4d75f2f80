package core

// RuntimeConfig contains platform settings passed to the engine host at startup.
// The engine itself is configured by config.SnakeConfig; this struct carries what
// the terminal or renderer knows about its environment.
type RuntimeConfig struct {
	ScreenW    int     // Screen width in characters (or display pixels for rasters)
	ScreenH    int     // Screen height in characters
	FrameRate  int     // Frames requested per second by the display-aligned driver
	Seed       int64   // RNG seed for apple placement; 0 means time-based
	PixelRatio float64 // Device pixel density for raster backings
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		FrameRate:  60,
		Seed:       0, // 0 means use current time in platform layer
		PixelRatio: 1,
	}
}
