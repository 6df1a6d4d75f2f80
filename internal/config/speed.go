package config

import (
	"math"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Next returns the speed after an apple brought the score to score: one cell
// per second faster on every StepEvery-th apple, capped at Max.
func (s SpeedConfig) Next(speed, score int) int {
	if score <= 0 || s.StepEvery <= 0 || score%s.StepEvery != 0 {
		return speed
	}
	return core.Clamp(speed+1, s.Initial, s.Max)
}

// Level returns how far speed has progressed from Initial (0.0) to Max (1.0).
func (s SpeedConfig) Level(speed int) float64 {
	if s.Max <= s.Initial {
		return 1
	}
	return clampF(float64(speed-s.Initial)/float64(s.Max-s.Initial), 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
