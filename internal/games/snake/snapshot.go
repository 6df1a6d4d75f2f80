package snake

import (
	"fmt"
	"strings"
	"time"
)

// Phase is the engine's lifecycle state.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// State is the mutable grid state of one run.
type State struct {
	Snake       []Cell // Head at index 0
	Apple       Cell
	Current     Direction // Committed direction
	Pending     Direction // Queued direction, committed on the next tick
	GrowPending int       // Tail-retention units still owed
	Score       int
	Speed       int // Cells per second
	GameOver    bool
}

// clone returns a deep copy so snapshots never alias engine state.
func (s State) clone() State {
	out := s
	out.Snake = append([]Cell(nil), s.Snake...)
	return out
}

// Snapshot captures the complete engine state for display, determinism testing
// and headless rendering.
type Snapshot struct {
	State
	Tick      uint64
	Phase     Phase
	HighScore int
	GridSize  int
	Step      time.Duration // Fixed tick interval at the current speed
}

// Head returns the head cell, or the zero cell for an empty snake.
func (s Snapshot) Head() Cell {
	if len(s.Snake) == 0 {
		return Cell{}
	}
	return s.Snake[0]
}

// Snapshot returns a copy of the current engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:     e.state.clone(),
		Tick:      e.ticks,
		Phase:     e.phase,
		HighScore: e.highScore,
		GridSize:  e.cfg.Grid.Size,
		Step:      e.step,
	}
}

// DebugState returns a string representation of the engine state.
func (e *Engine) DebugState() string {
	snap := e.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Phase: %s, Score: %d, Best: %d\n", snap.Tick, snap.Phase, snap.Score, snap.HighScore)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s, Pending: %s, Speed: %d\n", len(snap.Snake), snap.Current, snap.Pending, snap.Speed)
	head := snap.Head()
	fmt.Fprintf(&b, "Head: (%d, %d), Apple: (%d, %d)\n", head.X, head.Y, snap.Apple.X, snap.Apple.Y)
	return b.String()
}
