package snake

import (
	"strconv"
	"strings"
	"time"
)

// resetState installs the canonical starting run: three segments centered on
// the grid heading right, a fresh apple, zero score, initial speed.
func (e *Engine) resetState() {
	mid := e.cfg.Grid.Size / 2
	e.state = State{
		Snake: []Cell{
			{X: mid - 1, Y: mid},
			{X: mid - 2, Y: mid},
			{X: mid - 3, Y: mid},
		},
		Current: DirRight,
		Pending: DirRight,
		Speed:   e.cfg.Speed.Initial,
	}
	e.step = stepFor(e.state.Speed)
	e.acc = 0
	e.state.Apple = e.placeApple()
}

// tick advances the simulation by one cell.
func (e *Engine) tick() {
	st := &e.state
	if st.GameOver {
		return
	}
	e.ticks++

	// Commit the queued turn unless it reverses the snake
	if !st.Pending.Opposite(st.Current) {
		st.Current = st.Pending
	}

	next := st.Snake[0].Add(st.Current.Delta())

	if !e.inBounds(next) {
		e.endGame("wall", next)
		return
	}
	// The tail still counts here even though it would move away this tick
	if e.onSnake(next) {
		e.endGame("self", next)
		return
	}

	st.Snake = append(st.Snake, Cell{})
	copy(st.Snake[1:], st.Snake)
	st.Snake[0] = next

	if next == st.Apple {
		st.Score++
		e.maybeSpeedUp()
		st.Apple = e.placeApple()
		st.GrowPending++
	}

	if st.GrowPending > 0 {
		st.GrowPending--
	} else {
		st.Snake = st.Snake[:len(st.Snake)-1]
	}
}

func (e *Engine) inBounds(c Cell) bool {
	n := e.cfg.Grid.Size
	return c.X >= 0 && c.X < n && c.Y >= 0 && c.Y < n
}

func (e *Engine) onSnake(c Cell) bool {
	for _, seg := range e.state.Snake {
		if seg == c {
			return true
		}
	}
	return false
}

// placeApple picks a uniformly random cell not covered by the snake.
// A full grid falls back to the origin.
func (e *Engine) placeApple() Cell {
	n := e.cfg.Grid.Size
	taken := make([]bool, n*n)
	for _, seg := range e.state.Snake {
		if e.inBounds(seg) {
			taken[seg.Y*n+seg.X] = true
		}
	}

	free := make([]Cell, 0, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !taken[y*n+x] {
				free = append(free, Cell{X: x, Y: y})
			}
		}
	}

	if len(free) == 0 {
		return Cell{X: 0, Y: 0}
	}
	return free[e.rng.Intn(len(free))]
}

// maybeSpeedUp adds one cell per second every StepEvery apples, up to Max.
func (e *Engine) maybeSpeedUp() {
	st := &e.state
	next := e.cfg.Speed.Next(st.Speed, st.Score)
	if next == st.Speed {
		return
	}
	st.Speed = next
	e.step = stepFor(next)
	e.logger.Debug("speed up", "score", st.Score, "speed", next, "step", e.step)
}

func stepFor(speed int) time.Duration {
	return time.Second / time.Duration(speed)
}

// endGame is the only path that writes the persisted best score.
func (e *Engine) endGame(cause string, at Cell) {
	e.state.GameOver = true
	e.phase = PhaseGameOver
	e.cancelFrame()

	if e.state.Score > e.highScore {
		e.highScore = e.state.Score
		e.writeHighScore()
	}

	e.logger.Info("game over",
		"cause", cause,
		"x", at.X,
		"y", at.Y,
		"score", e.state.Score,
		"best", e.highScore,
	)

	if e.onGameOver != nil {
		e.onGameOver(e.Snapshot())
	}
}

// readHighScore loads the best score once. Anything unreadable counts as 0.
func (e *Engine) readHighScore() int {
	if e.store == nil {
		return 0
	}
	raw, err := e.store.Get(HighScoreKey)
	if err != nil {
		e.logger.Warn("high score unavailable", "error", err)
		return 0
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		e.logger.Warn("ignoring malformed high score", "value", raw)
		return 0
	}
	return n
}

// writeHighScore raises the stored best to e.highScore. Engines may share a
// store, so a higher value already stored wins and is adopted instead.
func (e *Engine) writeHighScore() {
	if e.store == nil {
		return
	}
	if ms, ok := e.store.(MaxStore); ok {
		best, err := ms.SetMax(HighScoreKey, e.highScore)
		if err != nil {
			e.logger.Warn("could not save high score", "best", e.highScore, "error", err)
			return
		}
		e.highScore = max(e.highScore, best)
		return
	}
	if stored := e.readHighScore(); stored >= e.highScore {
		e.highScore = stored
		return
	}
	if err := e.store.Set(HighScoreKey, strconv.Itoa(e.highScore)); err != nil {
		e.logger.Warn("could not save high score", "best", e.highScore, "error", err)
	}
}
