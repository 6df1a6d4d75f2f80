package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/assets"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/frame"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/render"
)

func TestParseTurn(t *testing.T) {
	tests := []struct {
		in      string
		want    turn
		wantErr bool
	}{
		{"5:up", turn{5, snake.DirUp}, false},
		{"0:l", turn{0, snake.DirLeft}, false},
		{" 12 : Down", turn{12, snake.DirDown}, false},
		{"up", turn{}, true},
		{"x:up", turn{}, true},
		{"-1:up", turn{}, true},
		{"3:sideways", turn{}, true},
	}
	for _, tc := range tests {
		got, err := parseTurn(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("parseTurn(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("parseTurn(%q) = %+v, expected %+v", tc.in, got, tc.want)
		}
	}
}

func newReplayEngine(t *testing.T) (*snake.Engine, *frame.ManualClock, *frame.Queue) {
	t.Helper()
	clock := frame.NewManualClock(time.Unix(0, 0))
	queue := frame.NewQueue()
	e := snake.New(config.DefaultSnakeConfig(), snake.Deps{
		Clock:     clock,
		Scheduler: queue,
		Seed:      1,
	})
	t.Cleanup(e.Destroy)
	return e, clock, queue
}

func TestReplayAppliesTurns(t *testing.T) {
	e, clock, queue := newReplayEngine(t)

	snap, err := replay(context.Background(), e, clock, queue, 3, []turn{{0, snake.DirUp}})
	if err != nil {
		t.Fatal(err)
	}
	if snap.Tick != 3 {
		t.Errorf("tick = %d, expected 3", snap.Tick)
	}
	if head := snap.Head(); head != (snake.Cell{X: 9, Y: 7}) {
		t.Errorf("head = %v, expected (9,7)", head)
	}
}

func TestReplayStopsAtGameOver(t *testing.T) {
	e, clock, queue := newReplayEngine(t)

	snap, err := replay(context.Background(), e, clock, queue, 100, []turn{{0, snake.DirUp}})
	if err != nil {
		t.Fatal(err)
	}
	if !snap.GameOver {
		t.Fatal("snake heading up should hit the wall")
	}
	if snap.Tick >= 100 {
		t.Errorf("tick = %d, expected replay to stop early", snap.Tick)
	}
}

func TestSimulateDrawsGameOver(t *testing.T) {
	oldTicks, oldSize, oldDPR := flagTicks, flagSize, flagDPR
	t.Cleanup(func() { flagTicks, flagSize, flagDPR = oldTicks, oldSize, oldDPR })
	flagTicks, flagSize, flagDPR = 100, 200, 1

	snap, canvas, err := simulate(context.Background(), config.DefaultSnakeConfig(), assets.Tiles{}, 1,
		[]turn{{0, snake.DirUp}}, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	if !snap.GameOver {
		t.Fatal("expected game over")
	}
	if canvas.Image().Bounds().Dx() != 200 {
		t.Errorf("canvas width = %d, expected 200", canvas.Image().Bounds().Dx())
	}
	if px := canvas.Image().RGBAAt(0, 0); px == render.Background {
		t.Error("game over scrim not drawn")
	}
}
