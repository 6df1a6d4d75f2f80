package snake

import (
	"fmt"
	"strings"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// Sub returns the vector from o to c.
func (c Cell) Sub(o Cell) Cell {
	return Cell{X: c.X - o.X, Y: c.Y - o.Y}
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// deltas holds the unit vector of each direction; screen y grows downward.
var deltas = [...]Cell{
	DirRight: {X: 1, Y: 0},
	DirDown:  {X: 0, Y: 1},
	DirLeft:  {X: -1, Y: 0},
	DirUp:    {X: 0, Y: -1},
}

// Directions lists all four directions.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit vector of the direction.
func (d Direction) Delta() Cell {
	return deltas[d]
}

// Opposite reports whether d and o point in exactly opposite directions,
// i.e. their deltas sum to zero.
func (d Direction) Opposite(o Direction) bool {
	a, b := d.Delta(), o.Delta()
	return a.X+b.X == 0 && a.Y+b.Y == 0
}

// DirectionOf returns the direction whose delta equals v.
// ok is false when v is not a unit vector.
func DirectionOf(v Cell) (d Direction, ok bool) {
	for _, dir := range Directions {
		if dir.Delta() == v {
			return dir, true
		}
	}
	return DirRight, false
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection accepts a direction name or its first letter, in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return DirRight, fmt.Errorf("snake: unknown direction %q", s)
}
