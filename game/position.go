package game

import (
	"errors"
	"fmt"
)

var (
	ErrNotAdjacent = errors.New("positions are not adjacent")
)

// Position is a cell coordinate on the grid. X grows to the east and Y grows to the north.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Neighbors returns the four axis-aligned neighbours in east, west, north, south order.
func (p Position) Neighbors() []Position {
	return []Position{
		{X: p.X + 1, Y: p.Y},
		{X: p.X - 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
		{X: p.X, Y: p.Y - 1},
	}
}

// Step returns the neighbour reached by moving one cell towards h.
func (p Position) Step(h Heading) Position {
	switch h {
	case North:
		return Position{X: p.X, Y: p.Y + 1}
	case East:
		return Position{X: p.X + 1, Y: p.Y}
	case South:
		return Position{X: p.X, Y: p.Y - 1}
	case West:
		return Position{X: p.X - 1, Y: p.Y}
	}
	return p
}

// DirectionTo returns the heading that leads from p to the adjacent position q.
func (p Position) DirectionTo(q Position) (Heading, error) {
	switch {
	case q.X == p.X+1 && q.Y == p.Y:
		return East, nil
	case q.X == p.X-1 && q.Y == p.Y:
		return West, nil
	case q.Y == p.Y+1 && q.X == p.X:
		return North, nil
	case q.Y == p.Y-1 && q.X == p.X:
		return South, nil
	}
	return North, fmt.Errorf("%s -> %s: %w", p, q, ErrNotAdjacent)
}

// Distance returns the Manhattan distance between p and q.
func (p Position) Distance(q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("[%d:%d]", p.X, p.Y)
}

// Compare orders positions by X, then Y. It only exists to give map iteration a stable order.
func (p Position) Compare(q Position) int {
	switch {
	case p.X != q.X:
		return p.X - q.X
	default:
		return p.Y - q.Y
	}
}

// Bounds is the fixed arena size known before an episode starts.
type Bounds struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Contains reports whether p lies inside the arena.
func (b Bounds) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
