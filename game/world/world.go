/*
Package world simulates a Wumpus-world cave for the agent to play in.

A cave is a rectangular grid holding pits, one wumpus and one piece of gold. The simulator
answers every action with the percept the agent would receive, so an agent can be driven end to
end without the external game server.

Caves can be generated randomly from a seed or loaded from a YAML layout.
*/
package world

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/beka-birhanu/vinom-agent/game"
)

const (
	minDimension = 2
	maxDimension = 20

	defaultPitProbability = 0.2
	defaultArrows         = 1
)

var (
	ErrInvalidDimension = errors.New("invalid cave dimensions")
	ErrOutOfBounds      = errors.New("position is out of the cave")
	ErrEpisodeOver      = errors.New("episode is over")
)

// Options tune random cave generation.
type Options struct {
	Seed           int64   // Seed makes generation reproducible.
	PitProbability float64 // PitProbability is the chance of any cell but the start being a pit.
	Arrows         int     // Arrows the agent starts with.
}

// World is a running cave episode.
type World struct {
	Width  int       // Width of the cave (number of columns).
	Height int       // Height of the cave (number of rows).
	Grid   [][]*Cell // Grid is indexed [y][x]; row 0 is the southern edge.
	Start  game.Position

	position    game.Position
	heading     game.Heading
	startFacing game.Heading
	arrows      int
	hasGold     bool
	wumpusAlive bool
	outcome     Outcome
	score       int
	steps       int
	last        game.Percept
}

// New generates a random cave. The start cell at (0,0) is always safe.
func New(width, height int, opts Options) (*World, error) {
	w, err := empty(width, height)
	if err != nil {
		return nil, err
	}

	if opts.PitProbability <= 0 {
		opts.PitProbability = defaultPitProbability
	}
	if opts.Arrows <= 0 {
		opts.Arrows = defaultArrows
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	for y := range w.Grid {
		for x := range w.Grid[y] {
			if (game.Position{X: x, Y: y}) == w.Start {
				continue
			}
			w.Grid[y][x].Pit = rng.Float64() < opts.PitProbability
		}
	}
	w.at(w.randomPosition(rng)).Wumpus = true
	w.at(w.randomPosition(rng)).Gold = true

	w.reset(game.East, opts.Arrows)
	return w, nil
}

func empty(width, height int) (*World, error) {
	if min(width, height) < minDimension || max(width, height) > maxDimension {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimension)
	}

	grid := make([][]*Cell, height)
	for y := range grid {
		grid[y] = make([]*Cell, width)
		for x := range grid[y] {
			grid[y][x] = &Cell{}
		}
	}

	return &World{
		Width:  width,
		Height: height,
		Grid:   grid,
	}, nil
}

// randomPosition picks a cell that is neither the start nor a pit. It falls back to any
// non-start cell when every other cell is a pit.
func (w *World) randomPosition(rng *rand.Rand) game.Position {
	for i := 0; i < w.Width*w.Height*4; i++ {
		p := game.Position{X: rng.Intn(w.Width), Y: rng.Intn(w.Height)}
		if p != w.Start && !w.at(p).Pit {
			return p
		}
	}
	return game.Position{X: w.Width - 1, Y: w.Height - 1}
}

func (w *World) reset(heading game.Heading, arrows int) {
	w.position = w.Start
	w.heading = heading
	w.startFacing = heading
	w.arrows = arrows
	w.hasGold = false
	w.wumpusAlive = true
	w.outcome = Running
	w.score = 0
	w.steps = 0
	w.last = game.Percept{}
}

// Bounds returns the cave size as the agent sees it.
func (w *World) Bounds() game.Bounds {
	return game.Bounds{Width: w.Width, Height: w.Height}
}

// StartHeading returns the direction the agent faces when the episode begins.
func (w *World) StartHeading() game.Heading {
	return w.startFacing
}

func (w *World) InBound(p game.Position) bool {
	return w.Bounds().Contains(p)
}

func (w *World) at(p game.Position) *Cell {
	return w.Grid[p.Y][p.X]
}

// Percept returns what the agent senses right now.
func (w *World) Percept() game.Percept {
	p := w.last
	p.Stench, p.Breeze = false, false
	for _, n := range append(w.position.Neighbors(), w.position) {
		if !w.InBound(n) {
			continue
		}
		c := w.at(n)
		p.Stench = p.Stench || c.Wumpus
		if n != w.position {
			p.Breeze = p.Breeze || c.Pit
		}
	}
	p.Glitter = w.at(w.position).Gold && !w.hasGold
	p.Arrows = w.arrows
	return p
}

// Apply executes an action and returns the percept that follows it.
func (w *World) Apply(a game.Action) (game.Percept, error) {
	if w.outcome != Running {
		return game.Percept{}, ErrEpisodeOver
	}

	w.steps++
	w.score -= actionCost
	w.last = game.Percept{LastAction: a}

	switch a {
	case game.TurnLeft:
		w.heading = w.heading.TurnLeft()
	case game.TurnRight:
		w.heading = w.heading.TurnRight()
	case game.Forward:
		w.move()
	case game.Grab:
		if w.at(w.position).Gold && !w.hasGold {
			w.hasGold = true
		}
	case game.Shoot:
		w.shoot()
	case game.Climb:
		if w.position == w.Start {
			w.outcome = Climbed
			if w.hasGold {
				w.score += goldReward
			}
		}
	}

	return w.Percept(), nil
}

func (w *World) move() {
	next := w.position.Step(w.heading)
	if !w.InBound(next) {
		w.last.Bump = true
		return
	}

	w.position = next
	c := w.at(next)
	if c.Pit || (c.Wumpus && w.wumpusAlive) {
		w.outcome = Died
		w.score -= deathPenalty
	}
}

// shoot sends an arrow straight ahead until it leaves the cave or hits the wumpus.
func (w *World) shoot() {
	if w.arrows < 1 {
		return
	}
	w.arrows--
	w.score -= arrowCost

	for p := w.position.Step(w.heading); w.InBound(p); p = p.Step(w.heading) {
		if w.at(p).Wumpus && w.wumpusAlive {
			w.wumpusAlive = false
			w.last.Scream = true
			return
		}
	}
}

// Position returns where the agent stands.
func (w *World) Position() game.Position { return w.position }

func (w *World) Heading() game.Heading { return w.heading }

func (w *World) Outcome() Outcome { return w.outcome }

// HasGold reports whether the agent carries the gold.
func (w *World) HasGold() bool { return w.hasGold }

func (w *World) WumpusAlive() bool { return w.wumpusAlive }

func (w *World) Score() int { return w.score }

func (w *World) Steps() int { return w.steps }

// String provides a textual representation of the cave, north at the top.
func (w *World) String() string {
	var output strings.Builder

	border := "+" + strings.Repeat("---+", w.Width) + "\n"
	output.WriteString(border)
	for y := w.Height - 1; y >= 0; y-- {
		output.WriteString("|")
		for x := 0; x < w.Width; x++ {
			output.WriteString(w.cellString(game.Position{X: x, Y: y}))
			output.WriteString("|")
		}
		output.WriteString("\n")
		output.WriteString(border)
	}
	return output.String()
}

func (w *World) cellString(p game.Position) string {
	c := w.at(p)
	marks := []byte("   ")
	if p == w.position {
		marks[0] = "^>v<"[w.heading]
	}
	switch {
	case c.Pit:
		marks[1] = 'P'
	case c.Wumpus && w.wumpusAlive:
		marks[1] = 'W'
	case c.Wumpus:
		marks[1] = 'w'
	}
	if c.Gold && !w.hasGold {
		marks[2] = 'G'
	}
	return string(marks)
}
