package world

import (
	"fmt"
	"io"

	"github.com/beka-birhanu/vinom-agent/game"
	"gopkg.in/yaml.v3"
)

// Layout is a hand-written cave, usually read from YAML:
//
//	width: 4
//	height: 4
//	heading: east
//	arrows: 1
//	wumpus: {x: 0, y: 2}
//	gold: {x: 1, y: 2}
//	pits:
//	  - {x: 2, y: 0}
//	  - {x: 2, y: 2}
type Layout struct {
	Width   int             `yaml:"width"`
	Height  int             `yaml:"height"`
	Heading game.Heading    `yaml:"heading"`
	Arrows  int             `yaml:"arrows"`
	Wumpus  *game.Position  `yaml:"wumpus"`
	Gold    *game.Position  `yaml:"gold"`
	Pits    []game.Position `yaml:"pits"`
}

// Load reads a YAML layout and builds the cave it describes.
func Load(r io.Reader) (*World, error) {
	layout := Layout{Heading: game.East, Arrows: defaultArrows}
	if err := yaml.NewDecoder(r).Decode(&layout); err != nil {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}
	return FromLayout(layout)
}

// FromLayout builds the cave described by l. The agent starts at (0,0), which must be free.
func FromLayout(l Layout) (*World, error) {
	w, err := empty(l.Width, l.Height)
	if err != nil {
		return nil, err
	}

	place := func(p game.Position, what string, mark func(*Cell)) error {
		if !w.InBound(p) {
			return fmt.Errorf("%s at %s: %w", what, p, ErrOutOfBounds)
		}
		if p == w.Start && what != "gold" {
			return fmt.Errorf("%s on the start cell", what)
		}
		mark(w.at(p))
		return nil
	}

	for _, p := range l.Pits {
		if err := place(p, "pit", func(c *Cell) { c.Pit = true }); err != nil {
			return nil, err
		}
	}
	if l.Wumpus != nil {
		if err := place(*l.Wumpus, "wumpus", func(c *Cell) { c.Wumpus = true }); err != nil {
			return nil, err
		}
	}
	if l.Gold != nil {
		if err := place(*l.Gold, "gold", func(c *Cell) { c.Gold = true }); err != nil {
			return nil, err
		}
	}

	w.reset(l.Heading, l.Arrows)
	return w, nil
}
