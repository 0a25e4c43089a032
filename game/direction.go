package game

import (
	"fmt"
	"strings"
)

// Heading is one of the four cardinal directions, numbered clockwise from north.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

var headingNames = map[Heading]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
}

// TurnLeft returns the heading after a single counter-clockwise quarter turn.
func (h Heading) TurnLeft() Heading {
	return (h + 3) % 4
}

// TurnRight returns the heading after a single clockwise quarter turn.
func (h Heading) TurnRight() Heading {
	return (h + 1) % 4
}

// RequiredLeftTurns returns how many left turns take h to target (0-3).
func (h Heading) RequiredLeftTurns(target Heading) int {
	return int((h - target + 4) % 4)
}

// RequiredRightTurns returns how many right turns take h to target (0-3).
func (h Heading) RequiredRightTurns(target Heading) int {
	return int((target - h + 4) % 4)
}

func (h Heading) String() string {
	if name, ok := headingNames[h]; ok {
		return name
	}
	return fmt.Sprintf("heading(%d)", int(h))
}

// ParseHeading accepts the lowercase or capitalised direction name.
func ParseHeading(s string) (Heading, error) {
	for h, name := range headingNames {
		if strings.EqualFold(name, s) {
			return h, nil
		}
	}
	return North, fmt.Errorf("unknown heading %q", s)
}

func (h Heading) MarshalText() ([]byte, error) {
	if _, ok := headingNames[h]; !ok {
		return nil, fmt.Errorf("unknown heading %d", int(h))
	}
	return []byte(h.String()), nil
}

func (h *Heading) UnmarshalText(text []byte) error {
	parsed, err := ParseHeading(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
