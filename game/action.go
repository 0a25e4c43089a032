package game

import (
	"fmt"
	"strings"
)

// Action is a primitive action the agent emits once per step.
type Action int

const (
	// None only appears as the last action of the first percept in an episode.
	None Action = iota
	TurnLeft
	TurnRight
	Forward
	Grab
	Shoot
	Climb
)

var actionNames = map[Action]string{
	None:      "none",
	TurnLeft:  "turn_left",
	TurnRight: "turn_right",
	Forward:   "forward",
	Grab:      "grab",
	Shoot:     "shoot",
	Climb:     "climb",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction maps an action name back to its value.
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if strings.EqualFold(name, s) {
			return a, nil
		}
	}
	return None, fmt.Errorf("unknown action %q", s)
}

func (a Action) MarshalText() ([]byte, error) {
	if _, ok := actionNames[a]; !ok {
		return nil, fmt.Errorf("unknown action %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Percept is the bundle of local signals delivered to the agent at the start of every step.
type Percept struct {
	Stench     bool   `json:"stench"`
	Breeze     bool   `json:"breeze"`
	Glitter    bool   `json:"glitter"`
	Bump       bool   `json:"bump"`       // the last forward move hit a wall
	Scream     bool   `json:"scream"`     // the last shot killed the wumpus
	LastAction Action `json:"last_action"` // the action the environment actually executed
	Arrows     int    `json:"arrows"`
}
