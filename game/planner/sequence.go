package planner

import (
	"fmt"

	"github.com/beka-birhanu/vinom-agent/game"
)

// Compile turns a path into the turns and forward moves that walk it, starting at from with
// the given heading. It also returns the heading the agent ends up with.
func Compile(from game.Position, heading game.Heading, path []game.Position) ([]game.Action, game.Heading, error) {
	actions := make([]game.Action, 0, 2*len(path))
	last := from
	for _, cur := range path {
		dir, err := last.DirectionTo(cur)
		if err != nil {
			return nil, heading, fmt.Errorf("compiling path: %w", err)
		}
		actions = append(actions, Face(heading, dir)...)
		actions = append(actions, game.Forward)
		heading = dir
		last = cur
	}
	return actions, heading, nil
}

// Face returns the shortest rotation from heading to target. A half turn goes right.
func Face(heading, target game.Heading) []game.Action {
	left := heading.RequiredLeftTurns(target)
	right := heading.RequiredRightTurns(target)

	turn, n := game.TurnRight, right
	if left < right {
		turn, n = game.TurnLeft, left
	}

	turns := make([]game.Action, n)
	for i := range turns {
		turns[i] = turn
	}
	return turns
}
