/*
Package goal decides what the agent wants next.

Goals are checked in a fixed priority order every time the agent runs out of planned actions;
the first applicable goal produces the next plan. Nothing is remembered between selections.
*/
package goal

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/beka-birhanu/vinom-agent/game/belief"
)

var (
	ErrNoApplicableGoal = errors.New("no applicable goal")
	ErrEmptyPlan        = errors.New("goal produced an empty plan")
)

// State is the view of the agent a goal reads. Goals never mutate it.
type State struct {
	Model      *belief.Model
	Thresholds belief.Thresholds
	Position   game.Position
	Heading    game.Heading
	Arrows     int
	Start      game.Position
}

// Goal is one thing the agent can decide to do.
type Goal interface {
	// Name identifies the goal in logs and transcripts.
	Name() string

	// Applicable reports whether the goal can be pursued from s.
	Applicable(s *State) bool

	// Plan returns the actions that pursue the goal from s.
	Plan(s *State) ([]game.Action, error)
}

// Selector picks the first applicable goal of an ordered list.
type Selector struct {
	goals []Goal
}

// NewSelector creates a selector that checks goals in the given order.
func NewSelector(goals ...Goal) *Selector {
	return &Selector{goals: goals}
}

// DefaultSelector checks Pickup, EliminateHazard, Explore and ReturnHome, in that order.
func DefaultSelector() *Selector {
	return NewSelector(Pickup{}, EliminateHazard{}, Explore{}, ReturnHome{})
}

// Select returns the first applicable goal.
func (sel *Selector) Select(s *State) (Goal, error) {
	for _, g := range sel.goals {
		if g.Applicable(s) {
			return g, nil
		}
	}
	return nil, ErrNoApplicableGoal
}

// Plan selects a goal and returns it together with its plan.
func (sel *Selector) Plan(s *State) (Goal, []game.Action, error) {
	g, err := sel.Select(s)
	if err != nil {
		return nil, nil, err
	}

	actions, err := g.Plan(s)
	if err != nil {
		return g, nil, fmt.Errorf("planning %s: %w", g.Name(), err)
	}
	if len(actions) == 0 {
		return g, nil, fmt.Errorf("planning %s: %w", g.Name(), ErrEmptyPlan)
	}
	return g, actions, nil
}
