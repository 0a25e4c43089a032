package goal

import (
	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/beka-birhanu/vinom-agent/game/planner"
)

// Pickup grabs the goal item when the agent stands on it.
type Pickup struct{}

func (Pickup) Name() string { return "pickup" }

func (Pickup) Applicable(s *State) bool {
	c, ok := s.Model.CellAt(s.Position)
	return ok && c.HasGoalItem
}

func (Pickup) Plan(*State) ([]game.Action, error) {
	return []game.Action{game.Grab}, nil
}

// EliminateHazard walks next to the most likely wumpus cell, faces it and fires.
type EliminateHazard struct{}

func (EliminateHazard) Name() string { return "eliminate_hazard" }

func (g EliminateHazard) Applicable(s *State) bool {
	_, ok := g.best(s)
	return ok
}

func (g EliminateHazard) Plan(s *State) ([]game.Action, error) {
	actions, ok := g.best(s)
	if !ok {
		return nil, planner.ErrUnreachable
	}
	return actions, nil
}

// best returns the shortest firing plan over every candidate cell and every safe cell next to
// it. Candidates are taken in model order, firing positions in neighbour order.
func (EliminateHazard) best(s *State) ([]game.Action, bool) {
	if s.Arrows < 1 {
		return nil, false
	}

	tree := planner.ShortestPaths(s.Model, s.Thresholds, s.Position)
	var best []game.Action
	found := false
	for _, c := range s.Model.Cells() {
		if c.Visited || c.IsWall || !s.Model.ShootCandidate(c.Position, s.Thresholds) {
			continue
		}
		for _, firing := range c.Position.Neighbors() {
			path, err := tree.PathTo(firing)
			if err != nil {
				continue
			}
			actions, heading, err := planner.Compile(s.Position, s.Heading, path)
			if err != nil {
				continue
			}
			aim, err := firing.DirectionTo(c.Position)
			if err != nil {
				continue
			}
			actions = append(actions, planner.Face(heading, aim)...)
			actions = append(actions, game.Shoot)

			if !found || len(actions) < len(best) {
				best, found = actions, true
			}
		}
	}
	return best, found
}

// Explore walks to the nearest unvisited cell that is safe enough.
type Explore struct{}

func (Explore) Name() string { return "explore" }

func (g Explore) Applicable(s *State) bool {
	_, ok := g.best(s)
	return ok
}

func (g Explore) Plan(s *State) ([]game.Action, error) {
	actions, ok := g.best(s)
	if !ok {
		return nil, planner.ErrUnreachable
	}
	return actions, nil
}

// best compiles a route to every explorable cell and keeps the one with the fewest actions.
func (Explore) best(s *State) ([]game.Action, bool) {
	tree := planner.ShortestPaths(s.Model, s.Thresholds, s.Position)
	var best []game.Action
	found := false
	for _, c := range s.Model.Cells() {
		if c.Visited || c.IsWall || !s.Model.Explorable(c.Position, s.Thresholds) {
			continue
		}
		path, err := tree.PathTo(c.Position)
		if err != nil {
			continue
		}
		actions, _, err := planner.Compile(s.Position, s.Heading, path)
		if err != nil {
			continue
		}
		if !found || len(actions) < len(best) {
			best, found = actions, true
		}
	}
	return best, found
}

// ReturnHome walks back to the start and climbs out. It always applies.
type ReturnHome struct{}

func (ReturnHome) Name() string { return "return_home" }

func (ReturnHome) Applicable(*State) bool { return true }

func (ReturnHome) Plan(s *State) ([]game.Action, error) {
	path, err := planner.Route(s.Model, s.Thresholds, s.Position, s.Start)
	if err != nil {
		return nil, err
	}
	actions, _, err := planner.Compile(s.Position, s.Heading, path)
	if err != nil {
		return nil, err
	}
	return append(actions, game.Climb), nil
}
