/*
Package agent drives the decision loop of a single Wumpus-world agent.

Each call to Step takes one percept and returns one action. The percept is folded into the
belief model first; only then, and only when the previous plan is used up, is a new goal
selected and planned.
*/
package agent

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/beka-birhanu/vinom-agent/game/belief"
	"github.com/beka-birhanu/vinom-agent/game/goal"
	"github.com/google/uuid"
)

var (
	ErrEpisodeOver = errors.New("episode is over")
)

// Agent owns the belief model, the bookkeeping of where it stands and the plan it is draining.
// It is not safe for concurrent use.
type Agent struct {
	id            uuid.UUID
	bounds        game.Bounds
	thresholds    belief.Thresholds
	selector      *goal.Selector
	logger        Logger
	initialArrows int

	start    game.Position
	position game.Position
	heading  game.Heading
	arrows   int
	model    *belief.Model
	plan     []game.Action
	goal     string
	steps    int
	over     bool
}

// New creates an agent standing on start and facing heading.
func New(start game.Position, heading game.Heading, opts ...Option) *Agent {
	a := &Agent{
		bounds:        game.Bounds{Width: defaultArenaSize, Height: defaultArenaSize},
		thresholds:    belief.DefaultThresholds(),
		selector:      goal.DefaultSelector(),
		logger:        noopLogger{},
		initialArrows: defaultArrows,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Reset(start, heading)
	return a
}

// Reset starts a new episode. Everything learned in the previous one is dropped.
func (a *Agent) Reset(start game.Position, heading game.Heading) {
	a.id = uuid.New()
	a.start = start
	a.position = start
	a.heading = heading
	a.arrows = a.initialArrows
	a.model = belief.NewModel(a.bounds)
	a.model.ApplySensorReport(start, false, false, false)
	a.model.EnsureNeighbors(start)
	a.plan = nil
	a.goal = ""
	a.steps = 0
	a.over = false
}

// Step folds p into the belief model and returns the next action.
func (a *Agent) Step(p game.Percept) (game.Action, error) {
	if a.over {
		return game.None, ErrEpisodeOver
	}

	a.arrows = p.Arrows
	a.perceive(p)
	a.invalidatePlan()

	if len(a.plan) == 0 {
		g, plan, err := a.selector.Plan(a.state())
		if err != nil {
			return game.None, fmt.Errorf("step %d at %s: %w", a.steps, a.position, err)
		}
		a.goal = g.Name()
		a.plan = plan
		a.logger.Debug(fmt.Sprintf("episode %s: goal %s at %s facing %s, %d actions", a.id, a.goal, a.position, a.heading, len(plan)))
	}

	action := a.plan[0]
	a.plan = a.plan[1:]

	switch action {
	case game.TurnLeft:
		a.heading = a.heading.TurnLeft()
	case game.TurnRight:
		a.heading = a.heading.TurnRight()
	case game.Climb:
		a.over = true
		a.logger.Info(fmt.Sprintf("episode %s: climbing out after %d steps", a.id, a.steps+1))
	}
	a.steps++
	return action, nil
}

// perceive moves the agent according to what the environment reports it did, then records
// the readings of the cell it stands in.
func (a *Agent) perceive(p game.Percept) {
	switch p.LastAction {
	case game.Forward:
		ahead := a.position.Step(a.heading)
		if p.Bump {
			a.model.MarkWall(ahead)
			a.plan = nil
			a.logger.Debug(fmt.Sprintf("episode %s: bumped into %s, plan dropped", a.id, ahead))
		} else {
			a.position = ahead
		}
	case game.Shoot:
		if p.Scream {
			a.model.EliminateWumpus()
			a.logger.Info(fmt.Sprintf("episode %s: wumpus eliminated", a.id))
		} else {
			a.model.ClearWumpus(a.position.Step(a.heading))
		}
	}

	a.model.ApplySensorReport(a.position, p.Stench, p.Breeze, p.Glitter)
	a.model.EnsureNeighbors(a.position)
}

// invalidatePlan drops the pending plan when what was just perceived contradicts it.
func (a *Agent) invalidatePlan() {
	if len(a.plan) == 0 {
		return
	}

	if c, ok := a.model.CellAt(a.position); ok && c.HasGoalItem && a.plan[0] != game.Grab {
		a.plan = nil
		return
	}

	if a.plan[0] == game.Forward {
		ahead := a.position.Step(a.heading)
		if !a.model.Routable(ahead, a.thresholds) {
			a.logger.Debug(fmt.Sprintf("episode %s: %s is no longer safe, plan dropped", a.id, ahead))
			a.plan = nil
		}
	}
}

func (a *Agent) state() *goal.State {
	return &goal.State{
		Model:      a.model,
		Thresholds: a.thresholds,
		Position:   a.position,
		Heading:    a.heading,
		Arrows:     a.arrows,
		Start:      a.start,
	}
}

// ID identifies the current episode.
func (a *Agent) ID() uuid.UUID { return a.id }

func (a *Agent) Start() game.Position { return a.start }

func (a *Agent) Position() game.Position { return a.position }

func (a *Agent) Heading() game.Heading { return a.heading }

func (a *Agent) Arrows() int { return a.arrows }

// Steps returns how many actions the agent emitted this episode.
func (a *Agent) Steps() int { return a.steps }

// Goal returns the name of the goal the current plan was made for.
func (a *Agent) Goal() string { return a.goal }

// PendingActions returns how many planned actions are left.
func (a *Agent) PendingActions() int { return len(a.plan) }

// Over reports whether the agent has climbed out.
func (a *Agent) Over() bool { return a.over }

// Model exposes the belief model for inspection. Callers must not mutate it.
func (a *Agent) Model() *belief.Model { return a.model }
