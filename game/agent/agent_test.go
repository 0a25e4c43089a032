package agent

import (
	"strings"
	"testing"

	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/beka-birhanu/vinom-agent/game/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maxSteps = 500

// play drives a through w until the episode ends and returns every action it took.
func play(t *testing.T, a *Agent, w *world.World) []game.Action {
	t.Helper()

	var actions []game.Action
	p := w.Percept()
	for w.Outcome() == world.Running {
		require.Less(t, len(actions), maxSteps, "agent did not finish")

		action, err := a.Step(p)
		require.NoError(t, err)
		actions = append(actions, action)

		p, err = w.Apply(action)
		require.NoError(t, err)
	}
	return actions
}

func forWorld(w *world.World, arrows int) *Agent {
	return New(w.Start, w.StartHeading(), WithBounds(w.Bounds()), WithArrows(arrows))
}

func cave(t *testing.T, layout string) *world.World {
	t.Helper()
	w, err := world.Load(strings.NewReader(layout))
	require.NoError(t, err)
	return w
}

const classicCave = `
width: 4
height: 4
wumpus: {x: 0, y: 2}
gold: {x: 1, y: 2}
pits: [{x: 2, y: 0}, {x: 2, y: 2}, {x: 3, y: 3}]
`

const guardedGold = `
width: 4
height: 4
arrows: %d
wumpus: {x: 1, y: 1}
gold: {x: 3, y: 3}
`

func TestStep(t *testing.T) {
	t.Run("Quiet start moves ahead", func(t *testing.T) {
		a := New(game.Position{}, game.East)
		action, err := a.Step(game.Percept{Arrows: 1})
		require.NoError(t, err)
		assert.Equal(t, game.Forward, action)
		assert.Equal(t, "explore", a.Goal())
	})

	t.Run("Glitter is grabbed first", func(t *testing.T) {
		a := New(game.Position{X: 2, Y: 2}, game.North)
		action, err := a.Step(game.Percept{Glitter: true, Arrows: 1})
		require.NoError(t, err)
		assert.Equal(t, game.Grab, action)
		assert.Equal(t, "pickup", a.Goal())
	})

	t.Run("Glitter preempts the running plan", func(t *testing.T) {
		a := New(game.Position{}, game.South)
		action, err := a.Step(game.Percept{Arrows: 1})
		require.NoError(t, err)
		require.Equal(t, game.TurnLeft, action)
		require.Equal(t, 1, a.PendingActions())

		action, err = a.Step(game.Percept{Glitter: true, LastAction: game.TurnLeft, Arrows: 1})
		require.NoError(t, err)
		assert.Equal(t, game.Grab, action)
		assert.Equal(t, game.East, a.Heading())
	})

	t.Run("Bump marks a wall and replans", func(t *testing.T) {
		a := New(game.Position{}, game.East)
		action, err := a.Step(game.Percept{Arrows: 1})
		require.NoError(t, err)
		require.Equal(t, game.Forward, action)

		action, err = a.Step(game.Percept{Bump: true, LastAction: game.Forward, Arrows: 1})
		require.NoError(t, err)
		assert.Equal(t, game.TurnLeft, action)
		assert.Equal(t, game.Position{}, a.Position())

		c, ok := a.Model().CellAt(game.Position{X: 1, Y: 0})
		require.True(t, ok)
		assert.True(t, c.IsWall)
		assert.False(t, c.Visited)
	})

	t.Run("Missed shot clears the target", func(t *testing.T) {
		a := New(game.Position{}, game.North)
		_, err := a.Step(game.Percept{Arrows: 0, LastAction: game.Shoot})
		require.NoError(t, err)

		c, ok := a.Model().CellAt(game.Position{X: 0, Y: 1})
		require.True(t, ok)
		assert.True(t, c.WumpusCleared)
		assert.False(t, a.Model().WumpusEliminated())
	})

	t.Run("Scream eliminates the wumpus", func(t *testing.T) {
		a := New(game.Position{}, game.North)
		_, err := a.Step(game.Percept{Arrows: 0, LastAction: game.Shoot, Scream: true, Stench: true})
		require.NoError(t, err)
		assert.True(t, a.Model().WumpusEliminated())
		assert.Zero(t, a.Arrows())
	})

	t.Run("Nothing after climbing", func(t *testing.T) {
		a := New(game.Position{}, game.East, WithBounds(game.Bounds{Width: 1, Height: 1}))
		action, err := a.Step(game.Percept{Arrows: 1})
		require.NoError(t, err)
		require.Equal(t, game.Climb, action)
		assert.True(t, a.Over())

		_, err = a.Step(game.Percept{Arrows: 1, LastAction: game.Climb})
		assert.ErrorIs(t, err, ErrEpisodeOver)
		assert.Equal(t, 1, a.Steps())
	})
}

func TestReset(t *testing.T) {
	a := New(game.Position{}, game.East, WithBounds(game.Bounds{Width: 4, Height: 4}))
	id := a.ID()
	_, err := a.Step(game.Percept{Arrows: 1})
	require.NoError(t, err)
	_, err = a.Step(game.Percept{LastAction: game.Forward, Breeze: true, Arrows: 1})
	require.NoError(t, err)

	a.Reset(game.Position{X: 1, Y: 1}, game.West)
	assert.NotEqual(t, id, a.ID())
	assert.Equal(t, game.Position{X: 1, Y: 1}, a.Position())
	assert.Equal(t, game.Position{X: 1, Y: 1}, a.Start())
	assert.Equal(t, game.West, a.Heading())
	assert.Zero(t, a.Steps())
	assert.Zero(t, a.PendingActions())
	assert.False(t, a.Over())
	assert.Equal(t, 5, a.Model().Len())
}

func TestEpisodes(t *testing.T) {
	t.Run("Classic cave", func(t *testing.T) {
		w := cave(t, classicCave)
		a := forWorld(w, 1)
		actions := play(t, a, w)

		assert.Equal(t, world.Climbed, w.Outcome())
		assert.True(t, w.HasGold())
		assert.Equal(t, game.Climb, actions[len(actions)-1])
		assert.Equal(t, len(actions), a.Steps())
	})

	t.Run("No arrows means no shooting", func(t *testing.T) {
		w := cave(t, strings.Replace(guardedGold, "%d", "0", 1))
		a := forWorld(w, 0)
		actions := play(t, a, w)

		assert.NotContains(t, actions, game.Shoot)
		assert.Equal(t, world.Climbed, w.Outcome())
		assert.False(t, w.HasGold())
		assert.True(t, w.WumpusAlive())
	})

	t.Run("One arrow opens the way to the gold", func(t *testing.T) {
		w := cave(t, strings.Replace(guardedGold, "%d", "1", 1))
		a := forWorld(w, 1)
		actions := play(t, a, w)

		assert.Contains(t, actions, game.Shoot)
		assert.False(t, w.WumpusAlive())
		assert.True(t, a.Model().WumpusEliminated())
		assert.Equal(t, world.Climbed, w.Outcome())
		assert.True(t, w.HasGold())
	})

	t.Run("Same cave, same actions", func(t *testing.T) {
		first := play(t, forWorld(cave(t, classicCave), 1), cave(t, classicCave))
		w := cave(t, classicCave)
		second := play(t, forWorld(w, 1), w)
		assert.Equal(t, first, second)
	})

	t.Run("Never walks into a hazard", func(t *testing.T) {
		for seed := int64(0); seed < 50; seed++ {
			w, err := world.New(2+int(seed%7), 2+int(seed%5), world.Options{Seed: seed})
			require.NoError(t, err)
			play(t, forWorld(w, 1), w)
			assert.Equal(t, world.Climbed, w.Outcome(), "seed %d\n%s", seed, w)
		}
	})
}

func TestBeliefOnlyGrows(t *testing.T) {
	w := cave(t, classicCave)
	a := forWorld(w, 1)

	visited := map[game.Position]bool{}
	p := w.Percept()
	for w.Outcome() == world.Running {
		size := a.Model().Len()
		action, err := a.Step(p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, a.Model().Len(), size)

		for _, c := range a.Model().Cells() {
			if visited[c.Position] {
				assert.True(t, c.Visited, "%s forgotten", c.Position)
			}
			visited[c.Position] = visited[c.Position] || c.Visited
		}

		p, err = w.Apply(action)
		require.NoError(t, err)
	}
}
