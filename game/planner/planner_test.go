package planner

import (
	"testing"

	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/beka-birhanu/vinom-agent/game/belief"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	arena      = game.Bounds{Width: 10, Height: 10}
	thresholds = belief.DefaultThresholds()
)

// visited builds a model in which every given cell was visited without any cue.
func visited(cells ...game.Position) *belief.Model {
	m := belief.NewModel(arena)
	for _, p := range cells {
		m.ApplySensorReport(p, false, false, false)
		m.EnsureNeighbors(p)
	}
	return m
}

func block() *belief.Model {
	return visited(
		game.Position{X: 0, Y: 0}, game.Position{X: 1, Y: 0}, game.Position{X: 2, Y: 0},
		game.Position{X: 0, Y: 1}, game.Position{X: 1, Y: 1}, game.Position{X: 2, Y: 1},
	)
}

func assertValidPath(t *testing.T, m *belief.Model, from game.Position, path []game.Position) {
	t.Helper()
	seen := map[game.Position]bool{from: true}
	last := from
	for _, p := range path {
		assert.Equal(t, 1, last.Distance(p), "%s and %s are not adjacent", last, p)
		assert.True(t, m.Routable(p, thresholds), "%s is not routable", p)
		assert.False(t, seen[p], "%s is repeated", p)
		seen[p] = true
		last = p
	}
}

func TestRoute(t *testing.T) {
	origin := game.Position{X: 0, Y: 0}

	t.Run("Shortest path through a cyclic block", func(t *testing.T) {
		m := block()
		path, err := Route(m, thresholds, origin, game.Position{X: 2, Y: 1})
		require.NoError(t, err)
		assert.Len(t, path, 3)
		assert.Equal(t, game.Position{X: 2, Y: 1}, path[len(path)-1])
		assertValidPath(t, m, origin, path)
	})

	t.Run("Frontier cells without cues are reachable", func(t *testing.T) {
		m := block()
		path, err := Route(m, thresholds, origin, game.Position{X: 3, Y: 0})
		require.NoError(t, err)
		assert.Len(t, path, 3)
		assertValidPath(t, m, origin, path)
	})

	t.Run("Route to the source is empty", func(t *testing.T) {
		path, err := Route(block(), thresholds, origin, origin)
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("Walls are routed around", func(t *testing.T) {
		m := block()
		m.MarkWall(game.Position{X: 1, Y: 0})
		path, err := Route(m, thresholds, origin, game.Position{X: 2, Y: 0})
		require.NoError(t, err)
		assert.Equal(t, []game.Position{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0}}, path)
		assertValidPath(t, m, origin, path)
	})

	t.Run("Undiscovered target is unreachable", func(t *testing.T) {
		_, err := Route(block(), thresholds, origin, game.Position{X: 5, Y: 5})
		assert.ErrorIs(t, err, ErrUnreachable)
	})

	t.Run("Dangerous target is unreachable", func(t *testing.T) {
		m := belief.NewModel(arena)
		m.ApplySensorReport(origin, true, true, false)
		m.EnsureNeighbors(origin)

		_, err := Route(m, thresholds, origin, game.Position{X: 1, Y: 0})
		assert.ErrorIs(t, err, ErrUnreachable)
	})

	t.Run("Cells next to a breeze are avoided", func(t *testing.T) {
		m := visited(origin)
		m.ApplySensorReport(game.Position{X: 1, Y: 0}, false, true, false)
		m.EnsureNeighbors(game.Position{X: 1, Y: 0})

		path, err := Route(m, thresholds, origin, game.Position{X: 0, Y: 1})
		require.NoError(t, err)
		assert.Equal(t, []game.Position{{X: 0, Y: 1}}, path)

		for _, p := range []game.Position{{X: 2, Y: 0}, {X: 1, Y: 1}} {
			_, err = Route(m, thresholds, origin, p)
			assert.ErrorIs(t, err, ErrUnreachable)
		}
	})

	t.Run("Source is forced into the graph", func(t *testing.T) {
		m := belief.NewModel(arena)
		m.EnsureNeighbors(origin)
		m.ApplySensorReport(game.Position{X: 1, Y: 0}, true, false, false)
		m.EnsureNeighbors(game.Position{X: 1, Y: 0})
		require.False(t, m.Routable(origin, thresholds))

		path, err := Route(m, thresholds, origin, game.Position{X: 1, Y: 0})
		require.NoError(t, err)
		assert.Equal(t, []game.Position{{X: 1, Y: 0}}, path)
	})

	t.Run("Tree answers several targets", func(t *testing.T) {
		m := block()
		tree := ShortestPaths(m, thresholds, origin)
		assert.Equal(t, origin, tree.Source())
		for _, c := range m.Cells() {
			path, err := tree.PathTo(c.Position)
			if err != nil {
				assert.ErrorIs(t, err, ErrUnreachable)
				assert.False(t, m.Routable(c.Position, thresholds) && c.Position != origin)
				continue
			}
			d, ok := tree.Distance(c.Position)
			require.True(t, ok)
			assert.Len(t, path, d)
			assertValidPath(t, m, origin, path)
		}
	})
}

// walk replays actions on a plain grid and records every cell entered.
func walk(from game.Position, heading game.Heading, actions []game.Action) ([]game.Position, game.Heading) {
	var cells []game.Position
	pos := from
	for _, a := range actions {
		switch a {
		case game.TurnLeft:
			heading = heading.TurnLeft()
		case game.TurnRight:
			heading = heading.TurnRight()
		case game.Forward:
			pos = pos.Step(heading)
			cells = append(cells, pos)
		}
	}
	return cells, heading
}

func TestCompile(t *testing.T) {
	t.Run("Turns and moves along a path", func(t *testing.T) {
		path := []game.Position{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
		actions, heading, err := Compile(game.Position{X: 0, Y: 0}, game.East, path)
		require.NoError(t, err)
		assert.Equal(t, []game.Action{
			game.Forward,
			game.TurnLeft, game.Forward,
			game.TurnLeft, game.Forward,
		}, actions)
		assert.Equal(t, game.West, heading)
	})

	t.Run("Half turn", func(t *testing.T) {
		actions, heading, err := Compile(game.Position{X: 1, Y: 0}, game.East, []game.Position{{X: 0, Y: 0}})
		require.NoError(t, err)
		assert.Equal(t, []game.Action{game.TurnRight, game.TurnRight, game.Forward}, actions)
		assert.Equal(t, game.West, heading)
	})

	t.Run("Empty path", func(t *testing.T) {
		actions, heading, err := Compile(game.Position{X: 1, Y: 0}, game.South, nil)
		require.NoError(t, err)
		assert.Empty(t, actions)
		assert.Equal(t, game.South, heading)
	})

	t.Run("Rejects gaps", func(t *testing.T) {
		_, _, err := Compile(game.Position{X: 0, Y: 0}, game.East, []game.Position{{X: 2, Y: 0}})
		assert.ErrorIs(t, err, game.ErrNotAdjacent)
	})

	t.Run("Replaying the actions reproduces the route", func(t *testing.T) {
		m := block()
		m.MarkWall(game.Position{X: 1, Y: 0})
		origin := game.Position{X: 0, Y: 0}
		tree := ShortestPaths(m, thresholds, origin)

		for _, start := range []game.Heading{game.North, game.East, game.South, game.West} {
			for _, c := range m.Cells() {
				path, err := tree.PathTo(c.Position)
				if err != nil {
					continue
				}
				actions, heading, err := Compile(origin, start, path)
				require.NoError(t, err)

				cells, replayed := walk(origin, start, actions)
				assert.Equal(t, path, cells)
				assert.Equal(t, heading, replayed)
			}
		}
	})
}

func TestFace(t *testing.T) {
	assert.Empty(t, Face(game.North, game.North))
	assert.Equal(t, []game.Action{game.TurnLeft}, Face(game.North, game.West))
	assert.Equal(t, []game.Action{game.TurnRight}, Face(game.North, game.East))
	assert.Equal(t, []game.Action{game.TurnRight, game.TurnRight}, Face(game.West, game.East))
}
