package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	t.Run("Neighbors are the four axis-aligned cells", func(t *testing.T) {
		p := Position{X: 2, Y: 3}
		assert.Equal(t, []Position{{3, 3}, {1, 3}, {2, 4}, {2, 2}}, p.Neighbors())
		for _, n := range p.Neighbors() {
			assert.Equal(t, 1, p.Distance(n))
		}
	})

	t.Run("Step and DirectionTo agree", func(t *testing.T) {
		p := Position{X: 0, Y: 0}
		for _, h := range []Heading{North, East, South, West} {
			dir, err := p.DirectionTo(p.Step(h))
			require.NoError(t, err)
			assert.Equal(t, h, dir)
		}
	})

	t.Run("DirectionTo rejects non-adjacent cells", func(t *testing.T) {
		_, err := Position{0, 0}.DirectionTo(Position{1, 1})
		assert.ErrorIs(t, err, ErrNotAdjacent)

		_, err = Position{0, 0}.DirectionTo(Position{0, 0})
		assert.ErrorIs(t, err, ErrNotAdjacent)
	})

	t.Run("Bounds", func(t *testing.T) {
		b := Bounds{Width: 4, Height: 3}
		assert.True(t, b.Contains(Position{0, 0}))
		assert.True(t, b.Contains(Position{3, 2}))
		assert.False(t, b.Contains(Position{4, 0}))
		assert.False(t, b.Contains(Position{0, -1}))
	})
}

func TestHeading(t *testing.T) {
	tests := []struct {
		from, to    Heading
		left, right int
	}{
		{North, North, 0, 0},
		{North, East, 3, 1},
		{North, West, 1, 3},
		{North, South, 2, 2},
		{East, North, 1, 3},
		{West, South, 1, 3},
		{South, East, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.left, tt.from.RequiredLeftTurns(tt.to))
			assert.Equal(t, tt.right, tt.from.RequiredRightTurns(tt.to))

			h := tt.from
			for i := 0; i < tt.left; i++ {
				h = h.TurnLeft()
			}
			assert.Equal(t, tt.to, h)

			h = tt.from
			for i := 0; i < tt.right; i++ {
				h = h.TurnRight()
			}
			assert.Equal(t, tt.to, h)
		})
	}
}

func TestPerceptJSON(t *testing.T) {
	raw := `{"stench":true,"breeze":false,"glitter":false,"bump":false,"scream":false,"last_action":"turn_left","arrows":1}`

	var p Percept
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.True(t, p.Stench)
	assert.Equal(t, TurnLeft, p.LastAction)
	assert.Equal(t, 1, p.Arrows)

	var bad Percept
	assert.Error(t, json.Unmarshal([]byte(`{"last_action":"jump"}`), &bad))
}
