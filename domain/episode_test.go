package domain

import (
	"errors"
	"testing"

	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEpisode(t *testing.T) {
	newEpisode := func() *Episode {
		return NewEpisode(uuid.New(), uuid.New(), game.Position{}, game.East)
	}

	t.Run("Grab counts once the gold is gone", func(t *testing.T) {
		e := newEpisode()
		e.Record(game.Grab, "pickup")
		assert.False(t, e.Grabbed)

		e.Observe(game.Percept{LastAction: game.Grab})
		assert.True(t, e.Grabbed)
	})

	t.Run("Grab with the glitter still there does not count", func(t *testing.T) {
		e := newEpisode()
		e.Record(game.Grab, "pickup")
		e.Observe(game.Percept{LastAction: game.Grab, Glitter: true})
		assert.False(t, e.Grabbed)

		e.Record(game.Climb, "return_home")
		e.End(OutcomeClimbed, nil)
		assert.False(t, e.Ranked())
	})

	t.Run("Percepts of other actions are ignored", func(t *testing.T) {
		e := newEpisode()
		e.Observe(game.Percept{LastAction: game.Grab})
		assert.False(t, e.Grabbed)

		e.Record(game.Forward, "explore")
		e.Observe(game.Percept{LastAction: game.Grab})
		assert.False(t, e.Grabbed)
	})

	t.Run("Ranked only after climbing with the gold", func(t *testing.T) {
		e := newEpisode()
		e.Record(game.Grab, "pickup")
		e.Observe(game.Percept{LastAction: game.Grab})
		assert.False(t, e.Ranked())

		e.Record(game.Climb, "return_home")
		e.End(OutcomeClimbed, nil)
		assert.True(t, e.Finished())
		assert.True(t, e.Ranked())
		assert.Equal(t, 2, e.Steps())
	})

	t.Run("End keeps the cause", func(t *testing.T) {
		e := newEpisode()
		e.End(OutcomeFailed, errors.New("no plan"))
		assert.Equal(t, "no plan", e.Error)
		assert.False(t, e.EndedAt.IsZero())
		assert.False(t, e.Ranked())
	})
}
