// Package domain holds the records the agent service persists.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/google/uuid"
)

var (
	ErrEpisodeNotFound = errors.New("episode not found")
)

// Outcome is how an episode ended, as far as the agent knows.
type Outcome string

const (
	OutcomeRunning   Outcome = "running"
	OutcomeClimbed   Outcome = "climbed"
	OutcomeFailed    Outcome = "failed"
	OutcomeAbandoned Outcome = "abandoned"
)

// Episode is the transcript of one agent episode.
type Episode struct {
	ID        uuid.UUID     `json:"id"`
	SessionID uuid.UUID     `json:"session_id"`
	Start     game.Position `json:"start"`
	Heading   game.Heading  `json:"heading"`
	Actions   []game.Action `json:"actions"`
	Goals     []string      `json:"goals"`
	Grabbed   bool          `json:"grabbed"`
	Outcome   Outcome       `json:"outcome"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at,omitempty"`
}

// NewEpisode starts a transcript for the episode id of session sessionID.
func NewEpisode(id, sessionID uuid.UUID, start game.Position, heading game.Heading) *Episode {
	return &Episode{
		ID:        id,
		SessionID: sessionID,
		Start:     start,
		Heading:   heading,
		Outcome:   OutcomeRunning,
		StartedAt: time.Now().UTC(),
	}
}

// Record appends an action and the goal it was planned for.
func (e *Episode) Record(a game.Action, goal string) {
	e.Actions = append(e.Actions, a)
	e.Goals = append(e.Goals, goal)
}

// Observe takes the percept that answers the last recorded action. A grab only counts once
// the environment confirms it: the percept reports the grab and the glitter is gone.
func (e *Episode) Observe(p game.Percept) {
	if len(e.Actions) == 0 || e.Actions[len(e.Actions)-1] != game.Grab {
		return
	}
	if p.LastAction == game.Grab && !p.Glitter {
		e.Grabbed = true
	}
}

// Steps returns how many actions were taken.
func (e *Episode) Steps() int {
	return len(e.Actions)
}

// End closes the transcript.
func (e *Episode) End(o Outcome, err error) {
	e.Outcome = o
	e.EndedAt = time.Now().UTC()
	if err != nil {
		e.Error = err.Error()
	}
}

// Finished reports whether End was called.
func (e *Episode) Finished() bool {
	return e.Outcome != OutcomeRunning
}

// Ranked reports whether the episode belongs on the leaderboard: the agent climbed out after
// a confirmed grab.
func (e *Episode) Ranked() bool {
	return e.Outcome == OutcomeClimbed && e.Grabbed
}

// LeaderboardEntry is one ranked episode. Fewer steps rank higher.
type LeaderboardEntry struct {
	EpisodeID uuid.UUID `json:"episode_id"`
	Steps     int       `json:"steps"`
}
