package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-agent/domain"
	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/google/uuid"
)

// AgentSessionManager hosts agents on behalf of remote game servers.
type AgentSessionManager interface {
	// NewSession creates an agent standing on start and returns the session ID and the token
	// that authorises stepping it.
	NewSession(ctx context.Context, start game.Position, heading game.Heading) (uuid.UUID, string, error)

	// Step hands a percept to the session's agent and returns its next action.
	Step(ctx context.Context, sessionID uuid.UUID, p game.Percept) (game.Action, error)

	// Reset starts a new episode in an existing session.
	Reset(ctx context.Context, sessionID uuid.UUID, start game.Position, heading game.Heading) error

	// Episode returns a finished or running episode transcript.
	Episode(ctx context.Context, episodeID uuid.UUID) (*dmn.Episode, error)

	// Leaderboard returns the n best ranked episodes.
	Leaderboard(ctx context.Context, n int) ([]dmn.LeaderboardEntry, error)
}
