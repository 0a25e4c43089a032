// Package agentapi exposes agent sessions over HTTP and websockets.
package agentapi

import (
	dmn "github.com/beka-birhanu/vinom-agent/domain"
	"github.com/beka-birhanu/vinom-agent/game"
)

// EpisodeRequest places the agent for a new episode. Heading defaults to east.
type EpisodeRequest struct {
	Start   game.Position `json:"start"`
	Heading *game.Heading `json:"heading"`
}

func (r EpisodeRequest) heading() game.Heading {
	if r.Heading == nil {
		return game.East
	}
	return *r.Heading
}

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

// ActionResponse carries the agent's answer to one percept.
type ActionResponse struct {
	Action game.Action `json:"action"`
}

// LeaderboardResponse lists the best ranked episodes.
type LeaderboardResponse struct {
	Entries []dmn.LeaderboardEntry `json:"entries"`
}
