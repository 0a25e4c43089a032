package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-agent/domain"
	"github.com/google/uuid"
)

// EpisodeRepo defines the interface for episode persistence operations.
type EpisodeRepo interface {
	// Save inserts or updates an episode in the repository.
	Save(ctx context.Context, episode *dmn.Episode) error

	// ByID retrieves an episode by its unique ID.
	// Returns ErrEpisodeNotFound if there is none.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Episode, error)
}
