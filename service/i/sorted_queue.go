package i

import "context"

// ScoredMember is a member of a sorted queue with its score.
type ScoredMember struct {
	Member string
	Score  float64
}

// SortedQueue is a set of members kept ordered by ascending score.
type SortedQueue interface {
	// Enqueue adds member with score, replacing the score of an existing member.
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error

	// Tops returns up to amount members with the lowest scores without removing them.
	Tops(ctx context.Context, queueKey string, amount int64) ([]ScoredMember, error)

	// Trim keeps the keep lowest scored members and drops the rest.
	Trim(ctx context.Context, queueKey string, keep int64) error

	// Count returns the number of members in the queue.
	Count(ctx context.Context, queueKey string) int64
}
