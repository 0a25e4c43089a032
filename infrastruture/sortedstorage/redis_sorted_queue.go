package sortedstorage

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-agent/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisSortedQueue manages a sorted queue in Redis with optional TTL support.
type RedisSortedQueue struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisSortedQueue initializes a RedisSortedQueue with the provided Redis client and TTL.
// A ttlSeconds of zero keeps queues forever.
func NewRedisSortedQueue(client *redis.Client, ttlSeconds int) (i.SortedQueue, error) {
	queue := &RedisSortedQueue{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	queue.locker = redsync.New(pool)
	return queue, nil
}

// Enqueue adds a member to the sorted queue with a given score and sets expiration if necessary.
func (rsq *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	_, err := rsq.client.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member}).Result()
	if err != nil {
		return err
	}

	if rsq.ttl <= 0 {
		return nil
	}

	// Set expiration only if it's not already set
	ttl, err := rsq.client.TTL(ctx, queueKey).Result()
	if err == nil && ttl == -1 {
		_ = rsq.client.Expire(ctx, queueKey, rsq.ttl).Err()
	}

	return nil
}

// Tops retrieves up to `amount` members with the lowest scores, leaving them in place.
func (rsq *RedisSortedQueue) Tops(ctx context.Context, queueKey string, amount int64) ([]i.ScoredMember, error) {
	if amount <= 0 {
		return nil, nil
	}

	zs, err := rsq.client.ZRangeWithScores(ctx, queueKey, 0, amount-1).Result()
	if err != nil {
		return nil, err
	}

	members := make([]i.ScoredMember, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		members = append(members, i.ScoredMember{Member: member, Score: z.Score})
	}
	return members, nil
}

// Trim removes every member ranked after the first `keep`.
func (rsq *RedisSortedQueue) Trim(ctx context.Context, queueKey string, keep int64) error {
	mutex := rsq.locker.NewMutex(queueKey + ":trim_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	if rsq.client.ZCard(ctx, queueKey).Val() <= keep {
		return nil
	}
	return rsq.client.ZRemRangeByRank(ctx, queueKey, keep, -1).Err()
}

// Count returns the number of members in the sorted queue.
func (rsq *RedisSortedQueue) Count(ctx context.Context, queueKey string) int64 {
	return rsq.client.ZCard(ctx, queueKey).Val()
}
