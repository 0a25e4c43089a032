package sortedstorage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/beka-birhanu/vinom-agent/service/i"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "leaderboard:test"

func newQueue(t *testing.T, ttlSeconds int) (i.SortedQueue, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	q, err := NewRedisSortedQueue(client, ttlSeconds)
	require.NoError(t, err)
	return q, server
}

func TestRedisSortedQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("Tops are ordered by score", func(t *testing.T) {
		q, _ := newQueue(t, 0)
		require.NoError(t, q.Enqueue(ctx, key, 30, "c"))
		require.NoError(t, q.Enqueue(ctx, key, 10, "a"))
		require.NoError(t, q.Enqueue(ctx, key, 20, "b"))

		tops, err := q.Tops(ctx, key, 2)
		require.NoError(t, err)
		assert.Equal(t, []i.ScoredMember{{Member: "a", Score: 10}, {Member: "b", Score: 20}}, tops)
		assert.Equal(t, int64(3), q.Count(ctx, key))

		tops, err = q.Tops(ctx, key, 0)
		require.NoError(t, err)
		assert.Empty(t, tops)
	})

	t.Run("Enqueue replaces the score", func(t *testing.T) {
		q, _ := newQueue(t, 0)
		require.NoError(t, q.Enqueue(ctx, key, 30, "a"))
		require.NoError(t, q.Enqueue(ctx, key, 5, "a"))

		tops, err := q.Tops(ctx, key, 10)
		require.NoError(t, err)
		assert.Equal(t, []i.ScoredMember{{Member: "a", Score: 5}}, tops)
	})

	t.Run("Trim keeps the lowest scores", func(t *testing.T) {
		q, _ := newQueue(t, 0)
		for n, m := range []string{"a", "b", "c", "d"} {
			require.NoError(t, q.Enqueue(ctx, key, float64(n), m))
		}

		require.NoError(t, q.Trim(ctx, key, 2))
		tops, err := q.Tops(ctx, key, 10)
		require.NoError(t, err)
		assert.Equal(t, []i.ScoredMember{{Member: "a", Score: 0}, {Member: "b", Score: 1}}, tops)

		require.NoError(t, q.Trim(ctx, key, 5))
		assert.Equal(t, int64(2), q.Count(ctx, key))
	})

	t.Run("Expiry is set once", func(t *testing.T) {
		q, server := newQueue(t, 60)
		require.NoError(t, q.Enqueue(ctx, key, 1, "a"))
		assert.Equal(t, time.Minute, server.TTL(key))

		server.FastForward(30 * time.Second)
		require.NoError(t, q.Enqueue(ctx, key, 2, "b"))
		assert.Equal(t, 30*time.Second, server.TTL(key))
	})

	t.Run("No expiry without a TTL", func(t *testing.T) {
		q, server := newQueue(t, 0)
		require.NoError(t, q.Enqueue(ctx, key, 1, "a"))
		assert.Zero(t, server.TTL(key))
	})
}
