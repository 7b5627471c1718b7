// Package sortedstorage backs the matchmaking queue with a Redis sorted
// set, locked with redsync so concurrent dequeuers never split a match.
package sortedstorage

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/vaibhavshukla06/Labyrnith-Survival/service/i"
)

// RedisSortedQueue manages score-ordered queues in Redis with TTL support.
type RedisSortedQueue struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

var _ i.SortedQueue = &RedisSortedQueue{}

// NewRedisSortedQueue initializes a queue over the given client. Queues
// idle longer than the TTL evaporate, so abandoned buckets do not pile up.
func NewRedisSortedQueue(client *redis.Client, ttlSeconds int) (*RedisSortedQueue, error) {
	queue := &RedisSortedQueue{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	queue.locker = redsync.New(goredis.NewPool(client))
	return queue, nil
}

// Enqueue adds a member with the given score and arms the key's TTL if it
// has none yet.
func (rsq *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	if _, err := rsq.client.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member}).Result(); err != nil {
		return err
	}

	ttl, err := rsq.client.TTL(ctx, queueKey).Result()
	if err == nil && ttl == -1 {
		_ = rsq.client.Expire(ctx, queueKey, rsq.ttl).Err()
	}
	return nil
}

// DequeTops removes and returns up to amount members with the lowest
// scores, holding a distributed lock so two instances cannot both claim
// the same players.
func (rsq *RedisSortedQueue) DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	mutex := rsq.locker.NewMutex(queueKey + ":match_lock")
	if err := mutex.Lock(); err != nil {
		return nil, err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	var members []string
	if rsq.client.ZCard(ctx, queueKey).Val() >= amount {
		for _, z := range rsq.client.ZPopMin(ctx, queueKey, amount).Val() {
			members = append(members, z.Member.(string))
		}
	}
	return members, nil
}

// Count returns the number of queued members.
func (rsq *RedisSortedQueue) Count(ctx context.Context, queueKey string) int64 {
	return rsq.client.ZCard(ctx, queueKey).Val()
}
