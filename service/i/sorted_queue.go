package i

import "context"

// SortedQueue is a score-ordered queue with atomic batch dequeue, backed
// by shared storage so several API instances can feed the same pool.
type SortedQueue interface {
	// Enqueue adds a member with the given score.
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error

	// DequeTops atomically removes and returns up to amount members with
	// the lowest scores, or nothing if fewer are queued.
	DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error)

	// Count returns the number of queued members.
	Count(ctx context.Context, queueKey string) int64
}
