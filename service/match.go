package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/vaibhavshukla06/Labyrnith-Survival/config"
	"github.com/vaibhavshukla06/Labyrnith-Survival/service/i"
)

const (
	defaultQueuePrefix      = "matchmaker"
	defaultMatchSize        = 2
	defaultRatingTolerance  = 100
	defaultLatencyTolerance = 50
	queueKeyFmt             = "%s:queue:rating_%d:latency_%d"
)

// MatchmakerOptions tune queue bucketing and match size.
type MatchmakerOptions struct {
	Prefix           string
	Handler          func(IDs []uuid.UUID)
	MatchSize        int64
	RatingTolerance  int
	LatencyTolerance int
}

// Matchmaker buckets queued players by rating and latency and forms a
// match whenever a bucket holds enough of them. The queue lives in shared
// sorted storage, so any API instance can complete a match.
type Matchmaker struct {
	sortedQueue i.SortedQueue
	logger      *log.Logger
	opts        *MatchmakerOptions
}

var _ i.Matchmaker = &Matchmaker{}

// NewMatchmaker creates a matchmaker over the given queue. Nil or
// out-of-range options fall back to defaults.
func NewMatchmaker(sortedQueue i.SortedQueue, logger *log.Logger, opts *MatchmakerOptions) (*Matchmaker, error) {
	if opts == nil {
		opts = &MatchmakerOptions{}
	}
	if opts.MatchSize <= 0 {
		opts.MatchSize = defaultMatchSize
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultQueuePrefix
	}
	if opts.RatingTolerance < 0 {
		opts.RatingTolerance = defaultRatingTolerance
	}
	if opts.LatencyTolerance < 0 {
		opts.LatencyTolerance = defaultLatencyTolerance
	}

	return &Matchmaker{
		sortedQueue: sortedQueue,
		logger:      logger,
		opts:        opts,
	}, nil
}

// PushToQueue enqueues a player and immediately tries to complete a match
// in their bucket.
func (mm *Matchmaker) PushToQueue(ctx context.Context, id uuid.UUID, rating int, latency uint) error {
	score := float64(time.Now().UnixNano())
	key := mm.queueKey(rating, latency)

	if err := mm.sortedQueue.Enqueue(ctx, key, score, id.String()); err != nil {
		mm.logger.Printf("%s[ERROR]%s enqueueing player %s: %s", config.LogErrorColor, config.LogColorReset, id, err)
		return err
	}

	mm.logger.Printf("%s[INFO]%s queued player %s (rating=%d latency=%d)", config.LogInfoColor, config.LogColorReset, id, rating, latency)
	go mm.tryMatch(ctx, key)
	return nil
}

// SetMatchHandler registers the callback invoked with the players of each
// formed match.
func (mm *Matchmaker) SetMatchHandler(f func([]uuid.UUID)) {
	mm.opts.Handler = f
}

// tryMatch pops a full match off the bucket if one is there.
func (mm *Matchmaker) tryMatch(ctx context.Context, queueKey string) {
	if mm.sortedQueue.Count(ctx, queueKey) < mm.opts.MatchSize {
		return
	}

	rawIDs, err := mm.sortedQueue.DequeTops(ctx, queueKey, mm.opts.MatchSize)
	if err != nil {
		mm.logger.Printf("%s[ERROR]%s dequeueing match: %s", config.LogErrorColor, config.LogColorReset, err)
		return
	}
	if int64(len(rawIDs)) < mm.opts.MatchSize {
		return
	}

	playerIDs := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			mm.logger.Printf("%s[ERROR]%s non-UUID value in queue: %s", config.LogErrorColor, config.LogColorReset, raw)
			continue
		}
		playerIDs = append(playerIDs, id)
	}

	if mm.opts.Handler != nil && len(playerIDs) > 0 {
		mm.logger.Printf("%s[INFO]%s match formed: %v", config.LogInfoColor, config.LogColorReset, playerIDs)
		go mm.opts.Handler(playerIDs)
	}
}

// queueKey buckets rating and latency by their tolerances so only
// comparable players share a queue.
func (mm *Matchmaker) queueKey(rating int, latency uint) string {
	return fmt.Sprintf(queueKeyFmt, mm.opts.Prefix,
		bucket(rating, mm.opts.RatingTolerance),
		bucket(int(latency), mm.opts.LatencyTolerance))
}

func bucket(value, tolerance int) int {
	return value / (tolerance + 1)
}
