package i

import (
	"context"

	"github.com/google/uuid"
)

// Matchmaker queues players for a round and reports formed matches to a
// registered handler.
type Matchmaker interface {
	PushToQueue(ctx context.Context, id uuid.UUID, rating int, latency uint) error
	SetMatchHandler(func([]uuid.UUID))
}
