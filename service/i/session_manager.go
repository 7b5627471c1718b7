package i

import (
	"github.com/google/uuid"
)

// GameSessionManager owns the running rounds and the player-to-round
// mapping.
type GameSessionManager interface {
	// NewSession starts a round for the matched players.
	NewSession(playerIDs []uuid.UUID)

	// SessionInfo returns the realtime endpoint a player with a live
	// session should connect to.
	SessionInfo(playerID uuid.UUID) (string, error)

	// StopAll shuts down every running round.
	StopAll()
}
