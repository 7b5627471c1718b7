package game

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/vaibhavshukla06/Labyrnith-Survival/maze"
)

// Action types understood by the round loop.
const (
	MoveActionType         = 1 << iota // player movement request
	StateRequestActionType             // full-state resend request
)

// Action is a raw client request routed into a running round.
type Action struct {
	PlayerID uuid.UUID
	Type     byte
	Payload  []byte
}

// MoveRequest is the payload of a MoveActionType action: the player's
// claimed current world position and the requested one.
type MoveRequest struct {
	FromX float64 `json:"fromX"`
	FromZ float64 `json:"fromZ"`
	ToX   float64 `json:"toX"`
	ToZ   float64 `json:"toZ"`
}

// PlayerState is the per-player slice of a broadcast state frame.
type PlayerState struct {
	ID      uuid.UUID `json:"id"`
	X       float64   `json:"x"`
	Z       float64   `json:"z"`
	Escaped bool      `json:"escaped"`
}

// StateMessage is the frame broadcast to every player in the round. Maze
// is only attached when the layout changed (generation or a shift), so
// routine position updates stay small.
type StateMessage struct {
	Version int64          `json:"version"`
	Players []PlayerState  `json:"players"`
	Maze    *maze.Snapshot `json:"maze,omitempty"`
	Ended   bool           `json:"ended"`
}

func (s *StateMessage) marshal() ([]byte, error) {
	return json.Marshal(s)
}

func unmarshalMove(payload []byte, into *MoveRequest) error {
	return json.Unmarshal(payload, into)
}
