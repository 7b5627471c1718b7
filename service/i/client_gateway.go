package i

import "github.com/google/uuid"

// ClientGateway is the realtime transport the session manager broadcasts
// through and receives client actions from.
type ClientGateway interface {
	// SetClientRequestHandler sets the handler invoked with the client
	// ID, frame type, and payload of each inbound action frame.
	SetClientRequestHandler(func(uuid.UUID, byte, []byte))

	// SetClientAuthenticator sets the token validator used during the
	// connection handshake.
	SetClientAuthenticator(PlayerAuthenticator)

	// BroadcastToClients pushes a frame to each of the listed clients
	// that is currently connected.
	BroadcastToClients(ids []uuid.UUID, frameType byte, payload []byte)

	// Addr returns the address clients should dial.
	Addr() string
}
