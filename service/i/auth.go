package i

import (
	"github.com/google/uuid"
	"github.com/vaibhavshukla06/Labyrnith-Survival/identity"
)

// Authenticator handles account registration and sign-in.
type Authenticator interface {
	Register(username, password string) error
	SignIn(username, password string) (*identity.User, string, error)
}

// PlayerAuthenticator validates a realtime-connection token and resolves
// it to a player ID.
type PlayerAuthenticator interface {
	Authenticate(token string) (uuid.UUID, error)
}
