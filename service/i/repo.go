package i

import (
	"github.com/google/uuid"
	"github.com/vaibhavshukla06/Labyrnith-Survival/identity"
)

// UserRepo defines the persistence operations for player accounts.
type UserRepo interface {
	// Save inserts or updates a user. Existing records are overwritten.
	Save(user *identity.User) error

	// ByID retrieves a user by their unique ID.
	ByID(id uuid.UUID) (*identity.User, error)

	// ByUsername retrieves a user by their username.
	ByUsername(username string) (*identity.User, error)
}
