package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vaibhavshukla06/Labyrnith-Survival/identity"
	"github.com/vaibhavshukla06/Labyrnith-Survival/service/i"
)

const tokenLifetime = 24 * time.Hour

// ErrInvalidCredentials hides whether the username or the password was
// wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Auth implements registration and sign-in on top of the user repository
// and the tokenizer.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
}

var _ i.Authenticator = &Auth{}

// NewAuth creates the authentication service.
func NewAuth(userRepo i.UserRepo, tokenizer i.Tokenizer) (*Auth, error) {
	if userRepo == nil || tokenizer == nil {
		return nil, errors.New("auth service requires a user repo and a tokenizer")
	}
	return &Auth{userRepo: userRepo, tokenizer: tokenizer}, nil
}

// Register validates and stores a new player account.
func (a *Auth) Register(username, password string) error {
	user, err := identity.NewUser(identity.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}
	return a.userRepo.Save(user)
}

// SignIn verifies the credentials and returns the user with a fresh
// access token.
func (a *Auth) SignIn(username, password string) (*identity.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, tokenLifetime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
