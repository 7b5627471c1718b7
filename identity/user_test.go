package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "correct-horse-battery-staple-99"

func TestNewUser(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		u, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "maze_runner_1",
			PlainPassword: strongPassword,
		})
		require.NoError(t, err)
		assert.Equal(t, defaultRating, u.Rating)
		assert.NotEqual(t, strongPassword, u.PasswordHash)
		assert.True(t, u.VerifyPassword(strongPassword))
		assert.False(t, u.VerifyPassword("wrong"))
	})

	t.Run("username rules", func(t *testing.T) {
		cases := []struct {
			username string
			want     error
		}{
			{"ab", ErrUsernameTooShort},
			{"this_username_is_way_too_long_x", ErrUsernameTooLong},
			{"bad name!", ErrUsernameInvalid},
		}
		for _, c := range cases {
			_, err := NewUser(UserConfig{
				ID:            uuid.New(),
				Username:      c.username,
				PlainPassword: strongPassword,
			})
			assert.ErrorIs(t, err, c.want, "username %q", c.username)
		}
	})

	t.Run("weak passwords are rejected", func(t *testing.T) {
		_, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "maze_runner_2",
			PlainPassword: "password",
		})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}
