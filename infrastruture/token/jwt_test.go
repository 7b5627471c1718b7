package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtService(t *testing.T) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	secretKey := base64.URLEncoding.EncodeToString(bytes)

	svc := NewJwtService(secretKey, "labyrinth-survival")

	t.Run("generate and decode valid token", func(t *testing.T) {
		claims := map[string]interface{}{
			"userID":   "a9a2c7e0-7a5a-4b24-a0f6-09a7d2c0e111",
			"username": "maze_runner",
		}

		tokenStr, err := svc.Generate(claims, 5*time.Minute)
		require.NoError(t, err)
		require.NotEmpty(t, tokenStr)

		decoded, err := svc.Decode(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, claims["userID"], decoded["userID"])
		assert.Equal(t, claims["username"], decoded["username"])
		assert.Equal(t, "labyrinth-survival", decoded["iss"])
	})

	t.Run("decode garbage", func(t *testing.T) {
		_, err := svc.Decode("not-a-token")
		assert.Error(t, err)
	})

	t.Run("decode expired token", func(t *testing.T) {
		tokenStr, err := svc.Generate(map[string]interface{}{"userID": "x"}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(tokenStr)
		assert.Error(t, err)
	})

	t.Run("decode token signed with a different key", func(t *testing.T) {
		other := NewJwtService("some-other-secret", "labyrinth-survival")
		tokenStr, err := other.Generate(map[string]interface{}{"userID": "x"}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(tokenStr)
		assert.Error(t, err)
	})
}
