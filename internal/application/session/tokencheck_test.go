package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedJWT(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	t.Run("expired jwt", func(t *testing.T) {
		token := signedJWT(t, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		})
		assert.True(t, tokenExpired(token, now))
	})

	t.Run("live jwt", func(t *testing.T) {
		token := signedJWT(t, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})
		assert.False(t, tokenExpired(token, now))
	})

	t.Run("jwt without exp", func(t *testing.T) {
		token := signedJWT(t, jwt.RegisteredClaims{Subject: "1"})
		assert.False(t, tokenExpired(token, now))
	})

	t.Run("opaque token", func(t *testing.T) {
		assert.False(t, tokenExpired("2|aRandomSanctumStyleToken", now))
		assert.False(t, tokenExpired("", now))
	})
}
