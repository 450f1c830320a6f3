package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", "PUBLISHER", time.Hour)
	require.NoError(t, err)

	uid, role, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
	assert.Equal(t, "PUBLISHER", role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", "ADMIN", time.Hour)
	require.NoError(t, err)

	_, _, err = ParseToken("other-secret", token)
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", "user-1", "SUBSCRIBER", -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseToken("secret", token)
	require.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, _, err := ParseToken("secret", "не.токен.вовсе")
	require.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
