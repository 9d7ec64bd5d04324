package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 240)

	token, exp, err := tm.GenerateToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(4*time.Hour), exp, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestTokenManager_RejectsMalformedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 240)

	_, err := tm.ParseToken("not-a-jwt")
	require.Error(t, err)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 240)
	other := NewTokenManager("other-secret", 240)

	token, _, err := tm.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := tm.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestNewTokenManager_DefaultsToFourHours(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	assert.Equal(t, 240*time.Minute, tm.ttl)
}
