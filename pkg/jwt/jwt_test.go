package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "alice@example.com", "member")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	parsed, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager("different-secret", "refresh-secret", 15*time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "a@b.c", "member")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "a@b.c", "member")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestHashTokenStableAndOpaque(t *testing.T) {
	hash := HashToken("some-token")

	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken("some-token"))
	assert.NotEqual(t, hash, HashToken("other-token"))
}
