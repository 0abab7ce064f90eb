package token_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidstreamhq/vidstream/pkg/token"
)

func newManager() *token.Manager {
	return token.NewManager("access-secret", "refresh-secret", "15m", "7d")
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		ttl  string
		want int64
	}{
		{"30s", 30},
		{"15m", 900},
		{"2h", 7200},
		{"7d", 604800},
		{"10x", 900}, // unknown suffix falls back
		{"abc", 900},
		{"", 900},
		{"5", 900}, // no suffix
	}

	for _, tt := range tests {
		t.Run(tt.ttl, func(t *testing.T) {
			assert.Equal(t, tt.want, token.ParseTTL(tt.ttl))
		})
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newManager()
	userID := uuid.New()

	tokenString, err := m.GenerateAccessToken(userID, "user@vidstream.local", "device-1")
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "user@vidstream.local", claims.Email)
	assert.Equal(t, "device-1", claims.DeviceID)
	assert.Equal(t, claims.IssuedAt+900, claims.Expiry)
}

func TestAccessTokenWithoutDevice(t *testing.T) {
	m := newManager()

	tokenString, err := m.GenerateAccessToken(uuid.New(), "user@vidstream.local", "")
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(tokenString)
	require.NoError(t, err)
	assert.Empty(t, claims.DeviceID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newManager()
	userID := uuid.New()

	tokenString, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	claims, err := m.VerifyRefreshToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
	assert.Equal(t, claims.IssuedAt+604800, claims.Expiry)
}

func TestRefreshTokenIDsAreUnique(t *testing.T) {
	m := newManager()
	userID := uuid.New()

	first, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)
	second, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	firstClaims, err := m.VerifyRefreshToken(first)
	require.NoError(t, err)
	secondClaims, err := m.VerifyRefreshToken(second)
	require.NoError(t, err)

	assert.Equal(t, firstClaims.Subject, secondClaims.Subject)
	assert.NotEqual(t, firstClaims.TokenID, secondClaims.TokenID)
}

func TestGenerateTokensReportsAccessTTL(t *testing.T) {
	m := newManager()

	pair, err := m.GenerateTokens(uuid.New(), "user@vidstream.local", "")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	m := newManager()
	userID := uuid.New()

	accessToken, err := m.GenerateAccessToken(userID, "user@vidstream.local", "")
	require.NoError(t, err)
	refreshToken, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(accessToken)
	assert.Error(t, err)
	_, err = m.VerifyAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredAccessToken(t *testing.T) {
	m := token.NewManager("access-secret", "refresh-secret", "-1m", "7d")

	tokenString, err := m.GenerateAccessToken(uuid.New(), "user@vidstream.local", "")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(tokenString)
	assert.Error(t, err)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := newManager()
	other := token.NewManager("other-secret", "other-refresh", "15m", "7d")

	tokenString, err := other.GenerateAccessToken(uuid.New(), "user@vidstream.local", "")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(tokenString)
	assert.Error(t, err)
}

func TestAccessExpiryMatchesWallClock(t *testing.T) {
	m := newManager()

	tokenString, err := m.GenerateAccessToken(uuid.New(), "user@vidstream.local", "")
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(tokenString)
	require.NoError(t, err)

	expiry := time.Unix(claims.Expiry, 0)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiry, 5*time.Second)
}
