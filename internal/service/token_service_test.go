package service_test

import (
	"testing"

	"github.com/J-A-Y2/Big-Money/internal/service"
	"github.com/J-A-Y2/Big-Money/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := service.NewTokenService(testutil.TestConfig())
	userID := uuid.New().String()

	access, err := tokens.GenerateAccessToken(userID)
	require.NoError(t, err)

	sub, ok := tokens.DecodeToken(access)
	require.True(t, ok)
	assert.Equal(t, userID, sub)

	refresh, err := tokens.GenerateRefreshToken(userID)
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	sub, ok = tokens.DecodeToken(refresh)
	require.True(t, ok)
	assert.Equal(t, userID, sub)
}

func TestTokenService_DecodeFailures(t *testing.T) {
	cfg := testutil.TestConfig()
	tokens := service.NewTokenService(cfg)

	t.Run("malformed token", func(t *testing.T) {
		_, ok := tokens.DecodeToken("not.a.jwt")
		assert.False(t, ok)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(uuid.New().String())
		require.NoError(t, err)

		_, ok := tokens.DecodeToken(token + "x")
		assert.False(t, ok)
	})

	t.Run("wrong secret", func(t *testing.T) {
		otherCfg := testutil.TestConfig()
		otherCfg.JWTSecret = "a-different-secret-entirely"
		other := service.NewTokenService(otherCfg)

		token, err := other.GenerateAccessToken(uuid.New().String())
		require.NoError(t, err)

		_, ok := tokens.DecodeToken(token)
		assert.False(t, ok)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredCfg := testutil.TestConfig()
		expiredCfg.AccessTokenExpirationHours = -1
		expired := service.NewTokenService(expiredCfg)

		token, err := expired.GenerateAccessToken(uuid.New().String())
		require.NoError(t, err)

		_, ok := tokens.DecodeToken(token)
		assert.False(t, ok)
	})
}
