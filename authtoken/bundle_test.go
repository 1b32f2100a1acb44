package authtoken_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tmori/wishkeeper/authtoken"
)

// testBundle builds a bundle whose access and exchange tokens expire at the
// given offsets from now. A zero refresh token string means no refresh token.
func testBundle(t *testing.T, accessValidFor, exchangeValidFor time.Duration, refreshToken string) authtoken.Bundle {
	t.Helper()

	access, err := authtoken.RestoreAccessToken("raw-access-token", time.Now().Add(accessValidFor))
	require.NoError(t, err)
	exchange, err := authtoken.RestoreExchangeToken("raw-exchange-token", time.Now().Add(exchangeValidFor))
	require.NoError(t, err)

	var refresh *authtoken.RefreshToken
	if refreshToken != "" {
		rt, err := authtoken.NewRefreshToken(refreshToken)
		require.NoError(t, err)
		refresh = &rt
	}

	return authtoken.NewBundle(access, exchange, refresh)
}

func TestBundleIsValid(t *testing.T) {
	bundle := testBundle(t, time.Hour, time.Hour, "")
	require.True(t, bundle.IsValid())
	require.False(t, bundle.HasRefreshToken())
}

func TestBundleValidAtRequiresBothTokensUnexpired(t *testing.T) {
	now := time.Now()
	bundle := testBundle(t, time.Hour, 2*time.Hour, "raw-refresh-token")

	require.True(t, bundle.ValidAt(now))
	// Access token expired, exchange token still good.
	require.False(t, bundle.ValidAt(now.Add(90*time.Minute)))
	// Both expired.
	require.False(t, bundle.ValidAt(now.Add(3*time.Hour)))
}

func TestBundleRefreshTokenPresenceDoesNotAffectValidity(t *testing.T) {
	withRefresh := testBundle(t, time.Hour, time.Hour, "raw-refresh-token")
	withoutRefresh := testBundle(t, time.Hour, time.Hour, "")

	require.True(t, withRefresh.IsValid())
	require.True(t, withoutRefresh.IsValid())
	require.True(t, withRefresh.HasRefreshToken())
	require.False(t, withoutRefresh.HasRefreshToken())
}

func TestWithAccessTokenDoesNotMutateOriginal(t *testing.T) {
	original := testBundle(t, time.Hour, time.Hour, "raw-refresh-token")
	originalAccess := original.AccessToken()

	newAccess, err := authtoken.NewAccessToken("new-access-token", time.Hour)
	require.NoError(t, err)

	updated := original.WithAccessToken(newAccess)

	require.True(t, original.AccessToken().Equals(originalAccess))
	require.Equal(t, "new-access-token", updated.AccessToken().Token())
	// Other fields carried over unchanged.
	require.True(t, updated.ExchangeToken().Equals(original.ExchangeToken()))
	require.True(t, updated.HasRefreshToken())
	require.Equal(t, "raw-refresh-token", updated.RefreshToken().Token())
}

func TestWithExchangeTokenReplacesOnlyExchangeToken(t *testing.T) {
	original := testBundle(t, time.Hour, time.Hour, "raw-refresh-token")

	newExchange, err := authtoken.NewExchangeToken("new-exchange-token", time.Hour)
	require.NoError(t, err)

	updated := original.WithExchangeToken(newExchange)

	require.Equal(t, "raw-exchange-token", original.ExchangeToken().Token())
	require.Equal(t, "new-exchange-token", updated.ExchangeToken().Token())
	require.True(t, updated.AccessToken().Equals(original.AccessToken()))
}

func TestWithRefreshTokenCanRemoveIt(t *testing.T) {
	original := testBundle(t, time.Hour, time.Hour, "raw-refresh-token")

	updated := original.WithRefreshToken(nil)

	require.True(t, original.HasRefreshToken())
	require.False(t, updated.HasRefreshToken())
	require.Nil(t, updated.RefreshToken())
}
