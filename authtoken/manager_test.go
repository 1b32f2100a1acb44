package authtoken_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/tmori/wishkeeper/authtoken"
	apperrors "github.com/tmori/wishkeeper/internal/errors"
)

// fakeExchanger counts calls and returns a canned response.
type fakeExchanger struct {
	calls     int
	lastToken string
	raw       string
	expiresIn time.Duration
	err       error
}

func (f *fakeExchanger) Exchange(_ context.Context, refreshToken authtoken.RefreshToken) (string, time.Duration, error) {
	f.calls++
	f.lastToken = refreshToken.Token()
	return f.raw, f.expiresIn, f.err
}

func TestEnsureAccessTokenReturnsCurrentTokenWhenFresh(t *testing.T) {
	exchanger := &fakeExchanger{}
	manager, err := authtoken.NewManager(exchanger)
	require.NoError(t, err)

	bundle := testBundle(t, time.Hour, time.Hour, "raw-refresh-token")

	token, updated, err := manager.EnsureAccessToken(context.Background(), bundle)
	require.NoError(t, err)
	require.Equal(t, "raw-access-token", token)
	require.Equal(t, 0, exchanger.calls)
	require.True(t, updated.AccessToken().Equals(bundle.AccessToken()))
}

func TestEnsureAccessTokenRefreshesWhenExpiringSoon(t *testing.T) {
	exchanger := &fakeExchanger{raw: "refreshed-access-token", expiresIn: time.Hour}
	manager, err := authtoken.NewManager(exchanger)
	require.NoError(t, err)

	// Expires in 4 minutes, lead time is the default 5 minutes.
	bundle := testBundle(t, 4*time.Minute, time.Hour, "raw-refresh-token")

	token, updated, err := manager.EnsureAccessToken(context.Background(), bundle)
	require.NoError(t, err)
	require.Equal(t, 1, exchanger.calls)
	require.Equal(t, "raw-refresh-token", exchanger.lastToken)
	require.Equal(t, "refreshed-access-token", token)
	require.False(t, updated.AccessToken().IsExpired())

	// The original bundle is untouched; the caller persists the new one.
	require.Equal(t, "raw-access-token", bundle.AccessToken().Token())
	require.True(t, updated.ExchangeToken().Equals(bundle.ExchangeToken()))
}

func TestEnsureAccessTokenWithoutRefreshTokenReturnsStaleToken(t *testing.T) {
	exchanger := &fakeExchanger{raw: "refreshed-access-token", expiresIn: time.Hour}
	manager, err := authtoken.NewManager(exchanger)
	require.NoError(t, err)

	bundle := testBundle(t, 4*time.Minute, time.Hour, "")

	token, updated, err := manager.EnsureAccessToken(context.Background(), bundle)
	require.NoError(t, err)
	require.Equal(t, 0, exchanger.calls)
	require.Equal(t, "raw-access-token", token)
	require.True(t, updated.AccessToken().Equals(bundle.AccessToken()))
}

func TestEnsureAccessTokenPropagatesRefreshFailure(t *testing.T) {
	exchanger := &fakeExchanger{err: errors.New("provider rejected the refresh token")}
	manager, err := authtoken.NewManager(exchanger)
	require.NoError(t, err)

	bundle := testBundle(t, 4*time.Minute, time.Hour, "raw-refresh-token")

	_, updated, err := manager.EnsureAccessToken(context.Background(), bundle)
	require.ErrorIs(t, err, apperrors.ErrRefreshFailed)
	require.Equal(t, 1, exchanger.calls)
	// No partial mutation on failure.
	require.True(t, updated.AccessToken().Equals(bundle.AccessToken()))
}

func TestEnsureAccessTokenRejectsUnusableProviderResponse(t *testing.T) {
	exchanger := &fakeExchanger{raw: "", expiresIn: time.Hour}
	manager, err := authtoken.NewManager(exchanger)
	require.NoError(t, err)

	bundle := testBundle(t, 4*time.Minute, time.Hour, "raw-refresh-token")

	_, _, err = manager.EnsureAccessToken(context.Background(), bundle)
	require.ErrorIs(t, err, apperrors.ErrRefreshFailed)
}

func TestEnsureAccessTokenHonoursCustomLeadTime(t *testing.T) {
	exchanger := &fakeExchanger{raw: "refreshed-access-token", expiresIn: time.Hour}
	manager, err := authtoken.NewManager(exchanger, authtoken.WithLeadTime(time.Minute))
	require.NoError(t, err)

	// 4 minutes remaining is plenty under a 1 minute lead time.
	bundle := testBundle(t, 4*time.Minute, time.Hour, "raw-refresh-token")

	token, _, err := manager.EnsureAccessToken(context.Background(), bundle)
	require.NoError(t, err)
	require.Equal(t, 0, exchanger.calls)
	require.Equal(t, "raw-access-token", token)
}

func TestEnsureAccessTokenStampsExpiryWithInjectedClock(t *testing.T) {
	// A clock past the bundle's real expiry forces the refresh path.
	now := time.Date(2030, 1, 2, 9, 0, 0, 0, time.UTC)
	exchanger := &fakeExchanger{raw: "refreshed-access-token", expiresIn: time.Hour}
	manager, err := authtoken.NewManager(exchanger, authtoken.WithNowFunc(func() time.Time { return now }))
	require.NoError(t, err)

	bundle := testBundle(t, 4*time.Minute, time.Hour, "raw-refresh-token")

	_, updated, err := manager.EnsureAccessToken(context.Background(), bundle)
	require.NoError(t, err)
	require.Equal(t, 1, exchanger.calls)
	// The refreshed expiry comes from the same clock that made the
	// freshness decision, not the wall clock.
	require.True(t, updated.AccessToken().ExpiresAt().Equal(now.Add(time.Hour)))
}

func TestNewManagerRequiresExchanger(t *testing.T) {
	_, err := authtoken.NewManager(nil)
	require.Error(t, err)
}
