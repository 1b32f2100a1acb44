package authtoken

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	apperrors "github.com/tmori/wishkeeper/internal/errors"
)

// DefaultLeadTime is the window before access-token expiry in which a token
// is treated as "expiring soon" even though it is not yet technically
// expired.
const DefaultLeadTime = 5 * time.Minute

// TokenExchanger exchanges a refresh token for a new raw access token and
// its validity window. It performs a single network round trip with no
// retries; timeout and cancellation belong to the underlying HTTP client.
type TokenExchanger interface {
	Exchange(ctx context.Context, refreshToken RefreshToken) (raw string, expiresIn time.Duration, err error)
}

// Manager drives the refresh-before-expiry logic used by every
// authenticated operation. It owns no session state: callers pass in the
// rehydrated bundle and are responsible for persisting the updated one.
type Manager struct {
	exchanger TokenExchanger
	leadTime  time.Duration
	nowFunc   func() time.Time
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithLeadTime overrides the refresh lead time (default 5 minutes).
func WithLeadTime(leadTime time.Duration) ManagerOption {
	return func(m *Manager) {
		m.leadTime = leadTime
	}
}

// WithNowFunc sets the now time function (primarily for testing).
func WithNowFunc(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = nowFunc
	}
}

// NewManager initializes a Manager with the collaborator that performs the
// upstream refresh exchange.
func NewManager(exchanger TokenExchanger, options ...ManagerOption) (*Manager, error) {
	if exchanger == nil {
		return nil, errors.New("[NewManager] exchanger is required")
	}

	m := &Manager{
		exchanger: exchanger,
		leadTime:  DefaultLeadTime,
		nowFunc:   time.Now,
	}

	for _, opt := range options {
		opt(m)
	}

	return m, nil
}

// EnsureAccessToken returns a bearer token usable for the immediate
// downstream call, refreshing upstream credentials when the current one is
// expiring soon. The returned bundle carries any refreshed token; persisting
// it back into session storage is the caller's job.
//
// When the token is expiring soon but no refresh token is present, the stale
// token is surfaced as-is: the downstream call may still fail with an auth
// error, which the caller handles as a re-login trigger.
func (m *Manager) EnsureAccessToken(ctx context.Context, bundle Bundle) (string, Bundle, error) {
	access := bundle.AccessToken()
	remaining := access.ExpiresAt().Sub(m.nowFunc())

	if remaining >= m.leadTime {
		return access.Token(), bundle, nil
	}

	if !bundle.HasRefreshToken() {
		log.Debug().
			Dur("remaining", remaining).
			Msg("access token expiring soon but no refresh token is present, using it as-is")
		return access.Token(), bundle, nil
	}

	// Single attempt; retrying on a later request is the caller's concern.
	raw, expiresIn, err := m.exchanger.Exchange(ctx, *bundle.RefreshToken())
	if err != nil {
		return "", bundle, apperrors.Wrapf(apperrors.ErrRefreshFailed, "exchanging refresh token: %v", err)
	}

	newAccess, err := newAccessTokenFrom(raw, expiresIn, m.nowFunc())
	if err != nil {
		return "", bundle, apperrors.Wrapf(apperrors.ErrRefreshFailed, "provider returned an unusable token: %v", err)
	}

	log.Debug().
		Time("expires_at", newAccess.ExpiresAt()).
		Msg("access token refreshed")

	return newAccess.Token(), bundle.WithAccessToken(newAccess), nil
}
