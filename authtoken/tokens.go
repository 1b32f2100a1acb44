package authtoken

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	apperrors "github.com/tmori/wishkeeper/internal/errors"
)

// AccessToken is the short-lived bearer credential issued by the identity
// provider. It is immutable: a refresh produces a new value, the old one is
// never mutated in place.
type AccessToken struct {
	token     string
	expiresAt time.Time
}

// NewAccessToken creates an access token that expires validFor from now.
func NewAccessToken(raw string, validFor time.Duration) (AccessToken, error) {
	return newAccessTokenFrom(raw, validFor, time.Now())
}

// newAccessTokenFrom computes the expiry from the supplied clock reading so
// callers with an injected clock stay on a single timeline.
func newAccessTokenFrom(raw string, validFor time.Duration, now time.Time) (AccessToken, error) {
	if strings.TrimSpace(raw) == "" {
		return AccessToken{}, errors.Wrap(apperrors.ErrInvalidArgument, "access token cannot be empty")
	}
	if validFor <= 0 {
		return AccessToken{}, errors.Wrap(apperrors.ErrInvalidArgument, "access token validity must be positive")
	}
	return AccessToken{token: raw, expiresAt: now.Add(validFor)}, nil
}

// RestoreAccessToken rehydrates an access token from persisted session state.
// Session data whose expiry has already elapsed is rejected rather than
// resurrected.
func RestoreAccessToken(raw string, expiresAt time.Time) (AccessToken, error) {
	if strings.TrimSpace(raw) == "" {
		return AccessToken{}, errors.Wrap(apperrors.ErrInvalidArgument, "access token cannot be empty")
	}
	if !expiresAt.After(time.Now()) {
		return AccessToken{}, errors.Wrap(apperrors.ErrTokenExpired, "cannot restore an expired access token")
	}
	return AccessToken{token: raw, expiresAt: expiresAt}, nil
}

func (a AccessToken) Token() string {
	return a.token
}

func (a AccessToken) ExpiresAt() time.Time {
	return a.expiresAt
}

// IsExpired reports whether the token has expired as of now.
func (a AccessToken) IsExpired() bool {
	return a.ExpiredAt(time.Now())
}

// ExpiredAt is the pure variant of IsExpired for callers that inject time.
func (a AccessToken) ExpiredAt(now time.Time) bool {
	return !now.Before(a.expiresAt)
}

func (a AccessToken) IsZero() bool {
	return a.token == ""
}

// Equals reports structural equality on (token, expiry).
func (a AccessToken) Equals(other AccessToken) bool {
	return a.token == other.token && a.expiresAt.Equal(other.expiresAt)
}

// RefreshToken is the long-lived credential used to obtain new access tokens
// without re-prompting the user. Its lifetime is managed by the provider, so
// no expiry is tracked locally.
type RefreshToken struct {
	token string
}

func NewRefreshToken(raw string) (RefreshToken, error) {
	if strings.TrimSpace(raw) == "" {
		return RefreshToken{}, errors.Wrap(apperrors.ErrInvalidArgument, "refresh token cannot be empty")
	}
	return RefreshToken{token: raw}, nil
}

func (r RefreshToken) Token() string {
	return r.token
}

func (r RefreshToken) IsZero() bool {
	return r.token == ""
}

func (r RefreshToken) Equals(other RefreshToken) bool {
	return r.token == other.token
}

// ExchangeToken is the locally-signed, short-lived credential minted by this
// system (not by the identity provider) to authorize calls to the downstream
// storage provider on the user's behalf.
type ExchangeToken struct {
	token     string
	expiresAt time.Time
}

// NewExchangeToken creates an exchange token that expires validFor from now.
func NewExchangeToken(raw string, validFor time.Duration) (ExchangeToken, error) {
	if strings.TrimSpace(raw) == "" {
		return ExchangeToken{}, errors.Wrap(apperrors.ErrInvalidArgument, "exchange token cannot be empty")
	}
	if validFor <= 0 {
		return ExchangeToken{}, errors.Wrap(apperrors.ErrInvalidArgument, "exchange token validity must be positive")
	}
	return ExchangeToken{token: raw, expiresAt: time.Now().Add(validFor)}, nil
}

// RestoreExchangeToken rehydrates an exchange token from persisted session
// state, rejecting already-expired data.
func RestoreExchangeToken(raw string, expiresAt time.Time) (ExchangeToken, error) {
	if strings.TrimSpace(raw) == "" {
		return ExchangeToken{}, errors.Wrap(apperrors.ErrInvalidArgument, "exchange token cannot be empty")
	}
	if !expiresAt.After(time.Now()) {
		return ExchangeToken{}, errors.Wrap(apperrors.ErrTokenExpired, "cannot restore an expired exchange token")
	}
	return ExchangeToken{token: raw, expiresAt: expiresAt}, nil
}

func (e ExchangeToken) Token() string {
	return e.token
}

func (e ExchangeToken) ExpiresAt() time.Time {
	return e.expiresAt
}

func (e ExchangeToken) IsExpired() bool {
	return e.ExpiredAt(time.Now())
}

func (e ExchangeToken) ExpiredAt(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

func (e ExchangeToken) IsZero() bool {
	return e.token == ""
}

func (e ExchangeToken) Equals(other ExchangeToken) bool {
	return e.token == other.token && e.expiresAt.Equal(other.expiresAt)
}
