package authtoken

import "time"

// Bundle is the immutable composite of one authenticated session's full
// credential set: exactly one access token, one exchange token, and an
// optional refresh token. Every "with updated X" transformation returns a
// wholly new bundle, so concurrent readers never observe a half-updated one.
type Bundle struct {
	access   AccessToken
	exchange ExchangeToken
	refresh  *RefreshToken
}

// NewBundle creates a bundle from well-formed tokens. A nil refresh token is
// legal and silently disables automatic refresh. Token expiries are not
// cross-validated; they may differ.
func NewBundle(access AccessToken, exchange ExchangeToken, refresh *RefreshToken) Bundle {
	b := Bundle{access: access, exchange: exchange}
	if refresh != nil {
		rt := *refresh
		b.refresh = &rt
	}
	return b
}

func (b Bundle) AccessToken() AccessToken {
	return b.access
}

func (b Bundle) ExchangeToken() ExchangeToken {
	return b.exchange
}

// RefreshToken returns a copy of the refresh token, or nil if absent.
func (b Bundle) RefreshToken() *RefreshToken {
	if b.refresh == nil {
		return nil
	}
	rt := *b.refresh
	return &rt
}

func (b Bundle) HasRefreshToken() bool {
	return b.refresh != nil
}

// WithAccessToken returns a new bundle with only the access token replaced.
func (b Bundle) WithAccessToken(access AccessToken) Bundle {
	return NewBundle(access, b.exchange, b.refresh)
}

// WithExchangeToken returns a new bundle with only the exchange token
// replaced.
func (b Bundle) WithExchangeToken(exchange ExchangeToken) Bundle {
	return NewBundle(b.access, exchange, b.refresh)
}

// WithRefreshToken returns a new bundle with only the refresh token
// replaced. Passing nil removes it.
func (b Bundle) WithRefreshToken(refresh *RefreshToken) Bundle {
	return NewBundle(b.access, b.exchange, refresh)
}

// IsValid reports whether both the access and exchange tokens are unexpired.
// Refresh-token presence is irrelevant to validity.
func (b Bundle) IsValid() bool {
	return b.ValidAt(time.Now())
}

// ValidAt is the pure variant of IsValid for callers that inject time.
func (b Bundle) ValidAt(now time.Time) bool {
	return !b.access.ExpiredAt(now) && !b.exchange.ExpiredAt(now)
}
