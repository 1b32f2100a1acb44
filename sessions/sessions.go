// Package sessions defines the serialized shape of one browser session's
// credentials and the codec between that shape and the in-memory token
// bundle. The concrete session store (cookie, server-side, ...) is a
// collaborator of the web layer; this package never reads or writes it.
package sessions

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tmori/wishkeeper/authtoken"
	apperrors "github.com/tmori/wishkeeper/internal/errors"
)

// Data is what gets persisted per session: opaque token strings plus
// epoch-millisecond expiries, and the user the session belongs to. Expiries
// travel as integers so any key-value session store can hold them.
type Data struct {
	UserID                 string `json:"user_id"`
	AccessToken            string `json:"access_token"`
	AccessTokenExpiresAt   int64  `json:"access_token_expires_at"`
	RefreshToken           string `json:"refresh_token,omitempty"`
	ExchangeToken          string `json:"exchange_token,omitempty"`
	ExchangeTokenExpiresAt int64  `json:"exchange_token_expires_at,omitempty"`
}

// Serialize flattens a bundle into the persistable session shape.
func Serialize(userID string, bundle authtoken.Bundle) Data {
	data := Data{
		UserID:               userID,
		AccessToken:          bundle.AccessToken().Token(),
		AccessTokenExpiresAt: bundle.AccessToken().ExpiresAt().UnixMilli(),
	}

	if rt := bundle.RefreshToken(); rt != nil {
		data.RefreshToken = rt.Token()
	}

	if exchange := bundle.ExchangeToken(); !exchange.IsZero() {
		data.ExchangeToken = exchange.Token()
		data.ExchangeTokenExpiresAt = exchange.ExpiresAt().UnixMilli()
	}

	return data
}

// Restore rehydrates a bundle from persisted session data. Silently-expired
// access tokens fail with the token-expired error, which callers treat as a
// logged-out session. An absent or expired exchange token is re-minted from
// the issuer rather than failing, since minting is local and cheap.
func Restore(data Data, issuer *authtoken.Issuer) (authtoken.Bundle, error) {
	if data.UserID == "" {
		return authtoken.Bundle{}, errors.Wrap(apperrors.ErrInvalidArgument, "session data has no user ID")
	}

	access, err := authtoken.RestoreAccessToken(data.AccessToken, time.UnixMilli(data.AccessTokenExpiresAt))
	if err != nil {
		return authtoken.Bundle{}, errors.Wrap(err, "restoring access token")
	}

	exchange, err := restoreOrMintExchangeToken(data, issuer)
	if err != nil {
		return authtoken.Bundle{}, err
	}

	var refresh *authtoken.RefreshToken
	if data.RefreshToken != "" {
		rt, err := authtoken.NewRefreshToken(data.RefreshToken)
		if err != nil {
			return authtoken.Bundle{}, errors.Wrap(err, "restoring refresh token")
		}
		refresh = &rt
	}

	return authtoken.NewBundle(access, exchange, refresh), nil
}

func restoreOrMintExchangeToken(data Data, issuer *authtoken.Issuer) (authtoken.ExchangeToken, error) {
	if data.ExchangeToken != "" {
		exchange, err := authtoken.RestoreExchangeToken(data.ExchangeToken, time.UnixMilli(data.ExchangeTokenExpiresAt))
		if err == nil {
			return exchange, nil
		}
		if !apperrors.Is(err, apperrors.ErrTokenExpired) {
			return authtoken.ExchangeToken{}, errors.Wrap(err, "restoring exchange token")
		}
		// Expired: fall through and mint a fresh one.
	}

	if issuer == nil {
		return authtoken.ExchangeToken{}, errors.Wrap(apperrors.ErrTokenExpired, "no usable exchange token and no issuer to mint one")
	}

	exchange, err := issuer.Issue(data.UserID)
	if err != nil {
		return authtoken.ExchangeToken{}, errors.Wrap(err, "minting exchange token")
	}
	return exchange, nil
}
