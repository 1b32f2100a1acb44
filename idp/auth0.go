// Package idp holds the identity-provider boundary adapters: the Auth0
// refresh-token exchanger consumed by the token lifecycle manager, and the
// OIDC ID-token claim verifier used when a login callback's token bundle is
// turned into a local identity.
package idp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/tmori/wishkeeper/authtoken"
	apperrors "github.com/tmori/wishkeeper/internal/errors"
)

// Auth0Exchanger implements authtoken.TokenExchanger with the Auth0
// refresh_token grant. It performs a single round trip per call; timeout and
// cancellation come from the injected HTTP client and the caller's context.
type Auth0Exchanger struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

var _ authtoken.TokenExchanger = (*Auth0Exchanger)(nil)

// Auth0ExchangerOption defines a function type to modify the exchanger.
type Auth0ExchangerOption func(*Auth0Exchanger)

// WithHTTPClient overrides the HTTP client used for the token endpoint call.
func WithHTTPClient(client *http.Client) Auth0ExchangerOption {
	return func(e *Auth0Exchanger) {
		e.httpClient = client
	}
}

// NewAuth0Exchanger creates an exchanger for the given Auth0 tenant.
func NewAuth0Exchanger(domain, clientID, clientSecret string, options ...Auth0ExchangerOption) (*Auth0Exchanger, error) {
	if domain == "" {
		return nil, errors.Wrap(apperrors.ErrConfiguration, "auth0 domain is not set")
	}
	if clientID == "" {
		return nil, errors.Wrap(apperrors.ErrConfiguration, "auth0 client ID is not set")
	}

	e := &Auth0Exchanger{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  fmt.Sprintf("https://%s/oauth/token", domain),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}

	for _, opt := range options {
		opt(e)
	}

	return e, nil
}

// Exchange redeems the refresh token for a new access token. The provider
// manages refresh-token lifetime; a rejection here means the caller must
// force re-authentication.
func (e *Auth0Exchanger) Exchange(ctx context.Context, refreshToken authtoken.RefreshToken) (string, time.Duration, error) {
	if e.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	}

	source := e.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken.Token()})

	token, err := source.Token()
	if err != nil {
		return "", 0, errors.Wrap(err, "auth0 token exchange failed")
	}

	if token.AccessToken == "" || token.Expiry.IsZero() {
		return "", 0, errors.New("auth0 token response is missing access_token or expires_in")
	}

	return token.AccessToken, time.Until(token.Expiry), nil
}
