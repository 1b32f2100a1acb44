package idp

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"

	apperrors "github.com/tmori/wishkeeper/internal/errors"
)

// Claims is the verified identity extracted from a provider ID token. Only
// what the user record needs is carried; everything else in the token is
// ignored.
type Claims struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// ClaimVerifier validates raw ID tokens returned by the provider handshake
// and extracts identity claims. The handshake itself is out of scope; no
// claim is trusted until the signature, issuer, and audience check out.
type ClaimVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewClaimVerifier discovers the provider's OIDC configuration and prepares
// a verifier bound to the given client ID.
func NewClaimVerifier(ctx context.Context, domain, clientID string) (*ClaimVerifier, error) {
	if domain == "" {
		return nil, errors.Wrap(apperrors.ErrConfiguration, "auth0 domain is not set")
	}
	if clientID == "" {
		return nil, errors.Wrap(apperrors.ErrConfiguration, "auth0 client ID is not set")
	}

	provider, err := oidc.NewProvider(ctx, fmt.Sprintf("https://%s/", domain))
	if err != nil {
		return nil, errors.Wrap(err, "failed to discover OIDC provider")
	}

	return &ClaimVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Verify checks the ID token's signature and claims and returns the identity
// it asserts.
func (v *ClaimVerifier) Verify(ctx context.Context, rawIDToken string) (*Claims, error) {
	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.Wrap(err, "ID token verification failed")
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.Wrap(err, "failed to extract claims")
	}

	return &Claims{
		Subject: idToken.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
