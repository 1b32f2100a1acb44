package authtoken

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	apperrors "github.com/tmori/wishkeeper/internal/errors"
)

// DefaultExchangeTokenValidity is the validity window of minted exchange
// tokens unless overridden with WithValidity.
const DefaultExchangeTokenValidity = time.Hour

// exchangeTokenRole is the role claim the downstream storage provider's
// row-level security policies dispatch on.
const exchangeTokenRole = "authenticated"

// Issuer mints exchange tokens: locally-signed credentials that authorize
// calls to the downstream storage provider on the user's behalf. Issuing is
// pure and stateless; nothing is persisted.
type Issuer struct {
	signer   Signer
	validity time.Duration
	nowFunc  func() time.Time
}

// IssuerOption defines a function type to modify the Issuer instance.
type IssuerOption func(*Issuer)

// WithValidity overrides the token validity window (default 1 hour).
func WithValidity(validity time.Duration) IssuerOption {
	return func(i *Issuer) {
		i.validity = validity
	}
}

// WithIssuerNowFunc sets the now time function (primarily for testing).
func WithIssuerNowFunc(nowFunc func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowFunc = nowFunc
	}
}

// NewIssuer creates an Issuer backed by the given signer. Missing signing
// material fails here, at process start, not per call.
func NewIssuer(signer Signer, options ...IssuerOption) (*Issuer, error) {
	if signer == nil {
		return nil, errors.Wrap(apperrors.ErrConfiguration, "exchange token signer is not set")
	}

	i := &Issuer{
		signer:   signer,
		validity: DefaultExchangeTokenValidity,
		nowFunc:  time.Now,
	}

	for _, opt := range options {
		opt(i)
	}

	if i.validity <= 0 {
		return nil, errors.Wrap(apperrors.ErrConfiguration, "exchange token validity must be positive")
	}

	return i, nil
}

// Issue deterministically produces a signed exchange token for the user.
func (i *Issuer) Issue(userID string) (ExchangeToken, error) {
	if strings.TrimSpace(userID) == "" {
		return ExchangeToken{}, errors.Wrap(apperrors.ErrInvalidArgument, "user ID cannot be empty")
	}

	now := i.nowFunc()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": exchangeTokenRole,
		"iat":  int64(now.Unix()),
		"exp":  int64(now.Add(i.validity).Unix()),
		"jti":  uuid.New().String(),
	}

	signed, err := i.signer.Sign(claims)
	if err != nil {
		return ExchangeToken{}, errors.Wrap(err, "failed to sign exchange token")
	}

	return NewExchangeToken(signed, i.validity)
}
