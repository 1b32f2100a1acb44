package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	apperrors "github.com/tmori/wishkeeper/internal/errors"
)

type Config interface {
	AuthConfig
	ExchangeConfig
	StorageConfig
}

// AuthConfig holds the identity-provider settings used by the refresh
// exchanger.
type AuthConfig interface {
	GetAuth0Domain() string
	GetAuth0ClientID() string
	GetAuth0ClientSecret() string
	GetRefreshLeadTime() time.Duration
}

// ExchangeConfig holds the settings for minting downstream exchange tokens.
type ExchangeConfig interface {
	GetExchangeSigningSecret() string
	GetExchangeTokenValidity() time.Duration
}

// StorageConfig holds the object-storage and signed-URL cache settings.
type StorageConfig interface {
	GetSupabaseURL() string
	GetSupabaseServiceKey() string
	GetStorageBucket() string
	GetSignedURLValidity() time.Duration
	GetCacheSafetyMargin() time.Duration
	GetCacheMinimumTTL() time.Duration
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}

// Validate checks every value that must be present before the process may
// serve requests. The exchange signing secret in particular is a startup
// failure, never a per-request one.
func Validate(c Config) error {
	var missing []string

	if c.GetExchangeSigningSecret() == "" {
		missing = append(missing, exchangeSecretVar)
	}
	if c.GetAuth0Domain() == "" {
		missing = append(missing, auth0DomainVar)
	}
	if c.GetAuth0ClientID() == "" {
		missing = append(missing, auth0ClientIDVar)
	}
	if c.GetSupabaseURL() == "" {
		missing = append(missing, supabaseURLVar)
	}
	if c.GetSupabaseServiceKey() == "" {
		missing = append(missing, supabaseServiceKeyVar)
	}

	if len(missing) > 0 {
		return errors.Wrapf(apperrors.ErrConfiguration, "missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
