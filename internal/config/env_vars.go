package config

import (
	"os"
	"time"
)

const (
	auth0DomainVar       = "AUTH0_DOMAIN"
	auth0ClientIDVar     = "AUTH0_CLIENT_ID"
	auth0ClientSecretVar = "AUTH0_CLIENT_SECRET"
	refreshLeadTimeVar   = "REFRESH_LEAD_TIME"

	exchangeSecretVar   = "SUPABASE_JWT_SECRET"
	exchangeValidityVar = "EXCHANGE_TOKEN_VALIDITY"

	supabaseURLVar        = "SUPABASE_URL"
	supabaseServiceKeyVar = "SUPABASE_SERVICE_KEY"
	storageBucketVar      = "STORAGE_BUCKET"
	signedURLValidityVar  = "SIGNED_URL_VALIDITY"
	cacheSafetyMarginVar  = "SIGNED_URL_CACHE_MARGIN"
	cacheMinimumTTLVar    = "SIGNED_URL_CACHE_FLOOR"
)

type EnvVars struct{}

var _ Config = EnvVars{}

func (EnvVars) GetAuth0Domain() string {
	return GetEnv(auth0DomainVar, "")
}

func (EnvVars) GetAuth0ClientID() string {
	return GetEnv(auth0ClientIDVar, "")
}

func (EnvVars) GetAuth0ClientSecret() string {
	return GetEnv(auth0ClientSecretVar, "")
}

// GetRefreshLeadTime returns the window before access-token expiry in which
// a refresh is attempted ahead of time.
func (EnvVars) GetRefreshLeadTime() time.Duration {
	return GetEnvDuration(refreshLeadTimeVar, 5*time.Minute)
}

func (EnvVars) GetExchangeSigningSecret() string {
	return GetEnv(exchangeSecretVar, "")
}

func (EnvVars) GetExchangeTokenValidity() time.Duration {
	return GetEnvDuration(exchangeValidityVar, time.Hour)
}

func (EnvVars) GetSupabaseURL() string {
	return GetEnv(supabaseURLVar, "")
}

func (EnvVars) GetSupabaseServiceKey() string {
	return GetEnv(supabaseServiceKeyVar, "")
}

func (EnvVars) GetStorageBucket() string {
	return GetEnv(storageBucketVar, "wish-item-images")
}

func (EnvVars) GetSignedURLValidity() time.Duration {
	return GetEnvDuration(signedURLValidityVar, time.Hour)
}

func (EnvVars) GetCacheSafetyMargin() time.Duration {
	return GetEnvDuration(cacheSafetyMarginVar, 10*time.Minute)
}

func (EnvVars) GetCacheMinimumTTL() time.Duration {
	return GetEnvDuration(cacheMinimumTTLVar, time.Minute)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvDuration parses a Go duration string (e.g. "5m", "1h") from the
// environment, falling back to the default on absence or parse failure.
func GetEnvDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
