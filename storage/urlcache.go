package storage

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultSignedURLValidity is the validity requested from the provider
	// unless the caller asks for something else.
	DefaultSignedURLValidity = time.Hour

	// DefaultSafetyMargin invalidates cache entries this long before the
	// signed URL actually expires at the provider, so a cached URL is never
	// handed out moments before it stops working.
	DefaultSafetyMargin = 10 * time.Minute

	// DefaultMinimumTTL is the floor on the cache window, guarding against a
	// zero or negative window when the requested validity is small.
	DefaultMinimumTTL = time.Minute
)

// URLCache memoizes provider-issued signed URLs keyed by object path.
// Instances are constructor-injected, never package globals, so tests and
// tenants get isolated caches. Expired entries are treated as absent and
// replaced lazily on the next lookup; there is no background sweep, so paths
// that are never requested again linger until process restart. Acceptable
// for a bounded catalog of images.
//
// Concurrent lookups for the same uncached path may both reach the signer.
// Both results are valid URLs, so no at-most-once suppression is done.
type URLCache struct {
	signer          URLSigner
	cache           *ttlcache.Cache[string, string]
	defaultValidity time.Duration
	safetyMargin    time.Duration
	minimumTTL      time.Duration
}

// URLCacheOption defines a function type to modify the URLCache instance.
type URLCacheOption func(*URLCache)

// WithDefaultValidity overrides the validity requested from the provider.
func WithDefaultValidity(validity time.Duration) URLCacheOption {
	return func(c *URLCache) {
		c.defaultValidity = validity
	}
}

// WithSafetyMargin overrides how long before provider-side expiry a cached
// entry is invalidated.
func WithSafetyMargin(margin time.Duration) URLCacheOption {
	return func(c *URLCache) {
		c.safetyMargin = margin
	}
}

// WithMinimumTTL overrides the floor on the cache window.
func WithMinimumTTL(minimum time.Duration) URLCacheOption {
	return func(c *URLCache) {
		c.minimumTTL = minimum
	}
}

// NewURLCache creates a cache over the given signer.
func NewURLCache(signer URLSigner, options ...URLCacheOption) (*URLCache, error) {
	if signer == nil {
		return nil, errors.New("[NewURLCache] signer is required")
	}

	c := &URLCache{
		signer:          signer,
		defaultValidity: DefaultSignedURLValidity,
		safetyMargin:    DefaultSafetyMargin,
		minimumTTL:      DefaultMinimumTTL,
	}

	for _, opt := range options {
		opt(c)
	}

	// The ttlcache janitor is deliberately not started: expiry is detected
	// lazily on lookup, matching the no-background-sweep contract.
	c.cache = ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, string](),
	)

	return c, nil
}

// SignedURL returns a usable download URL for the object path, reusing a
// previously issued URL while it is still fresh. On signing failure it
// returns an empty string: a missing image must never fail the surrounding
// read, so the error is logged here and the caller renders without the
// image.
func (c *URLCache) SignedURL(ctx context.Context, path string) string {
	return c.SignedURLFor(ctx, path, c.defaultValidity)
}

// SignedURLFor is SignedURL with an explicit provider-side validity window.
func (c *URLCache) SignedURLFor(ctx context.Context, path string, validFor time.Duration) string {
	if path == "" {
		return ""
	}

	if item := c.cache.Get(path); item != nil {
		return item.Value()
	}

	url, err := c.signer.CreateSignedURL(ctx, path, validFor)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to create signed URL")
		return ""
	}

	ttl := validFor - c.safetyMargin
	if ttl < c.minimumTTL {
		ttl = c.minimumTTL
	}
	c.cache.Set(path, url, ttl)

	return url
}

// Invalidate drops the cached URL for a path, e.g. after the underlying
// object is deleted or replaced.
func (c *URLCache) Invalidate(path string) {
	c.cache.Delete(path)
}

// Len reports the number of entries currently held, expired or not.
func (c *URLCache) Len() int {
	return c.cache.Len()
}
