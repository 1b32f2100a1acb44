// Package storage produces time-limited download URLs for privately stored
// object paths, memoizing provider-issued signed URLs so repeated renders of
// the same image do not cost a signing round trip each time.
package storage

import (
	"context"
	"time"
)

// URLSigner is the object-storage boundary: given an object path and a
// validity window, it returns a signed URL granting temporary read access.
// A single network round trip, no retries at this layer.
type URLSigner interface {
	CreateSignedURL(ctx context.Context, path string, validFor time.Duration) (string, error)
}
