package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	apperrors "github.com/tmori/wishkeeper/internal/errors"
)

// SupabaseSigner implements URLSigner against the Supabase storage API's
// object-sign endpoint, authenticated with the service-role key.
type SupabaseSigner struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

var _ URLSigner = (*SupabaseSigner)(nil)

// SupabaseSignerOption defines a function type to modify the signer.
type SupabaseSignerOption func(*SupabaseSigner)

// WithSignerHTTPClient overrides the HTTP client, which also carries any
// timeout policy for the signing call.
func WithSignerHTTPClient(client *http.Client) SupabaseSignerOption {
	return func(s *SupabaseSigner) {
		s.httpClient = client
	}
}

// NewSupabaseSigner creates a signer for one bucket of a Supabase project.
func NewSupabaseSigner(baseURL, serviceKey, bucket string, options ...SupabaseSignerOption) (*SupabaseSigner, error) {
	if baseURL == "" {
		return nil, errors.Wrap(apperrors.ErrConfiguration, "supabase URL is not set")
	}
	if serviceKey == "" {
		return nil, errors.Wrap(apperrors.ErrConfiguration, "supabase service key is not set")
	}
	if bucket == "" {
		return nil, errors.Wrap(apperrors.ErrConfiguration, "storage bucket is not set")
	}

	s := &SupabaseSigner{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		httpClient: http.DefaultClient,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

type signRequest struct {
	ExpiresIn int64 `json:"expiresIn"`
}

type signResponse struct {
	SignedURL string `json:"signedURL"`
}

// CreateSignedURL asks the storage provider to sign a download URL for the
// object at path, valid for validFor.
func (s *SupabaseSigner) CreateSignedURL(ctx context.Context, path string, validFor time.Duration) (string, error) {
	if path == "" {
		return "", errors.Wrap(apperrors.ErrInvalidArgument, "object path cannot be empty")
	}
	if validFor <= 0 {
		return "", errors.Wrap(apperrors.ErrInvalidArgument, "validity must be positive")
	}

	body, err := json.Marshal(signRequest{ExpiresIn: int64(validFor.Seconds())})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode sign request")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", s.baseURL, s.bucket, strings.TrimPrefix(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to build sign request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "sign request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", errors.Errorf("sign request returned %d: %s", resp.StatusCode, string(payload))
	}

	var signed signResponse
	if err := json.NewDecoder(resp.Body).Decode(&signed); err != nil {
		return "", errors.Wrap(err, "failed to decode sign response")
	}
	if signed.SignedURL == "" {
		return "", errors.New("sign response is missing signedURL")
	}

	// The API returns a path relative to the storage root.
	return s.baseURL + "/storage/v1" + signed.SignedURL, nil
}
