package users

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/tmori/wishkeeper/idp"
	apperrors "github.com/tmori/wishkeeper/internal/errors"
)

// User is the locally persisted profile for an identity-provider account.
// Authentication itself is delegated to the provider; no credentials are
// stored here.
type User struct {
	ID         string    `json:"user_id"`               // Provider subject, e.g. "auth0|abc123"
	Email      string    `json:"email"`                 // User's email address
	Name       string    `json:"name,omitempty"`        // Display name
	PictureURL string    `json:"picture_url,omitempty"` // Avatar URL from the provider profile
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FindOrCreate looks the user up by provider subject and creates the record
// on first login, defaulting the display name to the email's local part when
// the provider sent none.
func FindOrCreate(repo Repo, claims *idp.Claims) (*User, error) {
	if claims == nil || claims.Subject == "" {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "claims must carry a subject")
	}
	if claims.Email == "" {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "claims must carry an email")
	}

	user, err := repo.Find(claims.Subject)
	if err == nil {
		return user, nil
	}
	if !apperrors.Is(err, apperrors.ErrUserNotFound) {
		return nil, errors.Wrap(err, "looking up user")
	}

	name := claims.Name
	if name == "" {
		name = strings.SplitN(claims.Email, "@", 2)[0]
	}

	now := time.Now()
	user = &User{
		ID:         claims.Subject,
		Email:      claims.Email,
		Name:       name,
		PictureURL: claims.Picture,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := repo.Save(user); err != nil {
		return nil, errors.Wrap(err, "creating user")
	}

	return user, nil
}
