// Package session holds the authenticated-state bundle for each browser:
// the bearer token issued by the banking API and the JSON-serialized user
// profile. The two are stored under separate keys so the token can be read
// without deserializing the profile. No token expiry is tracked here;
// authentication failures surface reactively when an API call is rejected.
package session

import (
	"context"

	"github.com/quantum-banking/webapp/internal/backend"
)

// Session is the bundle held for one browser session.
type Session struct {
	Token string
	User  *backend.UserProfile
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store persists session bundles keyed by session id.
type Store interface {
	SetToken(ctx context.Context, id, token string) error
	Token(ctx context.Context, id string) (string, error)
	SetUser(ctx context.Context, id string, user *backend.UserProfile) error
	User(ctx context.Context, id string) (*backend.UserProfile, error)
	// Clear removes both keys. Clearing an absent session is a no-op.
	Clear(ctx context.Context, id string) error
}

// Load assembles the full session bundle for an id. A missing token yields an
// unauthenticated session, not an error.
func Load(ctx context.Context, store Store, id string) (Session, error) {
	token, err := store.Token(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if token == "" {
		return Session{}, nil
	}
	user, err := store.User(ctx, id)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: user}, nil
}
