// Package session provides a server-side session store keyed by an opaque
// token handed to the client in a cookie.
//
// The store only persists the token digest, so a dump of the backing store
// cannot be replayed against the API. Sessions carry a small tagged state used
// by the sign-in flow: a session is created pending after password
// verification and promoted to authenticated once the one-time passcode is
// consumed.
package session

import (
	"context"
	"time"
)

// State tags the authentication progress of a session.
type State string

const (
	// StatePending means the password was verified but the passcode was not.
	StatePending State = "pending"
	// StateAuthenticated means the full sign-in flow completed.
	StateAuthenticated State = "authenticated"
)

// Session is the server-side session value.
type Session struct {
	UserID    int64     `json:"user_id"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists sessions by opaque token.
type Store interface {
	// Save writes the session under the token, resetting its TTL.
	Save(ctx context.Context, token string, sess Session) error
	// Get returns the session for the token, or goerror.ErrNotFound.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete removes the session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
