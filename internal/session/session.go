// package session owns the authentication lifecycle for the Reel client.
//
// The [Manager] is the single owner of the persisted credential pair: every
// read and write of the pair goes through it, and other components obtain
// the access token per outgoing call via [Manager.AccessToken] rather than
// caching a copy.
package session

import (
	"context"

	"github.com/wrenhollow/reel/internal/api"
)

// State is the session lifecycle state.
type State int

const (
	// Unknown holds only during the initial startup check.
	Unknown State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// CredentialStore persists the token pair across process restarts.
//
// Implemented by repositories.CredentialRepository.
type CredentialStore interface {
	// Pair returns the stored pair; both empty means logged out.
	Pair() (access, refresh string, err error)
	// Save overwrites the pair.
	Save(access, refresh string) error
	// Clear removes the pair.
	Clear() error
}

// AuthAPI is the slice of the platform API the session manager drives.
type AuthAPI interface {
	// Login exchanges credentials for a token pair.
	Login(ctx context.Context, email, password string) (*api.TokenPair, error)
	// Register creates an account; login follows separately.
	Register(ctx context.Context, email, username, password string) error
	// Validate checks an access token and returns its account.
	Validate(ctx context.Context, accessToken string) (*api.Account, error)
	// Refresh exchanges a refresh token for a new pair.
	Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error)
}
