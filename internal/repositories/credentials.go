package repositories

import (
	"database/sql"
	"fmt"
)

// Storage keys for the persisted token pair.
const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// CredentialRepository persists the session token pair in the credentials
// table. Saves are all-or-nothing; on read, a lone access token is treated
// as logged out, while a lone refresh token is still surfaced so the
// session manager can renew from it.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Pair returns the stored access and refresh tokens. Both strings are empty
// when logged out. An access token without a refresh token cannot outlive
// its expiry and is reported as absent; a refresh token without an access
// token is returned so the caller can renew.
func (r *CredentialRepository) Pair() (access, refresh string, err error) {
	access, err = r.get(accessTokenKey)
	if err != nil {
		return "", "", err
	}
	refresh, err = r.get(refreshTokenKey)
	if err != nil {
		return "", "", err
	}

	if refresh == "" {
		return "", "", nil
	}
	return access, refresh, nil
}

// Save overwrites the stored pair atomically with respect to readers.
func (r *CredentialRepository) Save(access, refresh string) error {
	if access == "" || refresh == "" {
		return fmt.Errorf("refusing to store partial credential pair")
	}
	if err := touch(r.db, "credentials", accessTokenKey, access); err != nil {
		return err
	}
	return touch(r.db, "credentials", refreshTokenKey, refresh)
}

// Clear removes both tokens. Clearing an empty store is not an error.
func (r *CredentialRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM credentials WHERE key IN (?, ?)", accessTokenKey, refreshTokenKey); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (r *CredentialRepository) get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query credential %s: %w", key, err)
	}
	return value, nil
}
