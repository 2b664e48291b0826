// package repositories provides the SQLite persistence layer.
//
// CredentialRepository holds the durable token pair the session manager
// owns; VideoCacheRepository keeps a local write-through copy of feed
// entries for offline inspection.
package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// touch updates a key's value and timestamp in a key/value table, inserting
// the row when absent.
func touch(db *sql.DB, table, key, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, table)

	if _, err := db.Exec(query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to upsert %s.%s: %w", table, key, err)
	}
	return nil
}
