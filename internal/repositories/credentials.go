package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Credential store keys for the persisted session.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// CredentialRepository persists opaque key/value credentials in SQLite.
//
// The session manager is the only writer; it stores the session token and
// the serialized user profile under [KeyToken] and [KeyUser].
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Set writes or replaces the value stored under key.
func (r *CredentialRepository) Set(key, value string) error {
	query := `
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to store credential %s: %w", key, err)
	}

	return nil
}

// Get retrieves the value stored under key. The second return value is
// false when no value is stored.
func (r *CredentialRepository) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load credential %s: %w", key, err)
	}

	return value, true, nil
}

// Delete removes the value stored under key. Deleting an absent key is a
// no-op.
func (r *CredentialRepository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM credentials WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete credential %s: %w", key, err)
	}

	return nil
}
