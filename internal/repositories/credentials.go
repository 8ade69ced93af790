package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lttslabs/etlctl/internal/session"
)

// CredentialRepository implements [session.Store] for durable credential
// persistence.
type CredentialRepository struct {
	db *sql.DB
}

var _ session.Store = (*CredentialRepository)(nil)

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection.
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Get retrieves the value for a credential key. A missing key is reported
// via the boolean, not an error.
func (r *CredentialRepository) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM credentials WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query credential %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value for a credential key.
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

// Delete removes a credential key. Deleting an absent key is not an error.
func (r *CredentialRepository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM credentials WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete credential %s: %w", key, err)
	}
	return nil
}
