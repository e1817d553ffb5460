package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// LocalStorage is a string key/value store with the semantics of the
// browser's localStorage: a missing key reads as ok=false, not an error.
type LocalStorage struct {
	db *sql.DB
}

func NewLocalStorage(db *sql.DB) *LocalStorage {
	return &LocalStorage{db: db}
}

// GetItem returns the stored value for key.
func (s *LocalStorage) GetItem(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM local_storage WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get item '%s': %w", key, err)
	}
	return value, true, nil
}

// SetItem saves or replaces the value for key.
func (s *LocalStorage) SetItem(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set item '%s': %w", key, err)
	}
	return nil
}

// RemoveItem deletes key; removing an absent key is not an error.
func (s *LocalStorage) RemoveItem(key string) error {
	if _, err := s.db.Exec("DELETE FROM local_storage WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove item '%s': %w", key, err)
	}
	return nil
}
