package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/savings-sprint/internal/common"
)

// GetValue returns the stored value for key, or common.ErrNotFound.
func (s *SQLiteStorage) GetValue(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateString(key, "key"); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: setting %s", common.ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, nil
}

// SetValue stores value under key, replacing any previous value.
func (s *SQLiteStorage) SetValue(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}
