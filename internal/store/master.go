package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SaveMasterHash upserts the master credential singleton. On rotation the
// hash is replaced, never appended.
func (s *Store) SaveMasterHash(ctx context.Context, hash string) error {
	query := `INSERT INTO master (id, password_hash, created_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET password_hash = excluded.password_hash, created_at = excluded.created_at`
	_, err := s.db.ExecContext(ctx, query, hash, now())
	if err != nil {
		return fmt.Errorf("failed to save master hash: %w", err)
	}
	return nil
}

// MasterHash returns the stored master password hash, or the empty string
// when the vault has not been initialized yet.
func (s *Store) MasterHash(ctx context.Context) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM master WHERE id = 1`).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get master hash: %w", err)
	}
	return hash, nil
}
