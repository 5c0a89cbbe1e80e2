package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Tech-Artist89/Passwortmanager/internal/models"
)

// GetSettings returns the settings singleton. When no row exists yet the
// defaults are returned without being written.
func (s *Store) GetSettings(ctx context.Context) (*models.Settings, error) {
	row := s.db.QueryRowContext(ctx, `SELECT theme, language, visible_columns, auto_lock_enabled, auto_lock_time, db_path
		FROM settings WHERE id = 1`)

	var st models.Settings
	var columns string
	err := row.Scan(&st.Theme, &st.Language, &columns, &st.AutoLockEnabled, &st.AutoLockMinutes, &st.DBPath)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select settings: %w", err)
	}

	if err := json.Unmarshal([]byte(columns), &st.VisibleColumns); err != nil {
		return nil, fmt.Errorf("failed to decode visible columns: %w", err)
	}

	return &st, nil
}

// SaveSettings upserts the settings singleton.
func (s *Store) SaveSettings(ctx context.Context, st *models.Settings) error {
	columns, err := json.Marshal(st.VisibleColumns)
	if err != nil {
		return fmt.Errorf("failed to encode visible columns: %w", err)
	}

	query := `INSERT INTO settings (id, theme, language, visible_columns, auto_lock_enabled, auto_lock_time, db_path)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET theme = excluded.theme, language = excluded.language,
			visible_columns = excluded.visible_columns, auto_lock_enabled = excluded.auto_lock_enabled,
			auto_lock_time = excluded.auto_lock_time, db_path = excluded.db_path`
	_, err = s.db.ExecContext(ctx, query, st.Theme, st.Language, string(columns), st.AutoLockEnabled, st.AutoLockMinutes, st.DBPath)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
