package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/models"
)

const entryColumns = `id, title, username, password, url, device_type, notes, category_id, is_favorite, expiry_date, created_at, updated_at`

// scanEntry decodes one passwords row. Scan order must match entryColumns.
func scanEntry(row interface{ Scan(dest ...any) error }) (*models.Entry, error) {
	var e models.Entry
	var expiry *string
	var createdAt, updatedAt string

	err := row.Scan(&e.ID, &e.Title, &e.Username, &e.Secret, &e.URL, &e.DeviceType,
		&e.Notes, &e.CategoryID, &e.IsFavorite, &expiry, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if expiry != nil {
		t, err := parseTime(*expiry)
		if err != nil {
			return nil, err
		}
		e.ExpiryDate = &t
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &e, nil
}

// encodeExpiry renders the optional expiry date for storage.
func encodeExpiry(e *models.Entry) *string {
	if e.ExpiryDate == nil {
		return nil
	}
	s := e.ExpiryDate.Format(common.TimeFormat)
	return &s
}

// AddEntry inserts a new credential entry and returns its id. The Secret
// field must already contain the ciphertext token. Timestamps are
// store-assigned; the model's ID and timestamps are filled in on success.
func (s *Store) AddEntry(ctx context.Context, e *models.Entry) (int64, error) {
	ts := now()

	query := `INSERT INTO passwords (title, username, password, url, device_type, notes, category_id, is_favorite, expiry_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query, e.Title, e.Username, e.Secret, e.URL, e.DeviceType,
		e.Notes, e.CategoryID, e.IsFavorite, encodeExpiry(e), ts, ts)
	if err != nil {
		return 0, fmt.Errorf("failed to insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get entry id: %w", err)
	}

	e.ID = id
	e.CreatedAt, _ = parseTime(ts)
	e.UpdatedAt = e.CreatedAt
	return id, nil
}

// UpdateEntry rewrites all mutable fields of an existing entry and refreshes
// updated_at. Reports common.ErrorNotFound without changing anything when
// the id does not exist.
func (s *Store) UpdateEntry(ctx context.Context, e *models.Entry) error {
	query := `UPDATE passwords SET title = ?, username = ?, password = ?, url = ?, device_type = ?,
		notes = ?, category_id = ?, is_favorite = ?, expiry_date = ?, updated_at = ?
		WHERE id = ?`
	res, err := s.db.ExecContext(ctx, query, e.Title, e.Username, e.Secret, e.URL, e.DeviceType,
		e.Notes, e.CategoryID, e.IsFavorite, encodeExpiry(e), now(), e.ID)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return requireRow(res)
}

// UpdateEntrySecret replaces only the ciphertext token of an entry. Used by
// the re-keying batch.
func (s *Store) UpdateEntrySecret(ctx context.Context, id int64, token string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE passwords SET password = ?, updated_at = ? WHERE id = ?`, token, now(), id)
	if err != nil {
		return fmt.Errorf("failed to update entry secret: %w", err)
	}
	return requireRow(res)
}

// SetFavorite flips the favorite flag and refreshes updated_at.
func (s *Store) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE passwords SET is_favorite = ?, updated_at = ? WHERE id = ?`, favorite, now(), id)
	if err != nil {
		return fmt.Errorf("failed to set favorite: %w", err)
	}
	return requireRow(res)
}

// DeleteEntry removes an entry, reporting common.ErrorNotFound when the id
// does not exist.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM passwords WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return requireRow(res)
}

// GetEntry returns an entry by id, or common.ErrorNotFound.
func (s *Store) GetEntry(ctx context.Context, id int64) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM passwords WHERE id = ?`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select entry: %w", err)
	}
	return e, nil
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ListEntries returns all entries ordered by title.
func (s *Store) ListEntries(ctx context.Context) ([]models.Entry, error) {
	return s.queryEntries(ctx, `SELECT `+entryColumns+` FROM passwords ORDER BY title`)
}

// ListEntriesByCategory returns the entries of one category ordered by title.
func (s *Store) ListEntriesByCategory(ctx context.Context, categoryID int64) ([]models.Entry, error) {
	return s.queryEntries(ctx, `SELECT `+entryColumns+` FROM passwords WHERE category_id = ? ORDER BY title`, categoryID)
}

// ListFavorites returns all entries flagged as favorite ordered by title.
func (s *Store) ListFavorites(ctx context.Context) ([]models.Entry, error) {
	return s.queryEntries(ctx, `SELECT `+entryColumns+` FROM passwords WHERE is_favorite = 1 ORDER BY title`)
}

// SearchEntries performs a case-insensitive substring match across title,
// username, url and notes. NULL columns never match.
func (s *Store) SearchEntries(ctx context.Context, text string) ([]models.Entry, error) {
	pattern := "%" + text + "%"
	query := `SELECT ` + entryColumns + ` FROM passwords
		WHERE title LIKE ? OR username LIKE ? OR url LIKE ? OR notes LIKE ?
		ORDER BY title`
	return s.queryEntries(ctx, query, pattern, pattern, pattern, pattern)
}
