package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/models"
)

const categoryColumns = `id, name, description, parent_id, icon, created_at, updated_at`

// scanCategory decodes one categories row. Scan order must match
// categoryColumns.
func scanCategory(row interface{ Scan(dest ...any) error }) (*models.Category, error) {
	var c models.Category
	var createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ParentID, &c.Icon, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

// AddCategory inserts a new category and returns its id. Timestamps are
// store-assigned; the model's ID and timestamps are filled in on success.
func (s *Store) AddCategory(ctx context.Context, c *models.Category) (int64, error) {
	ts := now()

	query := `INSERT INTO categories (name, description, parent_id, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query, c.Name, c.Description, c.ParentID, c.Icon, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get category id: %w", err)
	}

	c.ID = id
	c.CreatedAt, _ = parseTime(ts)
	c.UpdatedAt = c.CreatedAt
	return id, nil
}

// UpdateCategory rewrites name, description, parent and icon of an existing
// category and refreshes updated_at. Reports common.ErrorNotFound without
// changing anything when the id does not exist.
func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	query := `UPDATE categories SET name = ?, description = ?, parent_id = ?, icon = ?, updated_at = ?
		WHERE id = ?`
	res, err := s.db.ExecContext(ctx, query, c.Name, c.Description, c.ParentID, c.Icon, now(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return requireRow(res)
}

// DeleteCategory removes a category. Children keep existing but lose their
// parent; entries of the category lose their category reference. The whole
// cleanup runs in one transaction.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.InTx(ctx, func(tx *Store) error {
		if _, err := tx.db.ExecContext(ctx, `UPDATE categories SET parent_id = NULL WHERE parent_id = ?`, id); err != nil {
			return fmt.Errorf("failed to detach child categories: %w", err)
		}
		if _, err := tx.db.ExecContext(ctx, `UPDATE passwords SET category_id = NULL WHERE category_id = ?`, id); err != nil {
			return fmt.Errorf("failed to detach entries: %w", err)
		}

		res, err := tx.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return requireRow(res)
	})
}

// GetCategory returns a category by id, or common.ErrorNotFound.
func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select category: %w", err)
	}
	return c, nil
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// CategoryForest returns the root categories with their recursively nested
// children, built from the flat list in a single pass over an id index.
// A category whose parent no longer exists is treated as a root.
func (s *Store) CategoryForest(ctx context.Context) ([]*models.CategoryNode, error) {
	flat, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[int64]*models.CategoryNode, len(flat))
	for i := range flat {
		index[flat[i].ID] = &models.CategoryNode{Category: flat[i]}
	}

	var roots []*models.CategoryNode
	for i := range flat {
		node := index[flat[i].ID]
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := index[*node.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots, nil
}
