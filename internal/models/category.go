// Package models defines the persistent record types of the vault.
package models

import "time"

// Category groups entries. ParentID forms a forest: a nil ParentID marks a
// root category.
type Category struct {
	ID          int64
	Name        string
	Description *string
	ParentID    *int64
	Icon        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryNode is a category together with its resolved children, as
// returned by the store's forest query.
type CategoryNode struct {
	Category
	Children []*CategoryNode
}
