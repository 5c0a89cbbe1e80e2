// Package exchange imports and exports vault entries as CSV and JSON files.
// It works on plaintext records and never touches the field cipher; decrypting
// before export and encrypting after import is the caller's job.
package exchange

import (
	"time"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/models"
)

// Record is one entry on its way in or out of the vault. Secret holds the
// plaintext password, or the stored token for encrypted JSON exports.
// CategoryName travels instead of the numeric id so files stay portable
// between databases.
type Record struct {
	Entry        models.Entry
	Secret       string
	CategoryName string
}

// CategoryNames maps category ids to names for building export records.
func CategoryNames(categories []models.Category) map[int64]string {
	m := make(map[int64]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Name
	}
	return m
}

func categoryIDs(categories []models.Category) map[string]int64 {
	m := make(map[string]int64, len(categories))
	for _, c := range categories {
		m[c.Name] = c.ID
	}
	return m
}

// resolveCategory translates an imported category name into the id of a
// matching local category, or nil when no such category exists.
func resolveCategory(name string, ids map[string]int64) *int64 {
	if name == "" {
		return nil
	}
	id, ok := ids[name]
	if !ok {
		return nil
	}
	return &id
}

func parseTimeOrNow(value, layout string) time.Time {
	if value == "" {
		return time.Now()
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Now()
	}
	return t
}

func parseOptionalTime(value, layout string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return nil
	}
	return &t
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isoTime(t time.Time) string {
	return t.Format(common.TimeFormat)
}
