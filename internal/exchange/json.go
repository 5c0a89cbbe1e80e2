package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/models"
)

// exportVersion is written into every JSON export envelope.
const exportVersion = "1.0"

type jsonEntry struct {
	ID           *int64  `json:"id,omitempty"`
	Title        string  `json:"title"`
	Username     *string `json:"username"`
	Password     string  `json:"password"`
	URL          *string `json:"url"`
	DeviceType   *string `json:"device_type"`
	Notes        *string `json:"notes"`
	CategoryID   *int64  `json:"category_id"`
	IsFavorite   bool    `json:"is_favorite"`
	ExpiryDate   *string `json:"expiry_date"`
	CreatedAt    *string `json:"created_at"`
	UpdatedAt    *string `json:"updated_at"`
	CategoryName string  `json:"category_name"`
}

type jsonExport struct {
	Version   string      `json:"version"`
	Encrypted bool        `json:"encrypted"`
	CreatedAt string      `json:"created_at"`
	Count     int         `json:"count"`
	Entries   []jsonEntry `json:"entries"`
}

// ExportJSON writes the records as a JSON document with a version envelope.
// With encrypted set the records are expected to carry stored tokens instead
// of plaintext secrets and keep their database ids; plaintext exports drop
// the ids so the file can be imported into any database.
func ExportJSON(w io.Writer, records []Record, encrypted bool) error {
	entries := make([]jsonEntry, 0, len(records))
	for _, rec := range records {
		e := rec.Entry

		je := jsonEntry{
			Title:        e.Title,
			Username:     e.Username,
			Password:     rec.Secret,
			URL:          e.URL,
			DeviceType:   e.DeviceType,
			Notes:        e.Notes,
			CategoryID:   e.CategoryID,
			IsFavorite:   e.IsFavorite,
			CategoryName: rec.CategoryName,
		}
		if encrypted {
			id := e.ID
			je.ID = &id
		}
		if e.ExpiryDate != nil {
			s := isoTime(*e.ExpiryDate)
			je.ExpiryDate = &s
		}
		if !e.CreatedAt.IsZero() {
			s := isoTime(e.CreatedAt)
			je.CreatedAt = &s
		}
		if !e.UpdatedAt.IsZero() {
			s := isoTime(e.UpdatedAt)
			je.UpdatedAt = &s
		}
		entries = append(entries, je)
	}

	doc := jsonExport{
		Version:   exportVersion,
		Encrypted: encrypted,
		CreatedAt: isoTime(time.Now()),
		Count:     len(entries),
		Entries:   entries,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write json export: %w", err)
	}
	return nil
}

// ImportJSON reads a JSON export. The returned flag reports whether the file
// declares its secrets as encrypted tokens. Category names are resolved
// against the given categories; the ids stored in the file are discarded.
func ImportJSON(r io.Reader, categories []models.Category) ([]Record, bool, error) {
	var doc jsonExport
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, false, fmt.Errorf("failed to parse json export: %w", err)
	}
	if doc.Entries == nil {
		return nil, false, fmt.Errorf("invalid json export: entries are missing")
	}

	ids := categoryIDs(categories)
	records := make([]Record, 0, len(doc.Entries))

	for _, je := range doc.Entries {
		rec := Record{
			Entry: models.Entry{
				Title:      je.Title,
				Username:   je.Username,
				URL:        je.URL,
				DeviceType: je.DeviceType,
				Notes:      je.Notes,
				CategoryID: resolveCategory(je.CategoryName, ids),
				IsFavorite: je.IsFavorite,
			},
			Secret:       je.Password,
			CategoryName: je.CategoryName,
		}
		if je.ExpiryDate != nil {
			rec.Entry.ExpiryDate = parseOptionalTime(*je.ExpiryDate, common.TimeFormatParse)
		}
		if je.CreatedAt != nil {
			rec.Entry.CreatedAt = parseTimeOrNow(*je.CreatedAt, common.TimeFormatParse)
		}
		if je.UpdatedAt != nil {
			rec.Entry.UpdatedAt = parseTimeOrNow(*je.UpdatedAt, common.TimeFormatParse)
		}
		records = append(records, rec)
	}

	return records, doc.Encrypted, nil
}
