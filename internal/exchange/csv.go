package exchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Tech-Artist89/Passwortmanager/internal/models"
)

const (
	csvTimeFormat = "02.01.2006 15:04"
	csvDateFormat = "02.01.2006"
)

// csvHeader is the fixed column set of CSV exports. Import only requires
// Titel and Passwort and fills the rest when present.
var csvHeader = []string{
	"Titel", "Benutzername", "Passwort", "URL", "Gerätetyp",
	"Notizen", "Kategorie", "Favorit", "Ablaufdatum", "Erstellt", "Aktualisiert",
}

// ExportCSV writes the records as a CSV file with German column headers.
func ExportCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range records {
		e := rec.Entry

		favorite := "Nein"
		if e.IsFavorite {
			favorite = "Ja"
		}
		expiry := ""
		if e.ExpiryDate != nil {
			expiry = e.ExpiryDate.Format(csvDateFormat)
		}

		row := []string{
			e.Title,
			deref(e.Username),
			rec.Secret,
			deref(e.URL),
			deref(e.DeviceType),
			deref(e.Notes),
			rec.CategoryName,
			favorite,
			expiry,
			e.CreatedAt.Format(csvTimeFormat),
			e.UpdatedAt.Format(csvTimeFormat),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// ImportCSV reads records from a CSV file previously produced by ExportCSV
// or a compatible tool. Category names are resolved against the given
// categories; unknown names import without a category. Rows with unparsable
// dates keep going with the date dropped.
func ImportCSV(r io.Reader, categories []models.Category) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Titel", "Passwort"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("required csv column %q is missing", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	ids := categoryIDs(categories)
	var records []Record

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		favorite := strings.ToLower(field(row, "Favorit"))

		rec := Record{
			Entry: models.Entry{
				Title:      field(row, "Titel"),
				Username:   optional(field(row, "Benutzername")),
				URL:        optional(field(row, "URL")),
				DeviceType: optional(field(row, "Gerätetyp")),
				Notes:      optional(field(row, "Notizen")),
				CategoryID: resolveCategory(field(row, "Kategorie"), ids),
				IsFavorite: favorite == "ja" || favorite == "yes" || favorite == "true" || favorite == "1",
				ExpiryDate: parseOptionalTime(field(row, "Ablaufdatum"), csvDateFormat),
				CreatedAt:  parseTimeOrNow(field(row, "Erstellt"), csvTimeFormat),
				UpdatedAt:  parseTimeOrNow(field(row, "Aktualisiert"), csvTimeFormat),
			},
			Secret:       field(row, "Passwort"),
			CategoryName: field(row, "Kategorie"),
		}
		records = append(records, rec)
	}

	return records, nil
}
