package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/exchange"
)

const (
	exportUsage = "Usage: export csv|json <file> [encrypted]"
	importUsage = "Usage: import csv|json <file>"
)

// exportRecords gathers all entries as exchange records. With plaintext set
// the secrets are decrypted, otherwise the stored tokens travel as they are.
func (a *App) exportRecords(ctx context.Context, plaintext bool) ([]exchange.Record, error) {
	entries, err := a.store.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := a.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := exchange.CategoryNames(categories)

	records := make([]exchange.Record, 0, len(entries))

	if !plaintext {
		for _, e := range entries {
			records = append(records, exchange.Record{
				Entry:        e,
				Secret:       e.Secret,
				CategoryName: categoryName(names, e.CategoryID),
			})
		}
		return records, nil
	}

	decrypted, err := a.session.DecryptEntries(ctx, entries)
	if err != nil {
		return nil, err
	}
	skipped := 0
	for _, d := range decrypted {
		if d.Err != nil {
			skipped++
			continue
		}
		records = append(records, exchange.Record{
			Entry:        d.Entry,
			Secret:       d.Secret,
			CategoryName: categoryName(names, d.Entry.CategoryID),
		})
	}
	if skipped > 0 {
		fmt.Fprintf(a.out, "Warning: %d entries could not be decrypted and were skipped.\n", skipped)
	}

	return records, nil
}

func categoryName(names map[int64]string, id *int64) string {
	if id == nil {
		return ""
	}
	return names[*id]
}

// Export writes all entries to a CSV or JSON file. CSV and plain JSON
// contain the passwords in cleartext; "export json <file> encrypted" keeps
// the stored tokens instead.
func (a *App) Export(ctx context.Context, args []string) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}
	if len(args) < 2 {
		fmt.Fprintln(a.out, exportUsage)
		return nil
	}
	format, path := args[0], args[1]
	encrypted := len(args) > 2 && args[2] == "encrypted"

	if format != "csv" && format != "json" {
		fmt.Fprintln(a.out, exportUsage)
		return nil
	}
	if encrypted && format == "csv" {
		fmt.Fprintln(a.out, "Encrypted export is only available as JSON.")
		return nil
	}

	records, err := a.exportRecords(ctx, !encrypted)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	switch format {
	case "csv":
		err = exchange.ExportCSV(f, records)
	case "json":
		err = exchange.ExportJSON(f, records, encrypted)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if !encrypted {
		fmt.Fprintln(a.out, "Warning: the file contains passwords in cleartext.")
	}
	fmt.Fprintf(a.out, "Exported %d entries to %s.\n", len(records), path)
	return nil
}

// Import reads entries from a CSV or JSON file and stores them. Plaintext
// secrets are encrypted on the way in; an encrypted JSON export is taken
// over token by token, which only makes sense with an unchanged master
// password.
func (a *App) Import(ctx context.Context, args []string) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}
	if len(args) < 2 {
		fmt.Fprintln(a.out, importUsage)
		return nil
	}
	format, path := args[0], args[1]

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer f.Close()

	categories, err := a.store.ListCategories(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	var (
		records   []exchange.Record
		encrypted bool
	)
	switch format {
	case "csv":
		records, err = exchange.ImportCSV(f, categories)
	case "json":
		records, encrypted, err = exchange.ImportJSON(f, categories)
	default:
		fmt.Fprintln(a.out, importUsage)
		return nil
	}
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	imported := 0
	for i := range records {
		rec := records[i]
		if encrypted {
			rec.Entry.Secret = rec.Secret
			_, err = a.store.AddEntry(ctx, &rec.Entry)
		} else {
			_, err = a.session.AddEntry(ctx, &rec.Entry, rec.Secret)
		}
		if err != nil {
			a.log.Warn(ctx, "failed to import entry", "title", rec.Entry.Title, "error", err)
			fmt.Fprintf(a.out, "Skipped %q: %v\n", rec.Entry.Title, err)
			continue
		}
		imported++
	}

	fmt.Fprintf(a.out, "Imported %d of %d entries from %s.\n", imported, len(records), path)
	return nil
}
