package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/models"
)

const promptDateFormat = "02.01.2006"

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// parseID reads the numeric id argument of a command.
func (a *App) parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "%q is not an id\n", args[0])
		return 0, false
	}
	return id, true
}

// categoryNameByID loads the category names for list output.
func (a *App) categoryNameByID(ctx context.Context) map[int64]string {
	names := make(map[int64]string)
	categories, err := a.store.ListCategories(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to load categories", "error", err)
		return names
	}
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

// listColumns are the optional list columns, keyed by the names stored in
// the visible_columns setting. ID and title always print.
var listColumns = []struct {
	name   string
	header string
	width  int
}{
	{"username", "USERNAME", 22},
	{"category", "CATEGORY", 16},
	{"url", "URL", 28},
	{"updated_at", "UPDATED", 16},
}

// visibleColumns loads the stored column preference as a lookup set.
func (a *App) visibleColumns(ctx context.Context) map[string]bool {
	columns := models.DefaultSettings().VisibleColumns
	if settings, err := a.store.GetSettings(ctx); err == nil {
		columns = settings.VisibleColumns
	} else {
		a.log.Warn(ctx, "failed to load settings", "error", err)
	}

	visible := make(map[string]bool, len(columns))
	for _, c := range columns {
		visible[c] = true
	}
	return visible
}

func (a *App) printEntries(ctx context.Context, entries []models.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries.")
		return
	}

	visible := a.visibleColumns(ctx)
	names := a.categoryNameByID(ctx)
	now := time.Now()

	header := fmt.Sprintf("%4s  %-28s", "ID", "TITLE")
	for _, c := range listColumns {
		if visible[c.name] {
			header += fmt.Sprintf(" %-*s", c.width, c.header)
		}
	}
	fmt.Fprintln(a.out, strings.TrimRight(header, " "))

	for _, e := range entries {
		line := fmt.Sprintf("%4d  %-28s", e.ID, e.Title)
		for _, c := range listColumns {
			if !visible[c.name] {
				continue
			}
			value := ""
			switch c.name {
			case "username":
				value = orEmpty(e.Username)
			case "category":
				if e.CategoryID != nil {
					value = names[*e.CategoryID]
				}
			case "url":
				value = orEmpty(e.URL)
			case "updated_at":
				value = e.UpdatedAt.Format("02.01.2006 15:04")
			}
			line += fmt.Sprintf(" %-*s", c.width, value)
		}

		marks := ""
		if e.IsFavorite {
			marks += "*"
		}
		if e.Expired(now) {
			marks += " expired"
		}
		fmt.Fprintln(a.out, strings.TrimRight(line+" "+marks, " "))
	}
}

// promptEntry collects the fields of an entry. The given entry supplies
// defaults, so the same prompts serve add and edit: an empty input keeps the
// current value.
func (a *App) promptEntry(e *models.Entry) error {
	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", e.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		e.Title = title
	}
	if e.Title == "" {
		return errors.New("title is required")
	}

	username, err := GetSimpleText(a.reader, fmt.Sprintf("Username [%s]", orEmpty(e.Username)), a.out)
	if err != nil {
		return err
	}
	if username != "" {
		e.Username = optional(username)
	}

	url, err := GetSimpleText(a.reader, fmt.Sprintf("URL [%s]", orEmpty(e.URL)), a.out)
	if err != nil {
		return err
	}
	if url != "" {
		e.URL = optional(url)
	}

	deviceType, err := GetSimpleText(a.reader, fmt.Sprintf("Device type [%s]", orEmpty(e.DeviceType)), a.out)
	if err != nil {
		return err
	}
	if deviceType != "" {
		e.DeviceType = optional(deviceType)
	}

	notes, err := GetMultiline(a.reader, fmt.Sprintf("Notes [%s]", orEmpty(e.Notes)), a.out)
	if err != nil {
		return err
	}
	if notes != "" {
		e.Notes = optional(notes)
	}

	currentCategory := ""
	if e.CategoryID != nil {
		currentCategory = strconv.FormatInt(*e.CategoryID, 10)
	}
	category, err := GetSimpleText(a.reader, fmt.Sprintf("Category id [%s]", currentCategory), a.out)
	if err != nil {
		return err
	}
	if category != "" {
		id, err := strconv.ParseInt(category, 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not a category id", category)
		}
		e.CategoryID = &id
	}

	currentExpiry := ""
	if e.ExpiryDate != nil {
		currentExpiry = e.ExpiryDate.Format(promptDateFormat)
	}
	expiry, err := GetSimpleText(a.reader, fmt.Sprintf("Expiry date DD.MM.YYYY [%s]", currentExpiry), a.out)
	if err != nil {
		return err
	}
	if expiry != "" {
		t, err := time.Parse(promptDateFormat, expiry)
		if err != nil {
			return fmt.Errorf("%q is not a date: %w", expiry, err)
		}
		e.ExpiryDate = &t
	}

	return nil
}

// AddEntry collects the fields of a new entry and stores it with the secret
// encrypted.
func (a *App) AddEntry(ctx context.Context) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}

	var e models.Entry
	if err := a.promptEntry(&e); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	secret, err := getPassword(a.out, "Password to store: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	id, err := a.session.AddEntry(ctx, &e, string(secret))
	if err != nil {
		a.log.Error(ctx, "failed to add entry", "error", err)
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Entry %d added.\n", id)
	return nil
}

// List prints all entries, or the entries of one category when a category id
// is given. Secrets stay untouched.
func (a *App) List(ctx context.Context, args []string) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}

	var (
		entries []models.Entry
		err     error
	)
	if len(args) > 0 {
		id, ok := a.parseID(args, "list [category-id]")
		if !ok {
			return nil
		}
		entries, err = a.store.ListEntriesByCategory(ctx, id)
	} else {
		entries, err = a.store.ListEntries(ctx)
	}
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	a.printEntries(ctx, entries)
	return nil
}

// Show prints one entry including the decrypted password.
func (a *App) Show(ctx context.Context, args []string) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}
	id, ok := a.parseID(args, "show <id>")
	if !ok {
		return nil
	}

	e, err := a.store.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintf(a.out, "No entry with id %d.\n", id)
			return err
		}
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	secret, err := a.session.RevealSecret(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorDecryption) {
			fmt.Fprintln(a.out, "The stored password could not be decrypted.")
		} else {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
		return err
	}

	names := a.categoryNameByID(ctx)
	category := ""
	if e.CategoryID != nil {
		category = names[*e.CategoryID]
	}

	fmt.Fprintf(a.out, "Title:      %s\n", e.Title)
	fmt.Fprintf(a.out, "Username:   %s\n", orEmpty(e.Username))
	fmt.Fprintf(a.out, "Password:   %s\n", secret)
	fmt.Fprintf(a.out, "URL:        %s\n", orEmpty(e.URL))
	fmt.Fprintf(a.out, "Device:     %s\n", orEmpty(e.DeviceType))
	fmt.Fprintf(a.out, "Notes:      %s\n", orEmpty(e.Notes))
	fmt.Fprintf(a.out, "Category:   %s\n", category)
	fmt.Fprintf(a.out, "Favorite:   %t\n", e.IsFavorite)
	if e.ExpiryDate != nil {
		fmt.Fprintf(a.out, "Expires:    %s\n", e.ExpiryDate.Format(promptDateFormat))
	}
	fmt.Fprintf(a.out, "Created:    %s\n", e.CreatedAt.Format("02.01.2006 15:04"))
	fmt.Fprintf(a.out, "Updated:    %s\n", e.UpdatedAt.Format("02.01.2006 15:04"))
	return nil
}

// Edit re-prompts the fields of an entry and re-encrypts its secret.
func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}
	id, ok := a.parseID(args, "edit <id>")
	if !ok {
		return nil
	}

	e, err := a.store.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintf(a.out, "No entry with id %d.\n", id)
			return err
		}
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	secret, err := a.session.RevealSecret(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if err := a.promptEntry(e); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	change, err := GetConfirmation(a.reader, "Change the stored password?", a.out)
	if err != nil {
		return err
	}
	if change {
		pw, err := getPassword(a.out, "New password to store: ")
		if err != nil {
			return err
		}
		secret = string(pw)
		common.WipeByteArray(pw)
	}

	if err := a.session.UpdateEntry(ctx, e, secret); err != nil {
		a.log.Error(ctx, "failed to update entry", "error", err, "id", id)
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Entry %d updated.\n", id)
	return nil
}

// Delete removes an entry after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}
	id, ok := a.parseID(args, "delete <id>")
	if !ok {
		return nil
	}

	confirmed, err := GetConfirmation(a.reader, fmt.Sprintf("Delete entry %d?", id), a.out)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(a.out, "Nothing deleted.")
		return nil
	}

	if err := a.store.DeleteEntry(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintf(a.out, "No entry with id %d.\n", id)
			return err
		}
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Entry %d deleted.\n", id)
	return nil
}

// Search finds entries by title, username, url or notes.
func (a *App) Search(ctx context.Context, args []string) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}

	text := strings.Join(args, " ")
	if text == "" {
		var err error
		text, err = GetSimpleText(a.reader, "Search for", a.out)
		if err != nil {
			return err
		}
	}

	entries, err := a.store.SearchEntries(ctx, text)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	a.printEntries(ctx, entries)
	return nil
}

// Favorites lists the entries marked as favorite.
func (a *App) Favorites(ctx context.Context) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}

	entries, err := a.store.ListFavorites(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	a.printEntries(ctx, entries)
	return nil
}

// ToggleFavorite flips the favorite mark of an entry.
func (a *App) ToggleFavorite(ctx context.Context, args []string) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}
	id, ok := a.parseID(args, "fav <id>")
	if !ok {
		return nil
	}

	e, err := a.store.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintf(a.out, "No entry with id %d.\n", id)
			return err
		}
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if err := a.store.SetFavorite(ctx, id, !e.IsFavorite); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if e.IsFavorite {
		fmt.Fprintf(a.out, "Entry %d is no longer a favorite.\n", id)
	} else {
		fmt.Fprintf(a.out, "Entry %d marked as favorite.\n", id)
	}
	return nil
}
