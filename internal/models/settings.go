package models

// Settings is the singleton preferences row. AutoLockMinutes is stored in
// the auto_lock_time column.
type Settings struct {
	Theme           string
	Language        string
	VisibleColumns  []string
	AutoLockEnabled bool
	AutoLockMinutes int
	DBPath          string
}

// DefaultSettings returns the values written on first initialization.
func DefaultSettings() *Settings {
	return &Settings{
		Theme:           "light",
		Language:        "de",
		VisibleColumns:  []string{"title", "username", "category", "updated_at"},
		AutoLockEnabled: false,
		AutoLockMinutes: 5,
		DBPath:          "passwortmanager.db",
	}
}
