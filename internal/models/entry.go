package models

import "time"

// Entry is a stored credential. Secret always holds the ciphertext token
// (base64 of IV || ciphertext), never plaintext: encryption happens in the
// session layer before an entry reaches the store. URL is set for website
// credentials, DeviceType for device credentials; the store accepts both.
type Entry struct {
	ID         int64
	Title      string
	Username   *string
	Secret     string
	URL        *string
	DeviceType *string
	Notes      *string
	CategoryID *int64
	IsFavorite bool
	ExpiryDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Expired reports whether the entry's expiry date has passed. Entries
// without an expiry date never expire.
func (e *Entry) Expired(now time.Time) bool {
	return e.ExpiryDate != nil && e.ExpiryDate.Before(now)
}
