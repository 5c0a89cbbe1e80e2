// Package common defines shared constants, sentinel errors and small helpers
// used across the Passwortmanager layers. Callers should use errors.Is to
// match the sentinel values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Session-level errors.
	ErrorAuthentication     = errors.New("authentication failed")
	ErrorVaultLocked        = errors.New("vault is locked")
	ErrorAlreadyInitialized = errors.New("master password already set")
	ErrorNotInitialized     = errors.New("master password not set")

	// Cipher errors (malformed token, corrupt padding or wrong key).
	ErrorDecryption = errors.New("decryption failed")
)
