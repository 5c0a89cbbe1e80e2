// Package cryptox implements the cryptography behind the vault: PBKDF2 key
// stretching for the master password and an AES-256-CBC field cipher for the
// stored secrets.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

// The salts are fixed application constants, one per derivation path, so the
// verification hash never equals the working key. Existing vault files were
// written with these exact values; changing them breaks every stored secret.
const (
	keySalt  = "passwortmanager_salt"
	hashSalt = "passwortmanager_masterpassword_salt"

	kdfIterations = 100000
	keySize       = 32
)

// DeriveKey stretches the master password into the 32-byte working key used
// by the field cipher.
func DeriveKey(password string) []byte {
	return pbkdf2.Key([]byte(password), []byte(keySalt), kdfIterations, keySize, sha256.New)
}

// HashPassword derives the verification hash that is persisted as the master
// credential, encoded with standard base64.
func HashPassword(password string) string {
	h := pbkdf2.Key([]byte(password), []byte(hashSalt), kdfIterations, keySize, sha256.New)
	return base64.StdEncoding.EncodeToString(h)
}

// VerifyPassword reports whether password matches the stored verification
// hash. The comparison is constant-time.
func VerifyPassword(password string, storedHash string) bool {
	computed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
