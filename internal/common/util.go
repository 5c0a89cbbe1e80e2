package common

import "crypto/rand"

// GenerateRandByteArray returns size cryptographically random bytes.
// crypto/rand.Read always fills the buffer completely.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	_, _ = rand.Read(b)
	return b
}

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to remove key material and passwords from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
