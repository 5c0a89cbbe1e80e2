package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
)

// EncryptField encrypts a single secret value with AES-256-CBC and PKCS#7
// padding. A fresh random 16-byte IV is generated per call, so encrypting the
// same value twice yields different tokens. The returned token is
// base64(IV || ciphertext); the IV is not secret.
//
// The token carries no authentication tag. Existing vault files store plain
// CBC, so an authenticated mode can only be introduced together with a data
// migration (see the CBCCipher type for the seam).
func EncryptField(plaintext string, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("new cipher: %w", err)
	}

	iv := common.GenerateRandByteArray(aes.BlockSize)

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptField reverses EncryptField. Every malformed input (bad base64,
// truncated data, corrupt padding, non-UTF-8 plaintext) as well as a wrong
// key yields an error wrapping common.ErrorDecryption, so callers can
// distinguish a broken secret from a missing one.
func DecryptField(token string, key []byte) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64", common.ErrorDecryption)
	}

	if len(raw) < 2*aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: truncated token", common.ErrorDecryption)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("new cipher: %w", err)
	}

	iv := raw[:aes.BlockSize]
	ciphertext := raw[aes.BlockSize:]

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return "", err
	}

	// without a MAC, a wrong key can slip past the padding check
	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", common.ErrorDecryption)
	}

	return string(plaintext), nil
}

// CBCCipher implements the vault.FieldCipher seam with the CBC construction
// above. Swapping in an authenticated cipher means implementing the same two
// methods and migrating stored tokens.
type CBCCipher struct{}

func (CBCCipher) Encrypt(plaintext string, key []byte) (string, error) {
	return EncryptField(plaintext, key)
}

func (CBCCipher) Decrypt(token string, key []byte) (string, error) {
	return DecryptField(token, key)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: invalid padded length", common.ErrorDecryption)
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, fmt.Errorf("%w: invalid padding length", common.ErrorDecryption)
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("%w: corrupt padding", common.ErrorDecryption)
		}
	}
	return data[:len(data)-padLen], nil
}
