package cryptox

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
)

func TestEncryptField_RoundTrip(t *testing.T) {
	key := DeriveKey("master")

	cases := []string{
		"Sommer2024!",
		"",
		"ä ö ü ß € Passwörter",
		"0123456789abcdef", // exactly one block, forces a full padding block
		strings.Repeat("x", 1000),
	}
	for _, plain := range cases {
		token, err := EncryptField(plain, key)
		require.NoError(t, err)

		got, err := DecryptField(token, key)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}
}

func TestEncryptField_FreshIVPerCall(t *testing.T) {
	key := DeriveKey("master")

	t1, err := EncryptField("same secret", key)
	require.NoError(t, err)
	t2, err := EncryptField("same secret", key)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2, "two encryptions of one value must differ")

	p1, err := DecryptField(t1, key)
	require.NoError(t, err)
	p2, err := DecryptField(t2, key)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestEncryptField_RejectsBadKeySize(t *testing.T) {
	_, err := EncryptField("x", []byte("too short"))
	require.Error(t, err)
}

func TestDecryptField_KnownToken(t *testing.T) {
	// token produced by a different AES-256-CBC implementation
	// (IV 000102..0e0f, key derived from "master")
	key := DeriveKey("master")

	got, err := DecryptField("AAECAwQFBgcICQoLDA0OD8bTmA8W30ih8QVYV29WKyQ=", key)
	require.NoError(t, err)
	assert.Equal(t, "Sommer2024!", got)
}

func TestDecryptField_WrongKey(t *testing.T) {
	k1 := DeriveKey("password-one")
	k2 := DeriveKey("password-two")

	token, err := EncryptField("top secret", k1)
	require.NoError(t, err)

	got, err := DecryptField(token, k2)
	if err != nil {
		assert.ErrorIs(t, err, common.ErrorDecryption)
	} else {
		// CBC carries no MAC, so a wrong key may survive the padding and
		// UTF-8 checks by chance. It must never reproduce the plaintext.
		assert.NotEqual(t, "top secret", got)
	}
}

func TestDecryptField_MalformedTokens(t *testing.T) {
	key := DeriveKey("master")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "@@@kein-base64@@@"},
		{"iv only", base64.StdEncoding.EncodeToString(make([]byte, 16))},
		{"not block aligned", base64.StdEncoding.EncodeToString(make([]byte, 40))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecryptField(tc.token, key)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrorDecryption)
		})
	}
}

func TestDecryptField_TamperedCiphertext(t *testing.T) {
	key := DeriveKey("master")

	token, err := EncryptField("unversehrt", key)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	got, err := DecryptField(base64.StdEncoding.EncodeToString(raw), key)
	if err != nil {
		assert.ErrorIs(t, err, common.ErrorDecryption)
	} else {
		assert.NotEqual(t, "unversehrt", got)
	}
}

func TestCBCCipher_ImplementsSeam(t *testing.T) {
	key := DeriveKey("master")
	c := CBCCipher{}

	token, err := c.Encrypt("seam check", key)
	require.NoError(t, err)

	got, err := c.Decrypt(token, key)
	require.NoError(t, err)
	assert.Equal(t, "seam check", got)
}
