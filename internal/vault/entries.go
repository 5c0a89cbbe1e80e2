package vault

import (
	"context"
	"fmt"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/models"
)

// DecryptedEntry pairs an entry with its decrypted secret. Err is set when
// this entry's token failed to decrypt; the other fields of the entry stay
// usable.
type DecryptedEntry struct {
	Entry  models.Entry
	Secret string
	Err    error
}

// workingKey returns the current key or common.ErrorVaultLocked.
func (s *Session) workingKey() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return nil, common.ErrorVaultLocked
	}
	return s.key, nil
}

// AddEntry encrypts secret and stores the entry. The entry's Secret field is
// overwritten with the ciphertext token.
func (s *Session) AddEntry(ctx context.Context, e *models.Entry, secret string) (int64, error) {
	key, err := s.workingKey()
	if err != nil {
		return 0, err
	}

	token, err := s.cipher.Encrypt(secret, key)
	if err != nil {
		return 0, fmt.Errorf("failed to encrypt secret: %w", err)
	}
	e.Secret = token

	return s.store.AddEntry(ctx, e)
}

// UpdateEntry encrypts secret and rewrites the stored entry.
func (s *Session) UpdateEntry(ctx context.Context, e *models.Entry, secret string) error {
	key, err := s.workingKey()
	if err != nil {
		return err
	}

	token, err := s.cipher.Encrypt(secret, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt secret: %w", err)
	}
	e.Secret = token

	return s.store.UpdateEntry(ctx, e)
}

// RevealSecret loads one entry and returns its decrypted secret.
func (s *Session) RevealSecret(ctx context.Context, id int64) (string, error) {
	key, err := s.workingKey()
	if err != nil {
		return "", err
	}

	e, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return "", err
	}

	plaintext, err := s.cipher.Decrypt(e.Secret, key)
	if err != nil {
		return "", fmt.Errorf("entry %d: %w", id, err)
	}
	return plaintext, nil
}

// DecryptEntries decrypts a batch of entries. Per-entry failures are
// isolated: a corrupt token marks only its own result, logged and reported,
// so one broken row never blocks access to the rest.
func (s *Session) DecryptEntries(ctx context.Context, entries []models.Entry) ([]DecryptedEntry, error) {
	key, err := s.workingKey()
	if err != nil {
		return nil, err
	}

	result := make([]DecryptedEntry, 0, len(entries))
	for _, e := range entries {
		plaintext, err := s.cipher.Decrypt(e.Secret, key)
		if err != nil {
			s.log.Warn(ctx, "failed to decrypt entry", "id", e.ID, "error", err)
			result = append(result, DecryptedEntry{Entry: e, Err: err})
			continue
		}
		result = append(result, DecryptedEntry{Entry: e, Secret: plaintext})
	}
	return result, nil
}
