package vault

import (
	"context"
	"fmt"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/cryptox"
	"github.com/Tech-Artist89/Passwortmanager/internal/store"
)

// ChangeMasterPassword re-keys the vault: it verifies the current password,
// re-encrypts every stored secret under the key of the new password and
// replaces the master hash. The whole batch runs in one store transaction,
// so a failure partway leaves every entry and the hash keyed under the
// current password. The in-memory working key is swapped only after commit.
func (s *Session) ChangeMasterPassword(ctx context.Context, current, next string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		return common.ErrorVaultLocked
	}

	hash, err := s.store.MasterHash(ctx)
	if err != nil {
		return err
	}
	if hash == "" {
		return common.ErrorNotInitialized
	}
	if !cryptox.VerifyPassword(current, hash) {
		return common.ErrorAuthentication
	}

	oldKey := cryptox.DeriveKey(current)
	newKey := cryptox.DeriveKey(next)

	err = s.store.InTx(ctx, func(tx *store.Store) error {
		entries, err := tx.ListEntries(ctx)
		if err != nil {
			return err
		}

		for i := range entries {
			plaintext, err := s.cipher.Decrypt(entries[i].Secret, oldKey)
			if err != nil {
				return fmt.Errorf("entry %d: %w", entries[i].ID, err)
			}
			token, err := s.cipher.Encrypt(plaintext, newKey)
			if err != nil {
				return fmt.Errorf("entry %d: %w", entries[i].ID, err)
			}
			if err := tx.UpdateEntrySecret(ctx, entries[i].ID, token); err != nil {
				return err
			}
		}

		// the new hash is persisted only after every entry is re-encrypted;
		// rollback restores the old hash together with the old tokens
		return tx.SaveMasterHash(ctx, cryptox.HashPassword(next))
	})

	common.WipeByteArray(oldKey)
	if err != nil {
		common.WipeByteArray(newKey)
		return fmt.Errorf("re-keying aborted: %w", err)
	}

	common.WipeByteArray(s.key)
	s.key = newKey
	s.armTimerLocked()
	s.log.Info(ctx, "master password changed")
	return nil
}
