package vault

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/cryptox"
	"github.com/Tech-Artist89/Passwortmanager/internal/models"
)

func TestChangeMasterPassword_RotatesEverySecret(t *testing.T) {
	s, st := setupSession(t)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx, "alt"))

	bank := &models.Entry{Title: "Bank"}
	bankID, err := s.AddEntry(ctx, bank, "p@ss1")
	require.NoError(t, err)
	oldToken := bank.Secret

	_, err = s.AddEntry(ctx, &models.Entry{Title: "Mail"}, "m@il")
	require.NoError(t, err)

	require.NoError(t, s.ChangeMasterPassword(ctx, "alt", "neu"))
	assert.True(t, s.Unlocked(), "session stays unlocked under the new key")

	// secrets remain readable in the running session
	plaintext, err := s.RevealSecret(ctx, bankID)
	require.NoError(t, err)
	assert.Equal(t, "p@ss1", plaintext)

	// every token was rewritten
	stored, err := st.GetEntry(ctx, bankID)
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, stored.Secret)

	// the rewritten token must not decrypt under the old key
	old, err := cryptox.DecryptField(stored.Secret, cryptox.DeriveKey("alt"))
	if err == nil {
		assert.NotEqual(t, "p@ss1", old)
	}

	// a fresh session only accepts the new password
	s.Lock()
	require.ErrorIs(t, s.Unlock(ctx, "alt"), common.ErrorAuthentication)
	require.NoError(t, s.Unlock(ctx, "neu"))

	plaintext, err = s.RevealSecret(ctx, bankID)
	require.NoError(t, err)
	assert.Equal(t, "p@ss1", plaintext)
}

func TestChangeMasterPassword_WrongCurrent(t *testing.T) {
	s, st := setupSession(t)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx, "alt"))
	id, err := s.AddEntry(ctx, &models.Entry{Title: "Bank"}, "p@ss1")
	require.NoError(t, err)

	before, err := st.GetEntry(ctx, id)
	require.NoError(t, err)

	err = s.ChangeMasterPassword(ctx, "falsch", "neu")
	require.ErrorIs(t, err, common.ErrorAuthentication)

	after, err := st.GetEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.Secret, after.Secret, "nothing may change on a failed verification")

	s.Lock()
	require.NoError(t, s.Unlock(ctx, "alt"), "old password must keep working")
}

func TestChangeMasterPassword_RequiresUnlock(t *testing.T) {
	s, _ := setupSession(t)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx, "alt"))
	s.Lock()

	err := s.ChangeMasterPassword(ctx, "alt", "neu")
	require.ErrorIs(t, err, common.ErrorVaultLocked)
}

func TestChangeMasterPassword_AbortsAtomically(t *testing.T) {
	s, st := setupSession(t)
	ctx := context.Background()

	require.NoError(t, s.Initialize(ctx, "alt"))

	first := &models.Entry{Title: "A-Bank"}
	firstID, err := s.AddEntry(ctx, first, "eins")
	require.NoError(t, err)

	broken := &models.Entry{Title: "B-Kaputt"}
	brokenID, err := s.AddEntry(ctx, broken, "zwei")
	require.NoError(t, err)

	third := &models.Entry{Title: "C-Mail"}
	thirdID, err := s.AddEntry(ctx, third, "drei")
	require.NoError(t, err)

	// make the middle entry undecryptable so the batch fails partway
	require.NoError(t, st.UpdateEntrySecret(ctx, brokenID, "kein-token"))
	tokens := map[int64]string{}
	for _, id := range []int64{firstID, brokenID, thirdID} {
		e, err := st.GetEntry(ctx, id)
		require.NoError(t, err)
		tokens[id] = e.Secret
	}

	err = s.ChangeMasterPassword(ctx, "alt", "neu")
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrorDecryption)

	// the stored hash still verifies the old password only
	hash, err := st.MasterHash(ctx)
	require.NoError(t, err)
	assert.True(t, cryptox.VerifyPassword("alt", hash))
	assert.False(t, cryptox.VerifyPassword("neu", hash))

	// no entry was left re-keyed: the transaction rolled every token back
	for id, token := range tokens {
		e, err := st.GetEntry(ctx, id)
		require.NoError(t, err)
		assert.Equalf(t, token, e.Secret, "entry %d must keep its old token", id)
	}

	// the session keeps working under the old key
	plaintext, err := s.RevealSecret(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, "eins", plaintext)

	plaintext, err = s.RevealSecret(ctx, thirdID)
	require.NoError(t, err)
	assert.Equal(t, "drei", plaintext)
}
