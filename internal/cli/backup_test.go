package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Tech-Artist89/Passwortmanager/internal/backup"
)

func TestBackupCreateListRestore(t *testing.T) {
	ctx := context.Background()
	app, out := newVaultApp(t)
	initVault(t, app, "master")
	addTestEntry(t, app, "Vorher", "", "Secret1!")

	out.Reset()
	require.NoError(t, app.Backup(ctx, []string{"create"}))
	require.Contains(t, out.String(), "Backup written to")

	addTestEntry(t, app, "Nachher", "", "Secret2!")

	out.Reset()
	require.NoError(t, app.Backup(ctx, []string{"list"}))
	require.Contains(t, out.String(), "backup_")

	setInput(app, "j")
	out.Reset()
	require.NoError(t, app.Backup(ctx, []string{"restore", "1"}))
	require.Contains(t, out.String(), "Backup restored.")
	require.False(t, app.unlocked())

	scriptPasswords(t, "master")
	require.NoError(t, app.Unlock(ctx))

	out.Reset()
	require.NoError(t, app.List(ctx, nil))
	require.Contains(t, out.String(), "Vorher")
	require.NotContains(t, out.String(), "Nachher")
}

func TestBackupRestoreDeclined(t *testing.T) {
	ctx := context.Background()
	app, out := newVaultApp(t)
	initVault(t, app, "master")
	addTestEntry(t, app, "Bleibt", "", "Secret1!")

	require.NoError(t, app.Backup(ctx, []string{"create"}))

	setInput(app, "n")
	out.Reset()
	require.NoError(t, app.Backup(ctx, []string{"restore", "1"}))
	require.Contains(t, out.String(), "Nothing restored.")
	require.True(t, app.unlocked())
}

func TestBackupRestoreUnknownIndex(t *testing.T) {
	ctx := context.Background()
	app, out := newVaultApp(t)
	initVault(t, app, "master")

	err := app.Backup(ctx, []string{"restore", "9"})
	require.Error(t, err)
	require.Contains(t, out.String(), "no backup with number 9")
}

func TestBackupDelete(t *testing.T) {
	ctx := context.Background()
	app, out := newVaultApp(t)
	initVault(t, app, "master")

	require.NoError(t, app.Backup(ctx, []string{"create"}))

	infos, err := backup.List(app.backupDir())
	require.NoError(t, err)
	require.Len(t, infos, 1)

	out.Reset()
	require.NoError(t, app.Backup(ctx, []string{"delete", "1"}))
	require.Contains(t, out.String(), "Deleted ")

	infos, err = backup.List(app.backupDir())
	require.NoError(t, err)
	require.Empty(t, infos)
}

func TestBackupUsage(t *testing.T) {
	ctx := context.Background()
	app, out := newVaultApp(t)

	require.NoError(t, app.Backup(ctx, nil))
	require.Contains(t, out.String(), "Usage: backup")

	out.Reset()
	require.NoError(t, app.Backup(ctx, []string{"frobnicate"}))
	require.Contains(t, out.String(), "Usage: backup")
}
