package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
)

func TestExportImportCSV(t *testing.T) {
	ctx := context.Background()
	app, out := newVaultApp(t)
	initVault(t, app, "master")
	addTestEntry(t, app, "Mail Konto", "erika@example.de", "Sommer2024!")

	path := filepath.Join(t.TempDir(), "export.csv")
	out.Reset()
	require.NoError(t, app.Export(ctx, []string{"csv", path}))
	require.Contains(t, out.String(), "Warning: the file contains passwords in cleartext.")
	require.Contains(t, out.String(), "Exported 1 entries")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Titel,Benutzername,Passwort")
	require.Contains(t, string(data), "Sommer2024!")

	out.Reset()
	require.NoError(t, app.Import(ctx, []string{"csv", path}))
	require.Contains(t, out.String(), "Imported 1 of 1 entries")

	out.Reset()
	require.NoError(t, app.Show(ctx, []string{"2"}))
	require.Contains(t, out.String(), "Password:   Sommer2024!")
}

func TestImportCSVResolvesCategories(t *testing.T) {
	ctx := context.Background()
	app, out := newVaultApp(t)
	initVault(t, app, "master")

	setInput(app, "Arbeit", "", "", "")
	require.NoError(t, app.AddCategory(ctx))

	setInput(app, "Firmen Mail", "", "", "", "", "2", "")
	scriptPasswords(t, "Secret1!")
	require.NoError(t, app.AddEntry(ctx))

	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, app.Export(ctx, []string{"csv", path}))
	require.NoError(t, app.Import(ctx, []string{"csv", path}))

	out.Reset()
	require.NoError(t, app.Show(ctx, []string{"2"}))
	require.Contains(t, out.String(), "Category:   Arbeit")
}

func TestExportEncryptedJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	app, out := newVaultApp(t)
	initVault(t, app, "master")
	addTestEntry(t, app, "Mail Konto", "", "Sommer2024!")

	path := filepath.Join(t.TempDir(), "export.json")
	out.Reset()
	require.NoError(t, app.Export(ctx, []string{"json", path, "encrypted"}))
	require.Contains(t, out.String(), "Exported 1 entries")
	require.NotContains(t, out.String(), "cleartext")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "Sommer2024!")
	require.Contains(t, string(data), `"encrypted": true`)

	out.Reset()
	require.NoError(t, app.Import(ctx, []string{"json", path}))
	require.Contains(t, out.String(), "Imported 1 of 1 entries")

	out.Reset()
	require.NoError(t, app.Show(ctx, []string{"2"}))
	require.Contains(t, out.String(), "Password:   Sommer2024!")
}

func TestExportRefusesEncryptedCSV(t *testing.T) {
	ctx := context.Background()
	app, out := newVaultApp(t)
	initVault(t, app, "master")

	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, app.Export(ctx, []string{"csv", path, "encrypted"}))
	require.Contains(t, out.String(), "Encrypted export is only available as JSON.")

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestTransferNeedsUnlockedVault(t *testing.T) {
	ctx := context.Background()
	app, _ := newVaultApp(t)
	initVault(t, app, "master")
	require.NoError(t, app.Lock(ctx))

	path := filepath.Join(t.TempDir(), "export.csv")
	require.ErrorIs(t, app.Export(ctx, []string{"csv", path}), common.ErrorVaultLocked)
	require.ErrorIs(t, app.Import(ctx, []string{"csv", path}), common.ErrorVaultLocked)
}

func TestImportMissingFile(t *testing.T) {
	ctx := context.Background()
	app, out := newVaultApp(t)
	initVault(t, app, "master")

	err := app.Import(ctx, []string{"csv", filepath.Join(t.TempDir(), "fehlt.csv")})
	require.Error(t, err)
	require.Contains(t, out.String(), "error:")
}

func TestExportUnknownFormat(t *testing.T) {
	ctx := context.Background()
	app, out := newVaultApp(t)
	initVault(t, app, "master")

	require.NoError(t, app.Export(ctx, []string{"xml", "egal.xml"}))
	require.Contains(t, out.String(), exportUsage)
}
