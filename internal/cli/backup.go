package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Tech-Artist89/Passwortmanager/internal/backup"
	"github.com/Tech-Artist89/Passwortmanager/internal/cryptox"
	"github.com/Tech-Artist89/Passwortmanager/internal/store"
	"github.com/Tech-Artist89/Passwortmanager/internal/vault"
)

const backupUsage = "Usage: backup create | list | restore <n|path> | delete <n|path>"

// Backup manages database backups. Restoring closes the vault, swaps the
// database file and reopens it locked.
func (a *App) Backup(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, backupUsage)
		return nil
	}

	switch args[0] {
	case "create":
		path, err := backup.CreateScheduled(a.config.DBPath, a.backupDir(), backup.DefaultMaxBackups)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(a.out, "Backup written to %s.\n", path)
		return nil

	case "list":
		backups, err := backup.List(a.backupDir())
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		if len(backups) == 0 {
			fmt.Fprintln(a.out, "No backups.")
			return nil
		}
		for i, b := range backups {
			fmt.Fprintf(a.out, "%3d  %s  %7d bytes  %s\n", i+1, b.Date.Format("02.01.2006 15:04"), b.Size, b.Filename)
		}
		return nil

	case "restore":
		if len(args) < 2 {
			fmt.Fprintln(a.out, backupUsage)
			return nil
		}
		path, err := a.resolveBackupArg(args[1])
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}

		confirmed, err := GetConfirmation(a.reader, fmt.Sprintf("Replace the current database with %s?", path), a.out)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(a.out, "Nothing restored.")
			return nil
		}

		if err := a.restore(ctx, path); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		fmt.Fprintln(a.out, "Backup restored. The vault is locked, type 'login' to continue.")
		return nil

	case "delete":
		if len(args) < 2 {
			fmt.Fprintln(a.out, backupUsage)
			return nil
		}
		path, err := a.resolveBackupArg(args[1])
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		if err := backup.Delete(path); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(a.out, "Deleted %s.\n", path)
		return nil

	default:
		fmt.Fprintln(a.out, backupUsage)
		return nil
	}
}

// resolveBackupArg accepts either an index from 'backup list' or a file path.
func (a *App) resolveBackupArg(arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return arg, nil
	}

	backups, err := backup.List(a.backupDir())
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(backups) {
		return "", fmt.Errorf("no backup with number %d, see 'backup list'", n)
	}
	return backups[n-1].Path, nil
}

// restore swaps the database file under a closed store and reopens the vault
// in the locked state.
func (a *App) restore(ctx context.Context, backupPath string) error {
	a.session.Lock()
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if _, err := backup.Restore(backupPath, a.config.DBPath); err != nil {
		// reopen the old database so the app stays usable
		if st, openErr := store.Open(ctx, a.config.DBPath); openErr == nil {
			a.swapStore(st)
		}
		return err
	}

	st, err := store.Open(ctx, a.config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to reopen restored database: %w", err)
	}
	a.swapStore(st)
	if settings, err := st.GetSettings(ctx); err == nil && settings.AutoLockEnabled {
		a.session.ConfigureAutoLock(true, time.Duration(settings.AutoLockMinutes)*time.Minute)
	}
	a.log.Info(ctx, "database restored from backup", "backup", backupPath)
	return nil
}

func (a *App) swapStore(st *store.Store) {
	a.store = st
	a.session = vault.NewSession(st, cryptox.CBCCipher{}, a.log)
	a.session.OnAutoLock(func() {
		fmt.Fprintln(a.out, "\nVault locked after inactivity. Type 'login' to continue.")
	})
}
