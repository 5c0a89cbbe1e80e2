// Package cli implements the interactive shell of the password manager.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Tech-Artist89/Passwortmanager/internal/config"
	"github.com/Tech-Artist89/Passwortmanager/internal/cryptox"
	"github.com/Tech-Artist89/Passwortmanager/internal/logging"
	"github.com/Tech-Artist89/Passwortmanager/internal/store"
	"github.com/Tech-Artist89/Passwortmanager/internal/vault"
)

// App wires the vault session, the store and the interactive input together.
type App struct {
	config  *config.Config
	store   *store.Store
	session *vault.Session
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the vault database and prepares a locked session. Stored
// auto-lock settings are applied right away.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault database: %w", err)
	}

	session := vault.NewSession(st, cryptox.CBCCipher{}, log)

	settings, err := st.GetSettings(ctx)
	if err != nil {
		st.Close()
		return nil, err
	}
	if settings.AutoLockEnabled {
		session.ConfigureAutoLock(true, time.Duration(settings.AutoLockMinutes)*time.Minute)
	}

	app := &App{
		config:  cfg,
		store:   st,
		session: session,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	session.OnAutoLock(func() {
		fmt.Fprintln(app.out, "\nVault locked after inactivity. Type 'login' to continue.")
	})

	return app, nil
}

// Close releases the database.
func (a *App) Close() error {
	a.session.Lock()
	return a.store.Close()
}

// Run starts the interactive shell and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Passwortmanager CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// status feeds the REPL prompt.
func (a *App) status() string {
	name := filepath.Base(a.config.DBPath)
	if a.session.Unlocked() {
		return name
	}
	return name + " locked"
}

func (a *App) touch() {
	a.session.Touch()
}

func (a *App) initialized(ctx context.Context) bool {
	ok, err := a.session.Initialized(ctx)
	return err == nil && ok
}

func (a *App) unlocked() bool {
	return a.session.Unlocked()
}

// requireUnlocked tells the user to log in when the vault is locked.
func (a *App) requireUnlocked() bool {
	if a.session.Unlocked() {
		return true
	}
	fmt.Fprintln(a.out, "Vault is locked. Type 'login' first.")
	return false
}

// backupDir resolves the configured backup directory, falling back to a
// backups directory next to the database file.
func (a *App) backupDir() string {
	if a.config.BackupDir != "" {
		return a.config.BackupDir
	}
	abs, err := filepath.Abs(a.config.DBPath)
	if err != nil {
		return "backups"
	}
	return filepath.Join(filepath.Dir(abs), "backups")
}
