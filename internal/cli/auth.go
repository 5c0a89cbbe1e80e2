package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// promptNewPassword asks for a password twice and returns it once both
// entries match. The intermediate byte slices are wiped.
func (a *App) promptNewPassword(prompt string) (string, error) {
	first, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(first)

	second, err := getPassword(a.out, "Repeat password: ")
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(second)

	if len(first) == 0 {
		return "", errors.New("password must not be empty")
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

// Initialize sets the master password on a fresh vault and unlocks it.
func (a *App) Initialize(ctx context.Context) error {
	password, err := a.promptNewPassword("Enter new master password: ")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if err := a.session.Initialize(ctx, password); err != nil {
		if errors.Is(err, common.ErrorAlreadyInitialized) {
			fmt.Fprintln(a.out, "Vault is already initialized. Type 'login' instead.")
			return err
		}
		a.log.Error(ctx, "vault initialization failed", "error", err)
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Vault initialized and unlocked.")
	return nil
}

// Unlock asks for the master password and opens the vault.
func (a *App) Unlock(ctx context.Context) error {
	if !a.initialized(ctx) {
		fmt.Fprintln(a.out, "Vault is not initialized yet. Type 'init' first.")
		return common.ErrorNotInitialized
	}

	password, err := getPassword(a.out, "Enter master password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Unlock(ctx, string(password)); err != nil {
		if errors.Is(err, common.ErrorAuthentication) {
			fmt.Fprintln(a.out, "Wrong master password.")
			return err
		}
		a.log.Error(ctx, "unlock failed", "error", err)
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Vault unlocked.")
	return nil
}

// Lock drops the in-memory key.
func (a *App) Lock(ctx context.Context) error {
	a.session.Lock()
	fmt.Fprintln(a.out, "Vault locked.")
	return nil
}

// Rekey changes the master password and re-encrypts every stored secret.
func (a *App) Rekey(ctx context.Context) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}

	current, err := getPassword(a.out, "Enter current master password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := a.promptNewPassword("Enter new master password: ")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if err := a.session.ChangeMasterPassword(ctx, string(current), next); err != nil {
		if errors.Is(err, common.ErrorAuthentication) {
			fmt.Fprintln(a.out, "Wrong master password, nothing changed.")
			return err
		}
		a.log.Error(ctx, "master password change failed", "error", err)
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Master password changed. All secrets were re-encrypted.")
	return nil
}
