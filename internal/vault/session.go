// Package vault implements the session guarding the credential store:
// master password verification, the in-memory working key, encrypt-on-write
// and decrypt-on-read plumbing, master password rotation and the inactivity
// auto-lock.
package vault

import (
	"context"
	"sync"
	"time"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/cryptox"
	"github.com/Tech-Artist89/Passwortmanager/internal/logging"
	"github.com/Tech-Artist89/Passwortmanager/internal/store"
)

// FieldCipher is the seam between the session and the concrete cipher.
// cryptox.CBCCipher is the production implementation; an authenticated mode
// can replace it without touching the session, given a token migration.
type FieldCipher interface {
	Encrypt(plaintext string, key []byte) (string, error)
	Decrypt(token string, key []byte) (string, error)
}

// Session holds the working key derived from the master password, or none
// while locked. Exactly one Session lives per process; every secret passes
// through it on its way into or out of the store.
type Session struct {
	store  *store.Store
	cipher FieldCipher
	log    logging.Logger

	mu  sync.Mutex
	key []byte // nil while locked

	autoLockEnabled bool
	autoLockAfter   time.Duration
	timer           *time.Timer
	onAutoLock      func()
}

func NewSession(st *store.Store, cipher FieldCipher, log logging.Logger) *Session {
	return &Session{store: st, cipher: cipher, log: log}
}

// Initialized reports whether a master credential exists, i.e. whether the
// vault has left the uninitialized state.
func (s *Session) Initialized(ctx context.Context) (bool, error) {
	hash, err := s.store.MasterHash(ctx)
	if err != nil {
		return false, err
	}
	return hash != "", nil
}

// Initialize sets the first master password and unlocks the session.
func (s *Session) Initialize(ctx context.Context, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := s.store.MasterHash(ctx)
	if err != nil {
		return err
	}
	if hash != "" {
		return common.ErrorAlreadyInitialized
	}

	if err := s.store.SaveMasterHash(ctx, cryptox.HashPassword(password)); err != nil {
		return err
	}

	s.key = cryptox.DeriveKey(password)
	s.armTimerLocked()
	s.log.Info(ctx, "vault initialized")
	return nil
}

// Unlock verifies the password against the stored hash and derives the
// working key. A mismatch leaves the session locked and reports
// common.ErrorAuthentication.
func (s *Session) Unlock(ctx context.Context, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := s.store.MasterHash(ctx)
	if err != nil {
		return err
	}
	if hash == "" {
		return common.ErrorNotInitialized
	}
	if !cryptox.VerifyPassword(password, hash) {
		return common.ErrorAuthentication
	}

	s.key = cryptox.DeriveKey(password)
	s.armTimerLocked()
	s.log.Info(ctx, "vault unlocked")
	return nil
}

// Lock wipes the working key and stops the auto-lock timer. Safe to call on
// a locked session.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropKeyLocked()
}

// Unlocked reports whether a working key is currently held.
func (s *Session) Unlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key != nil
}

// dropKeyLocked wipes the key bytes before releasing the reference. Callers
// must hold mu.
func (s *Session) dropKeyLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	common.WipeByteArray(s.key)
	s.key = nil
}

// ConfigureAutoLock arms or disarms the inactivity auto-lock. A zero or
// negative duration disables it regardless of enabled.
func (s *Session) ConfigureAutoLock(enabled bool, after time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoLockEnabled = enabled && after > 0
	s.autoLockAfter = after
	s.armTimerLocked()
}

// OnAutoLock registers a callback invoked after an inactivity lock. The
// callback runs on the timer goroutine.
func (s *Session) OnAutoLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAutoLock = fn
}

// Touch signals user activity and restarts the inactivity timer.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return
	}
	s.armTimerLocked()
}

// armTimerLocked (re)starts the auto-lock timer for the current
// configuration. Callers must hold mu.
func (s *Session) armTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.autoLockEnabled || s.key == nil {
		return
	}
	s.timer = time.AfterFunc(s.autoLockAfter, s.autoLockExpired)
}

func (s *Session) autoLockExpired() {
	s.mu.Lock()
	if s.key == nil {
		s.mu.Unlock()
		return
	}
	s.dropKeyLocked()
	fn := s.onAutoLock
	s.mu.Unlock()

	s.log.Info(context.Background(), "vault locked after inactivity")
	if fn != nil {
		fn()
	}
}
