// Package uistate holds the transient dialog flags other components observe:
// "show login dialog" and "show register dialog". The two are mutually
// exclusive and persisted so they survive a restart.
package uistate

import (
	"context"
	"sync"

	"github.com/frostedstar/mbticli/internal/client/storage"
	"github.com/frostedstar/mbticli/internal/logging"
)

// Store owns the two dialog flags. The HTTP layer's 401 hook calls OpenLogin
// (via the composition root); the UI reads the flags to render dialogs.
type Store struct {
	kv  storage.KV
	log logging.Logger

	mu           sync.RWMutex
	loginOpen    bool
	registerOpen bool
}

// NewStore loads the persisted flags. A fresh store starts with both closed.
func NewStore(ctx context.Context, kv storage.KV, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	s := &Store{kv: kv, log: log}
	s.loginOpen = s.readFlag(ctx, storage.KeyLoginDialog)
	s.registerOpen = s.readFlag(ctx, storage.KeyRegisterDialog)
	if s.loginOpen && s.registerOpen {
		// Persisted state predates the exclusivity rule; login wins.
		s.registerOpen = false
		s.persist(ctx)
	}
	return s
}

// OpenLogin opens the login dialog and forces the register dialog closed.
func (s *Store) OpenLogin(ctx context.Context) {
	s.mu.Lock()
	s.loginOpen = true
	s.registerOpen = false
	s.mu.Unlock()
	s.persist(ctx)
}

func (s *Store) CloseLogin(ctx context.Context) {
	s.mu.Lock()
	s.loginOpen = false
	s.mu.Unlock()
	s.persist(ctx)
}

// OpenRegister opens the register dialog and forces the login dialog closed.
func (s *Store) OpenRegister(ctx context.Context) {
	s.mu.Lock()
	s.registerOpen = true
	s.loginOpen = false
	s.mu.Unlock()
	s.persist(ctx)
}

func (s *Store) CloseRegister(ctx context.Context) {
	s.mu.Lock()
	s.registerOpen = false
	s.mu.Unlock()
	s.persist(ctx)
}

func (s *Store) LoginDialogOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loginOpen
}

func (s *Store) RegisterDialogOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registerOpen
}

func (s *Store) readFlag(ctx context.Context, key string) bool {
	v, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Error(ctx, "failed to read ui flag", "key", key, "error", err)
		return false
	}
	return string(v) == "true"
}

// persist writes both flags in one atomic batch so a crash between writes can
// never leave a persisted state with both dialogs open.
func (s *Store) persist(ctx context.Context) {
	s.mu.RLock()
	login, register := s.loginOpen, s.registerOpen
	s.mu.RUnlock()

	err := s.kv.SetMany(ctx, map[string][]byte{
		storage.KeyLoginDialog:    boolBytes(login),
		storage.KeyRegisterDialog: boolBytes(register),
	})
	if err != nil {
		s.log.Error(ctx, "failed to persist ui flags", "error", err)
	}
}

func boolBytes(b bool) []byte {
	if b {
		return []byte("true")
	}
	return []byte("false")
}
