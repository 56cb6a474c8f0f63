// Package session owns the local session lifecycle: credential bootstrap,
// login/logout transitions, and forced logout on session expiry.
//
// The [Manager] is the only component that touches the credential store. A
// session is observable only as fully present or fully absent; login writes
// the store before flipping in-memory state, logout clears both
// unconditionally.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/twilightlabs/twilight/internal/models"
	"github.com/twilightlabs/twilight/internal/repositories"
	"github.com/twilightlabs/twilight/internal/shared"
)

// Store is the durable key/value persistence the manager writes through.
// Implemented by [repositories.CredentialRepository].
type Store interface {
	Set(key, value string) error
	Get(key string) (string, bool, error)
	Delete(key string) error
}

// Manager owns the in-memory session and mirrors it into the Store.
//
// States are Unauthenticated and Authenticated only; expiry is detected by
// the resource client and routed back through [Manager.HandleAuthFailure].
type Manager struct {
	store  Store
	logger *log.Logger

	mu      sync.RWMutex
	current models.Session
}

// NewManager creates a session manager backed by the given store.
func NewManager(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{store: store, logger: logger}
}

// Bootstrap loads the persisted session, if any. Runs once per process
// start, before any command runs. A missing or unreadable credential leaves
// the manager Unauthenticated; only store-level failures are returned.
func (m *Manager) Bootstrap() error {
	token, haveToken, err := m.store.Get(repositories.KeyToken)
	if err != nil {
		return fmt.Errorf("failed to read stored token: %w", err)
	}

	userJSON, haveUser, err := m.store.Get(repositories.KeyUser)
	if err != nil {
		return fmt.Errorf("failed to read stored user: %w", err)
	}

	if !haveToken || !haveUser {
		return nil
	}

	var user models.UserProfile
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		// A corrupt profile is unrecoverable locally; start unauthenticated.
		m.logger.Warn("stored user profile is corrupt, clearing session", "error", err)
		return m.Logout()
	}

	m.mu.Lock()
	m.current = models.Session{Token: token, User: user}
	m.mu.Unlock()

	m.logger.Debug("session restored", "user", user.Email)
	return nil
}

// Login persists the session then makes it visible in memory.
func (m *Manager) Login(token string, user models.UserProfile) error {
	if token == "" || user.ID == "" {
		return fmt.Errorf("%w: token and user are both required", shared.ErrInvalidInput)
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user profile: %w", err)
	}

	if err := m.store.Set(repositories.KeyToken, token); err != nil {
		return err
	}
	if err := m.store.Set(repositories.KeyUser, string(userJSON)); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = models.Session{Token: token, User: user}
	m.mu.Unlock()

	return nil
}

// Logout clears the store and in-memory state. Safe to call when already
// unauthenticated.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.current = models.Session{}
	m.mu.Unlock()

	if err := m.store.Delete(repositories.KeyToken); err != nil {
		return err
	}
	return m.store.Delete(repositories.KeyUser)
}

// Current returns the active session, if any.
func (m *Manager) Current() (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.current.Valid()
}

// Token implements the resource client's token provider.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.current.Valid() {
		return "", false
	}
	return m.current.Token, true
}

// Authenticated reports whether a full session is present.
func (m *Manager) Authenticated() bool {
	_, ok := m.Current()
	return ok
}

// HandleAuthFailure is the single subscriber for auth-classified API
// failures: any 401-class response forces a logout so every gated surface
// settles back to Unauthenticated uniformly.
func (m *Manager) HandleAuthFailure() {
	if !m.Authenticated() {
		return
	}

	m.logger.Warn("session rejected by backend, logging out")
	if err := m.Logout(); err != nil {
		m.logger.Error("failed to clear expired session", "error", err)
	}
}
