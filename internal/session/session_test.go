package session

import (
	"errors"
	"testing"

	"github.com/twilightlabs/twilight/internal/models"
	"github.com/twilightlabs/twilight/internal/repositories"
	tu "github.com/twilightlabs/twilight/internal/testing"
)

func testUser() models.UserProfile {
	return models.UserProfile{ID: "u-1", Name: "Ada", Email: "ada@example.com"}
}

func TestManager(t *testing.T) {
	t.Run("Bootstrap", func(t *testing.T) {
		t.Run("empty store leaves manager unauthenticated", func(t *testing.T) {
			m := NewManager(tu.NewMemoryStore(), nil)

			if err := m.Bootstrap(); err != nil {
				t.Fatalf("Bootstrap failed: %v", err)
			}
			if m.Authenticated() {
				t.Error("expected unauthenticated manager")
			}
		})

		t.Run("restores persisted session", func(t *testing.T) {
			store := tu.NewMemoryStore()
			store.Values[repositories.KeyToken] = "tok-123"
			store.Values[repositories.KeyUser] = `{"id":"u-1","name":"Ada","email":"ada@example.com"}`

			m := NewManager(store, nil)
			if err := m.Bootstrap(); err != nil {
				t.Fatalf("Bootstrap failed: %v", err)
			}

			sess, ok := m.Current()
			if !ok {
				t.Fatal("expected restored session")
			}
			if sess.Token != "tok-123" {
				t.Errorf("expected token tok-123, got %q", sess.Token)
			}
			if sess.User.Email != "ada@example.com" {
				t.Errorf("unexpected user: %+v", sess.User)
			}
		})

		t.Run("token without user stays unauthenticated", func(t *testing.T) {
			store := tu.NewMemoryStore()
			store.Values[repositories.KeyToken] = "tok-123"

			m := NewManager(store, nil)
			if err := m.Bootstrap(); err != nil {
				t.Fatalf("Bootstrap failed: %v", err)
			}
			if m.Authenticated() {
				t.Error("expected unauthenticated manager with partial credentials")
			}
		})

		t.Run("corrupt user profile clears the store", func(t *testing.T) {
			store := tu.NewMemoryStore()
			store.Values[repositories.KeyToken] = "tok-123"
			store.Values[repositories.KeyUser] = "{not json"

			m := NewManager(store, nil)
			if err := m.Bootstrap(); err != nil {
				t.Fatalf("Bootstrap failed: %v", err)
			}
			if m.Authenticated() {
				t.Error("expected unauthenticated manager")
			}
			if _, ok := store.Values[repositories.KeyToken]; ok {
				t.Error("expected corrupt session to be cleared from store")
			}
		})

		t.Run("store failure is returned", func(t *testing.T) {
			store := tu.NewMemoryStore()
			store.Err = errors.New("disk gone")

			m := NewManager(store, nil)
			if err := m.Bootstrap(); err == nil {
				t.Error("expected store error")
			}
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("persists then exposes the session", func(t *testing.T) {
			store := tu.NewMemoryStore()
			m := NewManager(store, nil)

			if err := m.Login("tok-456", testUser()); err != nil {
				t.Fatalf("Login failed: %v", err)
			}

			if !m.Authenticated() {
				t.Error("expected authenticated manager")
			}
			if store.Values[repositories.KeyToken] != "tok-456" {
				t.Error("expected token persisted to store")
			}
			if _, ok := store.Values[repositories.KeyUser]; !ok {
				t.Error("expected user persisted to store")
			}

			token, ok := m.Token()
			if !ok || token != "tok-456" {
				t.Errorf("Token() = %q, %v", token, ok)
			}
		})

		t.Run("rejects empty token", func(t *testing.T) {
			m := NewManager(tu.NewMemoryStore(), nil)
			if err := m.Login("", testUser()); err == nil {
				t.Error("expected error for empty token")
			}
		})

		t.Run("store failure blocks the in-memory switch", func(t *testing.T) {
			store := tu.NewMemoryStore()
			store.Err = errors.New("disk gone")
			m := NewManager(store, nil)

			if err := m.Login("tok-456", testUser()); err == nil {
				t.Error("expected store error")
			}
			if m.Authenticated() {
				t.Error("expected manager to stay unauthenticated when persistence fails")
			}
		})
	})

	t.Run("Logout", func(t *testing.T) {
		t.Run("clears store and memory", func(t *testing.T) {
			store := tu.NewMemoryStore()
			m := NewManager(store, nil)
			if err := m.Login("tok-789", testUser()); err != nil {
				t.Fatalf("Login failed: %v", err)
			}

			if err := m.Logout(); err != nil {
				t.Fatalf("Logout failed: %v", err)
			}
			if m.Authenticated() {
				t.Error("expected unauthenticated manager")
			}
			if len(store.Values) != 0 {
				t.Errorf("expected empty store, got %v", store.Values)
			}
			if _, ok := m.Token(); ok {
				t.Error("expected no token after logout")
			}
		})

		t.Run("idempotent when already logged out", func(t *testing.T) {
			m := NewManager(tu.NewMemoryStore(), nil)
			if err := m.Logout(); err != nil {
				t.Errorf("Logout failed: %v", err)
			}
		})
	})

	t.Run("HandleAuthFailure", func(t *testing.T) {
		t.Run("forces logout", func(t *testing.T) {
			store := tu.NewMemoryStore()
			m := NewManager(store, nil)
			if err := m.Login("tok-expired", testUser()); err != nil {
				t.Fatalf("Login failed: %v", err)
			}

			m.HandleAuthFailure()

			if m.Authenticated() {
				t.Error("expected forced logout")
			}
			if len(store.Values) != 0 {
				t.Error("expected credentials cleared from store")
			}
		})

		t.Run("no-op when unauthenticated", func(t *testing.T) {
			store := tu.NewMemoryStore()
			store.Err = errors.New("disk gone")
			m := NewManager(store, nil)

			// Must not attempt a store delete for a session that never existed.
			m.HandleAuthFailure()
		})
	})
}
