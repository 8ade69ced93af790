package repositories

import (
	"testing"

	"github.com/lttslabs/etlctl/internal/session"
	"github.com/lttslabs/etlctl/internal/shared"
)

func newTestRepository(t *testing.T) *CredentialRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewCredentialRepository(db)
}

func TestCredentialRepository(t *testing.T) {
	t.Run("Get Missing Key", func(t *testing.T) {
		repo := newTestRepository(t)

		value, ok, err := repo.Get(session.TokenKey)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Error("expected missing key to report absent")
		}
		if value != "" {
			t.Errorf("expected empty value, got %q", value)
		}
	})

	t.Run("Set And Get", func(t *testing.T) {
		repo := newTestRepository(t)

		if err := repo.Set(session.TokenKey, "abc"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}

		value, ok, err := repo.Get(session.TokenKey)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !ok || value != "abc" {
			t.Errorf("expected 'abc' (present), got %q (present=%v)", value, ok)
		}
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		repo := newTestRepository(t)

		repo.Set(session.TokenKey, "first")
		if err := repo.Set(session.TokenKey, "second"); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}

		value, _, _ := repo.Get(session.TokenKey)
		if value != "second" {
			t.Errorf("expected 'second', got %q", value)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newTestRepository(t)

		repo.Set(session.UserInfoKey, `{"name":"admin"}`)
		if err := repo.Delete(session.UserInfoKey); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}

		if _, ok, _ := repo.Get(session.UserInfoKey); ok {
			t.Error("expected key to be deleted")
		}

		// deleting again is not an error
		if err := repo.Delete(session.UserInfoKey); err != nil {
			t.Errorf("expected no error deleting absent key, got %v", err)
		}
	})

	t.Run("Session Round Trip", func(t *testing.T) {
		repo := newTestRepository(t)

		s := session.New(repo, nil)
		if s.LoggedIn() {
			t.Error("expected fresh session to be logged out")
		}

		repo.Set(session.TokenKey, "persisted")
		restored := session.New(repo, nil)
		if restored.Token() != "persisted" {
			t.Errorf("expected restored token 'persisted', got %q", restored.Token())
		}

		restored.Logout()
		if _, ok, _ := repo.Get(session.TokenKey); ok {
			t.Error("expected logout to erase the persisted token")
		}
	})
}
