package auth

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "users.json"), nil)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	store := newTestStore(t)

	if err := store.Register("alice", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if !store.Authenticate("alice", "secret") {
		t.Error("expected valid credentials to authenticate")
	}
	if store.Authenticate("alice", "wrong") {
		t.Error("wrong password must not authenticate")
	}
	if store.Authenticate("bob", "secret") {
		t.Error("unknown user must not authenticate")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	store := newTestStore(t)

	if err := store.Register("alice", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := store.Register("alice", "other"); !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}

	// The original password must survive the rejected registration.
	if !store.Authenticate("alice", "secret") {
		t.Error("original credentials no longer authenticate")
	}
}

func TestRegisterEmptyUsername(t *testing.T) {
	store := newTestStore(t)
	if err := store.Register("", "secret"); err == nil {
		t.Error("expected error for empty username")
	}
}

func TestAuthenticateAbsentFile(t *testing.T) {
	store := newTestStore(t)
	if store.Authenticate("alice", "secret") {
		t.Error("authentication against an absent file must fail")
	}
}

func TestCredentialsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")

	first := NewStore(path, nil)
	if err := first.Register("alice", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	second := NewStore(path, nil)
	if !second.Authenticate("alice", "secret") {
		t.Error("credentials lost across store instances")
	}
}
