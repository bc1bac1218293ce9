package session

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	if _, err := s.ActiveProfile(); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession before login, got %v", err)
	}

	if err := s.SetActiveProfile("abc123"); err != nil {
		t.Fatalf("SetActiveProfile failed: %v", err)
	}

	id, err := s.ActiveProfile()
	if err != nil {
		t.Fatalf("ActiveProfile failed: %v", err)
	}
	if id != "abc123" {
		t.Errorf("ActiveProfile = %q, want abc123", id)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := s.ActiveProfile(); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after logout, got %v", err)
	}
}

func TestSetActiveProfileTrimsWhitespace(t *testing.T) {
	s := New(t.TempDir())

	if err := s.SetActiveProfile("  abc123  "); err != nil {
		t.Fatalf("SetActiveProfile failed: %v", err)
	}
	id, err := s.ActiveProfile()
	if err != nil {
		t.Fatalf("ActiveProfile failed: %v", err)
	}
	if id != "abc123" {
		t.Errorf("ActiveProfile = %q, want trimmed abc123", id)
	}
}

func TestSetActiveProfileRejectsBlank(t *testing.T) {
	s := New(t.TempDir())

	if err := s.SetActiveProfile("   "); err == nil {
		t.Error("expected error for blank profile id")
	}
}

func TestSetActiveProfileCreatesConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	s := New(dir)

	if err := s.SetActiveProfile("abc123"); err != nil {
		t.Fatalf("SetActiveProfile failed: %v", err)
	}
	if id, err := s.ActiveProfile(); err != nil || id != "abc123" {
		t.Errorf("ActiveProfile = (%q, %v), want (abc123, nil)", id, err)
	}
}

func TestClearMissingSessionIsNoop(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Clear(); err != nil {
		t.Errorf("Clear on empty session failed: %v", err)
	}
}
