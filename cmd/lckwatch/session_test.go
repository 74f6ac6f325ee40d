package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/junseong2im/Esports/internal/domain/session"
)

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "session.json")

	sess := session.Bearer("fan", "tok123")
	if err := saveSession(path, sess); err != nil {
		t.Fatalf("saveSession: %v", err)
	}

	loaded := loadSession(path)
	if loaded.Kind != session.KindBearer || loaded.Token != "tok123" || loaded.LoginID != "fan" {
		t.Fatalf("unexpected session after reload: %+v", loaded)
	}

	if err := clearSession(path); err != nil {
		t.Fatalf("clearSession: %v", err)
	}
	if got := loadSession(path); got.Authenticated() {
		t.Fatalf("expected no credential after clear, got %+v", got)
	}
}

func TestLoadSessionToleratesMissingOrCorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if got := loadSession(filepath.Join(dir, "absent.json")); got.Kind != session.KindNone {
		t.Fatalf("missing file should yield no credential, got %+v", got)
	}

	garbled := filepath.Join(dir, "garbled.json")
	if err := os.WriteFile(garbled, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if got := loadSession(garbled); got.Kind != session.KindNone {
		t.Fatalf("corrupt file should yield no credential, got %+v", got)
	}

	unknownKind := filepath.Join(dir, "unknown.json")
	if err := os.WriteFile(unknownKind, []byte(`{"kind":"oauth","token":"x"}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if got := loadSession(unknownKind); got.Kind != session.KindNone {
		t.Fatalf("unknown kind should yield no credential, got %+v", got)
	}

	if err := clearSession(filepath.Join(dir, "never-existed.json")); err != nil {
		t.Fatalf("clearSession on missing file: %v", err)
	}
}
