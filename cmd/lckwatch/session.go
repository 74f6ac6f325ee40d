package main

import (
	"fmt"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"

	"github.com/junseong2im/Esports/internal/domain/session"
)

// sessionFile persists the credential between invocations, the CLI
// equivalent of the browser keeping a token for the tab's lifetime.
type sessionFile struct {
	Kind    string `json:"kind"`
	Token   string `json:"token"`
	LoginID string `json:"loginId"`
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "lckwatch", "session.json")
	}
	return filepath.Join(dir, "lckwatch", "session.json")
}

func loadSession(path string) session.Session {
	raw, err := os.ReadFile(path)
	if err != nil {
		return session.None()
	}

	var stored sessionFile
	if err := sonic.Unmarshal(raw, &stored); err != nil {
		return session.None()
	}

	switch session.CredentialKind(stored.Kind) {
	case session.KindBearer:
		return session.Bearer(stored.LoginID, stored.Token)
	case session.KindBasic:
		return session.LegacyBasic(stored.LoginID, stored.Token)
	default:
		return session.None()
	}
}

func saveSession(path string, sess session.Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	raw, err := sonic.Marshal(sessionFile{
		Kind:    string(sess.Kind),
		Token:   sess.Token,
		LoginID: sess.LoginID,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func clearSession(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
