// ABOUTME: Auth session storage at XDG paths
// ABOUTME: Loads, saves, and clears the signed-in user's token file
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Session is the signed-in user's identity. The client never constructs or
// refreshes credentials; the token is provisioned out-of-band and only
// loaded or cleared here.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Path returns the XDG-compliant session file location.
func Path() string {
	return filepath.Join(xdg.DataHome, "crmterm", "session.json")
}

// Load reads the saved session. A missing file means nobody is signed in.
func Load() (*Session, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var s Session
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}
	return &s, nil
}

// Save writes the session with restricted permissions.
func Save(s *Session) error {
	return saveTo(Path(), s)
}

func saveTo(path string, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return nil
}

// Clear removes the saved session. Logging out when no session exists is
// not an error.
func Clear() error {
	return clearAt(Path())
}

func clearAt(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
