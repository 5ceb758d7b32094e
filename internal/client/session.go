package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"musichub/internal/models"
	"musichub/internal/shared"
)

// Session is the client-side session state: the bearer token and the identity
// it was issued for. It is persisted as a JSON file (the CLI analogue of the
// browser's local storage) and passed explicitly to every client call.
type Session struct {
	AccessToken string               `json:"accessToken"`
	Account     models.PublicAccount `json:"account"`
}

// DefaultSessionPath returns the session file location under the user's home
// directory.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".musichub", "session.json"), nil
}

// LoadSession reads a session from the given path. A missing file means the
// user is signed out.
func LoadSession(path string) (*Session, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, shared.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if session.AccessToken == "" {
		return nil, shared.ErrNotAuthenticated
	}

	return &session, nil
}

// Save writes the session to the given path, creating parent directories as
// needed. The file is user-readable only since it holds a bearer token.
func (s *Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// ClearSession signs the user out by deleting the session file. No server
// interaction is involved; the token simply stops being attached.
func ClearSession(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
