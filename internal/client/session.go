package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Session is the persisted sign-in state of the terminal client.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`

	mu   sync.Mutex
	path string
}

// DefaultSessionPath is $HOME/.quizctl/session.json.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".quizctl", "session.json"), nil
}

// LoadSession reads the session at path. A missing file yields an empty session.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", path, err)
	}
	return s, nil
}

// NewMemorySession is a session that is never written to disk.
func NewMemorySession() *Session {
	return &Session{}
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Token != ""
}

func (s *Session) token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Token
}

// Set stores new credentials and persists them.
func (s *Session) Set(token string, user *User) error {
	s.mu.Lock()
	s.Token = token
	s.User = user
	s.mu.Unlock()
	return s.Save()
}

// Save writes the session with owner-only permissions.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear forgets the credentials and removes the session file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = ""
	s.User = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
