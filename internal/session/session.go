// Package session holds the bearer token and cached user between
// runs, the terminal equivalent of the browser's local storage. The
// session is an explicit object: created on login, destroyed on
// logout, read by every authenticated request.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"trellis/internal/model"
)

// Session is a logged-in identity.
type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Store persists the session to a JSON file. Absence of the file means
// unauthenticated. Store implements the api client's TokenSource.
type Store struct {
	path string

	mu      sync.Mutex
	current *Session
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "trellis", "session.json"), nil
}

// NewStore creates a store backed by the file at path and loads any
// existing session. A missing file is not an error.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		// A corrupt session file is treated as logged out rather
		// than a startup failure.
		return s, nil
	}
	if sess.Token != "" {
		s.current = &sess
	}
	return s, nil
}

// Current returns the active session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Authenticated reports token presence only. Expiry and validity are
// the backend's problem: an expired-but-present token passes until a
// request comes back 401.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Token returns the bearer token for outgoing requests, or "" when
// logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Save replaces the stored session. Called on successful login.
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	s.current = &sess
	return nil
}

// Clear deletes the stored session. Called on logout and on a 401
// from the backend.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
