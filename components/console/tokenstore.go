package console

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore persists the opaque session token. It satisfies the API
// client's TokenSource so a single store backs both the session manager and
// outgoing request headers.
type TokenStore interface {
	Token() string
	Set(token string) error
	Clear() error
}

// InMemoryTokenStore holds the token for the process lifetime.
type InMemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewInMemoryTokenStore creates an empty store.
func NewInMemoryTokenStore() *InMemoryTokenStore {
	return &InMemoryTokenStore{}
}

// Token returns the stored token.
func (s *InMemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set stores the token.
func (s *InMemoryTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the token.
func (s *InMemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileTokenStore keeps the token in a plain file, the stand-in for the
// browser's authToken local-storage key.
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

// NewFileTokenStore uses the given file path, creating parent directories.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		return nil, fmt.Errorf("console: token store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("console: create token store dir: %w", err)
	}
	return &FileTokenStore{path: path}, nil
}

// Token reads the stored token; a missing or unreadable file reads as empty.
func (s *FileTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// Set stores the token with owner-only permissions.
func (s *FileTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("console: write token: %w", err)
	}
	return nil
}

// Clear removes the token file.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("console: clear token: %w", err)
	}
	return nil
}
