package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys match the browser console this replaces: one layout record and
// one hidden-set record per dashboard, plain unversioned JSON.
const (
	layoutKeyPrefix = "dashboard-layout-"
	hiddenKeyPrefix = "dashboard-hidden-"
)

// ErrNoRecord reports that no saved record exists for the dashboard. Callers
// fall back to the generated default layout.
var ErrNoRecord = errors.New("console: no saved layout record")

// LayoutStore persists per-dashboard layout customization. Load errors other
// than ErrNoRecord indicate a corrupt or unreadable record; callers log them
// and fall back to defaults rather than failing the render.
type LayoutStore interface {
	LoadLayout(dashboardID string) (GridLayout, error)
	SaveLayout(dashboardID string, layout GridLayout) error
	LoadHidden(dashboardID string) (HiddenSet, error)
	SaveHidden(dashboardID string, hidden HiddenSet) error
}

// InMemoryLayoutStore is a concurrency-safe store for tests and ephemeral
// sessions.
type InMemoryLayoutStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewInMemoryLayoutStore creates an empty store.
func NewInMemoryLayoutStore() *InMemoryLayoutStore {
	return &InMemoryLayoutStore{data: make(map[string][]byte)}
}

// LoadLayout returns the saved layout record.
func (s *InMemoryLayoutStore) LoadLayout(dashboardID string) (GridLayout, error) {
	var layout GridLayout
	if err := s.load(layoutKeyPrefix+dashboardID, &layout); err != nil {
		return nil, err
	}
	return layout, nil
}

// SaveLayout persists the layout record.
func (s *InMemoryLayoutStore) SaveLayout(dashboardID string, layout GridLayout) error {
	return s.save(layoutKeyPrefix+dashboardID, layout)
}

// LoadHidden returns the saved hidden-set record.
func (s *InMemoryLayoutStore) LoadHidden(dashboardID string) (HiddenSet, error) {
	var hidden HiddenSet
	if err := s.load(hiddenKeyPrefix+dashboardID, &hidden); err != nil {
		return nil, err
	}
	return hidden, nil
}

// SaveHidden persists the hidden-set record.
func (s *InMemoryLayoutStore) SaveHidden(dashboardID string, hidden HiddenSet) error {
	return s.save(hiddenKeyPrefix+dashboardID, hidden)
}

// Put stores a raw record under a key; useful for seeding corrupt payloads in
// tests.
func (s *InMemoryLayoutStore) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
}

func (s *InMemoryLayoutStore) load(key string, target any) error {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return ErrNoRecord
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("console: decode record %s: %w", key, err)
	}
	return nil
}

func (s *InMemoryLayoutStore) save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("console: encode record %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

// FileLayoutStore keeps one JSON file per record inside a directory, the
// server-side stand-in for browser local storage.
type FileLayoutStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileLayoutStore creates the directory if needed.
func NewFileLayoutStore(dir string) (*FileLayoutStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("console: layout store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("console: create layout store dir: %w", err)
	}
	return &FileLayoutStore{dir: dir}, nil
}

// LoadLayout returns the saved layout record.
func (s *FileLayoutStore) LoadLayout(dashboardID string) (GridLayout, error) {
	var layout GridLayout
	if err := s.load(layoutKeyPrefix+dashboardID, &layout); err != nil {
		return nil, err
	}
	return layout, nil
}

// SaveLayout persists the layout record.
func (s *FileLayoutStore) SaveLayout(dashboardID string, layout GridLayout) error {
	return s.save(layoutKeyPrefix+dashboardID, layout)
}

// LoadHidden returns the saved hidden-set record.
func (s *FileLayoutStore) LoadHidden(dashboardID string) (HiddenSet, error) {
	var hidden HiddenSet
	if err := s.load(hiddenKeyPrefix+dashboardID, &hidden); err != nil {
		return nil, err
	}
	return hidden, nil
}

// SaveHidden persists the hidden-set record.
func (s *FileLayoutStore) SaveHidden(dashboardID string, hidden HiddenSet) error {
	return s.save(hiddenKeyPrefix+dashboardID, hidden)
}

func (s *FileLayoutStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileLayoutStore) load(key string, target any) error {
	s.mu.Lock()
	raw, err := os.ReadFile(s.path(key))
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNoRecord
		}
		return fmt.Errorf("console: read record %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("console: decode record %s: %w", key, err)
	}
	return nil
}

func (s *FileLayoutStore) save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("console: encode record %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(key), raw, 0o644); err != nil {
		return fmt.Errorf("console: write record %s: %w", key, err)
	}
	return nil
}
