// Package store persists the view state of each image between runs in a
// single YAML file.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"scaleview/pkg/gesture"
)

// ErrNotFound is returned when no state is stored for a key.
var ErrNotFound = errors.New("no saved state")

// Entry is one stored view state.
type Entry struct {
	State   gesture.SavedState `yaml:"state"`
	Updated time.Time          `yaml:"updated"`
}

type document struct {
	Version int              `yaml:"version"`
	Entries map[string]Entry `yaml:"entries"`
}

const fileVersion = 1

// Store is a YAML file of saved states keyed by image path. It is safe for
// concurrent use.
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[string]Entry
	now     func() time.Time
}

// Open loads the store at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[string]Entry),
		now:     time.Now,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	if doc.Version > fileVersion {
		return nil, fmt.Errorf("state file %s has unsupported version %d", path, doc.Version)
	}
	for k, v := range doc.Entries {
		s.entries[k] = v
	}
	return s, nil
}

// Key normalizes an image path into a store key.
func Key(imagePath string) string {
	if abs, err := filepath.Abs(imagePath); err == nil {
		return abs
	}
	return filepath.Clean(imagePath)
}

// Get returns the state saved under key.
func (s *Store) Get(key string) (gesture.SavedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return gesture.SavedState{}, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return e.State, nil
}

// Put records a state under key and writes the file.
func (s *Store) Put(key string, state gesture.SavedState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Entry{State: state, Updated: s.now().UTC()}
	return s.flush()
}

// Delete removes key and writes the file.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	delete(s.entries, key)
	return s.flush()
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// flush writes the file atomically through a temporary sibling.
func (s *Store) flush() error {
	data, err := yaml.Marshal(document{Version: fileVersion, Entries: s.entries})
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
