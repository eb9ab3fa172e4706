// Package properties caches parsed property files (local.properties,
// gradle.properties) keyed by path.
//
// An entry is reused as long as the file's modification time matches the
// one recorded when it was parsed. Content changes that leave the
// modification time untouched are not detected. Missing files are recorded
// too, so repeated lookups of a file that does not exist cost one stat call
// until the file appears.
package properties

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store is a process-wide cache of property files. Create one with NewStore
// and share it by reference; the zero value is not usable.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*Entry),
	}
}

// Load returns the properties of the file at path.
// It returns nil, nil when the file does not exist. Read and parse errors are
// returned as-is and leave any previously cached entry untouched.
func (s *Store) Load(path string) (Properties, error) {
	key := filepath.Clean(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, stamp, err := statFile(key)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.entries[key]; ok && cached.fresh(exists, stamp) {
		return cached.Properties, nil
	}

	if !exists {
		s.entries[key] = &Entry{Path: key}
		return nil, nil
	}

	data, err := os.ReadFile(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Removed between stat and read
			s.entries[key] = &Entry{Path: key}
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	props, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	s.entries[key] = &Entry{
		Path:       key,
		Properties: props,
		Stamp:      stamp,
		Exists:     true,
	}

	return props, nil
}

// Lookup returns the entry recorded for path without touching the filesystem
func (s *Store) Lookup(path string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[filepath.Clean(path)]
	if !ok {
		return Entry{}, false
	}

	return *e, true
}

// Len returns the number of recorded paths
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func statFile(path string) (bool, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, 0, nil
		}

		return false, 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		return false, 0, fmt.Errorf("%s is a directory", path)
	}

	return true, info.ModTime().UnixNano(), nil
}
