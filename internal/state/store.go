// Package state persists key/value JSON blobs between sessions.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Well-known keys.
const (
	KeyGoals    = "goals"
	KeySortMode = "sortMode"
)

// Store is a file-backed key/value store. Every value is stored as JSON in
// one file; writes take an advisory file lock and go through a temp-file
// rename so a crash never leaves a half-written state file. Corrupt files
// and corrupt values both read back as absent, so callers always get their
// defaults rather than an error they cannot act on.
type Store struct {
	path string
	lock *flock.Flock
}

// New creates a store backed by the given file path. The parent directory
// is created on first write.
func New(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get reads the value stored under key into v. Returns false when the key is
// absent, or when the file or the stored value cannot be decoded.
func (s *Store) Get(key string, v any) bool {
	values := s.readAll()
	raw, ok := values[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false
	}
	return true
}

// Set writes the value under key, preserving all other keys.
func (s *Store) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("locking state file: %w", err)
	}
	defer s.lock.Unlock()

	values := s.readAll()
	values[key] = raw

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

// readAll loads the whole key/value map, treating a missing or corrupt file
// as empty.
func (s *Store) readAll() map[string]json.RawMessage {
	values := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return values
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return make(map[string]json.RawMessage)
	}
	return values
}
