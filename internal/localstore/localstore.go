// Package localstore persists named JSON slots under a data directory.
// It backs settings unconditionally and the four data collections while no
// remote session is active.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the slot into dest. A missing or malformed slot leaves dest at
// the caller-supplied default; Get never fails for those cases.
func (s *Store) Get(key string, dest any) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return
	}
	// Malformed JSON falls back to the default as well. Validity is checked
	// up front so a bad slot cannot partially populate dest.
	if !json.Valid(data) {
		return
	}
	_ = json.Unmarshal(data, dest)
}

// Set serializes v and replaces the slot wholesale.
func (s *Store) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore: marshal %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0o600); err != nil {
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	return nil
}

// Remove deletes the slot. Removing an absent slot is not an error.
func (s *Store) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("localstore: remove %s: %w", key, err)
	}
	return nil
}
