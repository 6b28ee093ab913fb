package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Well-known keys used by the storefront.
const (
	KeyToken    = "token"
	KeyUserID   = "userId"
	KeyUserData = "userData"
	KeyCart     = "cart"
)

// Store is the storefront's local durable storage: a directory of plain
// JSON blobs, one file per key. There is no schema versioning; a blob
// that fails to parse is treated as absent by callers.
type Store struct {
	dir string
}

// Open prepares a store rooted at dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Get returns the raw value for key. ok is false when the key does not
// exist or cannot be read.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set writes the value for key. The file is replaced atomically so a
// crash mid-write never leaves a truncated blob behind.
func (s *Store) Set(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, key+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// GetJSON unmarshals the value for key into v. ok is false when the key
// is absent or the stored blob is not valid JSON for v.
func (s *Store) GetJSON(key string, v any) bool {
	data, ok := s.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// SetJSON marshals v and stores it under key.
func (s *Store) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.Set(key, data)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
