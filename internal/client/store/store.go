// internal/client/store/store.go
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the bearer token across client restarts, the durable
// storage slot the session rehydrates from on startup.
type TokenStore interface {
	// Load returns the persisted token, or "" when none is stored.
	Load() (string, error)
	Save(token string) error
	// Clear removes the persisted token; clearing an empty store is fine.
	Clear() error
}

// FileStore keeps the token in a single file, created 0600.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath places the token file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config dir: %w", err)
	}
	return filepath.Join(dir, "clubhub", "token"), nil
}

func (s *FileStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemoryStore is an in-process TokenStore for tests.
type MemoryStore struct {
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Load() (string, error)   { return s.token, nil }
func (s *MemoryStore) Save(token string) error { s.token = token; return nil }
func (s *MemoryStore) Clear() error            { s.token = ""; return nil }
