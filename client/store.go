package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore holds the client's access/refresh token pair. Implementations
// must be safe for concurrent use; Save replaces both tokens atomically so a
// reader never observes a mixed pair.
type TokenStore interface {
	// Tokens returns the stored pair. Empty strings mean no session.
	Tokens() (access, refresh string)
	// Save replaces both tokens.
	Save(access, refresh string) error
	// Clear removes both tokens.
	Clear() error
}

// MemoryStore keeps tokens in process memory. The session does not survive
// a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.refresh
}

func (s *MemoryStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Save("", "")
}

// FileStore persists tokens as a JSON file so the session survives process
// restarts. Writes go through a temp file + rename so a crash can't leave a
// half-written pair behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore backed by the given path. The file is
// created on first Save with 0600 permissions.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type storedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *FileStore) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", ""
	}

	var t storedTokens
	if err := json.Unmarshal(data, &t); err != nil {
		return "", ""
	}
	return t.AccessToken, t.RefreshToken
}

func (s *FileStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(storedTokens{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
