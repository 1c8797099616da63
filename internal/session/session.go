package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"auction-bidder/internal/models"
)

// Accessor reads and writes the persisted credential and user record. The
// credential is an opaque bearer token; callers borrow it per request and
// never cache it. A session only exists when both token and user are present.
type Accessor interface {
	Credential() (string, bool)
	User() (models.User, bool)
	SetSession(token string, user models.User) error
	Clear() error
}

// stored keys the token and user record independently, mirroring the two
// storage slots the session occupies. Both are cleared together on logout.
type stored struct {
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

// FileStore persists the session as a small JSON file on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a session store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Credential returns the persisted bearer token, if a full session exists.
func (s *FileStore) Credential() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.read()
	if st.Token == "" || st.User == nil {
		return "", false
	}
	return st.Token, true
}

// User returns the persisted user record, if a full session exists.
func (s *FileStore) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.read()
	if st.Token == "" || st.User == nil {
		return models.User{}, false
	}
	return *st.User, true
}

// SetSession persists the token and user record together.
func (s *FileStore) SetSession(token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(stored{Token: token, User: &user})
}

// Clear removes both the token and the user record.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: failed to clear session file: %w", err)
	}
	return nil
}

// read loads the stored session; a missing or corrupt file reads as empty.
func (s *FileStore) read() stored {
	var st stored
	data, err := os.ReadFile(s.path)
	if err != nil {
		return st
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return stored{}
	}
	return st
}

func (s *FileStore) write(st stored) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("session: failed to encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("session: failed to create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session: failed to write session file: %w", err)
	}
	return nil
}
