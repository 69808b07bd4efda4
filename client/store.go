// Package client is a Go client for the portfolio reviews API. It owns the
// credential store that proves review authorship: one delete token per
// review this machine has submitted, kept in a local JSON file.
package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// CredentialStore maps review id -> delete token on disk. Entries are added
// after a successful create, removed after a successful delete, and never
// expire or sync anywhere else.
type CredentialStore struct {
	path   string
	mu     sync.Mutex
	tokens map[string]string
}

// OpenCredentialStore loads the store at path, creating parent directories
// as needed. A missing file is an empty store, not an error.
func OpenCredentialStore(path string) (*CredentialStore, error) {
	s := &CredentialStore{
		path:   path,
		tokens: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &s.tokens); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the stored token for a review and whether one exists.
func (s *CredentialStore) Get(reviewID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[reviewID]
	return token, ok
}

// Put records the token handed back by a successful create.
func (s *CredentialStore) Put(reviewID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[reviewID] = token
	return s.save()
}

// Remove discards the token after its review has been deleted.
func (s *CredentialStore) Remove(reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, reviewID)
	return s.save()
}

func (s *CredentialStore) save() error {
	data, err := json.MarshalIndent(s.tokens, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// DefaultStorePath is ~/.config/reviewctl/credentials.json.
func DefaultStorePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "reviewctl", "credentials.json"), nil
}
