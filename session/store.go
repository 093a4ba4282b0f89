package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Saved is the part of a session that outlives the process.
type Saved struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Store keeps the auth token on disk between runs.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns ok=false when nothing has been saved yet.
func (s *Store) Load() (saved Saved, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Saved{}, false, nil
	}
	if err != nil {
		return Saved{}, false, fmt.Errorf("session.Load: %w", err)
	}
	if err := json.Unmarshal(data, &saved); err != nil {
		return Saved{}, false, fmt.Errorf("session.Load: %w", err)
	}
	if saved.Token == "" {
		return Saved{}, false, nil
	}
	return saved, true, nil
}

func (s *Store) Save(saved Saved) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}
	log.Debug("session [Save]", "path", s.path, "username", saved.Username)
	return nil
}

func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session.Clear: %w", err)
	}
	return nil
}
