// Package storage persists the session token and identity across process restarts.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type entries struct {
	Token    string `yaml:"auth_token"`
	Identity string `yaml:"auth_user"`
}

// FileStorage keeps the session in a YAML file readable only by the owner.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage creates a storage backed by the file at path. The file is created on Save.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Save writes the token and identity together.
func (s *FileStorage) Save(_ context.Context, token, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("unable to create session directory: %w", err)
	}

	data, err := yaml.Marshal(entries{Token: token, Identity: identity})
	if err != nil {
		return fmt.Errorf("unable to encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("unable to write session file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("unable to replace session file: %w", err)
	}

	return nil
}

// Load reads the token and identity. A missing file yields empty strings.
func (s *FileStorage) Load(_ context.Context) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("unable to read session file: %w", err)
	}

	var e entries
	if err := yaml.Unmarshal(data, &e); err != nil {
		return "", "", fmt.Errorf("unable to parse session file: %w", err)
	}

	return e.Token, e.Identity, nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s *FileStorage) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to remove session file: %w", err)
	}

	return nil
}
