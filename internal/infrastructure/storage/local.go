package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes objects below a directory that the HTTP router serves
// at its public base URL
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates root if needed
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if root == "" {
		return nil, fmt.Errorf("local storage directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStore{root: root, baseURL: baseURL}, nil
}

// Root returns the directory objects are written to
func (s *LocalStore) Root() string {
	return s.root
}

// BaseURL returns the URL prefix objects are served under
func (s *LocalStore) BaseURL() string {
	return s.baseURL
}

func (s *LocalStore) pathFor(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

// Put writes data to the key's file
func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	p, err := s.pathFor(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	return joinURL(s.baseURL, key), nil
}

// Delete removes the key's file; a missing file is not an error
func (s *LocalStore) Delete(_ context.Context, key string) error {
	p, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

var _ ObjectStore = (*LocalStore)(nil)
