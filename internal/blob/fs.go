package blob

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFSBaseURL is where the HTTP server exposes a filesystem store.
const DefaultFSBaseURL = "/media"

// FSStore keeps objects as files under a root directory.
type FSStore struct {
	path    string
	baseURL string
}

// NewFSStore creates dirpath if needed and returns a store rooted there.
func NewFSStore(dirpath, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(dirpath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}
	stat, err := os.Stat(dirpath)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dirpath)
	}
	if baseURL == "" {
		baseURL = DefaultFSBaseURL
	}

	return &FSStore{
		path:    dirpath,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Root returns the directory backing the store.
func (s *FSStore) Root() string {
	return s.path
}

func (s *FSStore) Get(ctx context.Context, key string) ([]byte, error) {
	filePath, err := s.filePath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotExist
	}
	return data, err
}

func (s *FSStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	filePath, err := s.filePath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0o644)
}

func (s *FSStore) Delete(ctx context.Context, key string) error {
	filePath, err := s.filePath(key)
	if err != nil {
		return err
	}
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return ErrObjectNotExist
	}
	return os.Remove(filePath)
}

func (s *FSStore) URL(key string) string {
	return s.baseURL + "/" + strings.TrimPrefix(key, "/")
}

func (s *FSStore) filePath(key string) (string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.path, filepath.FromSlash(cleaned)), nil
}
