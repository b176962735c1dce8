package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore implements ObjectStore on the local filesystem
type LocalStore struct {
	basePath string
	baseURL  string
}

// NewLocalStore creates the base directory if needed. Files are served
// from baseURL, which defaults to /uploads.
func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if basePath == "" {
		basePath = "./uploads"
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStore{basePath: basePath, baseURL: baseURL}, nil
}

// BasePath is the directory files are written to.
func (s *LocalStore) BasePath() string {
	return s.basePath
}

// Put stores a file locally
func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (s *LocalStore) URL(ctx context.Context, key string) (string, error) {
	return joinURL(s.baseURL, key), nil
}

// Delete removes a file from local storage
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// resolve maps key under basePath and rejects keys that escape it.
func (s *LocalStore) resolve(key string) (string, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.basePath, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return fullPath, nil
}
