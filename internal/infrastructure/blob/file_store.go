package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore keeps blobs as files under one directory. Writes go through a
// uuid-named temp file and a rename, so a reader never sees a half-written
// value and a crashed write leaves the previous value intact.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates the directory if needed and returns a store over it
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Put replaces the value under key
func (s *FileStore) Put(_ context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("blob key is required")
	}

	tmp := filepath.Join(s.dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to stage blob: %w", err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to publish blob: %w", err)
	}
	return nil
}

// Get returns the value under key
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("blob key is required")
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return data, nil
}

// Exists reports whether key holds a value
func (s *FileStore) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, fmt.Errorf("blob key is required")
	}

	_, err := os.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}
