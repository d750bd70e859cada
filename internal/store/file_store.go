package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amterp/foxhole/internal/config"
	"go.uber.org/zap"
)

// FileStore implements Adapter with one file per key in the data directory.
type FileStore struct {
	paths  *config.Paths
	logger *zap.Logger
}

// NewFileStore creates a new file store.
func NewFileStore(paths *config.Paths, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{paths: paths, logger: logger}
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.paths.DataDir()
}

// Read returns the contents of the key's file.
// A missing file is reported as absent; other errors are logged.
func (s *FileStore) Read(_ context.Context, key string) (string, bool) {
	path := s.paths.KeyPath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read key", zap.String("key", key), zap.String("path", path), zap.Error(err))
		}
		return "", false
	}
	return string(data), true
}

// Write replaces the key's file. The new content is written to a temp file
// in the same directory and renamed into place so readers never see a torn write.
func (s *FileStore) Write(_ context.Context, key, value string) error {
	path := s.paths.KeyPath(key)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
