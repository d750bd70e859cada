package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	foxerr "github.com/amterp/foxhole/internal/errors"
	"github.com/amterp/foxhole/internal/model"
)

func TestOpen_DefaultsToFileBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := &model.GlobalConfig{Storage: model.StorageConfig{Dir: dir}}

	backend, err := Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer backend.Close()

	if backend.Name != model.BackendFile {
		t.Errorf("Name = %q, want %q", backend.Name, model.BackendFile)
	}
	if backend.WatchDir != dir {
		t.Errorf("WatchDir = %q, want %q", backend.WatchDir, dir)
	}
	if _, ok := backend.Adapter.(*FileStore); !ok {
		t.Errorf("expected *FileStore, got %T", backend.Adapter)
	}
}

func TestOpen_SQLiteDefaultsIntoDataDir(t *testing.T) {
	dir := t.TempDir()
	cfg := &model.GlobalConfig{Storage: model.StorageConfig{Backend: model.BackendSQLite, Dir: dir}}

	backend, err := Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer backend.Close()

	if backend.WatchDir != "" {
		t.Errorf("sqlite backend should not be watched, got %q", backend.WatchDir)
	}
	if _, err := os.Stat(filepath.Join(dir, "foxhole.db")); err != nil {
		t.Errorf("expected database in data dir: %v", err)
	}
}

func TestOpen_Memory(t *testing.T) {
	backend, err := Open(context.Background(), &model.GlobalConfig{Storage: model.StorageConfig{Backend: "memory"}}, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), &model.GlobalConfig{Storage: model.StorageConfig{Backend: "floppy"}}, nil)
	if !foxerr.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
