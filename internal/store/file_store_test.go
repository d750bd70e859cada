package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/amterp/foxhole/internal/config"
)

func setupTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "data")
	return NewFileStore(config.NewPaths(dir), nil), dir
}

func TestFileStore_ReadMissing(t *testing.T) {
	store, _ := setupTestFileStore(t)

	if _, ok := store.Read(context.Background(), KeyCards); ok {
		t.Error("expected missing key on first run")
	}
}

func TestFileStore_WriteAndRead(t *testing.T) {
	store, dir := setupTestFileStore(t)
	ctx := context.Background()

	if err := store.Write(ctx, KeyUserName, "Ada"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, ok := store.Read(ctx, KeyUserName)
	if !ok {
		t.Fatal("expected key to exist after write")
	}
	if got != "Ada" {
		t.Errorf("Read = %q, want %q", got, "Ada")
	}

	if _, err := os.Stat(filepath.Join(dir, "user_name")); err != nil {
		t.Errorf("expected user_name file in data dir: %v", err)
	}
}

func TestFileStore_CardsUseJSONExtension(t *testing.T) {
	store, dir := setupTestFileStore(t)

	if err := store.Write(context.Background(), KeyCards, `{"cards":[]}`); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "cards.json")); err != nil {
		t.Errorf("expected cards.json: %v", err)
	}
}

func TestFileStore_OverwriteLeavesNoTempFiles(t *testing.T) {
	store, dir := setupTestFileStore(t)
	ctx := context.Background()

	for _, v := range []string{"dark", "white", "dark"} {
		if err := store.Write(ctx, KeyTheme, v); err != nil {
			t.Fatalf("Write(%q) failed: %v", v, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the theme file, got %v", names)
	}

	if got, _ := store.Read(ctx, KeyTheme); got != "dark" {
		t.Errorf("Read = %q, want %q", got, "dark")
	}
}

func TestFileStore_WriteFailsWhenDirIsFile(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	store := NewFileStore(config.NewPaths(filepath.Join(blocker, "data")), nil)
	if err := store.Write(context.Background(), KeyTheme, "dark"); err == nil {
		t.Error("expected write error when data dir cannot be created")
	}
}
