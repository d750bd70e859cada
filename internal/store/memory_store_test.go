package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_WriteAndRead(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, ok := store.Read(ctx, KeyCards); ok {
		t.Fatal("expected empty store")
	}
	if err := store.Write(ctx, KeyCards, "x"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got, ok := store.Read(ctx, KeyCards); !ok || got != "x" {
		t.Errorf("Read = (%q, %v), want (%q, true)", got, ok, "x")
	}
}

func TestFailingStore(t *testing.T) {
	inner := NewMemoryStore()
	store := NewFailingStore(inner)
	ctx := context.Background()

	err := store.Write(ctx, KeyTheme, "dark")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if _, ok := inner.Read(ctx, KeyTheme); ok {
		t.Error("failed write must not reach the inner store")
	}

	store.SetFail(false)
	if err := store.Write(ctx, KeyTheme, "dark"); err != nil {
		t.Fatalf("Write failed after SetFail(false): %v", err)
	}
	if got, ok := store.Read(ctx, KeyTheme); !ok || got != "dark" {
		t.Errorf("Read = (%q, %v), want (%q, true)", got, ok, "dark")
	}
}
