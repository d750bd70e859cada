package service

import (
	"context"
	"testing"

	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPrefsService_ThemeFirstRunStoresDefault(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := NewPrefsService(mem, nil)
	ctx := context.Background()

	if got := svc.Theme(ctx); got != model.ThemeDark {
		t.Errorf("Theme = %q, want %q", got, model.ThemeDark)
	}
	if raw, ok := mem.Read(ctx, store.KeyTheme); !ok || raw != "dark" {
		t.Errorf("stored theme = (%q, %v), want (\"dark\", true)", raw, ok)
	}
}

func TestPrefsService_ThemeMalformedFallsBack(t *testing.T) {
	mem := store.NewMemoryStore()
	ctx := context.Background()
	if err := mem.Write(ctx, store.KeyTheme, "neon"); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	svc := NewPrefsService(mem, nil)
	if got := svc.Theme(ctx); got != model.DefaultTheme {
		t.Errorf("Theme = %q, want default", got)
	}
	if raw, _ := mem.Read(ctx, store.KeyTheme); raw != "neon" {
		t.Errorf("malformed theme should be left alone, got %q", raw)
	}
}

func TestPrefsService_ToggleTheme(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := NewPrefsService(mem, nil)
	ctx := context.Background()

	if got := svc.ToggleTheme(ctx); got != model.ThemeWhite {
		t.Errorf("first toggle = %q, want white", got)
	}
	if got := svc.Theme(ctx); got != model.ThemeWhite {
		t.Errorf("Theme after toggle = %q, want white", got)
	}
	if got := svc.ToggleTheme(ctx); got != model.ThemeDark {
		t.Errorf("second toggle = %q, want dark", got)
	}
}

func TestPrefsService_SetThemeWriteFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewPrefsService(store.NewFailingStore(store.NewMemoryStore()), zap.New(core))

	if got := svc.SetTheme(context.Background(), model.ThemeWhite); got != model.ThemeWhite {
		t.Errorf("SetTheme = %q, want white", got)
	}
	if logs.FilterMessage("failed to persist preference").Len() != 1 {
		t.Errorf("expected one persistence warning, got %v", logs.All())
	}
}

func TestPrefsService_UserName(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := NewPrefsService(mem, nil)
	ctx := context.Background()

	if got := svc.UserName(ctx); got != model.DefaultUserName {
		t.Errorf("UserName = %q, want placeholder", got)
	}

	if got := svc.SetUserName(ctx, "  Ada  "); got != "Ada" {
		t.Errorf("SetUserName = %q, want %q", got, "Ada")
	}
	if got := svc.UserName(ctx); got != "Ada" {
		t.Errorf("UserName = %q, want %q", got, "Ada")
	}

	if got := svc.SetUserName(ctx, "   "); got != "Ada" {
		t.Errorf("blank SetUserName = %q, want unchanged %q", got, "Ada")
	}
	if raw, _ := mem.Read(ctx, store.KeyUserName); raw != "Ada" {
		t.Errorf("stored name = %q, want %q", raw, "Ada")
	}
}

func TestPrefsService_Get(t *testing.T) {
	svc := NewPrefsService(store.NewMemoryStore(), nil)
	ctx := context.Background()
	svc.SetUserName(ctx, "Ada")
	svc.SetTheme(ctx, model.ThemeWhite)

	got := svc.Get(ctx)
	if got.Theme != model.ThemeWhite || got.UserName != "Ada" {
		t.Errorf("Get = %+v", got)
	}
}
