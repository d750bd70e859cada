package service

import (
	"context"
	"strings"

	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/internal/store"
	"go.uber.org/zap"
)

// PrefsService handles the theme and display name preferences.
// Like the collection, both are written through best-effort: a failed
// write is logged and the new value is still returned.
type PrefsService struct {
	adapter store.Adapter
	logger  *zap.Logger
}

// NewPrefsService creates a new prefs service.
func NewPrefsService(adapter store.Adapter, logger *zap.Logger) *PrefsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrefsService{adapter: adapter, logger: logger}
}

// Prefs is a snapshot of both preferences.
type Prefs struct {
	Theme    model.Theme `json:"theme"`
	UserName string      `json:"user_name"`
}

// Get returns both preferences.
func (s *PrefsService) Get(ctx context.Context) Prefs {
	return Prefs{Theme: s.Theme(ctx), UserName: s.UserName(ctx)}
}

// Theme returns the stored theme. On first run the default theme is stored
// and returned; an unrecognized stored value falls back to the default
// without overwriting it.
func (s *PrefsService) Theme(ctx context.Context) model.Theme {
	raw, ok := s.adapter.Read(ctx, store.KeyTheme)
	if !ok {
		s.write(ctx, store.KeyTheme, model.DefaultTheme.String())
		return model.DefaultTheme
	}

	theme, err := model.ParseTheme(strings.TrimSpace(raw))
	if err != nil {
		s.logger.Debug("ignoring stored theme", zap.Error(err))
		return model.DefaultTheme
	}
	return theme
}

// SetTheme stores theme and returns it.
func (s *PrefsService) SetTheme(ctx context.Context, theme model.Theme) model.Theme {
	s.write(ctx, store.KeyTheme, theme.String())
	return theme
}

// StoreTheme persists theme and reports a failed write instead of logging it.
func (s *PrefsService) StoreTheme(ctx context.Context, theme model.Theme) error {
	return s.adapter.Write(ctx, store.KeyTheme, theme.String())
}

// ToggleTheme switches between the dark and white themes.
func (s *PrefsService) ToggleTheme(ctx context.Context) model.Theme {
	return s.SetTheme(ctx, s.Theme(ctx).Toggle())
}

// UserName returns the stored display name, or the placeholder if none is set.
func (s *PrefsService) UserName(ctx context.Context) string {
	raw, ok := s.adapter.Read(ctx, store.KeyUserName)
	if !ok || strings.TrimSpace(raw) == "" {
		return model.DefaultUserName
	}
	return raw
}

// SetUserName stores name and returns the resulting display name.
// A blank name is a no-op and returns the current name.
func (s *PrefsService) SetUserName(ctx context.Context, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.UserName(ctx)
	}
	s.write(ctx, store.KeyUserName, name)
	return name
}

func (s *PrefsService) write(ctx context.Context, key, value string) {
	if err := s.adapter.Write(ctx, key, value); err != nil {
		s.logger.Warn("failed to persist preference", zap.String("key", key), zap.Error(err))
	}
}
