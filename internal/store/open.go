package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/amterp/foxhole/internal/config"
	foxerr "github.com/amterp/foxhole/internal/errors"
	"github.com/amterp/foxhole/internal/model"
	"go.uber.org/zap"
)

// Backend is an opened Adapter plus what callers need to know about it.
type Backend struct {
	Adapter
	Name string
	// WatchDir is the directory holding the backend's files, or "" when the
	// backend is not file based and cannot be watched.
	WatchDir string
	closer   io.Closer
}

// Close releases backend resources. Safe to call on backends without any.
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// Open creates the backend selected by cfg.
func Open(ctx context.Context, cfg *model.GlobalConfig, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = &model.GlobalConfig{}
	}

	name := cfg.BackendName()
	paths := config.NewPaths(cfg.Storage.Dir)
	logger = logger.With(zap.String("backend", name))

	switch name {
	case model.BackendFile:
		fs := NewFileStore(paths, logger)
		return &Backend{Adapter: fs, Name: name, WatchDir: fs.Dir()}, nil

	case model.BackendMemory:
		return &Backend{Adapter: NewMemoryStore(), Name: name}, nil

	case model.BackendRedis:
		rs, err := OpenRedisStore(ctx, cfg.Storage.Redis, logger)
		if err != nil {
			return nil, err
		}
		return &Backend{Adapter: rs, Name: name, closer: rs}, nil

	case model.BackendSQLite:
		path := cfg.Storage.SQLite.Path
		if path == "" {
			path = paths.SQLitePath()
		}
		ss, err := OpenSQLiteStore(ctx, path, logger)
		if err != nil {
			return nil, err
		}
		return &Backend{Adapter: ss, Name: name, closer: ss}, nil

	case model.BackendS3:
		s3s, err := OpenS3Store(ctx, cfg.Storage.S3, logger)
		if err != nil {
			return nil, err
		}
		return &Backend{Adapter: s3s, Name: name}, nil
	}

	return nil, foxerr.InvalidField("storage.backend",
		fmt.Sprintf("unknown backend %q (supported: %s)", name, strings.Join(model.Backends(), ", ")))
}
