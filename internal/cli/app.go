package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/amterp/foxhole/internal/cards"
	"github.com/amterp/foxhole/internal/logging"
	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/internal/prompt"
	"github.com/amterp/foxhole/internal/resolver"
	"github.com/amterp/foxhole/internal/service"
	"github.com/amterp/foxhole/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// App holds all the dependencies for the CLI.
type App struct {
	Config       *model.GlobalConfig
	GlobalStore  store.GlobalStore
	Logger       *zap.Logger
	Backend      *store.Backend
	Store        *cards.Store
	Prefs        *service.PrefsService
	Prompter     prompt.Prompter
	CardResolver *resolver.CardResolver
	LinkResolver *resolver.LinkResolver

	// Collection is the snapshot loaded at startup, advanced by Dispatch.
	Collection model.Collection
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
// logLevel is used when the config does not set log_level.
func NewApp(interactive bool, logLevel zapcore.Level) (*App, error) {
	globalStore := store.NewGlobalStore()

	cfg, err := globalStore.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, logLevel)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	backend, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.BackendName(), err)
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	cardStore := cards.NewStore(backend, cards.WithLogger(logger))

	return &App{
		Config:       cfg,
		GlobalStore:  globalStore,
		Logger:       logger,
		Backend:      backend,
		Store:        cardStore,
		Prefs:        service.NewPrefsService(backend, logger),
		Prompter:     prompter,
		CardResolver: resolver.NewCardResolver(),
		LinkResolver: resolver.NewLinkResolver(),
		Collection:   cardStore.Initialize(ctx),
	}, nil
}

// Close releases the storage backend and flushes the logger.
func (a *App) Close() {
	if err := a.Backend.Close(); err != nil {
		a.Logger.Warn("failed to close storage", zap.Error(err))
	}
	_ = a.Logger.Sync()
}

// Dispatch applies action to the app's collection and persists the result.
// It reports whether anything changed.
func (a *App) Dispatch(action cards.Action) (bool, error) {
	next, changed, err := a.Store.Apply(context.Background(), a.Collection, action)
	if err != nil {
		return false, err
	}
	a.Collection = next
	return changed, nil
}

// ResolveCard finds the index of a card by name, slug or position.
func (a *App) ResolveCard(ref string) (int, error) {
	return a.CardResolver.Resolve(a.Collection, ref)
}

// ResolveLink finds a card and the index of one of its links.
func (a *App) ResolveLink(cardRef, linkRef string) (int, int, error) {
	cardIdx, err := a.ResolveCard(cardRef)
	if err != nil {
		return -1, -1, err
	}
	linkIdx, err := a.LinkResolver.Resolve(a.Collection.Cards[cardIdx], linkRef)
	if err != nil {
		return -1, -1, err
	}
	return cardIdx, linkIdx, nil
}

// mustApp is NewApp for commands, exiting on failure.
func mustApp(interactive bool) *App {
	app, err := NewApp(interactive, zapcore.WarnLevel)
	if err != nil {
		Fatal(err)
	}
	return app
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError("%v", err)
	os.Exit(1)
}
