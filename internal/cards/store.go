package cards

import (
	"context"

	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/internal/store"
	"go.uber.org/zap"
)

// Reduce computes the snapshot that results from applying a to current.
// It never modifies current. changed is false for no-op actions, in which
// case next is current. An out-of-range index yields an *errors.IndexError
// and leaves current as the result.
func Reduce(current model.Collection, a Action) (next model.Collection, changed bool, err error) {
	return a.apply(current)
}

// Replay folds actions over initial, stopping at the first failing action.
func Replay(initial model.Collection, actions ...Action) (model.Collection, error) {
	c := initial
	for _, a := range actions {
		next, _, err := Reduce(c, a)
		if err != nil {
			return c, err
		}
		c = next
	}
	return c, nil
}

// Store is the only writer of the persisted collection. It keeps no state
// between calls: the current snapshot is threaded through Dispatch.
type Store struct {
	adapter store.Adapter
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store that persists through adapter.
func NewStore(adapter store.Adapter, opts ...Option) *Store {
	s := &Store{adapter: adapter, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted collection. Missing or malformed data
// yields an empty collection; it never fails.
func (s *Store) Initialize(ctx context.Context) model.Collection {
	c, _, err := s.Load(ctx)
	if err != nil {
		s.logger.Debug("ignoring malformed collection", zap.Error(err))
		return model.EmptyCollection()
	}
	return c
}

// Load reads the persisted collection. found is false when nothing is
// stored. Malformed data is returned as an error with an empty collection.
func (s *Store) Load(ctx context.Context) (c model.Collection, found bool, err error) {
	raw, ok := s.adapter.Read(ctx, store.KeyCards)
	if !ok {
		return model.EmptyCollection(), false, nil
	}
	c, err = store.DecodeCollection(raw)
	if err != nil {
		return model.EmptyCollection(), true, err
	}
	return c, true, nil
}

// Dispatch applies a to current and writes the result through to the adapter.
//
// Index errors are returned with current unchanged and nothing written.
// No-op actions return current without writing. A failed write is logged
// and does not affect the returned snapshot.
func (s *Store) Dispatch(ctx context.Context, current model.Collection, a Action) (model.Collection, error) {
	next, _, err := s.Apply(ctx, current, a)
	return next, err
}

// Apply is Dispatch that also reports whether the action changed anything.
func (s *Store) Apply(ctx context.Context, current model.Collection, a Action) (model.Collection, bool, error) {
	next, changed, err := Reduce(current, a)
	if err != nil {
		return current, false, err
	}
	if !changed {
		return current, false, nil
	}

	if err := s.persist(ctx, next); err != nil {
		s.logger.Warn("failed to persist collection",
			zap.String("action", string(a.Kind())),
			zap.String("key", store.KeyCards),
			zap.Error(err))
	}
	return next, true, nil
}

// Commit is Apply for callers that must know the change reached storage.
// A failed write is returned and current is kept.
func (s *Store) Commit(ctx context.Context, current model.Collection, a Action) (model.Collection, error) {
	next, changed, err := Reduce(current, a)
	if err != nil || !changed {
		return current, err
	}
	if err := s.persist(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

func (s *Store) persist(ctx context.Context, c model.Collection) error {
	raw, err := store.EncodeCollection(c)
	if err != nil {
		return err
	}
	return s.adapter.Write(ctx, store.KeyCards, raw)
}
