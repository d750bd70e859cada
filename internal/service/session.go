package service

import (
	"context"
	"sync"

	"github.com/amterp/foxhole/internal/cards"
	"github.com/amterp/foxhole/internal/id"
	"github.com/amterp/foxhole/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
)

// Update is published to subscribers whenever the current snapshot changes.
type Update struct {
	Revision   string
	Collection model.Collection
	// Action is the action that produced the snapshot, or nil when the
	// snapshot was reloaded from storage.
	Action cards.Action
}

// Subscriber receives snapshot updates. Calls happen synchronously on the
// dispatching goroutine, in revision order.
type Subscriber interface {
	OnUpdate(update Update)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(Update)

func (f SubscriberFunc) OnUpdate(u Update) { f(u) }

// Session holds the current snapshot for long-lived consumers such as the
// HTTP server. Dispatches are serialized; readers get whole snapshots and
// never block on a dispatch in progress.
type Session struct {
	store  *cards.Store
	logger *zap.Logger

	dispatchMu sync.Mutex // serializes Dispatch and Reload

	mu          sync.RWMutex // protects current, revision, subscribers
	current     model.Collection
	revision    string
	subscribers []Subscriber
}

// NewSession initializes a session from the store's persisted state.
func NewSession(ctx context.Context, store *cards.Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		store:    store,
		logger:   logger,
		current:  store.Initialize(ctx),
		revision: id.Revision(),
	}
}

// Snapshot returns the current collection and its revision.
func (s *Session) Snapshot() (model.Collection, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.revision
}

// Subscribe registers sub for future updates.
func (s *Session) Subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// Dispatch applies a to the current snapshot. On success the new snapshot
// becomes current and is published; no-ops keep the current revision.
func (s *Session) Dispatch(ctx context.Context, a cards.Action) (model.Collection, string, error) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	current, rev := s.Snapshot()
	next, changed, err := s.store.Apply(ctx, current, a)
	if err != nil || !changed {
		return current, rev, err
	}
	return next, s.publish(next, a), nil
}

// Reload re-reads the persisted collection, e.g. after another process
// changed it. Publishes only if the collection differs from the current one.
// Malformed stored data, such as a half-written hand edit, keeps the current
// snapshot.
func (s *Session) Reload(ctx context.Context) bool {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	loaded, _, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("ignoring malformed collection in storage, keeping current snapshot", zap.Error(err))
		return false
	}
	current, _ := s.Snapshot()
	if cmp.Equal(current, loaded, cmpopts.EquateEmpty()) {
		return false
	}

	s.logger.Info("collection changed in storage, reloading", zap.Int("cards", loaded.Len()))
	s.publish(loaded, nil)
	return true
}

func (s *Session) publish(c model.Collection, a cards.Action) string {
	rev := id.Revision()

	s.mu.Lock()
	s.current = c
	s.revision = rev
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	update := Update{Revision: rev, Collection: c, Action: a}
	for _, sub := range subs {
		sub.OnUpdate(update)
	}
	return rev
}
