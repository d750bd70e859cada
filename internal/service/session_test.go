package service

import (
	"context"
	"sync"
	"testing"

	"github.com/amterp/foxhole/internal/cards"
	foxerr "github.com/amterp/foxhole/internal/errors"
	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/internal/store"
	"github.com/amterp/foxhole/testutil"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func setupTestSession(t *testing.T) (*Session, *store.MemoryStore) {
	t.Helper()

	mem := store.NewMemoryStore()
	return NewSession(context.Background(), cards.NewStore(mem), nil), mem
}

func TestSession_DispatchPublishes(t *testing.T) {
	session, _ := setupTestSession(t)
	ctx := context.Background()

	var updates []Update
	session.Subscribe(SubscriberFunc(func(u Update) { updates = append(updates, u) }))

	_, rev0 := session.Snapshot()
	c, rev1, err := session.Dispatch(ctx, cards.AddCard{Name: "Tools"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if rev1 == rev0 {
		t.Error("expected a new revision after a change")
	}

	if len(updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(updates))
	}
	if updates[0].Revision != rev1 {
		t.Errorf("update revision = %q, want %q", updates[0].Revision, rev1)
	}
	if updates[0].Action.Kind() != cards.KindAddCard {
		t.Errorf("update action = %v", updates[0].Action)
	}
	if diff := cmp.Diff(c, updates[0].Collection); diff != "" {
		t.Errorf("update collection mismatch (-want +got):\n%s", diff)
	}

	snap, rev := session.Snapshot()
	if rev != rev1 || snap.Len() != 1 {
		t.Errorf("Snapshot = (%d cards, %q), want (1, %q)", snap.Len(), rev, rev1)
	}
}

func TestSession_NoOpKeepsRevision(t *testing.T) {
	session, _ := setupTestSession(t)

	published := 0
	session.Subscribe(SubscriberFunc(func(Update) { published++ }))

	_, before := session.Snapshot()
	_, after, err := session.Dispatch(context.Background(), cards.AddCard{Name: ""})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if before != after {
		t.Errorf("revision changed on no-op: %q -> %q", before, after)
	}
	if published != 0 {
		t.Errorf("no-op published %d updates", published)
	}
}

func TestSession_IndexError(t *testing.T) {
	session, _ := setupTestSession(t)

	_, _, err := session.Dispatch(context.Background(), cards.RemoveCard{Card: 0})
	if !foxerr.IsIndexError(err) {
		t.Errorf("expected index error, got %v", err)
	}
}

func TestSession_Reload(t *testing.T) {
	session, mem := setupTestSession(t)
	ctx := context.Background()

	var got []Update
	session.Subscribe(SubscriberFunc(func(u Update) { got = append(got, u) }))

	if session.Reload(ctx) {
		t.Error("Reload with unchanged storage should report no change")
	}

	external := testutil.TestCollection("FromElsewhere")
	raw, err := store.EncodeCollection(external)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if err := mem.Write(ctx, store.KeyCards, raw); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if !session.Reload(ctx) {
		t.Fatal("Reload should detect the external change")
	}
	if len(got) != 1 || got[0].Action != nil {
		t.Fatalf("expected one reload update without action, got %+v", got)
	}
	snap, _ := session.Snapshot()
	if diff := cmp.Diff(external, snap); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_ReloadKeepsSnapshotOnMalformedData(t *testing.T) {
	session, mem := setupTestSession(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if _, _, err := session.Dispatch(ctx, cards.AddCard{Name: name}); err != nil {
			t.Fatalf("Dispatch failed: %v", err)
		}
	}
	_, rev := session.Snapshot()

	var got []Update
	session.Subscribe(SubscriberFunc(func(u Update) { got = append(got, u) }))

	// A truncated save, as an editor writing in place might leave behind
	raw, _ := mem.Read(ctx, store.KeyCards)
	if err := mem.Write(ctx, store.KeyCards, raw[:len(raw)/2]); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if session.Reload(ctx) {
		t.Error("Reload should not publish malformed data")
	}
	if len(got) != 0 {
		t.Errorf("expected no updates, got %d", len(got))
	}
	snap, rev2 := session.Snapshot()
	if rev2 != rev {
		t.Error("revision should be unchanged")
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, snap.CardNames()); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}

	// The next edit persists the kept cards plus the new one
	if _, _, err := session.Dispatch(ctx, cards.AddCard{Name: "D"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	raw, _ = mem.Read(ctx, store.KeyCards)
	persisted, err := store.DecodeCollection(raw)
	if err != nil {
		t.Fatalf("persisted collection should decode: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, persisted.CardNames()); diff != "" {
		t.Errorf("persisted mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_ConcurrentDispatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	session, mem := setupTestSession(t)
	ctx := context.Background()

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if _, _, err := session.Dispatch(ctx, cards.AddCard{Name: "card"}); err != nil {
					t.Errorf("Dispatch failed: %v", err)
					return
				}
			}
		}()
	}

	// Readers only ever see whole snapshots.
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				snap, _ := session.Snapshot()
				for _, card := range snap.Cards {
					if card.Name != "card" || card.Links == nil {
						t.Errorf("torn snapshot: %+v", card)
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	snap, _ := session.Snapshot()
	if snap.Len() != writers*perWriter {
		t.Errorf("cards = %d, want %d", snap.Len(), writers*perWriter)
	}

	persistedRaw, _ := mem.Read(ctx, store.KeyCards)
	persisted, err := store.DecodeCollection(persistedRaw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(snap, persisted); diff != "" {
		t.Errorf("persisted state lags behind (-want +got):\n%s", diff)
	}
}

func TestSession_PublishedSnapshotIsStable(t *testing.T) {
	session, _ := setupTestSession(t)
	ctx := context.Background()

	var first model.Collection
	session.Subscribe(SubscriberFunc(func(u Update) {
		if first.Cards == nil {
			first = u.Collection
		}
	}))

	if _, _, err := session.Dispatch(ctx, cards.AddCard{Name: "A"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if _, _, err := session.Dispatch(ctx, cards.AddLink{Card: 0, Link: model.Link{Label: "l", URL: "u"}}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if len(first.Cards[0].Links) != 0 {
		t.Errorf("earlier published snapshot was modified: %+v", first)
	}
}
