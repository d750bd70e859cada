package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/goleak"
)

func TestClassifyChange_Keys(t *testing.T) {
	fw := &FileWatcher{dataDir: "/data/foxhole"}

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		wantKey  string
		wantType FileChangeType
	}{
		{"cards created", "/data/foxhole/cards.json", fsnotify.Create, "cards", FileChangeCreated},
		{"cards modified", "/data/foxhole/cards.json", fsnotify.Write, "cards", FileChangeModified},
		{"theme modified", "/data/foxhole/theme", fsnotify.Write, "theme", FileChangeModified},
		{"name deleted", "/data/foxhole/user_name", fsnotify.Remove, "user_name", FileChangeDeleted},
		{"cards renamed (treated as deleted)", "/data/foxhole/cards.json", fsnotify.Rename, "cards", FileChangeDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, ok := fw.classifyChange(fsnotify.Event{Name: tt.path, Op: tt.op})
			if !ok {
				t.Fatalf("classifyChange(%q) not ok", tt.path)
			}
			if change.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", change.Key, tt.wantKey)
			}
			if change.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", change.Type, tt.wantType)
			}
		})
	}
}

func TestClassifyChange_Unknown(t *testing.T) {
	fw := &FileWatcher{dataDir: "/data/foxhole"}

	tests := []struct {
		name string
		path string
	}{
		{"random file", "/data/foxhole/random.txt"},
		{"cards without extension", "/data/foxhole/cards"},
		{"nested", "/data/foxhole/sub/cards.json"},
		{"outside", "/elsewhere/cards.json"},
		{"sqlite database", "/data/foxhole/foxhole.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if change, ok := fw.classifyChange(fsnotify.Event{Name: tt.path, Op: fsnotify.Write}); ok {
				t.Errorf("classifyChange(%q) = %+v, want not ok", tt.path, change)
			}
		})
	}
}

func TestClassifyChange_CrossPlatform(t *testing.T) {
	dataDir := filepath.Join("/data", "foxhole")
	fw := &FileWatcher{dataDir: dataDir}

	change, ok := fw.classifyChange(fsnotify.Event{Name: filepath.Join(dataDir, "cards.json"), Op: fsnotify.Create})
	if !ok || change.Key != "cards" {
		t.Errorf("classifyChange = (%+v, %v), want cards", change, ok)
	}
}

// mockSubscriber implements FileWatcherSubscriber for testing
type mockSubscriber struct {
	changes chan FileChange
}

func newMockSubscriber() *mockSubscriber {
	return &mockSubscriber{changes: make(chan FileChange, 16)}
}

func (m *mockSubscriber) OnFileChange(change FileChange) {
	m.changes <- change
}

func TestFileWatcher_Subscribe(t *testing.T) {
	fw := &FileWatcher{
		subscribers: []FileWatcherSubscriber{},
	}

	fw.Subscribe(newMockSubscriber())
	fw.Subscribe(newMockSubscriber())

	if len(fw.subscribers) != 2 {
		t.Errorf("Expected 2 subscribers, got %d", len(fw.subscribers))
	}
}

func TestFileWatcher_Unsubscribe(t *testing.T) {
	sub1 := newMockSubscriber()
	sub2 := newMockSubscriber()

	fw := &FileWatcher{
		subscribers: []FileWatcherSubscriber{sub1, sub2},
	}

	fw.Unsubscribe(sub1)

	if len(fw.subscribers) != 1 {
		t.Errorf("Expected 1 subscriber, got %d", len(fw.subscribers))
	}
	if fw.subscribers[0] != sub2 {
		t.Error("Wrong subscriber remained")
	}
}

func TestFileWatcher_StoppedPreventsRestart(t *testing.T) {
	fw := &FileWatcher{
		stopped: true,
	}

	err := fw.Start()
	if err == nil {
		t.Error("Expected error when starting stopped watcher")
	}
}

func TestFileWatcher_EmitsKeyChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	fw, err := NewFileWatcher(dir, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	sub := newMockSubscriber()
	fw.Subscribe(sub)

	if err := fw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Hidden temp files and unknown files are ignored
	os.WriteFile(filepath.Join(dir, ".tmp-cards.json-1"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644)
	if err := os.WriteFile(filepath.Join(dir, "theme"), []byte("white"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case change := <-sub.changes:
		if change.Key != "theme" {
			t.Errorf("Key = %q, want theme", change.Key)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change emitted")
	}

	if err := fw.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
	// Stopping twice is harmless
	if err := fw.Stop(); err != nil {
		t.Errorf("second Stop failed: %v", err)
	}
}

func TestFileWatcher_StartCreatesMissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Fresh install: the file backend has not created its dir yet
	dir := filepath.Join(t.TempDir(), "foxhole")
	fw, err := NewFileWatcher(dir, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	sub := newMockSubscriber()
	fw.Subscribe(sub)

	if err := fw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer fw.Stop()

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected %s to be created, stat err: %v", dir, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "user_name"), []byte("Ada"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case change := <-sub.changes:
		if change.Key != "user_name" {
			t.Errorf("Key = %q, want user_name", change.Key)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change emitted")
	}
}

func TestFileWatcher_StopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	fw, err := NewFileWatcher(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	if err := fw.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
