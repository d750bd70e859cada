package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amterp/foxhole/internal/config"
	"github.com/amterp/foxhole/internal/model"
)

// TestCollection returns a collection with one card per name.
// Card i gets i+1 links labeled "<name>-<n>" pointing at example URLs.
func TestCollection(names ...string) model.Collection {
	c := model.Collection{Cards: make([]model.Card, len(names))}
	for i, name := range names {
		card := model.NewCard(name)
		for n := 0; n <= i; n++ {
			card.Links = append(card.Links, TestLink(name, n))
		}
		c.Cards[i] = card
	}
	return c
}

// TestLink returns a deterministic link for fixtures.
func TestLink(prefix string, n int) model.Link {
	label := prefix + "-" + string(rune('a'+n))
	return model.Link{Label: label, URL: "https://example.com/" + label}
}

// TempDataDir creates a temporary data directory for file-backed tests.
// The directory is removed when the test finishes.
func TempDataDir(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "foxhole")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create data dir: %v", err)
	}
	return dir
}

// NewTestPaths creates a Paths for testing with the given temp directory.
func NewTestPaths(dataDir string) *config.Paths {
	return config.NewPaths(dataDir)
}
