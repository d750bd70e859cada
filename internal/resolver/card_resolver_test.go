package resolver

import (
	"testing"

	foxerr "github.com/amterp/foxhole/internal/errors"
	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/testutil"
)

func TestCardResolver_Resolve_ByName(t *testing.T) {
	c := testutil.TestCollection("Work", "Café", "Reading List")
	r := NewCardResolver()

	tests := []struct {
		ref  string
		want int
	}{
		{"Work", 0},
		{"work", 0},
		{"cafe", 1},
		{"  reading   list ", 2},
		{"reading-list", 2},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := r.Resolve(c, tt.ref)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.ref, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %d, want %d", tt.ref, got, tt.want)
			}
		})
	}
}

func TestCardResolver_Resolve_ByPosition(t *testing.T) {
	c := testutil.TestCollection("Work", "Home")
	r := NewCardResolver()

	got, err := r.Resolve(c, "2")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != 1 {
		t.Errorf("Resolve(\"2\") = %d, want 1", got)
	}
}

func TestCardResolver_Resolve_NamePreferredOverPosition(t *testing.T) {
	c := model.Collection{Cards: []model.Card{model.NewCard("Work"), model.NewCard("1")}}
	r := NewCardResolver()

	got, err := r.Resolve(c, "1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != 1 {
		t.Errorf("Resolve(\"1\") = %d, want the card named \"1\" at 1", got)
	}
}

func TestCardResolver_Resolve_NotFound(t *testing.T) {
	c := testutil.TestCollection("Work")
	r := NewCardResolver()

	for _, ref := range []string{"Home", "0", "2", "-1"} {
		_, err := r.Resolve(c, ref)
		if !foxerr.IsNotFound(err) {
			t.Errorf("Resolve(%q): expected NotFound, got %v", ref, err)
		}
	}
}

func TestCardResolver_Resolve_Ambiguous(t *testing.T) {
	c := model.Collection{Cards: []model.Card{model.NewCard("Work"), model.NewCard("work")}}
	r := NewCardResolver()

	_, err := r.Resolve(c, "WORK")
	if !foxerr.IsValidationError(err) {
		t.Errorf("expected validation error for ambiguous name, got %v", err)
	}
}

func TestCardResolver_Resolve_Empty(t *testing.T) {
	r := NewCardResolver()
	_, err := r.Resolve(testutil.TestCollection("Work"), "  ")
	if !foxerr.IsValidationError(err) {
		t.Errorf("expected validation error for empty reference, got %v", err)
	}
}

func TestLinkResolver_Resolve(t *testing.T) {
	card := model.CardFrom("Dev",
		[2]string{"GitHub", "https://github.com"},
		[2]string{"Docs", "https://go.dev/doc"},
	)
	r := NewLinkResolver()

	got, err := r.Resolve(card, "docs")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != 1 {
		t.Errorf("Resolve(\"docs\") = %d, want 1", got)
	}

	got, err = r.Resolve(card, "1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != 0 {
		t.Errorf("Resolve(\"1\") = %d, want 0", got)
	}

	_, err = r.Resolve(card, "Blog")
	if !foxerr.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}
