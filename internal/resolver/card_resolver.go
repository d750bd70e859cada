package resolver

import (
	"fmt"
	"strconv"
	"strings"

	foxerr "github.com/amterp/foxhole/internal/errors"
	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/internal/util"
)

// CardResolver turns a user-supplied card reference into a card index.
//
// A reference is either a card name, compared after folding case, accents
// and whitespace, its slug ("reading-list" for "Reading List", as offered
// by shell completion), or a 1-based position as shown by `foxhole list`.
// Names win over positions, so a card named "2" is found by name.
type CardResolver struct{}

// NewCardResolver creates a new card resolver.
func NewCardResolver() *CardResolver {
	return &CardResolver{}
}

// Resolve returns the 0-based index of the card ref names in c.
func (r *CardResolver) Resolve(c model.Collection, ref string) (int, error) {
	idx, err := resolve(c.CardNames(), ref)
	if err != nil {
		if foxerr.IsNotFound(err) {
			return -1, foxerr.CardNotFound(ref)
		}
		return -1, err
	}
	return idx, nil
}

// LinkResolver turns a user-supplied link reference into a link index
// within one card. References work like card references, using labels.
type LinkResolver struct{}

// NewLinkResolver creates a new link resolver.
func NewLinkResolver() *LinkResolver {
	return &LinkResolver{}
}

// Resolve returns the 0-based index of the link ref names in card.
func (r *LinkResolver) Resolve(card model.Card, ref string) (int, error) {
	labels := make([]string, len(card.Links))
	for i, l := range card.Links {
		labels[i] = l.Label
	}
	idx, err := resolve(labels, ref)
	if err != nil {
		if foxerr.IsNotFound(err) {
			return -1, foxerr.LinkNotFound(ref, card.Name)
		}
		return -1, err
	}
	return idx, nil
}

func resolve(names []string, ref string) (int, error) {
	key := util.FoldName(ref)
	if key == "" {
		return -1, foxerr.InvalidField("reference", "cannot be empty")
	}

	matches := matchAll(names, key, util.FoldName)
	if len(matches) == 0 {
		if slug := util.Slugify(ref); slug != "" {
			matches = matchAll(names, slug, util.Slugify)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
	default:
		positions := make([]string, len(matches))
		for i, m := range matches {
			positions[i] = strconv.Itoa(m + 1)
		}
		return -1, foxerr.InvalidField("reference",
			fmt.Sprintf("%q is ambiguous, use a position (%s)", ref, strings.Join(positions, ", ")))
	}

	if n, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil && n >= 1 && n <= len(names) {
		return n - 1, nil
	}
	return -1, foxerr.ErrNotFound
}

func matchAll(names []string, key string, fold func(string) string) []int {
	var matches []int
	for i, name := range names {
		if fold(name) == key {
			matches = append(matches, i)
		}
	}
	return matches
}
