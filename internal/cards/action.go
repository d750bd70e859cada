package cards

import (
	"strings"

	foxerr "github.com/amterp/foxhole/internal/errors"
	"github.com/amterp/foxhole/internal/model"
)

// Kind names an action variant. It is also the "type" tag of the wire form.
type Kind string

const (
	KindAddCard    Kind = "add_card"
	KindRemoveCard Kind = "remove_card"
	KindRenameCard Kind = "rename_card"
	KindSwapCards  Kind = "swap_cards"
	KindAddLink    Kind = "add_link"
	KindRemoveLink Kind = "remove_link"
	KindEditLink   Kind = "edit_link"
	KindSwapLinks  Kind = "swap_links"
)

// Action is a requested state transition. The set of actions is closed:
// only the types in this file implement it.
type Action interface {
	Kind() Kind
	// apply computes the next snapshot from c without modifying c.
	// changed is false when the action is a no-op.
	apply(c model.Collection) (next model.Collection, changed bool, err error)
}

// AddCard appends a card with no links. Blank names are ignored.
type AddCard struct {
	Name string
}

// RemoveCard removes the card at Card.
type RemoveCard struct {
	Card int
}

// RenameCard sets the name of the card at Card. Blank names are ignored.
type RenameCard struct {
	Card int
	Name string
}

// SwapCards exchanges the cards at I and J.
type SwapCards struct {
	I, J int
}

// AddLink appends Link to the card at Card. Links missing a label or URL are ignored.
type AddLink struct {
	Card int
	Link model.Link
}

// RemoveLink removes the link at Link from the card at Card.
type RemoveLink struct {
	Card int
	Link int
}

// EditLink updates the label and/or URL of one link. A nil or empty field
// leaves that part unchanged; if neither is set the edit is a no-op.
type EditLink struct {
	Card  int
	Link  int
	Label *string
	URL   *string
}

// SwapLinks exchanges the links at I and J within the card at Card.
type SwapLinks struct {
	Card int
	I, J int
}

func (AddCard) Kind() Kind    { return KindAddCard }
func (RemoveCard) Kind() Kind { return KindRemoveCard }
func (RenameCard) Kind() Kind { return KindRenameCard }
func (SwapCards) Kind() Kind  { return KindSwapCards }
func (AddLink) Kind() Kind    { return KindAddLink }
func (RemoveLink) Kind() Kind { return KindRemoveLink }
func (EditLink) Kind() Kind   { return KindEditLink }
func (SwapLinks) Kind() Kind  { return KindSwapLinks }

// Editing one card copies the outer slice and that card's links; every
// other card's link slice stays shared with the previous snapshot.

func (a AddCard) apply(c model.Collection) (model.Collection, bool, error) {
	if isBlank(a.Name) {
		return c, false, nil
	}
	cards := make([]model.Card, len(c.Cards), len(c.Cards)+1)
	copy(cards, c.Cards)
	cards = append(cards, model.NewCard(a.Name))
	return model.Collection{Cards: cards}, true, nil
}

func (a RemoveCard) apply(c model.Collection) (model.Collection, bool, error) {
	if !c.HasCard(a.Card) {
		return c, false, foxerr.CardIndex(string(a.Kind()), a.Card, len(c.Cards))
	}
	cards := make([]model.Card, 0, len(c.Cards)-1)
	cards = append(cards, c.Cards[:a.Card]...)
	cards = append(cards, c.Cards[a.Card+1:]...)
	return model.Collection{Cards: cards}, true, nil
}

func (a RenameCard) apply(c model.Collection) (model.Collection, bool, error) {
	if !c.HasCard(a.Card) {
		return c, false, foxerr.CardIndex(string(a.Kind()), a.Card, len(c.Cards))
	}
	if isBlank(a.Name) || c.Cards[a.Card].Name == a.Name {
		return c, false, nil
	}
	cards := copyCards(c)
	cards[a.Card].Name = a.Name
	return model.Collection{Cards: cards}, true, nil
}

func (a SwapCards) apply(c model.Collection) (model.Collection, bool, error) {
	for _, i := range []int{a.I, a.J} {
		if !c.HasCard(i) {
			return c, false, foxerr.CardIndex(string(a.Kind()), i, len(c.Cards))
		}
	}
	if a.I == a.J {
		return c, false, nil
	}
	cards := copyCards(c)
	cards[a.I], cards[a.J] = cards[a.J], cards[a.I]
	return model.Collection{Cards: cards}, true, nil
}

func (a AddLink) apply(c model.Collection) (model.Collection, bool, error) {
	if !c.HasCard(a.Card) {
		return c, false, foxerr.CardIndex(string(a.Kind()), a.Card, len(c.Cards))
	}
	if !a.Link.IsComplete() {
		return c, false, nil
	}
	return withCard(c, a.Card, func(card *model.Card) {
		card.Links = append(card.Links, a.Link)
	}), true, nil
}

func (a RemoveLink) apply(c model.Collection) (model.Collection, bool, error) {
	if err := checkLink(c, a.Kind(), a.Card, a.Link); err != nil {
		return c, false, err
	}
	return withCard(c, a.Card, func(card *model.Card) {
		card.Links = append(card.Links[:a.Link], card.Links[a.Link+1:]...)
	}), true, nil
}

func (a EditLink) apply(c model.Collection) (model.Collection, bool, error) {
	if err := checkLink(c, a.Kind(), a.Card, a.Link); err != nil {
		return c, false, err
	}

	link := c.Cards[a.Card].Links[a.Link]
	edited := link
	if a.Label != nil && *a.Label != "" {
		edited.Label = *a.Label
	}
	if a.URL != nil && *a.URL != "" {
		edited.URL = *a.URL
	}
	if edited == link {
		return c, false, nil
	}

	return withCard(c, a.Card, func(card *model.Card) {
		card.Links[a.Link] = edited
	}), true, nil
}

func (a SwapLinks) apply(c model.Collection) (model.Collection, bool, error) {
	for _, i := range []int{a.I, a.J} {
		if err := checkLink(c, a.Kind(), a.Card, i); err != nil {
			return c, false, err
		}
	}
	if a.I == a.J {
		return c, false, nil
	}
	return withCard(c, a.Card, func(card *model.Card) {
		card.Links[a.I], card.Links[a.J] = card.Links[a.J], card.Links[a.I]
	}), true, nil
}

func checkLink(c model.Collection, kind Kind, cardIdx, linkIdx int) error {
	if !c.HasCard(cardIdx) {
		return foxerr.CardIndex(string(kind), cardIdx, len(c.Cards))
	}
	if card := c.Cards[cardIdx]; !card.HasLink(linkIdx) {
		return foxerr.LinkIndex(string(kind), linkIdx, len(card.Links))
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func copyCards(c model.Collection) []model.Card {
	cards := make([]model.Card, len(c.Cards))
	copy(cards, c.Cards)
	return cards
}

// withCard returns a new collection in which the card at idx has been
// cloned and then modified by fn.
func withCard(c model.Collection, idx int, fn func(card *model.Card)) model.Collection {
	cards := copyCards(c)
	card := cards[idx].Clone()
	fn(&card)
	cards[idx] = card
	return model.Collection{Cards: cards}
}

// StringPtr is a convenience for building EditLink values.
func StringPtr(s string) *string {
	return &s
}
