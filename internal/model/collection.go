package model

// Collection is the full persisted set of cards, in display order.
//
// A Collection value is treated as an immutable snapshot: state transitions
// build a new Collection and leave the previous one untouched, so readers
// holding an older snapshot never observe a partial update.
type Collection struct {
	Cards []Card `json:"cards" yaml:"cards"`
}

// EmptyCollection returns a collection with no cards.
func EmptyCollection() Collection {
	return Collection{Cards: []Card{}}
}

// Len returns the number of cards.
func (c Collection) Len() int {
	return len(c.Cards)
}

// HasCard returns true if i addresses one of the collection's cards.
func (c Collection) HasCard(i int) bool {
	return i >= 0 && i < len(c.Cards)
}

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	cards := make([]Card, len(c.Cards))
	for i, card := range c.Cards {
		cards[i] = card.Clone()
	}
	return Collection{Cards: cards}
}

// Normalize replaces nil slices with empty ones so that the JSON form is
// always `{"cards":[...]}` with `"links":[...]` on every card.
func (c Collection) Normalize() Collection {
	if c.Cards == nil {
		return EmptyCollection()
	}
	out := Collection{Cards: make([]Card, len(c.Cards))}
	for i, card := range c.Cards {
		if card.Links == nil {
			card.Links = []Link{}
		}
		out.Cards[i] = card
	}
	return out
}

// CardNames returns the card names in order.
func (c Collection) CardNames() []string {
	names := make([]string, len(c.Cards))
	for i, card := range c.Cards {
		names[i] = card.Name
	}
	return names
}
