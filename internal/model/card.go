package model

// Link is a labeled URL. Links are values; editing one produces a new Link.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// IsComplete reports whether both the label and the URL are set.
// Incomplete links are never stored.
func (l Link) IsComplete() bool {
	return l.Label != "" && l.URL != ""
}

// Card is a named group of links. Link order is display order.
type Card struct {
	Name  string `json:"name" yaml:"name"`
	Links []Link `json:"links" yaml:"links"`
}

// NewCard constructs a card with no links.
func NewCard(name string) Card {
	return Card{Name: name, Links: []Link{}}
}

// CardFrom constructs a card with links from [label, url] pairs.
func CardFrom(name string, pairs ...[2]string) Card {
	links := make([]Link, len(pairs))
	for i, p := range pairs {
		links[i] = Link{Label: p[0], URL: p[1]}
	}
	return Card{Name: name, Links: links}
}

// Clone returns a copy of the card whose link slice is not shared.
func (c Card) Clone() Card {
	links := make([]Link, len(c.Links))
	copy(links, c.Links)
	return Card{Name: c.Name, Links: links}
}

// HasLink returns true if i addresses one of the card's links.
func (c Card) HasLink(i int) bool {
	return i >= 0 && i < len(c.Links)
}
