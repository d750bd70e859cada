package cli

import (
	"encoding/json"
	"fmt"

	"github.com/amterp/foxhole/internal/model"
)

// linkJson is a link as shown by `foxhole list --json`.
// Positions are 1-based, matching what card and link references accept.
type linkJson struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
	URL      string `json:"url"`
}

// cardJson is a card as shown by `foxhole list --json`.
type cardJson struct {
	Position int        `json:"position"`
	Name     string     `json:"name"`
	Links    []linkJson `json:"links"`
}

func cardToJson(position int, c model.Card) cardJson {
	links := make([]linkJson, len(c.Links))
	for i, l := range c.Links {
		links[i] = linkJson{Position: i + 1, Label: l.Label, URL: l.URL}
	}
	return cardJson{Position: position, Name: c.Name, Links: links}
}

// ListOutput wraps the collection and preferences for JSON output.
type ListOutput struct {
	UserName string     `json:"user_name"`
	Theme    string     `json:"theme"`
	Cards    []cardJson `json:"cards"`
}

// NewListOutput creates a ListOutput from a collection.
// Always returns an empty array (not null) when there are no cards.
func NewListOutput(c model.Collection, userName string, theme model.Theme) ListOutput {
	result := make([]cardJson, 0, len(c.Cards))
	for i, card := range c.Cards {
		result = append(result, cardToJson(i+1, card))
	}
	return ListOutput{UserName: userName, Theme: theme.String(), Cards: result}
}

func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
