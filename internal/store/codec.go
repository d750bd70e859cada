package store

import (
	"encoding/json"
	"fmt"

	"github.com/amterp/foxhole/internal/model"
	"github.com/tidwall/jsonc"
)

// EncodeCollection serializes a collection to indented JSON.
func EncodeCollection(c model.Collection) (string, error) {
	data, err := json.MarshalIndent(c.Normalize(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode collection: %w", err)
	}
	return string(data), nil
}

// DecodeCollection parses a serialized collection.
// Comments and trailing commas are tolerated so hand-edited files still load.
func DecodeCollection(s string) (model.Collection, error) {
	var c model.Collection
	if err := json.Unmarshal(jsonc.ToJSON([]byte(s)), &c); err != nil {
		return model.Collection{}, fmt.Errorf("invalid collection: %w", err)
	}
	if c.Cards == nil {
		return model.Collection{}, fmt.Errorf("invalid collection: missing \"cards\"")
	}
	return c.Normalize(), nil
}
