package cards

import (
	"encoding/json"
	"fmt"

	foxerr "github.com/amterp/foxhole/internal/errors"
	"github.com/amterp/foxhole/internal/model"
)

// wireAction is the JSON form of an Action, e.g.
//
//	{"type":"add_link","card":0,"label":"Repo","url":"https://example.com"}
//
// Index fields are pointers so a missing index can be told apart from 0.
type wireAction struct {
	Type  Kind    `json:"type"`
	Name  string  `json:"name,omitempty"`
	Card  *int    `json:"card,omitempty"`
	Link  *int    `json:"link,omitempty"`
	I     *int    `json:"i,omitempty"`
	J     *int    `json:"j,omitempty"`
	Label *string `json:"label,omitempty"`
	URL   *string `json:"url,omitempty"`
}

// EncodeAction returns the JSON form of a.
func EncodeAction(a Action) ([]byte, error) {
	w := wireAction{Type: a.Kind()}
	switch a := a.(type) {
	case AddCard:
		w.Name = a.Name
	case RemoveCard:
		w.Card = &a.Card
	case RenameCard:
		w.Card, w.Name = &a.Card, a.Name
	case SwapCards:
		w.I, w.J = &a.I, &a.J
	case AddLink:
		w.Card, w.Label, w.URL = &a.Card, &a.Link.Label, &a.Link.URL
	case RemoveLink:
		w.Card, w.Link = &a.Card, &a.Link
	case EditLink:
		w.Card, w.Link, w.Label, w.URL = &a.Card, &a.Link, a.Label, a.URL
	case SwapLinks:
		w.Card, w.I, w.J = &a.Card, &a.I, &a.J
	default:
		return nil, fmt.Errorf("unknown action %T", a)
	}
	return json.Marshal(w)
}

// DecodeAction parses the JSON form of an action.
// Unknown types and missing indices are validation errors.
func DecodeAction(data []byte) (Action, error) {
	var w wireAction
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, foxerr.InvalidField("action", err.Error())
	}

	d := decoder{w: w}
	var a Action
	switch w.Type {
	case KindAddCard:
		a = AddCard{Name: w.Name}
	case KindRemoveCard:
		a = RemoveCard{Card: d.index("card", w.Card)}
	case KindRenameCard:
		a = RenameCard{Card: d.index("card", w.Card), Name: w.Name}
	case KindSwapCards:
		a = SwapCards{I: d.index("i", w.I), J: d.index("j", w.J)}
	case KindAddLink:
		a = AddLink{Card: d.index("card", w.Card), Link: model.Link{Label: deref(w.Label), URL: deref(w.URL)}}
	case KindRemoveLink:
		a = RemoveLink{Card: d.index("card", w.Card), Link: d.index("link", w.Link)}
	case KindEditLink:
		a = EditLink{Card: d.index("card", w.Card), Link: d.index("link", w.Link), Label: w.Label, URL: w.URL}
	case KindSwapLinks:
		a = SwapLinks{Card: d.index("card", w.Card), I: d.index("i", w.I), J: d.index("j", w.J)}
	case "":
		return nil, foxerr.InvalidField("action", "missing \"type\"")
	default:
		return nil, foxerr.InvalidField("action", fmt.Sprintf("unknown type %q", w.Type))
	}

	if d.err != nil {
		return nil, d.err
	}
	return a, nil
}

// decoder records the first missing index field.
type decoder struct {
	w   wireAction
	err error
}

func (d *decoder) index(field string, v *int) int {
	if v == nil {
		if d.err == nil {
			d.err = foxerr.InvalidField(field, fmt.Sprintf("required for %s", d.w.Type))
		}
		return 0
	}
	return *v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
