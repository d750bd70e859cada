package cli

import (
	"strings"

	"github.com/amterp/foxhole/internal/cards"
	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/ra"
)

func registerLink(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("link")
	cmd.SetDescription("Manage the links on a card")

	// link add
	addCmd := ra.NewCmd("add")
	addCmd.SetDescription("Add a link to a card")

	ctx.LinkAddCard, _ = ra.NewString("card").
		SetUsage("Card name or position").
		SetCompletionFunc(completeCards).
		Register(addCmd)

	ctx.LinkAddLabel, _ = ra.NewString("label").
		SetOptional(true).
		SetUsage("Link label (prompts if not provided)").
		Register(addCmd)

	ctx.LinkAddURL, _ = ra.NewString("url").
		SetOptional(true).
		SetUsage("Link URL (prompts if not provided)").
		Register(addCmd)

	ctx.LinkAddUsed, _ = cmd.RegisterCmd(addCmd)

	// link remove
	removeCmd := ra.NewCmd("remove")
	removeCmd.SetDescription("Remove a link from a card")

	ctx.LinkRemoveCard, _ = ra.NewString("card").
		SetUsage("Card name or position").
		SetCompletionFunc(completeCards).
		Register(removeCmd)

	ctx.LinkRemoveLink, _ = ra.NewString("link").
		SetUsage("Link label or position").
		Register(removeCmd)

	ctx.LinkRemoveUsed, _ = cmd.RegisterCmd(removeCmd)

	// link edit
	editCmd := ra.NewCmd("edit")
	editCmd.SetDescription("Change a link's label and/or URL")

	ctx.LinkEditCard, _ = ra.NewString("card").
		SetUsage("Card name or position").
		SetCompletionFunc(completeCards).
		Register(editCmd)

	ctx.LinkEditLink, _ = ra.NewString("link").
		SetUsage("Link label or position").
		Register(editCmd)

	ctx.LinkEditLabel, _ = ra.NewString("label").
		SetShort("l").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New label").
		Register(editCmd)

	ctx.LinkEditURL, _ = ra.NewString("url").
		SetShort("u").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("New URL").
		Register(editCmd)

	ctx.LinkEditUsed, _ = cmd.RegisterCmd(editCmd)

	// link move
	moveCmd := ra.NewCmd("move")
	moveCmd.SetDescription("Move a link one place up or down")

	ctx.LinkMoveCard, _ = ra.NewString("card").
		SetUsage("Card name or position").
		SetCompletionFunc(completeCards).
		Register(moveCmd)

	ctx.LinkMoveLink, _ = ra.NewString("link").
		SetUsage("Link label or position").
		Register(moveCmd)

	ctx.LinkMoveDirection, _ = ra.NewString("direction").
		SetUsage("Direction to move").
		SetEnumConstraint([]string{dirUp, dirDown}).
		Register(moveCmd)

	ctx.LinkMoveUsed, _ = cmd.RegisterCmd(moveCmd)

	ctx.LinkUsed, _ = parent.RegisterCmd(cmd)
}

func runLinkAdd(cardRef, label, url string, interactive bool) {
	app := mustApp(interactive)
	defer app.Close()

	idx, err := app.ResolveCard(cardRef)
	if err != nil {
		Fatal(err)
	}
	card := app.Collection.Cards[idx]

	link := model.Link{Label: strings.TrimSpace(label), URL: strings.TrimSpace(url)}
	if !link.IsComplete() {
		link.Label, link.URL, err = app.Prompter.Link("New link on "+card.Name, link.Label, link.URL)
		if err != nil {
			Fatal(promptErr(err, "both a label and a URL are required"))
		}
	}

	changed, err := app.Dispatch(cards.AddLink{Card: idx, Link: link})
	if err != nil {
		Fatal(err)
	}
	if !changed {
		PrintWarning("A link needs both a label and a URL, nothing added")
		return
	}
	PrintSuccess("Added %q to card %q", link.Label, card.Name)
}

func runLinkRemove(cardRef, linkRef string) {
	app := mustApp(false)
	defer app.Close()

	cardIdx, linkIdx, err := app.ResolveLink(cardRef, linkRef)
	if err != nil {
		Fatal(err)
	}
	card := app.Collection.Cards[cardIdx]
	link := card.Links[linkIdx]

	if _, err := app.Dispatch(cards.RemoveLink{Card: cardIdx, Link: linkIdx}); err != nil {
		Fatal(err)
	}
	PrintSuccess("Removed %q from card %q", link.Label, card.Name)
}

func runLinkEdit(cardRef, linkRef, label, url string, interactive bool) {
	app := mustApp(interactive)
	defer app.Close()

	cardIdx, linkIdx, err := app.ResolveLink(cardRef, linkRef)
	if err != nil {
		Fatal(err)
	}
	old := app.Collection.Cards[cardIdx].Links[linkIdx]

	label, url = strings.TrimSpace(label), strings.TrimSpace(url)
	if label == "" && url == "" {
		label, url, err = app.Prompter.Link("Edit "+old.Label, old.Label, old.URL)
		if err != nil {
			Fatal(promptErr(err, "--label or --url is required"))
		}
	}

	changed, err := app.Dispatch(cards.EditLink{
		Card:  cardIdx,
		Link:  linkIdx,
		Label: optional(label),
		URL:   optional(url),
	})
	if err != nil {
		Fatal(err)
	}
	if !changed {
		PrintInfo("Link %q unchanged", old.Label)
		return
	}

	edited := app.Collection.Cards[cardIdx].Links[linkIdx]
	PrintSuccess("Updated link %q: %s %s", edited.Label, RenderMuted(old.URL+" "+IconInfo), edited.URL)
}

func runLinkMove(cardRef, linkRef, direction string) {
	app := mustApp(false)
	defer app.Close()

	cardIdx, linkIdx, err := app.ResolveLink(cardRef, linkRef)
	if err != nil {
		Fatal(err)
	}
	card := app.Collection.Cards[cardIdx]

	target, ok := neighbor(linkIdx, len(card.Links), direction)
	if !ok {
		edge := "top"
		if direction == dirDown {
			edge = "bottom"
		}
		PrintWarning("Link %q is already at the %s of %q", card.Links[linkIdx].Label, edge, card.Name)
		return
	}

	if _, err := app.Dispatch(cards.SwapLinks{Card: cardIdx, I: linkIdx, J: target}); err != nil {
		Fatal(err)
	}
	PrintSuccess("Moved %q to position %d in %q", card.Links[linkIdx].Label, target+1, card.Name)
}

// optional returns nil for an empty value so that EditLink leaves the field alone.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return cards.StringPtr(s)
}
