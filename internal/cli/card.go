package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amterp/foxhole/internal/cards"
	"github.com/amterp/foxhole/internal/prompt"
	"github.com/amterp/ra"
)

// Move directions accepted by `card move` and `link move`.
const (
	dirLeft  = "left"
	dirRight = "right"
	dirUp    = "up"
	dirDown  = "down"
)

func registerCard(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("card")
	cmd.SetDescription("Manage cards")

	// card add
	addCmd := ra.NewCmd("add")
	addCmd.SetDescription("Add a new card")

	ctx.CardAddName, _ = ra.NewString("name").
		SetOptional(true).
		SetUsage("Card name (prompts if not provided)").
		Register(addCmd)

	ctx.CardAddUsed, _ = cmd.RegisterCmd(addCmd)

	// card remove
	removeCmd := ra.NewCmd("remove")
	removeCmd.SetDescription("Remove a card and its links")

	ctx.CardRemoveCard, _ = ra.NewString("card").
		SetUsage("Card name or position").
		SetCompletionFunc(completeCards).
		Register(removeCmd)

	ctx.CardRemoveForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Skip confirmation (required in non-interactive mode)").
		Register(removeCmd)

	ctx.CardRemoveUsed, _ = cmd.RegisterCmd(removeCmd)

	// card rename
	renameCmd := ra.NewCmd("rename")
	renameCmd.SetDescription("Rename a card")

	ctx.CardRenameCard, _ = ra.NewString("card").
		SetUsage("Card name or position").
		SetCompletionFunc(completeCards).
		Register(renameCmd)

	ctx.CardRenameName, _ = ra.NewString("name").
		SetOptional(true).
		SetUsage("New name (prompts if not provided)").
		Register(renameCmd)

	ctx.CardRenameUsed, _ = cmd.RegisterCmd(renameCmd)

	// card move
	moveCmd := ra.NewCmd("move")
	moveCmd.SetDescription("Move a card one place left or right")

	ctx.CardMoveCard, _ = ra.NewString("card").
		SetUsage("Card name or position").
		SetCompletionFunc(completeCards).
		Register(moveCmd)

	ctx.CardMoveDirection, _ = ra.NewString("direction").
		SetUsage("Direction to move").
		SetEnumConstraint([]string{dirLeft, dirRight}).
		Register(moveCmd)

	ctx.CardMoveUsed, _ = cmd.RegisterCmd(moveCmd)

	ctx.CardUsed, _ = parent.RegisterCmd(cmd)
}

func runCardAdd(name string, interactive bool) {
	app := mustApp(interactive)
	defer app.Close()

	name = strings.TrimSpace(name)
	if name == "" {
		var err error
		name, err = app.Prompter.Input("Card name", "")
		if err != nil {
			Fatal(promptErr(err, "card name is required"))
		}
		name = strings.TrimSpace(name)
	}

	changed, err := app.Dispatch(cards.AddCard{Name: name})
	if err != nil {
		Fatal(err)
	}
	if !changed {
		PrintWarning("Card name is empty, nothing added")
		return
	}
	PrintSuccess("Added card %q at position %d", name, app.Collection.Len())
}

func runCardRemove(cardRef string, force, interactive bool) {
	app := mustApp(interactive)
	defer app.Close()

	idx, err := app.ResolveCard(cardRef)
	if err != nil {
		Fatal(err)
	}
	card := app.Collection.Cards[idx]

	if !force {
		if !interactive {
			Fatal(fmt.Errorf("removing card %q requires --force in non-interactive mode", card.Name))
		}

		confirmed, err := app.Prompter.Confirm(
			fmt.Sprintf("Remove card %q and its %d link(s)?", card.Name, len(card.Links)),
			false,
		)
		if err != nil {
			Fatal(err)
		}
		if !confirmed {
			PrintInfo("Cancelled")
			return
		}
	}

	if _, err := app.Dispatch(cards.RemoveCard{Card: idx}); err != nil {
		Fatal(err)
	}
	PrintSuccess("Removed card %q", card.Name)
}

func runCardRename(cardRef, name string, interactive bool) {
	app := mustApp(interactive)
	defer app.Close()

	idx, err := app.ResolveCard(cardRef)
	if err != nil {
		Fatal(err)
	}
	oldName := app.Collection.Cards[idx].Name

	name = strings.TrimSpace(name)
	if name == "" {
		name, err = app.Prompter.Input("New name", oldName)
		if err != nil {
			Fatal(promptErr(err, "new name is required"))
		}
		name = strings.TrimSpace(name)
	}

	changed, err := app.Dispatch(cards.RenameCard{Card: idx, Name: name})
	if err != nil {
		Fatal(err)
	}
	if !changed {
		PrintInfo("Card %q unchanged", oldName)
		return
	}
	PrintSuccess("Renamed card %q to %q", oldName, name)
}

func runCardMove(cardRef, direction string) {
	app := mustApp(false)
	defer app.Close()

	idx, err := app.ResolveCard(cardRef)
	if err != nil {
		Fatal(err)
	}

	target, ok := neighbor(idx, app.Collection.Len(), direction)
	if !ok {
		PrintWarning("Card %q is already the %s-most card", app.Collection.Cards[idx].Name, direction)
		return
	}

	if _, err := app.Dispatch(cards.SwapCards{I: idx, J: target}); err != nil {
		Fatal(err)
	}
	PrintSuccess("Moved card %q to position %d", app.Collection.Cards[target].Name, target+1)
}

// neighbor returns the index next to idx in direction, and false when idx
// is already at that edge. Moves are only dispatched for valid neighbors.
func neighbor(idx, length int, direction string) (int, bool) {
	var target int
	switch direction {
	case dirLeft, dirUp:
		target = idx - 1
	case dirRight, dirDown:
		target = idx + 1
	default:
		return idx, false
	}
	if target < 0 || target >= length {
		return idx, false
	}
	return target, true
}

// promptErr replaces the non-interactive prompt error with a message
// naming the missing input.
func promptErr(err error, missing string) error {
	if errors.Is(err, prompt.ErrNonInteractive) {
		return fmt.Errorf("%s (cannot prompt in non-interactive mode)", missing)
	}
	return err
}
