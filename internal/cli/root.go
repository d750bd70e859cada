package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool

	// list command
	ListUsed *bool
	ListJson *bool

	// card command
	CardUsed *bool

	CardAddUsed *bool
	CardAddName *string

	CardRemoveUsed  *bool
	CardRemoveCard  *string
	CardRemoveForce *bool

	CardRenameUsed *bool
	CardRenameCard *string
	CardRenameName *string

	CardMoveUsed      *bool
	CardMoveCard      *string
	CardMoveDirection *string

	// link command
	LinkUsed *bool

	LinkAddUsed  *bool
	LinkAddCard  *string
	LinkAddLabel *string
	LinkAddURL   *string

	LinkRemoveUsed *bool
	LinkRemoveCard *string
	LinkRemoveLink *string

	LinkEditUsed  *bool
	LinkEditCard  *string
	LinkEditLink  *string
	LinkEditLabel *string
	LinkEditURL   *string

	LinkMoveUsed      *bool
	LinkMoveCard      *string
	LinkMoveLink      *string
	LinkMoveDirection *string

	// theme command
	ThemeUsed   *bool
	ThemeAction *string

	// name command
	NameUsed   *bool
	NameValue  *string
	NameDetect *bool

	// export command
	ExportUsed   *bool
	ExportFormat *string
	ExportOutput *string

	// doctor command
	DoctorUsed   *bool
	DoctorFix    *bool
	DoctorDryRun *bool
	DoctorJson   *bool

	// serve command
	ServeUsed *bool
	ServePort *int

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("foxhole")
	cmd.SetDescription("Cards of bookmarked links")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerList(cmd, ctx)
	registerCard(cmd, ctx)
	registerLink(cmd, ctx)
	registerTheme(cmd, ctx)
	registerName(cmd, ctx)
	registerExport(cmd, ctx)
	registerDoctor(cmd, ctx)
	registerServe(cmd, ctx)
	registerCompletion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	interactive := !*ctx.NonInteractive

	switch {
	case *ctx.ListUsed:
		runList(*ctx.ListJson)

	case *ctx.CardAddUsed:
		runCardAdd(*ctx.CardAddName, interactive)

	case *ctx.CardRemoveUsed:
		runCardRemove(*ctx.CardRemoveCard, *ctx.CardRemoveForce, interactive)

	case *ctx.CardRenameUsed:
		runCardRename(*ctx.CardRenameCard, *ctx.CardRenameName, interactive)

	case *ctx.CardMoveUsed:
		runCardMove(*ctx.CardMoveCard, *ctx.CardMoveDirection)

	case *ctx.LinkAddUsed:
		runLinkAdd(*ctx.LinkAddCard, *ctx.LinkAddLabel, *ctx.LinkAddURL, interactive)

	case *ctx.LinkRemoveUsed:
		runLinkRemove(*ctx.LinkRemoveCard, *ctx.LinkRemoveLink)

	case *ctx.LinkEditUsed:
		runLinkEdit(*ctx.LinkEditCard, *ctx.LinkEditLink, *ctx.LinkEditLabel, *ctx.LinkEditURL, interactive)

	case *ctx.LinkMoveUsed:
		runLinkMove(*ctx.LinkMoveCard, *ctx.LinkMoveLink, *ctx.LinkMoveDirection)

	case *ctx.ThemeUsed:
		runTheme(*ctx.ThemeAction)

	case *ctx.NameUsed:
		runName(*ctx.NameValue, *ctx.NameDetect)

	case *ctx.ExportUsed:
		runExport(*ctx.ExportFormat, *ctx.ExportOutput)

	case *ctx.DoctorUsed:
		runDoctor(*ctx.DoctorFix, *ctx.DoctorDryRun, *ctx.DoctorJson)

	case *ctx.ServeUsed:
		runServe(*ctx.ServePort)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)

	default:
		runList(false)
	}
}
