package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/ra"
	"github.com/charmbracelet/lipgloss"
)

func registerList(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("list")
	cmd.SetDescription("Show all cards and their links")

	ctx.ListJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.ListUsed, _ = parent.RegisterCmd(cmd)
}

func runList(jsonOutput bool) {
	app := mustApp(false)
	defer app.Close()

	ctx := context.Background()
	prefs := app.Prefs.Get(ctx)

	if jsonOutput {
		if err := printJson(NewListOutput(app.Collection, prefs.UserName, prefs.Theme)); err != nil {
			Fatal(err)
		}
		return
	}

	fmt.Print(renderCollection(app.Collection, prefs.UserName, PaletteFor(prefs.Theme)))
}

// renderCollection renders the greeting followed by one bordered block per card.
func renderCollection(c model.Collection, userName string, p Palette) string {
	var b strings.Builder
	b.WriteString(p.Greeting.Render(fmt.Sprintf("Welcome, %s!", userName)))
	b.WriteString("\n\n")

	if c.Len() == 0 {
		b.WriteString(RenderMuted("No cards yet. Add one with `foxhole card add <name>`."))
		b.WriteString("\n")
		return b.String()
	}

	for i, card := range c.Cards {
		b.WriteString(p.Card.Render(renderCard(i, card, p)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCard(idx int, card model.Card, p Palette) string {
	lines := []string{
		p.Position.Render(fmt.Sprintf("%d.", idx+1)) + " " + p.Title.Render(card.Name),
	}
	if len(card.Links) == 0 {
		lines = append(lines, RenderMuted("  (no links)"))
	}

	labelWidth := 0
	for _, l := range card.Links {
		labelWidth = max(labelWidth, lipgloss.Width(l.Label))
	}
	for j, l := range card.Links {
		label := p.Label.Width(labelWidth).Render(l.Label)
		lines = append(lines, fmt.Sprintf("  %s %s  %s",
			p.Position.Render(fmt.Sprintf("%d.", j+1)), label, p.URL.Render(l.URL)))
	}
	return strings.Join(lines, "\n")
}
