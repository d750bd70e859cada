package cli

import (
	"context"
	"fmt"

	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/ra"
)

const (
	themeShow   = "show"
	themeToggle = "toggle"
)

func registerTheme(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("theme")
	cmd.SetDescription("Show or change the color theme")

	ctx.ThemeAction, _ = ra.NewString("action").
		SetOptional(true).
		SetDefault(themeShow).
		SetUsage("What to do with the theme").
		SetEnumConstraint([]string{themeShow, themeToggle, model.ThemeDark.String(), model.ThemeWhite.String()}).
		Register(cmd)

	ctx.ThemeUsed, _ = parent.RegisterCmd(cmd)
}

func runTheme(action string) {
	app := mustApp(false)
	defer app.Close()

	ctx := context.Background()

	var theme model.Theme
	switch action {
	case "", themeShow:
		fmt.Println(app.Prefs.Theme(ctx))
		return
	case themeToggle:
		theme = app.Prefs.ToggleTheme(ctx)
	default:
		parsed, err := model.ParseTheme(action)
		if err != nil {
			Fatal(err)
		}
		theme = app.Prefs.SetTheme(ctx, parsed)
	}

	PrintSuccess("Theme set to %s", PaletteFor(theme).Title.Render(theme.String()))
}
