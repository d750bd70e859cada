package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/amterp/foxhole/internal/identity"
	"github.com/amterp/ra"
)

func registerName(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("name")
	cmd.SetDescription("Show or change the name used in the greeting")

	ctx.NameValue, _ = ra.NewString("new-name").
		SetOptional(true).
		SetUsage("New display name").
		Register(cmd)

	ctx.NameDetect, _ = ra.NewBool("detect").
		SetShort("d").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Use $" + identity.EnvUser + ", git user.name or $USER").
		Register(cmd)

	ctx.NameUsed, _ = parent.RegisterCmd(cmd)
}

func runName(name string, detect bool) {
	if detect {
		if name != "" {
			Fatal(fmt.Errorf("cannot combine a name with --detect"))
		}
		detected, err := identity.DetectName(identity.Git{})
		if err != nil {
			Fatal(err)
		}
		name = detected
	}

	app := mustApp(false)
	defer app.Close()

	ctx := context.Background()

	if strings.TrimSpace(name) == "" {
		if name != "" {
			PrintWarning("Name is blank, keeping the current one")
		}
		fmt.Println(app.Prefs.UserName(ctx))
		return
	}

	PrintSuccess("Welcome, %s!", RenderBold(app.Prefs.SetUserName(ctx, name)))
}
