package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/amterp/foxhole/internal/cards"
	"github.com/amterp/foxhole/internal/model"
	"github.com/amterp/foxhole/internal/store"
	"github.com/amterp/foxhole/internal/util"
	"github.com/amterp/ra"
)

// completionCtx provides lightweight store access for shell completion.
// Completion functions run during ParseOrExit, before NewApp() is called,
// so we can't use the full App. This loads just enough to list cards.
type completionCtx struct {
	once       sync.Once
	collection model.Collection
	err        error
}

var compCtx completionCtx

func initCompletionCtx() {
	compCtx.once.Do(func() {
		cfg, err := store.NewGlobalStore().Load()
		if err != nil {
			// Graceful degradation: no completions if global config is broken
			compCtx.err = err
			return
		}

		ctx := context.Background()
		backend, err := store.Open(ctx, cfg, nil)
		if err != nil {
			compCtx.err = err
			return
		}
		defer backend.Close()

		compCtx.collection = cards.NewStore(backend).Initialize(ctx)
	})
}

// completeCards returns card slugs and positions matching the given prefix.
func completeCards(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	if compCtx.err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}
	return cardCandidates(compCtx.collection, toComplete), ra.CompletionDirectiveNoFileComp
}

// cardCandidates offers each card's slug, which resolves without quoting,
// falling back to its position for names with no slug.
func cardCandidates(c model.Collection, toComplete string) []string {
	var result []string
	seen := make(map[string]bool)
	for i, card := range c.Cards {
		candidate := util.Slugify(card.Name)
		if candidate == "" || seen[candidate] {
			candidate = strconv.Itoa(i + 1)
		}
		seen[candidate] = true
		if strings.HasPrefix(candidate, toComplete) {
			result = append(result, candidate)
		}
	}
	return result
}

// registerCompletion adds the "foxhole completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
