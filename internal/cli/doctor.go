package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/amterp/foxhole/internal/service"
	"github.com/amterp/ra"
)

func registerDoctor(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("doctor")
	cmd.SetDescription("Check stored cards and preferences for problems. Exit 0 if healthy, 1 if errors found.")

	ctx.DoctorFix, _ = ra.NewBool("fix").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Apply automatic fixes for issues with deterministic solutions").
		Register(cmd)

	ctx.DoctorDryRun, _ = ra.NewBool("dry-run").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Show what fixes would be applied without making changes").
		Register(cmd)

	ctx.DoctorJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print the report as JSON").
		Register(cmd)

	ctx.DoctorUsed, _ = parent.RegisterCmd(cmd)
}

func runDoctor(fix, dryRun, jsonOutput bool) {
	if fix && dryRun {
		Fatal(fmt.Errorf("--fix and --dry-run cannot be used together"))
	}

	app := mustApp(false)
	doctor := service.NewDoctorService(app.Backend, app.GlobalStore, app.Logger)

	ctx := context.Background()
	var report *service.DiagnosticReport
	if fix || dryRun {
		report = doctor.Fix(ctx, dryRun)
	} else {
		report = doctor.Diagnose(ctx)
	}

	app.Close()

	if jsonOutput {
		if err := printJson(report); err != nil {
			Fatal(err)
		}
	} else {
		printDoctorReport(report, fix, dryRun)
	}

	if report.HasErrors() {
		os.Exit(1)
	}
}

func printDoctorReport(report *service.DiagnosticReport, didFix, dryRun bool) {
	fmt.Printf("Checking %s storage...\n", RenderBold(report.Backend))
	fmt.Printf("  Cards: %d, links: %d\n", report.Cards, report.Links)
	fmt.Println()

	if len(report.Issues) == 0 {
		PrintSuccess("No issues found")
		return
	}

	fixed, failed := 0, 0
	if didFix {
		for _, issue := range report.Issues {
			switch {
			case issue.FixError != "":
				failed++
			case issue.Fixable:
				fixed++
			}
		}
		if fixed > 0 {
			PrintSuccess("Fixed %d issue(s)", fixed)
			fmt.Println()
		}
	}

	if dryRun && report.Summary.Fixable > 0 {
		PrintInfo("Dry run: %d issue(s) would be fixed", report.Summary.Fixable)
		fmt.Println()
	}

	// Errors first, then warnings.
	for _, severity := range []service.Severity{service.SeverityError, service.SeverityWarning} {
		for _, issue := range report.Issues {
			if issue.Severity == severity {
				printIssue(issue)
			}
		}
	}

	fmt.Println()
	var parts []string
	if report.Summary.Errors > 0 {
		parts = append(parts, StyleError.Render(fmt.Sprintf("%d error(s)", report.Summary.Errors)))
	}
	if report.Summary.Warnings > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d warning(s)", report.Summary.Warnings)))
	}
	if fixed > 0 {
		parts = append(parts, StyleSuccess.Render(fmt.Sprintf("%d fixed", fixed)))
	}
	if failed > 0 {
		parts = append(parts, StyleError.Render(fmt.Sprintf("%d fix failed", failed)))
	}
	fmt.Printf("Summary: %s\n", strings.Join(parts, ", "))

	if !didFix && report.Summary.Fixable > 0 {
		fmt.Println()
		if dryRun {
			PrintInfo("Run 'foxhole doctor --fix' to apply these fixes")
		} else {
			PrintInfo("Run 'foxhole doctor --fix' to apply automatic fixes")
		}
	}
}

func printIssue(issue service.Issue) {
	style, icon := StyleWarning, IconWarning
	if issue.Severity == service.SeverityError {
		style, icon = StyleError, IconError
	}

	fmt.Printf("%s %s%s %s\n", style.Render(icon), style.Render("["+issue.Code+"]"), issueLocation(issue), issue.Message)

	if issue.FixError != "" {
		fmt.Printf("  %s Fix failed: %s\n", StyleError.Render("→"), issue.FixError)
	} else if issue.FixAction != "" {
		if issue.Fixable {
			fmt.Printf("  %s Fix: %s\n", RenderMuted("→"), issue.FixAction)
		} else {
			fmt.Printf("  %s %s\n", RenderMuted("→"), issue.FixAction)
		}
	}
}

// issueLocation renders e.g. " cards #2/3" for the third link of the second card.
func issueLocation(issue service.Issue) string {
	if issue.Key == "" {
		return ""
	}
	loc := " " + issue.Key
	if issue.Card > 0 {
		loc += fmt.Sprintf(" #%d", issue.Card)
		if issue.Link > 0 {
			loc += fmt.Sprintf("/%d", issue.Link)
		}
	}
	return RenderMuted(loc)
}
