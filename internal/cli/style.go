package cli

import (
	"fmt"
	"os"

	"github.com/amterp/foxhole/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors that work in both light and dark terminals.
// First value is for dark terminals, second for light terminals.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Dark: "#22c55e", Light: "#16a34a"} // green
	ColorError   = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"} // red
	ColorWarning = lipgloss.AdaptiveColor{Dark: "#f59e0b", Light: "#d97706"} // amber
	ColorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"} // gray
)

// Reusable text styles
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleBold    = lipgloss.NewStyle().Bold(true)
)

// Icons for status messages
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "→"
)

// Palette is the set of styles used to render the collection.
// It follows the persisted theme rather than the terminal background.
type Palette struct {
	Greeting lipgloss.Style
	Card     lipgloss.Style // border around each card
	Title    lipgloss.Style
	Position lipgloss.Style
	Label    lipgloss.Style
	URL      lipgloss.Style
}

// PaletteFor returns the palette for theme.
func PaletteFor(theme model.Theme) Palette {
	if theme == model.ThemeWhite {
		return Palette{
			Greeting: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f2937")),
			Card: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#d1d5db")).
				Padding(0, 1),
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7c3aed")),
			Position: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
			Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")),
			URL:      lipgloss.NewStyle().Foreground(lipgloss.Color("#0284c7")),
		}
	}
	return Palette{
		Greeting: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f3f4f6")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4b5563")).
			Padding(0, 1),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa")),
		Position: lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb")),
		URL:      lipgloss.NewStyle().Foreground(lipgloss.Color("#38bdf8")),
	}
}

// PrintSuccess prints a success message with a green checkmark.
func PrintSuccess(format string, args ...any) {
	icon := StyleSuccess.Render(IconSuccess)
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s %s\n", icon, msg)
}

// PrintError prints an error message with a red X to stderr.
func PrintError(format string, args ...any) {
	icon := StyleError.Render(IconError)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", icon, msg)
}

// PrintWarning prints a warning message with an amber icon to stderr.
func PrintWarning(format string, args ...any) {
	icon := StyleWarning.Render(IconWarning)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", icon, msg)
}

// PrintInfo prints an info message with a muted arrow.
func PrintInfo(format string, args ...any) {
	icon := StyleMuted.Render(IconInfo)
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s %s\n", icon, msg)
}

// RenderMuted renders text in muted color.
func RenderMuted(text string) string {
	return StyleMuted.Render(text)
}

// RenderBold renders text in bold.
func RenderBold(text string) string {
	return StyleBold.Render(text)
}
