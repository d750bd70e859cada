package model

import "fmt"

// Theme is the persisted color scheme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeWhite Theme = "white"
)

// DefaultTheme is used when no valid theme has been stored.
const DefaultTheme = ThemeDark

// DefaultUserName is shown until the user picks a display name.
const DefaultUserName = "UserName"

// ParseTheme converts a stored value into a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeWhite:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("invalid theme %q", s)
	}
}

// String returns the stored form of the theme.
func (t Theme) String() string {
	return string(t)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeWhite
	}
	return ThemeDark
}

// Themes returns all valid theme names.
func Themes() []string {
	return []string{ThemeDark.String(), ThemeWhite.String()}
}
