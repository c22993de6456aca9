package model

import "fmt"

// Theme is the light/dark presentation preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a persisted or user-supplied theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

// Opposite returns the other mode.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ToggleIcon is the icon for the action the toggle would perform:
// a sun while dark, a moon while light.
func (t Theme) ToggleIcon() string {
	if t == ThemeDark {
		return "☀"
	}
	return "☾"
}
