// Package theme defines the light and dark color palettes for the spendbook TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendbook/internal/model"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Mode          model.Theme
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (selected row)
	SurfaceBright lipgloss.Color // Row being edited
	Border        lipgloss.Color // Subtle borders
	BorderBright  lipgloss.Color // Prominent borders
	BorderAccent  lipgloss.Color // Focused form, dialogs
	TextDim       lipgloss.Color // Hints, placeholders
	TextMuted     lipgloss.Color // Labels, metadata
	TextPrimary   lipgloss.Color // Primary content text
	Accent        lipgloss.Color // Active states, bars
	AccentBright  lipgloss.Color
	AccentDim     lipgloss.Color
	Green         lipgloss.Color
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	Yellow        lipgloss.Color
	Magenta       lipgloss.Color
	Cyan          lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the warm, paper-inspired dark palette.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Mode:          model.ThemeDark,
	Background:    lipgloss.Color("#100F0F"),
	Surface:       lipgloss.Color("#1C1B1A"),
	SurfaceHover:  lipgloss.Color("#282726"),
	SurfaceBright: lipgloss.Color("#343331"),
	Border:        lipgloss.Color("#403E3C"),
	BorderBright:  lipgloss.Color("#575653"),
	BorderAccent:  lipgloss.Color("#3AA99F"),
	TextDim:       lipgloss.Color("#575653"),
	TextMuted:     lipgloss.Color("#878580"),
	TextPrimary:   lipgloss.Color("#FFFCF0"),
	Accent:        lipgloss.Color("#3AA99F"),
	AccentBright:  lipgloss.Color("#5BC8BE"),
	AccentDim:     lipgloss.Color("#1A3533"),
	Green:         lipgloss.Color("#879A39"),
	GreenBright:   lipgloss.Color("#A3B859"),
	Orange:        lipgloss.Color("#DA702C"),
	Red:           lipgloss.Color("#D14D41"),
	Blue:          lipgloss.Color("#4385BE"),
	Yellow:        lipgloss.Color("#D0A215"),
	Magenta:       lipgloss.Color("#CE5D97"),
	Cyan:          lipgloss.Color("#24837B"),
}

// FlexokiLight is the paper-white counterpart of FlexokiDark.
var FlexokiLight = Theme{
	Name:          "flexoki-light",
	Mode:          model.ThemeLight,
	Background:    lipgloss.Color("#FFFCF0"),
	Surface:       lipgloss.Color("#F2F0E5"),
	SurfaceHover:  lipgloss.Color("#E6E4D9"),
	SurfaceBright: lipgloss.Color("#DAD8CE"),
	Border:        lipgloss.Color("#CECDC3"),
	BorderBright:  lipgloss.Color("#B7B5AC"),
	BorderAccent:  lipgloss.Color("#24837B"),
	TextDim:       lipgloss.Color("#B7B5AC"),
	TextMuted:     lipgloss.Color("#6F6E69"),
	TextPrimary:   lipgloss.Color("#100F0F"),
	Accent:        lipgloss.Color("#24837B"),
	AccentBright:  lipgloss.Color("#3AA99F"),
	AccentDim:     lipgloss.Color("#DDF1E4"),
	Green:         lipgloss.Color("#66800B"),
	GreenBright:   lipgloss.Color("#879A39"),
	Orange:        lipgloss.Color("#BC5215"),
	Red:           lipgloss.Color("#AF3029"),
	Blue:          lipgloss.Color("#205EA6"),
	Yellow:        lipgloss.Color("#AD8301"),
	Magenta:       lipgloss.Color("#A02F6F"),
	Cyan:          lipgloss.Color("#24837B"),
}

// ForMode returns the palette for a presentation mode.
func ForMode(m model.Theme) Theme {
	if m == model.ThemeLight {
		return FlexokiLight
	}
	return FlexokiDark
}

// SetMode makes the palette for m the active theme.
func SetMode(m model.Theme) {
	Active = ForMode(m)
}

// Detect picks the mode from the terminal background.
func Detect() model.Theme {
	if lipgloss.HasDarkBackground() {
		return model.ThemeDark
	}
	return model.ThemeLight
}
