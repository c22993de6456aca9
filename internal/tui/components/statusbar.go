package components

import (
	"strings"

	"github.com/theirongolddev/spendbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusKind selects the color of the status message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusOK
	StatusError
)

// RenderStatusBar renders the bottom bar: key hints on the left, the current
// message in the middle and the theme toggle icon on the right.
func RenderStatusBar(width int, msg string, kind StatusKind, themeIcon string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	msgColor := t.TextPrimary
	switch kind {
	case StatusOK:
		msgColor = t.Green
	case StatusError:
		msgColor = t.Red
	}
	msgStyle := lipgloss.NewStyle().Foreground(msgColor).Background(t.Surface)
	iconStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface).Bold(true)

	left := base.Render(" [?]help  [q]uit")
	mid := ""
	if msg != "" {
		mid = base.Render("  ") + msgStyle.Render(msg)
	}
	right := base.Render("[t]") + iconStyle.Render(themeIcon) + base.Render(" ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return left + mid + base.Render(strings.Repeat(" ", padding)) + right
}
