package components

import (
	"strings"

	"github.com/theirongolddev/spendbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs. Digits keep letters free for list actions.
var Tabs = []Tab{
	{Name: "Expenses", Key: '1'},
	{Name: "Chart", Key: '2'},
	{Name: "Months", Key: '3'},
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active

	if active {
		return lipgloss.NewStyle().
			Foreground(t.AccentBright).
			Background(t.SurfaceHover).
			Bold(true).
			Padding(0, 1).
			Render(tab.Name)
	}

	inactive := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimKey := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	key := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	return inactive.Render(" "+tab.Name) +
		dimKey.Render("[") + key.Render(string(tab.Key)) + dimKey.Render("]") +
		inactive.Render(" ")
}

// TabVisualWidth is the rendered width of a tab, used for mouse hit testing.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active
	sep := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	row := strings.Join(parts, sep)

	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
