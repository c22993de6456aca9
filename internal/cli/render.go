package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Flexoki colors for one-shot command output.
var (
	ColorBorder    = lipgloss.Color("#403E3C")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#878580")
	ColorText      = lipgloss.AdaptiveColor{Light: "#100F0F", Dark: "#FFFCF0"}
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorOrange)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorTextDim)
	barStyle    = lipgloss.NewStyle().Foreground(ColorAccent)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title      string
	Headers    []string
	Rows       [][]string
	RightAlign []bool // per column; amount columns are right-aligned
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTotal renders a highlighted "label  value" line.
func RenderTotal(label, value string) string {
	return "  " + mutedStyle.Render(label) + "  " + totalStyle.Render(value)
}

// RenderWarning renders a warning line.
func RenderWarning(msg string) string {
	return "  " + warnStyle.Render(msg)
}

// RenderTable renders a bordered table with headers and rows.
// A row consisting of the single cell "---" renders as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	cell := func(i int, s string, style lipgloss.Style) {
		pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(s))
		if i < len(t.RightAlign) && t.RightAlign[i] {
			b.WriteString(style.Render(" " + pad + s + " "))
		} else {
			b.WriteString(style.Render(" " + s + pad + " "))
		}
		if i < numCols-1 {
			b.WriteString(dimStyle.Render("│"))
		}
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			cell(i, h, headerStyle)
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			s := ""
			if i < len(row) {
				s = row[i]
			}
			cell(i, s, valueStyle)
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

// RenderHorizontalBar renders one labelled bar of a horizontal bar chart.
// labelW is the padded label column width.
func RenderHorizontalBar(label string, value, maxValue float64, labelW, maxWidth int, suffix string) string {
	barLen := 0
	if maxValue > 0 {
		barLen = int(value / maxValue * float64(maxWidth))
	}
	if barLen < 1 && value > 0 {
		barLen = 1
	}
	label = runewidth.FillRight(runewidth.Truncate(label, labelW, "…"), labelW)
	return fmt.Sprintf("  %s %s %s",
		mutedStyle.Render(label),
		barStyle.Render(strings.Repeat("█", barLen)),
		dimStyle.Render(suffix),
	)
}
