package tui

import (
	"github.com/theirongolddev/spendbook/internal/tui/components"
	"github.com/theirongolddev/spendbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// renderChartTab draws one bar per expense, rebuilt from the current records.
func (a App) renderChartTab(cw, h int) string {
	t := theme.Active
	expenses := a.session.Expenses()

	if len(expenses) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No expenses to chart.")
		return components.ContentCard("Spending per entry", empty, cw, false)
	}

	values := make([]float64, len(expenses))
	labels := make([]string, len(expenses))
	for i, e := range expenses {
		values[i] = e.Amount.InexactFloat64()
		labels[i] = e.Title
	}

	// border + title + x axis + labels
	chartH := h - 5
	if chartH < 3 {
		chartH = 3
	}
	chart := components.BarChart(values, labels, t.AccentBright, components.CardInnerWidth(cw), chartH)
	return components.ContentCard("Spending per entry", chart, cw, false)
}
