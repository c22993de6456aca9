package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/spendbook/internal/cli"
	"github.com/theirongolddev/spendbook/internal/invoice"
	"github.com/theirongolddev/spendbook/internal/model"
	"github.com/theirongolddev/spendbook/internal/tui/components"
	"github.com/theirongolddev/spendbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const formCardWidth = 46

func (a App) renderExpensesTab(cw, h int) string {
	expenses := a.session.Expenses()
	editID, editing := a.session.EditingID()

	months := 0
	if inv, err := invoice.Build(expenses); err == nil {
		months = len(inv.Groups)
	}
	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Total", Value: cli.FormatRupiah(model.Total(expenses))},
		{Label: "Entries", Value: strconv.Itoa(len(expenses))},
		{Label: "Months", Value: strconv.Itoa(months)},
	}, cw)

	formTitle := "New expense"
	if editing {
		formTitle = "Edit expense"
	}
	formBody := a.form.view(a.focus == focusForm)

	listH := h - lipgloss.Height(metrics)
	if a.isCompactLayout() {
		formCard := components.ContentCard(formTitle, formBody, cw, a.focus == focusForm)
		listH -= lipgloss.Height(formCard)
		listCard := a.renderListCard(expenses, editID, editing, cw, listH)
		return lipgloss.JoinVertical(lipgloss.Left, metrics, formCard, listCard)
	}

	formCard := components.ContentCard(formTitle, formBody, formCardWidth, a.focus == focusForm)
	listCard := a.renderListCard(expenses, editID, editing, cw-formCardWidth, listH)
	return lipgloss.JoinVertical(lipgloss.Left, metrics, components.CardRow([]string{formCard, listCard}))
}

// renderListCard projects the expenses into rows: title, date, amount, with
// the selected row highlighted and the row being edited marked.
func (a App) renderListCard(expenses []model.Expense, editID int64, editing bool, outerW, outerH int) string {
	t := theme.Active
	inner := components.CardInnerWidth(outerW)

	if len(expenses) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("No expenses yet. Fill in the form and press Enter.")
		return components.ContentCard("Expenses", empty, outerW, a.focus == focusList)
	}

	// 2 border + title + total line + separator
	visible := outerH - 5
	if visible < 1 {
		visible = 1
	}
	offset := 0
	if a.cursor >= visible {
		offset = a.cursor - visible + 1
	}

	amountW := 0
	for _, e := range expenses {
		amountW = max(amountW, runewidth.StringWidth(cli.FormatRupiah(e.Amount)))
	}
	const dateW = 10
	titleW := inner - amountW - dateW - 4 // marker + gaps
	if titleW < 6 {
		titleW = 6
	}

	var b strings.Builder
	end := min(len(expenses), offset+visible)
	for i := offset; i < end; i++ {
		e := expenses[i]

		bg := t.Surface
		fg := t.TextPrimary
		marker := " "
		if i == a.cursor && a.focus == focusList {
			bg = t.SurfaceHover
			marker = "▸"
		}
		if editing && e.ID == editID {
			bg = t.SurfaceBright
			fg = t.Yellow
			marker = "✎"
		}

		base := lipgloss.NewStyle().Background(bg)
		line := base.Foreground(t.Accent).Render(marker+" ") +
			base.Foreground(fg).Render(runewidth.FillRight(runewidth.Truncate(e.Title, titleW, "…"), titleW)) +
			base.Render(" ") +
			base.Foreground(t.TextMuted).Render(fmt.Sprintf("%-*s", dateW, e.Date)) +
			base.Render(" ") +
			base.Foreground(fg).Render(fmt.Sprintf("%*s", amountW, cli.FormatRupiah(e.Amount)))
		b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		b.WriteString("\n")
	}

	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	totalLabel := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	totalValue := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)

	b.WriteString(dim.Render(strings.Repeat("─", inner)))
	b.WriteString("\n")
	total := cli.FormatRupiah(model.Total(expenses))
	hint := "[e]dit [d]elete"
	pad := inner - runewidth.StringWidth(hint) - runewidth.StringWidth("Total ") - runewidth.StringWidth(total)
	if pad < 1 {
		pad = 1
		hint = ""
	}
	b.WriteString(dim.Render(hint) + dim.Render(strings.Repeat(" ", pad)) +
		totalLabel.Render("Total ") + totalValue.Render(total))

	title := fmt.Sprintf("Expenses (%d)", len(expenses))
	return components.ContentCard(title, b.String(), outerW, a.focus == focusList)
}
