package tui

import (
	"strings"

	"github.com/theirongolddev/spendbook/internal/cli"
	"github.com/theirongolddev/spendbook/internal/invoice"
	"github.com/theirongolddev/spendbook/internal/tui/components"
	"github.com/theirongolddev/spendbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const monthLabelW = 16

// renderMonthsTab shows each month's subtotal and share of all spending,
// grouped the same way as the invoice.
func (a App) renderMonthsTab(cw int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	inv, err := invoice.Build(a.session.Expenses())
	if err != nil {
		return components.ContentCard("Monthly breakdown", dim.Render(err.Error()), cw, false)
	}

	inner := components.CardInnerWidth(cw)
	barW := inner - monthLabelW - 24
	if barW < 10 {
		barW = 10
	}

	var b strings.Builder
	for _, g := range inv.Groups {
		b.WriteString(components.ShareBar(g.Title, inv.Share(g), cli.FormatRupiah(g.Subtotal), monthLabelW, barW))
		b.WriteString("\n")
	}

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
	b.WriteString("\n")
	b.WriteString(label.Render("TOTAL KESELURUHAN  ") + value.Render(cli.FormatRupiah(inv.GrandTotal)))
	b.WriteString("\n\n")
	b.WriteString(dim.Render("[p] export PDF invoice to " + a.invoiceDir))

	return components.ContentCard("Monthly breakdown", b.String(), cw, false)
}
