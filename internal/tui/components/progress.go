package components

import (
	"fmt"

	"github.com/theirongolddev/spendbook/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ColorForShare returns a hotter color the larger a share of spending is.
func ColorForShare(share float64) string {
	t := theme.Active
	switch {
	case share >= 0.5:
		return string(t.Red)
	case share >= 0.3:
		return string(t.Orange)
	case share >= 0.15:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// ShareBar renders "label [bar] 42%  amount" for one month of the breakdown.
func ShareBar(label string, share float64, amount string, labelW, barWidth int) string {
	t := theme.Active

	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForShare(share)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForShare(share))).Background(t.Surface).Bold(true)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	label = runewidth.FillRight(runewidth.Truncate(label, labelW, "…"), labelW)

	return labelStyle.Render(label) +
		spaceStyle.Render(" ") +
		bar.ViewAs(share) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", share*100)) +
		spaceStyle.Render("  ") +
		amountStyle.Render(amount)
}
