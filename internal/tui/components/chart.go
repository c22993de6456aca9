package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/spendbook/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx]) //nolint:gosec // bounds checked above
	}

	return style.Render(buf.String())
}

// BarChart renders one vertical bar per value with a labelled Y axis and the
// labels underneath. When there are more values than columns, the trailing
// values that fit are kept.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y-axis: compute tick step and ceiling
	tickStep := chartTickStep(maxVal)
	maxIntervals := height / 2
	if maxIntervals < 2 {
		maxIntervals = 2
	}
	for {
		n := int(math.Ceil(maxVal / tickStep))
		if n <= maxIntervals {
			break
		}
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := int(math.Round(ceiling / tickStep))
	if numIntervals < 1 {
		numIntervals = 1
	}

	rowsPerTick := height / numIntervals
	if rowsPerTick < 2 {
		rowsPerTick = 2
	}
	chartH := rowsPerTick * numIntervals

	yLabelW := len(formatChartLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	// Bar sizing: shrink the gap first, then drop the oldest bars.
	n := len(values)
	gap := 1
	barW := (chartW - (n - 1)) / n
	if n == 1 {
		gap = 0
		barW = chartW
	}
	if barW < 1 {
		gap = 0
		barW = 1
		if n > chartW {
			values = values[n-chartW:]
			if len(labels) == n {
				labels = labels[n-chartW:]
			}
			n = chartW
		}
	}
	if barW > 8 {
		barW = 8
	}
	axisLen := n*barW + max(0, n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder

	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)
		rowPct := float64(row) / float64(chartH)

		var barColor lipgloss.Color
		switch {
		case rowPct > 0.8:
			barColor = t.AccentBright
		case rowPct > 0.5:
			barColor = color
		default:
			barColor = t.Accent
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 8 {
					idx = 8
				}
				if idx < 1 {
					idx = 1
				}
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blankStyle.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n && barW >= 2 {
		labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		var lb strings.Builder
		for i, lbl := range labels {
			if i > 0 && gap > 0 {
				lb.WriteString(strings.Repeat(" ", gap))
			}
			lb.WriteString(runewidth.FillRight(runewidth.Truncate(lbl, barW, ""), barW))
		}
		b.WriteString("\n")
		b.WriteString(blankStyle.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(labelStyle.Render(strings.TrimRight(lb.String(), " ")))
	}

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel abbreviates axis values: 1500 -> "1.5k", 2000000 -> "2M".
func formatChartLabel(v float64) string {
	switch {
	case v >= 1e9:
		return trimUnit(v/1e9, "B")
	case v >= 1e6:
		return trimUnit(v/1e6, "M")
	case v >= 1e3:
		return trimUnit(v/1e3, "k")
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func trimUnit(v float64, unit string) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f%s", v, unit)
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}
