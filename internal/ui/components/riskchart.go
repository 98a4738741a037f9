package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mentor/internal/ui/theme"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values in [0, 100] as one block per value.
func Sparkline(values []float64) string {
	var b strings.Builder
	for _, v := range values {
		idx := int(v / 100 * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.RiskColor(v)).Render(string(sparkBlocks[idx])))
	}
	return b.String()
}

// RiskChart draws the forecast as vertical bars, height rows tall, with a
// percentage axis on the left and day markers below. selected (1-based)
// marks one day; 0 marks none.
func RiskChart(curve []float64, height, selected int) string {
	if len(curve) == 0 || height < 2 {
		return ""
	}

	var rows []string
	for row := height; row >= 1; row-- {
		threshold := float64(row) / float64(height) * 100
		axis := "    "
		if row == height {
			axis = "100 "
		} else if row == (height+1)/2 {
			axis = " 50 "
		}

		var b strings.Builder
		b.WriteString(theme.Subtitle.Render(axis + "│"))
		for i, v := range curve {
			cell := " "
			if v >= threshold-100/float64(height)/2 {
				cell = "█"
			}
			style := lipgloss.NewStyle().Foreground(theme.RiskColor(v))
			if i+1 == selected {
				style = style.Foreground(theme.Primary)
			}
			b.WriteString(style.Render(cell))
		}
		rows = append(rows, b.String())
	}

	axis := "  0 └" + strings.Repeat("─", len(curve))
	rows = append(rows, theme.Subtitle.Render(axis))

	days := []byte(strings.Repeat(" ", len(curve)))
	for _, d := range []int{1, len(curve)} {
		label := fmt.Sprint(d)
		start := min(d-1, len(curve)-len(label))
		copy(days[max(start, 0):], label)
	}
	rows = append(rows, theme.Subtitle.Render("     "+string(days)))
	return strings.Join(rows, "\n")
}
