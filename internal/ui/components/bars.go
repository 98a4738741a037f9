package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mentor/internal/roster"
	"github.com/abhisek/mentor/internal/ui/theme"
)

// MarkBar renders a subject's unit test average as a horizontal bar on
// the 0-20 scale.
func MarkBar(s roster.Subject, labelWidth, barWidth int, highlight bool) string {
	avg := s.Average()
	filled := min(max(int(avg/float64(roster.MaxMark)*float64(barWidth)+0.5), 0), barWidth)

	name := s.Name
	if r := []rune(name); len(r) > labelWidth {
		name = string(r[:max(labelWidth-1, 0)]) + "…"
	}
	label := fmt.Sprintf("%-*s", labelWidth, name)
	if highlight {
		label = theme.Selected.Render(label)
	} else {
		label = theme.Unselected.Render(label)
	}

	bar := lipgloss.NewStyle().Foreground(theme.MarkColor(avg)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))

	marks := theme.Subtitle.Render(fmt.Sprintf(" %2d + %2d  avg %4.1f", s.UT1, s.UT2, avg))
	return label + "  " + bar + marks
}
