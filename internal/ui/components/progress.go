package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mentor/internal/ui/theme"
)

// ProgressBar shows completion of a fixed number of steps, e.g. practice
// days done out of the plan length.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// View renders the bar followed by "done/total".
func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = theme.Body.Render(p.Label) + "  "
	}

	suffix := fmt.Sprintf("  %d/%d", p.Done, p.Total)
	barWidth := max(p.Width-lipgloss.Width(out)-len(suffix), 4)

	filled := 0
	if p.Total > 0 {
		filled = min(max(p.Done*barWidth/p.Total, 0), barWidth)
	}
	out += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	return out + theme.Subtitle.Render(suffix)
}
