package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mentor/internal/router"
	"github.com/abhisek/mentor/internal/screen"
	"github.com/abhisek/mentor/internal/store"
	"github.com/abhisek/mentor/internal/ui/layout"
	"github.com/abhisek/mentor/internal/ui/theme"
	"github.com/abhisek/mentor/internal/workflow"
)

// maxEvents bounds how much of the journal the screen loads.
const maxEvents = 500

type historyLoadedMsg struct {
	Runs []Run
	Err  error
}

// HistoryScreen lists past assessment runs from the journal.
type HistoryScreen struct {
	eventRepo store.EventRepo
	runs      []Run
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.eventRepo.QueryAssessmentEvents(context.Background(), store.QueryOpts{Limit: maxEvents})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Runs: GroupRuns(events)}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.runs = msg.Runs
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.runs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No assessments yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, run := range s.runs {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+run.Headline())))
		b.WriteString("\n")

		if s.expanded[i] {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim)
			for _, line := range run.Details() {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    "+line)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// Run is the journal of one assessment session.
type Run struct {
	SessionID string
	Subject   string
	Events    []store.AssessmentEvent // oldest first
}

// GroupRuns splits newest-first journal events into runs, most recent
// run first. Runs that only record a reset are dropped.
func GroupRuns(events []store.AssessmentEvent) []Run {
	index := make(map[string]int)
	var runs []Run
	for _, e := range events {
		if e.Kind == workflow.MilestoneReset {
			continue
		}
		i, ok := index[e.SessionID]
		if !ok {
			i = len(runs)
			index[e.SessionID] = i
			runs = append(runs, Run{SessionID: e.SessionID})
		}
		r := &runs[i]
		r.Events = append([]store.AssessmentEvent{e}, r.Events...)
		if r.Subject == "" {
			r.Subject = e.Subject
		}
	}
	return runs
}

func (r Run) find(kind string) (store.AssessmentEvent, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Kind == kind {
			return r.Events[i], true
		}
	}
	return store.AssessmentEvent{}, false
}

// Headline is the one-line summary shown in the list.
func (r Run) Headline() string {
	date := r.Events[0].Timestamp.Format("Jan 02, 2006")
	subject := r.Subject
	if subject == "" {
		subject = "-"
	}
	line := fmt.Sprintf("%s  %s", date, subject)

	if d, ok := r.find(workflow.MilestoneDiagnostic); ok {
		line += fmt.Sprintf("  pre %d/%d", d.Score, d.MaxScore)
	}
	if f, ok := r.find(workflow.MilestoneFinal); ok {
		line += fmt.Sprintf("  post %d/%d", f.Score, f.MaxScore)
		if d, ok := r.find(workflow.MilestoneDiagnostic); ok {
			line += fmt.Sprintf("  (%+d)", f.Score-d.Score)
		}
	}
	if n := r.practiceDays(); n > 0 {
		line += fmt.Sprintf("  %d practice day", n)
		if n > 1 {
			line += "s"
		}
	}
	return line
}

func (r Run) practiceDays() int {
	days := make(map[int]bool)
	for _, e := range r.Events {
		if e.Kind == workflow.MilestoneDaily {
			days[e.Day] = true
		}
	}
	return len(days)
}

// Details lists every journal entry of the run.
func (r Run) Details() []string {
	lines := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		at := e.Timestamp.Format("15:04")
		var line string
		switch e.Kind {
		case workflow.MilestoneAnalyzed:
			line = fmt.Sprintf("%s  analyzed, %d diagnostic questions", at, e.MaxScore)
		case workflow.MilestonePlan:
			line = fmt.Sprintf("%s  study plan, %d days", at, e.MaxScore)
		case workflow.MilestoneDaily:
			line = fmt.Sprintf("%s  day %d practice %d/%d", at, e.Day, e.Score, e.MaxScore)
		default:
			line = fmt.Sprintf("%s  %s %d/%d", at, e.Kind, e.Score, e.MaxScore)
		}
		if e.Detail != "" {
			line += "  [" + e.Detail + "]"
		}
		lines = append(lines, line)
	}
	return lines
}
