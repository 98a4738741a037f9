package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mentor/internal/router"
	"github.com/abhisek/mentor/internal/screen"
	"github.com/abhisek/mentor/internal/screens/assess"
	"github.com/abhisek/mentor/internal/screens/history"
	tutorscreen "github.com/abhisek/mentor/internal/screens/tutor"
	"github.com/abhisek/mentor/internal/store"
	"github.com/abhisek/mentor/internal/tutor"
	"github.com/abhisek/mentor/internal/ui/components"
	"github.com/abhisek/mentor/internal/ui/layout"
	"github.com/abhisek/mentor/internal/ui/theme"
	"github.com/abhisek/mentor/internal/workflow"
)

// Deps are the services reachable from the home menu. Tutor and Journal
// may be nil; their entries are then disabled.
type Deps struct {
	Session   *workflow.Session
	Tutor     *tutor.Tutor
	Journal   store.EventRepo
	ReportDir string
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	state  workflow.State
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

type resetDoneMsg struct {
	Err error
}

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.refresh()
	return h
}

// refresh reloads the session state and rebuilds the menu, keeping the
// cursor where it was.
func (h *HomeScreen) refresh() {
	h.state = h.deps.Session.State()
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	if selected > 0 && selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) items() []components.MenuItem {
	d := h.deps
	started := h.state.Phase != workflow.PhaseInput || len(h.state.Subjects) > 0

	assessLabel, assessHint := "Start assessment", "Enter unit test marks"
	if started {
		assessLabel, assessHint = "Continue assessment", h.state.Status()
	}

	return []components.MenuItem{
		{Label: assessLabel, Hint: assessHint, Action: func() tea.Cmd {
			return push(assess.New(d.Session, d.ReportDir))
		}},
		{Label: "Ask the tutor", Hint: "Free-form study questions", Disabled: d.Tutor == nil, Action: func() tea.Cmd {
			if h.state.Weakest != "" {
				d.Tutor.Focus(h.state.Weakest, h.state.Profile.Class)
			}
			return push(tutorscreen.New(d.Tutor))
		}},
		{Label: "History", Hint: "Past assessments", Disabled: d.Journal == nil, Action: func() tea.Cmd {
			return push(history.New(d.Journal))
		}},
		{Label: "Start over", Hint: "Clear marks and results", Disabled: !started, Action: func() tea.Cmd {
			return func() tea.Msg {
				_, err := d.Session.Apply(context.Background(), workflow.Reset{})
				return resetDoneMsg{Err: err}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(resetDoneMsg); ok {
		if msg.Err != nil {
			h.notice = msg.Err.Error()
		} else {
			h.notice = "Started over."
		}
		h.menu.Selected = 0
		h.refresh()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sections := []string{
		theme.Title.Render("Mentor"),
		theme.Subtitle.Render("Find your weakest subject, practise it for 30 days, measure the gain."),
	}

	if p := h.state.Profile; p.Name != "" {
		sections = append(sections, theme.Body.Render("Student: "+p.Name+"  Class "+p.Class))
	}
	sections = append(sections, theme.Card.Render(h.menu.View()))
	if h.notice != "" {
		sections = append(sections, theme.Hint.Render(h.notice))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
