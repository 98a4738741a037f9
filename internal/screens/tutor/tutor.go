// Package tutor is the screen for asking the study tutor free-form
// questions.
package tutor

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mentor/internal/screen"
	"github.com/abhisek/mentor/internal/tutor"
	"github.com/abhisek/mentor/internal/ui/components"
	"github.com/abhisek/mentor/internal/ui/layout"
	"github.com/abhisek/mentor/internal/ui/theme"
)

type answeredMsg struct {
	Err error
}

// Screen sends questions to a tutor.Tutor and shows the recent exchanges.
type Screen struct {
	tutor   *tutor.Tutor
	prompt  components.Prompt
	editing bool
	busy    bool
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Capturer = (*Screen)(nil)

// New creates the screen.
func New(t *tutor.Tutor) *Screen {
	return &Screen{tutor: t}
}

func (s *Screen) Init() tea.Cmd {
	return s.edit()
}

func (s *Screen) Title() string { return "Tutor" }

// Capturing is true while a question is being typed.
func (s *Screen) Capturing() bool { return s.editing }

func (s *Screen) edit() tea.Cmd {
	s.editing = true
	s.prompt = components.NewPrompt("Your question", "Why does a body in uniform circular motion accelerate?", 500)
	return s.prompt.Init()
}

func (s *Screen) ask(question string) tea.Cmd {
	s.busy = true
	s.errMsg = ""
	return func() tea.Msg {
		_, err := s.tutor.Ask(context.Background(), question)
		return answeredMsg{Err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answeredMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		if !s.editing {
			switch msg.String() {
			case "enter", "a":
				return s, s.edit()
			case "c":
				s.tutor.Clear()
			}
			return s, nil
		}
		switch msg.String() {
		case "esc":
			s.editing = false
			return s, nil
		case "enter":
			q := s.prompt.Value()
			if q == "" {
				return s, nil
			}
			s.editing = false
			return s, s.ask(q)
		}
	}

	if s.editing {
		var cmd tea.Cmd
		s.prompt, cmd = s.prompt.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	var sections []string
	if s.editing {
		sections = append(sections, s.prompt.View())
	}
	if s.busy {
		sections = append(sections, theme.Hint.Render("Thinking…"))
	}
	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(s.errMsg))
	}

	recent := s.tutor.Recent()
	if len(recent) == 0 && !s.busy {
		sections = append(sections, theme.Hint.Render("Ask anything about your subjects. The last few answers stay here."))
	}

	textWidth := max(width-8, 20)
	for _, ex := range recent {
		q := theme.Body.Bold(true).Render("Q: " + ex.Question)
		a := lipgloss.NewStyle().Foreground(theme.Text).Width(textWidth).Render(ex.Answer)
		sections = append(sections, theme.Card.Width(textWidth+4).Render(q+"\n\n"+a))
	}

	return lipgloss.NewStyle().MaxHeight(height).Render(strings.Join(sections, "\n\n"))
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{{Key: "Enter", Description: "Ask"}, {Key: "Esc", Description: "Done typing"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "New question"}, {Key: "c", Description: "Clear"}, {Key: "Esc", Description: "Back"},
	}
}
