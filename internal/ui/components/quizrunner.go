package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mentor/internal/quiz"
	"github.com/abhisek/mentor/internal/ui/theme"
)

// QuizRunner walks the learner through a question list one question at a
// time and collects the chosen option texts. Answers are only scored
// after Done, by the caller.
type QuizRunner struct {
	Title     string
	Questions []quiz.Question
	Answers   []string
	Current   int
	Cursor    int
}

// NewQuizRunner starts at the first question.
func NewQuizRunner(title string, questions []quiz.Question) QuizRunner {
	return QuizRunner{
		Title:     title,
		Questions: questions,
		Answers:   make([]string, len(questions)),
	}
}

// Done reports whether every question has an answer.
func (r QuizRunner) Done() bool {
	return r.Current >= len(r.Questions)
}

// Update handles up/down, option letters and enter. Enter (or a letter)
// records the option under the cursor and moves to the next question;
// backspace returns to the previous one.
func (r QuizRunner) Update(msg tea.Msg) (QuizRunner, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || r.Done() {
		return r, nil
	}
	q := r.Questions[r.Current]

	key := kmsg.String()
	switch key {
	case "up", "k":
		if r.Cursor > 0 {
			r.Cursor--
		}
	case "down", "j":
		if r.Cursor < len(q.Options)-1 {
			r.Cursor++
		}
	case "backspace":
		if r.Current > 0 {
			r.Current--
			r.Cursor = optionIndex(r.Questions[r.Current], r.Answers[r.Current])
		}
	case "enter":
		r = r.choose(r.Cursor)
	default:
		if len(key) == 1 {
			if idx := int(strings.ToUpper(key)[0]) - 'A'; idx >= 0 && idx < len(q.Options) {
				r = r.choose(idx)
			}
		}
	}
	return r, nil
}

func (r QuizRunner) choose(idx int) QuizRunner {
	q := r.Questions[r.Current]
	if idx < 0 || idx >= len(q.Options) {
		return r
	}
	r.Answers[r.Current] = q.Options[idx]
	r.Current++
	r.Cursor = 0
	if !r.Done() {
		r.Cursor = optionIndex(r.Questions[r.Current], r.Answers[r.Current])
	}
	return r
}

func optionIndex(q quiz.Question, answer string) int {
	for i, opt := range q.Options {
		if opt == answer {
			return i
		}
	}
	return 0
}

// View renders the current question and a progress line.
func (r QuizRunner) View(width int) string {
	if r.Done() {
		return theme.Hint.Render("All questions answered.")
	}
	q := r.Questions[r.Current]

	var b strings.Builder
	b.WriteString(theme.Title.Render(r.Title))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("   question %d of %d", r.Current+1, len(r.Questions))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Width(max(width-4, 20)).Render(q.Prompt))
	b.WriteString("\n\n")
	for i, opt := range q.Options {
		line := fmt.Sprintf("  %s)  %s", quiz.OptionLabel(i), opt)
		if i == r.Cursor {
			b.WriteString(theme.Selected.Render("▸" + line[1:]))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
