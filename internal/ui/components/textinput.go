package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mentor/internal/ui/theme"
)

// Prompt is a labelled single-line input used for subject names, marks,
// the profile and tutor questions.
type Prompt struct {
	Label string
	Model textinput.Model
}

// NewPrompt creates a focused prompt.
func NewPrompt(label, placeholder string, limit int) Prompt {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return Prompt{Label: label, Model: ti}
}

// Init starts the cursor blink.
func (p Prompt) Init() tea.Cmd {
	return p.Model.Focus()
}

func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {
	var cmd tea.Cmd
	p.Model, cmd = p.Model.Update(msg)
	return p, cmd
}

func (p Prompt) View() string {
	return theme.Selected.Render(p.Label) + "\n" + p.Model.View()
}

// Value returns the trimmed input.
func (p Prompt) Value() string {
	return strings.TrimSpace(p.Model.Value())
}

// Fields splits the input on commas, trimming each part. Empty input
// gives no fields.
func (p Prompt) Fields() []string {
	v := p.Value()
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Ints parses whitespace or comma separated integers.
func (p Prompt) Ints() ([]int, error) {
	fields := strings.FieldsFunc(p.Value(), func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
