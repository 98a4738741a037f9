// Package screen defines the contract between the app shell and its
// screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mentor/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area; the shell draws header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Capturer is implemented by screens that are reading free text. While
// Capturing returns true the shell does not treat esc as navigation.
type Capturer interface {
	Capturing() bool
}
