package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mentor/internal/router"
	"github.com/abhisek/mentor/internal/screen"
	"github.com/abhisek/mentor/internal/screens/home"
	"github.com/abhisek/mentor/internal/store"
	"github.com/abhisek/mentor/internal/tutor"
	"github.com/abhisek/mentor/internal/ui/layout"
	"github.com/abhisek/mentor/internal/workflow"
)

// Options holds the dependencies for the TUI. Session is required.
type Options struct {
	Session   *workflow.Session
	Tutor     *tutor.Tutor
	Journal   store.EventRepo
	ReportDir string
}

// busyScreen is implemented by screens that run workflow events.
type busyScreen interface {
	Busy() bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	session *workflow.Session
	router  *router.Router
	width   int
	height  int
}

func newAppModel(opts Options) AppModel {
	homeScreen := home.New(home.Deps{
		Session:   opts.Session,
		Tutor:     opts.Tutor,
		Journal:   opts.Journal,
		ReportDir: opts.ReportDir,
	})
	return AppModel{
		session: opts.Session,
		router:  router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens that are capturing input use esc themselves.
			if c, ok := m.router.Active().(screen.Capturer); ok && c.Capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) headerInfo() layout.HeaderInfo {
	st := m.session.State()
	info := layout.HeaderInfo{Student: st.Profile.Name, Status: st.Status()}
	if b, ok := m.router.Active().(busyScreen); ok {
		info.Busy = b.Busy()
	}
	return info
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the whole frame for the current window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerInfo(), m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Session == nil {
		return fmt.Errorf("app: a session is required")
	}
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
