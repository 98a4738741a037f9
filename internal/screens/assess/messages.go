package assess

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mentor/internal/export"
	"github.com/abhisek/mentor/internal/workflow"
)

// appliedMsg carries the outcome of an event applied off the UI goroutine.
type appliedMsg struct {
	Event workflow.Event
	State workflow.State
	Err   error
}

// exportedMsg reports the files written by an export.
type exportedMsg struct {
	Paths []string
	Err   error
}

func applyCmd(sess *workflow.Session, ev workflow.Event) tea.Cmd {
	return func() tea.Msg {
		st, err := sess.Apply(context.Background(), ev)
		return appliedMsg{Event: ev, State: st, Err: err}
	}
}

// exportCmd writes the Markdown and PDF reports for st into dir.
func exportCmd(dir string, st workflow.State, now time.Time) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportedMsg{Err: fmt.Errorf("create report dir: %w", err)}
		}
		summary := export.Summarize(st, now)
		base := "report-" + now.Format("20060102-150405")

		var paths []string
		for _, format := range []string{"markdown", "pdf"} {
			exp, err := export.New(format)
			if err != nil {
				return exportedMsg{Err: err}
			}
			path := filepath.Join(dir, base+exp.Ext())
			if err := writeReport(path, exp, summary); err != nil {
				return exportedMsg{Paths: paths, Err: err}
			}
			paths = append(paths, path)
		}
		return exportedMsg{Paths: paths}
	}
}

func writeReport(path string, exp export.Exporter, s export.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := exp.Export(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
