package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentor/internal/app"
	"github.com/abhisek/mentor/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive assessment (default)",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().String("report-dir", "", "Where exported reports are written (default: <data dir>/reports)")
}

// runPlay opens the journal, builds dependencies, and launches the TUI.
func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	v := viperForCmd(cmd)

	dataDir, err := store.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// The alternate screen owns stdout and stderr, so logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(dataDir, "mentor.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	setupLogging(v, logFile)

	st, err := openJournal(v)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer st.Close()

	repo := st.EventRepo()
	svc, err := buildServices(ctx, v, repo)
	if err != nil {
		return err
	}
	if svc.provider == nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured; quizzes and plans use offline fallbacks.")
	}

	reportDir := v.GetString("report-dir")
	if reportDir == "" {
		reportDir = filepath.Join(dataDir, "reports")
	}

	return app.Run(ctx, app.Options{
		Session:   newSession(svc, repo),
		Tutor:     svc.tutor,
		Journal:   repo,
		ReportDir: reportDir,
	})
}
