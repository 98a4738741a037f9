package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentor/internal/screens/history"
	"github.com/abhisek/mentor/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past assessments from the journal",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 500, "Number of journal entries to read")
	historyCmd.Flags().BoolP("verbose", "v", false, "Show every entry of each assessment")
}

func runHistory(cmd *cobra.Command, args []string) error {
	v := commandLogging(cmd)
	limit, _ := cmd.Flags().GetInt("limit")
	verbose, _ := cmd.Flags().GetBool("verbose")

	st, err := openJournal(v)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer st.Close()

	events, err := st.EventRepo().QueryAssessmentEvents(cmd.Context(), store.QueryOpts{Limit: limit})
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	runs := history.GroupRuns(events)
	if len(runs) == 0 {
		fmt.Println("No assessments recorded yet.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %s\n", r.SessionID[:min(8, len(r.SessionID))], r.Headline())
		if verbose {
			for _, line := range r.Details() {
				fmt.Println(strings.Repeat(" ", 10) + line)
			}
		}
	}
	return nil
}
