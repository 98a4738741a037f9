package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the study tutor a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().String("subject", "", "Subject to frame the answer in")
}

func runAsk(cmd *cobra.Command, args []string) error {
	v := commandLogging(cmd)

	st, err := openJournal(v)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer st.Close()

	svc, err := buildServices(cmd.Context(), v, st.EventRepo())
	if err != nil {
		return err
	}
	if err := svc.requireProvider(); err != nil {
		return err
	}

	svc.tutor.Focus(v.GetString("subject"), v.GetString("class"))
	answer, err := svc.tutor.Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}
