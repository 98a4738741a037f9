package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the journal (assessment history and LLM log)",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := commandLogging(cmd)
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			fmt.Print("This deletes all assessment history and LLM logs. Continue? [y/N] ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		st, err := openJournal(v)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer st.Close()

		if err := st.EventRepo().Wipe(cmd.Context()); err != nil {
			return fmt.Errorf("wipe journal: %w", err)
		}
		fmt.Println("Journal cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
