package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over: forget vocabulary progress, wallet and quests",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprint(cmd.OutOrStdout(), "This erases all progress. Type 'yes' to continue: ")
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.TrimSpace(strings.ToLower(answer)) != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		pack, err := e.loadPack()
		if err != nil {
			return err
		}
		eng, err := e.loadEngine(cmd.Context(), pack)
		if err != nil {
			return err
		}
		defer eng.Close()

		eng.ResetForNewGame()
		if err := e.saveEngine(cmd.Context(), eng); err != nil {
			return fmt.Errorf("save reset state: %w", err)
		}
		e.log.Info("progress reset")
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
