package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all saved focus, quiz and navigation data",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if !yes {
			fmt.Fprintf(cmd.OutOrStdout(), "Delete all Mind Morph data in %s? [y/N] ", e.dbPath)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		n, err := e.store.Reset(cmd.Context())
		if err != nil {
			return fmt.Errorf("reset store: %w", err)
		}
		e.logger.Info("store reset", zap.Int("keys", n))
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d saved entries.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
