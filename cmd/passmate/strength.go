package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passmate/internal/password"
)

func newStrengthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strength [password]",
		Short: "Rate the strength of a password",
		Long: `Rate the strength of a password on a 0-100 scale.

Without an argument every line of standard input is rated, so a password
never has to appear in shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				a := password.Evaluate(args[0])
				fmt.Fprintf(out, "%d\t%s\n", a.Score, a.Label)
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				a := password.Evaluate(scanner.Text())
				fmt.Fprintf(out, "%d\t%s\n", a.Score, a.Label)
			}
			return scanner.Err()
		},
	}
}
