package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passmate/internal/repository"
)

var errNoAuditLog = errors.New("DATABASE_DSN is not set, the audit log is disabled")

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generations recorded by the API server",
		Long: `Show recent entries of the generation audit log.

The log holds length, character types and strength of each password the API
server generated. Passwords themselves are never stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DatabaseDSN == "" {
				return errNoAuditLog
			}

			db, err := repository.NewDB(cmd.Context(), a.cfg.DatabaseDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			events, err := repository.NewAuditRepository(db).Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tSUBJECT\tLENGTH\tCLASSES\tSCORE\tLABEL")
			for _, e := range events {
				subject := e.Subject
				if subject == "" {
					subject = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n",
					e.CreatedAt.Local().Format(time.DateTime), subject, e.Length, e.Classes, e.Score, e.Label)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}
