package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passmate/internal/crypto"
)

func newTokenCmd(a *app) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for the HTTP server",
		Long: `Issue a bearer token accepted by the passmate API server.

The token is signed with API_TOKEN_SECRET, which must match the server's.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("ttl") && a.cfg.TokenTTL > 0 {
				ttl = a.cfg.TokenTTL
			}
			token, err := crypto.GenerateToken(subject, a.cfg.TokenSecret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "name of the client the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime (default from API_TOKEN_TTL)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
