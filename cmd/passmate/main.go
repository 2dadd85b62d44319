// Command passmate generates random passwords and rates their strength.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vaultpass/passmate/internal/clipboard"
	"github.com/vaultpass/passmate/internal/config"
)

var version = "dev" // set by the linker

// app carries what the subcommands share.
type app struct {
	cfg    config.Config
	clip   clipboard.Writer
	logger *slog.Logger
	// source overrides the random source; nil means crypto/rand.
	source io.Reader
}

func main() {
	_ = godotenv.Load()

	a := &app{
		clip:   clipboard.NewSystem(),
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
	if err := newRootCmd(a).Execute(); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Tests create fresh trees with their own app.
func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passmate",
		Short: "Passmate is a random password generator.",
		Long: `Passmate draws random passwords from the character types you enable
(uppercase, lowercase, numbers, symbols) and rates their strength.

Running without a subcommand generates one password.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	generate := newGenerateCmd(a)
	cmd.RunE = generate.RunE
	cmd.Flags().AddFlagSet(generate.Flags())

	cmd.AddCommand(generate)
	cmd.AddCommand(newStrengthCmd())
	cmd.AddCommand(newInteractiveCmd(a))
	cmd.AddCommand(newTokenCmd(a))
	cmd.AddCommand(newHistoryCmd(a))

	cmd.Version = version
	return cmd
}
