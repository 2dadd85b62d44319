package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passmate/internal/password"
	"github.com/vaultpass/passmate/internal/session"
)

func newInteractiveCmd(a *app) *cobra.Command {
	var classes []string

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Adjust settings and regenerate passwords in a prompt",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := password.DefaultConfig()
			cfg.Length = a.cfg.DefaultLength
			if len(classes) > 0 {
				set, err := password.ParseClasses(classes)
				if err != nil {
					return err
				}
				cfg.Classes = set
			}

			sess, err := session.New(password.NewGenerator(a.source), cfg, a.clip, a.logger)
			if err != nil {
				return err
			}
			return runREPL(cmd.Context(), sess, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringSliceVar(&classes, "classes", nil, "character types enabled at start (default all)")
	return cmd
}

// runREPL reads commands until EOF or quit, printing the session state after each change.
func runREPL(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Passmate interactive mode (type 'help' for commands, 'quit' to exit)")
	printState(out, sess.State())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "passmate> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if done := handleREPLCommand(ctx, sess, line, out); done {
			return nil
		}
	}
}

// handleREPLCommand dispatches a single line of input. Returns true when the user wants to quit.
func handleREPLCommand(ctx context.Context, sess *session.Session, line string, out io.Writer) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	cmd = strings.ToLower(cmd)
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "quit", "exit", "q":
		return true

	case "help", "h", "?":
		printREPLHelp(out)

	case "show", "s":
		printState(out, sess.State())

	case "regen", "r", "new":
		st, err := sess.Regenerate()
		reportErr(out, err)
		printState(out, st)

	case "length", "len", "l":
		st, err := sess.SetLengthInput(arg)
		reportErr(out, err)
		printState(out, st)

	case "toggle", "t":
		class, err := password.ParseClass(arg)
		if err != nil {
			fmt.Fprintf(out, "Error: %v (choose uppercase, lowercase, numbers or symbols)\n", err)
			return false
		}
		st, err := sess.Toggle(class)
		reportErr(out, err)
		printState(out, st)

	case "copy", "c":
		if err := sess.Copy(ctx); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return false
		}
		fmt.Fprintln(out, "Copied to clipboard.")

	default:
		fmt.Fprintf(out, "Unknown command %q. Type 'help' for available commands.\n", cmd)
	}

	return false
}

func reportErr(out io.Writer, err error) {
	switch {
	case err == nil:
	case errors.Is(err, session.ErrLastClass):
		fmt.Fprintln(out, "At least one character type must stay enabled.")
	default:
		fmt.Fprintf(out, "Error: %v\n", err)
	}
}

func printState(out io.Writer, st session.State) {
	if st.NeedsClass {
		fmt.Fprintln(out, "Select at least one character type.")
	}
	fmt.Fprintf(out, "  password: %s\n", st.Password)
	fmt.Fprintf(out, "  strength: %d/100 %s\n", st.Strength.Score, st.Strength.Label)
	fmt.Fprintf(out, "  length:   %d\n", st.Config.Length)

	var classes []string
	for _, c := range password.AllClasses() {
		mark := " "
		if st.Config.Classes.Has(c) {
			mark = "x"
		}
		classes = append(classes, fmt.Sprintf("[%s] %s", mark, c))
	}
	fmt.Fprintf(out, "  classes:  %s\n", strings.Join(classes, "  "))
}

func printREPLHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  regen           Generate a new password")
	fmt.Fprintf(out, "  length <n>      Set the length (%d-%d)\n", password.MinLength, password.MaxLength)
	fmt.Fprintln(out, "  toggle <class>  Enable or disable uppercase, lowercase, numbers or symbols")
	fmt.Fprintln(out, "  copy            Copy the password to the clipboard")
	fmt.Fprintln(out, "  show            Show the current password and settings")
	fmt.Fprintln(out, "  help            Show this help")
	fmt.Fprintln(out, "  quit            Exit")
}
