package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passmate/internal/password"
)

type generateOptions struct {
	length    string
	uppercase bool
	lowercase bool
	numbers   bool
	symbols   bool
	classes   []string
	count     int
	copy      bool
	strength  bool
	seed      uint64
}

// classSet resolves --classes when given, the per-class switches otherwise.
func (o generateOptions) classSet() (password.ClassSet, error) {
	if len(o.classes) > 0 {
		return password.ParseClasses(o.classes)
	}
	var s password.ClassSet
	if o.uppercase {
		s = s.With(password.Uppercase)
	}
	if o.lowercase {
		s = s.With(password.Lowercase)
	}
	if o.numbers {
		s = s.With(password.Numbers)
	}
	if o.symbols {
		s = s.With(password.Symbols)
	}
	return s, nil
}

func newGenerateCmd(a *app) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate random passwords",
		Long: fmt.Sprintf(`Generate random passwords.

The length is clamped to %d..%d; only a leading integer is read
and input without one falls back to %d.`,
			password.MinLength, password.MaxLength, password.MinLength),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			length := a.cfg.DefaultLength
			if cmd.Flags().Changed("length") {
				length = password.ParseLength(opts.length)
			}
			classes, err := opts.classSet()
			if err != nil {
				return err
			}
			cfg := password.Normalize(length, classes)
			if cfg.Classes.IsEmpty() {
				return password.ErrEmptyAlphabet
			}

			src := a.source
			if cmd.Flags().Changed("seed") {
				src = password.NewSeededSource(opts.seed)
			}
			gen := password.NewGenerator(src)

			out := cmd.OutOrStdout()
			var first string
			for i := 0; i < max(1, opts.count); i++ {
				generated, err := gen.GenerateConfig(cfg)
				if err != nil {
					return err
				}
				if first == "" {
					first = generated.Value
				}
				if opts.strength {
					strength := password.Evaluate(generated.Value)
					fmt.Fprintf(out, "%s\t%d\t%s\n", generated.Value, strength.Score, strength.Label)
				} else {
					fmt.Fprintln(out, generated.Value)
				}
			}

			if opts.copy {
				if err := a.clip.WriteText(cmd.Context(), first); err != nil {
					a.logger.Warn("failed to copy password", "error", err)
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), "copied to clipboard")
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.length, "length", "l", "", fmt.Sprintf("password length, %d to %d (default from DEFAULT_LENGTH or %d)",
		password.MinLength, password.MaxLength, password.DefaultLength))
	f.BoolVar(&opts.uppercase, "uppercase", true, "include uppercase letters")
	f.BoolVar(&opts.lowercase, "lowercase", true, "include lowercase letters")
	f.BoolVar(&opts.numbers, "numbers", true, "include digits")
	f.BoolVar(&opts.symbols, "symbols", true, "include symbols")
	f.StringSliceVar(&opts.classes, "classes", nil, "comma-separated character types to use, e.g. upper,digits (overrides the switches above)")
	f.IntVarP(&opts.count, "count", "c", 1, "number of passwords to generate")
	f.BoolVar(&opts.copy, "copy", false, "copy the first password to the clipboard")
	f.BoolVarP(&opts.strength, "strength", "s", false, "print score and label next to each password")
	f.Uint64Var(&opts.seed, "seed", 0, "seed a deterministic generator (reproducible output, never for real passwords)")

	return cmd
}
