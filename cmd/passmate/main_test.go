package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vaultpass/passmate/internal/clipboard"
	"github.com/vaultpass/passmate/internal/crypto"
	"github.com/vaultpass/passmate/internal/password"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteText(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DEFAULT_LENGTH", "REQUIRE_AUTH", "API_TOKEN_SECRET", "API_TOKEN_TTL", "DATABASE_DSN"} {
		t.Setenv(key, "")
	}
}

// runCLI executes a fresh command tree and returns stdout.
func runCLI(t *testing.T, clip clipboard.Writer, stdin string, args ...string) (string, error) {
	t.Helper()
	a := &app{
		clip:   clip,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		source: password.NewSeededSource(2024),
	}
	cmd := newRootCmd(a)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		// Cobra falls back to os.Args when args is nil.
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name       string
		args       []string
		wantLength int
		alphabet   string
	}{
		{name: "root defaults", args: nil, wantLength: 12, alphabet: password.BuildAlphabet(password.AllClassSet)},
		{name: "explicit length", args: []string{"generate", "-l", "30"}, wantLength: 30, alphabet: password.BuildAlphabet(password.AllClassSet)},
		{name: "root accepts flags", args: []string{"--length", "20"}, wantLength: 20, alphabet: password.BuildAlphabet(password.AllClassSet)},
		{name: "length clamped", args: []string{"gen", "--length", "99"}, wantLength: 50, alphabet: password.BuildAlphabet(password.AllClassSet)},
		{name: "non-numeric length", args: []string{"gen", "--length", "abc"}, wantLength: 4, alphabet: password.BuildAlphabet(password.AllClassSet)},
		{
			name:       "lowercase only",
			args:       []string{"generate", "-l", "4", "--uppercase=false", "--numbers=false", "--symbols=false"},
			wantLength: 4,
			alphabet:   password.BuildAlphabet(password.NewClassSet(password.Lowercase)),
		},
		{
			name:       "classes flag",
			args:       []string{"generate", "-l", "16", "--classes", "upper,digits"},
			wantLength: 16,
			alphabet:   password.BuildAlphabet(password.NewClassSet(password.Uppercase, password.Numbers)),
		},
		{
			name:       "classes flag overrides switches",
			args:       []string{"--classes", "symbols", "--symbols=false"},
			wantLength: 12,
			alphabet:   password.BuildAlphabet(password.NewClassSet(password.Symbols)),
		},
		{name: "partly numeric length", args: []string{"gen", "--length", "45.5"}, wantLength: 45, alphabet: password.BuildAlphabet(password.AllClassSet)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, &fakeClipboard{}, "", tt.args...)
			if err != nil {
				t.Fatalf("Execute() unexpected error: %v", err)
			}
			pw := strings.TrimSpace(out)
			if len(pw) != tt.wantLength {
				t.Fatalf("password %q length = %d, want %d", pw, len(pw), tt.wantLength)
			}
			for _, ch := range pw {
				if !strings.ContainsRune(tt.alphabet, ch) {
					t.Errorf("password %q contains %q outside %q", pw, ch, tt.alphabet)
				}
			}
		})
	}
}

func TestGenerateCommandNoClasses(t *testing.T) {
	clearEnv(t)

	out, err := runCLI(t, &fakeClipboard{}, "", "generate",
		"--uppercase=false", "--lowercase=false", "--numbers=false", "--symbols=false")
	if !errors.Is(err, password.ErrEmptyAlphabet) {
		t.Errorf("Execute() error = %v, want %v", err, password.ErrEmptyAlphabet)
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestGenerateCommandUnknownClass(t *testing.T) {
	clearEnv(t)

	out, err := runCLI(t, &fakeClipboard{}, "", "generate", "--classes", "upper,emoji")
	if !errors.Is(err, password.ErrUnknownClass) {
		t.Errorf("Execute() error = %v, want %v", err, password.ErrUnknownClass)
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestGenerateCommandSeedIsReproducible(t *testing.T) {
	clearEnv(t)

	first, err := runCLI(t, &fakeClipboard{}, "", "generate", "--seed", "7", "-c", "3")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	second, err := runCLI(t, &fakeClipboard{}, "", "generate", "--seed", "7", "-c", "3")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("seeded runs differ:\n%s\n%s", first, second)
	}
	if lines := strings.Split(strings.TrimSpace(first), "\n"); len(lines) != 3 {
		t.Errorf("expected 3 passwords, got %d", len(lines))
	}
}

func TestGenerateCommandStrengthAndCopy(t *testing.T) {
	clearEnv(t)
	clip := &fakeClipboard{}

	out, err := runCLI(t, clip, "", "generate", "--strength", "--copy")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	fields := strings.Split(strings.TrimSpace(out), "\t")
	if len(fields) != 3 {
		t.Fatalf("expected password, score and label, got %q", out)
	}
	want := password.Evaluate(fields[0])
	if fields[2] != string(want.Label) {
		t.Errorf("label = %q, want %q", fields[2], want.Label)
	}
	if clip.text != fields[0] {
		t.Errorf("clipboard = %q, want %q", clip.text, fields[0])
	}
}

func TestGenerateCommandCopyFailureIsNotFatal(t *testing.T) {
	clearEnv(t)

	out, err := runCLI(t, &fakeClipboard{err: errors.New("no display")}, "", "generate", "--copy")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if len(strings.TrimSpace(out)) != password.DefaultLength {
		t.Errorf("expected a password on stdout, got %q", out)
	}
}

func TestStrengthCommand(t *testing.T) {
	clearEnv(t)

	out, err := runCLI(t, nil, "", "strength", "aB3$eF7!")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if out != "90\tStrong\n" {
		t.Errorf("output = %q, want %q", out, "90\tStrong\n")
	}

	out, err = runCLI(t, nil, "abcd\npassword\n", "strength")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if out != "10\tWeak\n20\tWeak\n" {
		t.Errorf("output = %q", out)
	}
}

func TestTokenCommand(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_TOKEN_SECRET", "cli-secret")

	out, err := runCLI(t, nil, "", "token", "--subject", "deploy-bot")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	claims, err := crypto.ValidateToken(strings.TrimSpace(out), "cli-secret")
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.Subject != "deploy-bot" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "deploy-bot")
	}
}

func TestTokenCommandWithoutSecret(t *testing.T) {
	clearEnv(t)

	if _, err := runCLI(t, nil, "", "token", "--subject", "deploy-bot"); !errors.Is(err, crypto.ErrSecretRequired) {
		t.Errorf("Execute() error = %v, want %v", err, crypto.ErrSecretRequired)
	}
}

func TestInteractiveCommand(t *testing.T) {
	clearEnv(t)
	clip := &fakeClipboard{}

	input := strings.Join([]string{
		"length 20",
		"toggle symbols",
		"toggle numbers",
		"toggle uppercase",
		"toggle lowercase",
		"toggle emoji",
		"copy",
		"bogus",
		"quit",
	}, "\n")

	out, err := runCLI(t, clip, input, "interactive")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	for _, want := range []string{
		"length:   20",
		"At least one character type must stay enabled.",
		"unknown character class",
		"Copied to clipboard.",
		`Unknown command "bogus"`,
		"[ ] uppercase  [x] lowercase  [ ] numbers  [ ] symbols",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if len(clip.text) != 20 || strings.ToLower(clip.text) != clip.text {
		t.Errorf("clipboard = %q, want 20 lowercase characters", clip.text)
	}
}

func TestInteractiveCommandStartingClasses(t *testing.T) {
	clearEnv(t)

	out, err := runCLI(t, &fakeClipboard{}, "quit\n", "interactive", "--classes", "lower,numbers")
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if want := "[ ] uppercase  [x] lowercase  [x] numbers  [ ] symbols"; !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
	if !strings.Contains(out, "length:   12") {
		t.Errorf("expected default length in output:\n%s", out)
	}

	if _, err := runCLI(t, &fakeClipboard{}, "", "interactive", "--classes", "bogus"); !errors.Is(err, password.ErrUnknownClass) {
		t.Errorf("Execute() error = %v, want %v", err, password.ErrUnknownClass)
	}
}

func TestHistoryCommandWithoutDatabase(t *testing.T) {
	clearEnv(t)

	if _, err := runCLI(t, nil, "", "history"); !errors.Is(err, errNoAuditLog) {
		t.Errorf("Execute() error = %v, want %v", err, errNoAuditLog)
	}
}
