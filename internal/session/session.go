package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/vaultpass/passmate/internal/clipboard"
	"github.com/vaultpass/passmate/internal/password"
)

// DefaultCopiedWindow is how long State.Copied stays true after a copy.
const DefaultCopiedWindow = time.Second

var (
	ErrLastClass     = errors.New("cannot disable the last enabled character type")
	ErrNothingToCopy = errors.New("no password to copy")
	ErrNoClipboard   = errors.New("no clipboard configured")
)

// State is a snapshot of the session.
type State struct {
	Config   password.GenerationConfig
	Password string
	Strength password.StrengthAssessment
	// NeedsClass is set when the last generation failed because no class is
	// enabled. Password and Strength then still hold the last valid result.
	NeedsClass bool
	Copied     bool
}

// Session owns the mutable generator settings and re-runs the generation
// pipeline whenever they change. All methods are safe for concurrent use and
// are serialized, so at most one generation runs at a time.
type Session struct {
	mu sync.Mutex

	gen    *password.Generator
	clip   clipboard.Writer
	logger *slog.Logger

	cfg        password.GenerationConfig
	current    password.GeneratedPassword
	strength   password.StrengthAssessment
	needsClass bool
	copiedAt   time.Time

	copiedWindow time.Duration
	now          func() time.Time
}

// New creates a session for cfg and generates the first password. A config
// without classes is accepted and reported through State.NeedsClass.
func New(gen *password.Generator, cfg password.GenerationConfig, clip clipboard.Writer, logger *slog.Logger) (*Session, error) {
	if gen == nil {
		gen = password.NewGenerator(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		gen:          gen,
		clip:         clip,
		logger:       logger,
		cfg:          password.Normalize(cfg.Length, cfg.Classes),
		copiedWindow: DefaultCopiedWindow,
		now:          time.Now,
	}

	if err := s.regenerateLocked(); err != nil && !errors.Is(err, password.ErrEmptyAlphabet) {
		return nil, err
	}
	return s, nil
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Regenerate draws a new password for the current settings. On failure the
// previous password is kept.
func (s *Session) Regenerate() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.regenerateLocked()
	return s.stateLocked(), err
}

// SetLength clamps n into the allowed range and regenerates if it changed.
func (s *Session) SetLength(n int) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyLocked(password.Normalize(n, s.cfg.Classes))
}

// SetLengthInput is SetLength for text typed by a user. Non-numeric input
// falls back to the minimum length instead of failing.
func (s *Session) SetLengthInput(raw string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyLocked(password.NormalizeInput(raw, s.cfg.Classes))
}

// Toggle flips a character class. Disabling the last enabled class is
// rejected with ErrLastClass and leaves the session untouched.
func (s *Session) Toggle(class password.CharacterClass) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	classes, ok := password.Toggle(s.cfg.Classes, class)
	if !ok {
		s.logger.Debug("toggle rejected", "class", class.String())
		return s.stateLocked(), ErrLastClass
	}
	return s.applyLocked(password.Normalize(s.cfg.Length, classes))
}

// Copy hands the current password to the clipboard. Failures are logged and
// returned but not retried.
func (s *Session) Copy(ctx context.Context) error {
	s.mu.Lock()
	value := s.current.Value
	clip := s.clip
	s.mu.Unlock()

	if clip == nil {
		return ErrNoClipboard
	}
	if value == "" {
		return ErrNothingToCopy
	}

	if err := clip.WriteText(ctx, value); err != nil {
		s.logger.Warn("failed to copy password", "error", err)
		return err
	}

	s.mu.Lock()
	if s.current.Value == value {
		s.copiedAt = s.now()
	}
	s.mu.Unlock()
	return nil
}

func (s *Session) applyLocked(cfg password.GenerationConfig) (State, error) {
	if cfg == s.cfg && !s.needsClass {
		return s.stateLocked(), nil
	}
	s.cfg = cfg
	err := s.regenerateLocked()
	return s.stateLocked(), err
}

func (s *Session) regenerateLocked() error {
	generated, err := s.gen.GenerateConfig(s.cfg)
	if err != nil {
		if errors.Is(err, password.ErrEmptyAlphabet) {
			s.needsClass = true
			s.logger.Warn("generation skipped", "reason", err)
		} else {
			s.logger.Error("generation failed", "error", err)
		}
		return err
	}

	s.current = generated
	s.strength = password.Evaluate(generated.Value)
	s.needsClass = false
	s.copiedAt = time.Time{}
	return nil
}

func (s *Session) stateLocked() State {
	return State{
		Config:     s.cfg,
		Password:   s.current.Value,
		Strength:   s.strength,
		NeedsClass: s.needsClass,
		Copied:     !s.copiedAt.IsZero() && s.now().Sub(s.copiedAt) < s.copiedWindow,
	}
}
