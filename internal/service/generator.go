package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vaultpass/passmate/internal/model"
	"github.com/vaultpass/passmate/internal/password"
)

const (
	DefaultCount = 1
	MaxCount     = 20
)

var (
	ErrNoCharacterTypes = errors.New("at least one character type must be selected")
	ErrPasswordRequired = errors.New("password is required")
	ErrCountTooLarge    = fmt.Errorf("count must be at most %d", MaxCount)
)

// AuditRecorder stores generation events.
type AuditRecorder interface {
	Record(ctx context.Context, event *model.GenerationEvent) error
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen           *password.Generator
	audit         AuditRecorder
	defaultLength int
	logger        *slog.Logger
}

// NewGeneratorService creates a new GeneratorService. audit may be nil.
func NewGeneratorService(gen *password.Generator, audit AuditRecorder, defaultLength int, logger *slog.Logger) *GeneratorService {
	if gen == nil {
		gen = password.NewGenerator(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeneratorService{
		gen:           gen,
		audit:         audit,
		defaultLength: password.Normalize(defaultLength, 0).Length,
		logger:        logger,
	}
}

// Generate produces one or more passwords for the given request. Length is
// clamped into the allowed range rather than rejected.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest) (model.GenerateResponse, error) {
	count := req.Count
	if count <= 0 {
		count = DefaultCount
	}
	if count > MaxCount {
		return model.GenerateResponse{}, ErrCountTooLarge
	}

	length := req.Length
	if length == 0 {
		length = s.defaultLength
	}
	cfg := password.Normalize(length, classesFromRequest(req))

	passwords := make([]model.GeneratedPassword, 0, count)
	for i := 0; i < count; i++ {
		generated, err := s.gen.GenerateConfig(cfg)
		if err != nil {
			if errors.Is(err, password.ErrEmptyAlphabet) {
				return model.GenerateResponse{}, ErrNoCharacterTypes
			}
			return model.GenerateResponse{}, err
		}

		strength := password.Evaluate(generated.Value)
		passwords = append(passwords, model.GeneratedPassword{
			Password: generated.Value,
			Score:    strength.Score,
			Label:    string(strength.Label),
		})
		s.record(ctx, req.Subject, cfg, strength)
	}

	first := passwords[0]
	return model.GenerateResponse{
		Password:  first.Password,
		Passwords: passwords,
		Length:    cfg.Length,
		Classes:   cfg.Classes.Names(),
		Score:     first.Score,
		Label:     first.Label,
	}, nil
}

// Strength evaluates a caller-supplied password.
func (s *GeneratorService) Strength(req model.StrengthRequest) (model.StrengthResponse, error) {
	if req.Password == "" {
		return model.StrengthResponse{}, ErrPasswordRequired
	}
	a := password.Evaluate(req.Password)
	return model.StrengthResponse{Score: a.Score, Label: string(a.Label)}, nil
}

// Classes describes the available character classes and length bounds.
func (s *GeneratorService) Classes() model.ClassesResponse {
	all := password.AllClasses()
	classes := make([]model.ClassInfo, len(all))
	for i, c := range all {
		classes[i] = model.ClassInfo{Name: c.String(), Characters: c.Chars()}
	}
	return model.ClassesResponse{
		Classes:       classes,
		MinLength:     password.MinLength,
		MaxLength:     password.MaxLength,
		DefaultLength: s.defaultLength,
	}
}

// record writes an audit event. Failures are logged and never fail the request.
func (s *GeneratorService) record(ctx context.Context, subject string, cfg password.GenerationConfig, a password.StrengthAssessment) {
	if s.audit == nil {
		return
	}
	event := &model.GenerationEvent{
		Subject: subject,
		Length:  cfg.Length,
		Classes: cfg.Classes.String(),
		Score:   a.Score,
		Label:   string(a.Label),
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.logger.Warn("failed to record generation event", "error", err)
	}
}

func classesFromRequest(req model.GenerateRequest) password.ClassSet {
	var classes password.ClassSet
	if boolOrDefault(req.Uppercase, true) {
		classes = classes.With(password.Uppercase)
	}
	if boolOrDefault(req.Lowercase, true) {
		classes = classes.With(password.Lowercase)
	}
	if boolOrDefault(req.Numbers, true) {
		classes = classes.With(password.Numbers)
	}
	if boolOrDefault(req.Symbols, true) {
		classes = classes.With(password.Symbols)
	}
	return classes
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
