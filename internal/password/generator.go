package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"
)

// maxAlphabetSize is the largest alphabet a single random byte can index.
const maxAlphabetSize = 256

var (
	ErrEmptyAlphabet    = errors.New("at least one character type must be selected")
	ErrInvalidLength    = fmt.Errorf("password length must be between 1 and %d", MaxLength)
	ErrAlphabetTooLarge = errors.New("alphabet must not exceed 256 characters")
	ErrInvalidAlphabet  = errors.New("alphabet must contain only ASCII characters")
)

// GeneratedPassword is a password paired with the configuration that produced it.
type GeneratedPassword struct {
	Value  string
	Config GenerationConfig
}

// Generator draws passwords from a random source. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	src io.Reader
}

// NewGenerator returns a Generator reading from src, or from crypto/rand when src is nil.
func NewGenerator(src io.Reader) *Generator {
	if src == nil {
		src = rand.Reader
	}
	return &Generator{src: src}
}

// Generate returns length characters drawn independently and uniformly from alphabet.
// The alphabet must be ASCII and length must lie in [1, MaxLength].
//
// Indices come from single random bytes with rejection sampling: a byte at or
// above the largest multiple of len(alphabet) that fits in 256 is discarded, so
// no index is favoured by modulo reduction.
func (g *Generator) Generate(alphabet string, length int) (string, error) {
	if alphabet == "" {
		return "", ErrEmptyAlphabet
	}
	if length < 1 || length > MaxLength {
		return "", ErrInvalidLength
	}
	if len(alphabet) > maxAlphabetSize {
		return "", ErrAlphabetTooLarge
	}
	if !isASCII(alphabet) {
		return "", ErrInvalidAlphabet
	}

	size := len(alphabet)
	limit := maxAlphabetSize - maxAlphabetSize%size

	result := make([]byte, 0, length)
	// Over-read a little so most calls need a single read.
	buf := make([]byte, length+length/4+8)

	g.mu.Lock()
	defer g.mu.Unlock()

	for len(result) < length {
		if _, err := io.ReadFull(g.src, buf); err != nil {
			return "", fmt.Errorf("reading random source: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			result = append(result, alphabet[int(b)%size])
			if len(result) == length {
				break
			}
		}
	}

	return string(result), nil
}

// GenerateConfig builds the alphabet for cfg and draws a password of cfg.Length.
func (g *Generator) GenerateConfig(cfg GenerationConfig) (GeneratedPassword, error) {
	value, err := g.Generate(BuildAlphabet(cfg.Classes), cfg.Length)
	if err != nil {
		return GeneratedPassword{}, err
	}
	return GeneratedPassword{Value: value, Config: cfg}, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
