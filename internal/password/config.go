package password

import (
	"errors"
	"strconv"
	"strings"
)

const (
	MinLength     = 4
	MaxLength     = 50
	DefaultLength = 12
)

// errInvalidLengthInput marks textual length input that is not a number.
// ParseLength recovers from it by falling back to MinLength.
var errInvalidLengthInput = errors.New("length input is not a number")

// GenerationConfig describes one password request.
type GenerationConfig struct {
	Length  int
	Classes ClassSet
}

// DefaultConfig returns 12 characters with every class enabled.
func DefaultConfig() GenerationConfig {
	return GenerationConfig{Length: DefaultLength, Classes: AllClassSet}
}

// Normalize clamps length into [MinLength, MaxLength]. Classes pass through
// unchanged, including the empty set.
func Normalize(length int, classes ClassSet) GenerationConfig {
	return GenerationConfig{Length: clampLength(length), Classes: classes}
}

// NormalizeInput is Normalize for textual length input, as typed by a user.
func NormalizeInput(raw string, classes ClassSet) GenerationConfig {
	return Normalize(ParseLength(raw), classes)
}

// ParseLength converts raw input to a length within bounds. It never fails.
// Only the leading integer counts, so "45.5" and "12abc" read as 45 and 12.
// Input without leading digits becomes MinLength, and numbers too large for
// an int resolve to the bound on their side.
func ParseLength(raw string) int {
	n, err := parseLength(raw)
	if err != nil {
		return MinLength
	}
	return clampLength(n)
}

func parseLength(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, errInvalidLengthInput
	}

	n, err := strconv.Atoi(raw[:end])
	if errors.Is(err, strconv.ErrRange) {
		if raw[0] == '-' {
			return MinLength, nil
		}
		return MaxLength, nil
	}
	return n, err
}

func clampLength(n int) int {
	return max(MinLength, min(MaxLength, n))
}
