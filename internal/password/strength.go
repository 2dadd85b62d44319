package password

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// StrengthLabel is the category shown next to a strength score.
type StrengthLabel string

const (
	Weak   StrengthLabel = "Weak"
	Medium StrengthLabel = "Medium"
	Strong StrengthLabel = "Strong"
)

const (
	MinScore = 0
	MaxScore = 100

	mediumThreshold = 50
	strongThreshold = 90
)

// lettersThenDigits matches passwords like "summer2024".
var lettersThenDigits = regexp.MustCompile(`^[A-Za-z]+[0-9]+$`)

// StrengthAssessment is a heuristic indicator, not an entropy estimate.
type StrengthAssessment struct {
	Score int
	Label StrengthLabel
}

// Evaluate scores a password between 0 and 100.
//
// Points: length >= 8 (+20), length >= 12 (+10), lowercase (+10), uppercase
// (+15), digit (+15), any other character (+20), more than 6 distinct
// characters (+10). Penalties: letters followed only by digits (-10),
// "password" in any case (-20), "12345" (-20).
func Evaluate(pw string) StrengthAssessment {
	score := 0

	n := utf8.RuneCountInString(pw)
	if n >= 8 {
		score += 20
	}
	if n >= 12 {
		score += 10
	}

	var hasLower, hasUpper, hasDigit, hasOther bool
	distinct := make(map[rune]struct{}, n)
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasOther = true
		}
		distinct[r] = struct{}{}
	}
	if hasLower {
		score += 10
	}
	if hasUpper {
		score += 15
	}
	if hasDigit {
		score += 15
	}
	if hasOther {
		score += 20
	}
	if len(distinct) > 6 {
		score += 10
	}

	if lettersThenDigits.MatchString(pw) {
		score -= 10
	}
	if strings.Contains(strings.ToLower(pw), "password") {
		score -= 20
	}
	if strings.Contains(pw, "12345") {
		score -= 20
	}

	score = max(MinScore, min(MaxScore, score))
	return StrengthAssessment{Score: score, Label: LabelFor(score)}
}

// LabelFor maps a score to its label.
func LabelFor(score int) StrengthLabel {
	switch {
	case score < mediumThreshold:
		return Weak
	case score < strongThreshold:
		return Medium
	default:
		return Strong
	}
}
