package password

import (
	"errors"
	"fmt"
	"strings"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

var ErrUnknownClass = errors.New("unknown character class")

// CharacterClass is a named group of characters that can be enabled or disabled.
type CharacterClass uint8

const (
	Uppercase CharacterClass = 1 << iota
	Lowercase
	Numbers
	Symbols
)

// canonicalOrder is the order classes contribute to an alphabet.
var canonicalOrder = [...]CharacterClass{Uppercase, Lowercase, Numbers, Symbols}

// AllClasses returns every class in canonical order.
func AllClasses() []CharacterClass {
	return canonicalOrder[:]
}

// Chars returns the literal character set of the class.
func (c CharacterClass) Chars() string {
	switch c {
	case Uppercase:
		return uppercaseChars
	case Lowercase:
		return lowercaseChars
	case Numbers:
		return numberChars
	case Symbols:
		return symbolChars
	}
	return ""
}

func (c CharacterClass) String() string {
	switch c {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	case Numbers:
		return "numbers"
	case Symbols:
		return "symbols"
	}
	return fmt.Sprintf("CharacterClass(%d)", uint8(c))
}

// ParseClass resolves a class name. Singular forms and common abbreviations are accepted.
func ParseClass(name string) (CharacterClass, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uppercase", "upper", "u":
		return Uppercase, nil
	case "lowercase", "lower", "l":
		return Lowercase, nil
	case "numbers", "number", "digits", "n":
		return Numbers, nil
	case "symbols", "symbol", "s":
		return Symbols, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, name)
}

// ClassSet is an immutable set of character classes.
type ClassSet uint8

// AllClassSet has every class enabled, the default configuration.
const AllClassSet = ClassSet(Uppercase | Lowercase | Numbers | Symbols)

// NewClassSet builds a set from the given classes.
func NewClassSet(classes ...CharacterClass) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s = s.With(c)
	}
	return s
}

// ParseClasses builds a set from class names.
func ParseClasses(names []string) (ClassSet, error) {
	var s ClassSet
	for _, name := range names {
		c, err := ParseClass(name)
		if err != nil {
			return 0, err
		}
		s = s.With(c)
	}
	return s, nil
}

// Has reports whether c is enabled.
func (s ClassSet) Has(c CharacterClass) bool {
	return s&ClassSet(c) != 0
}

// With returns a copy of s with c enabled.
func (s ClassSet) With(c CharacterClass) ClassSet {
	return s | ClassSet(c)&AllClassSet
}

// Without returns a copy of s with c disabled.
func (s ClassSet) Without(c CharacterClass) ClassSet {
	return s &^ ClassSet(c)
}

// Len returns the number of enabled classes.
func (s ClassSet) Len() int {
	n := 0
	for _, c := range canonicalOrder {
		if s.Has(c) {
			n++
		}
	}
	return n
}

func (s ClassSet) IsEmpty() bool {
	return s&AllClassSet == 0
}

// Classes returns the enabled classes in canonical order.
func (s ClassSet) Classes() []CharacterClass {
	out := make([]CharacterClass, 0, len(canonicalOrder))
	for _, c := range canonicalOrder {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the enabled class names in canonical order.
func (s ClassSet) Names() []string {
	classes := s.Classes()
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.String()
	}
	return names
}

func (s ClassSet) String() string {
	return strings.Join(s.Names(), ",")
}

// BuildAlphabet concatenates the character sets of the enabled classes in
// canonical order. An empty set yields an empty alphabet.
func BuildAlphabet(classes ClassSet) string {
	var sb strings.Builder
	for _, c := range classes.Classes() {
		sb.WriteString(c.Chars())
	}
	return sb.String()
}

// CanDisable reports whether target may be switched off. It is false only
// when target is the last enabled class.
func CanDisable(classes ClassSet, target CharacterClass) bool {
	return !(classes.Len() == 1 && classes.Has(target))
}

// Toggle flips target. Switching off the last enabled class is rejected and
// the set is returned unchanged with ok == false.
func Toggle(classes ClassSet, target CharacterClass) (ClassSet, bool) {
	if classes.Has(target) {
		if !CanDisable(classes, target) {
			return classes, false
		}
		return classes.Without(target), true
	}
	return classes.With(target), true
}
