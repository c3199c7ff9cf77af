package openapi

import (
	"strings"
	"unicode"
)

// DefaultLabeler turns a property name such as "postal_code" or "firstName"
// into "Postal code" / "First name".
func DefaultLabeler(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return ""
	}
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	first := []rune(words[0])
	first[0] = unicode.ToUpper(first[0])
	words[0] = string(first)
	return strings.Join(words, " ")
}

func splitWords(name string) []string {
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ':' || r == '/' || unicode.IsSpace(r):
			flush()
			continue
		case i > 0 && isWordBoundary(runes[i-1], r):
			flush()
		}
		current = append(current, r)
	}
	flush()
	return words
}

func isWordBoundary(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	}
	return false
}
