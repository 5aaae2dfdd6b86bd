package model

import (
	"regexp"
	"strings"
	"unicode"
)

var wordSeparators = regexp.MustCompile(`[_\-\s]+`)

// Labeler turns a field name into display text.
type Labeler func(name string) string

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on underscores, dashes, spaces and camelCase or digit boundaries, then title
// cases every word.
func DefaultLabeler(name string) string {
	var words []string
	for _, chunk := range wordSeparators.Split(name, -1) {
		words = append(words, splitCamel(chunk)...)
	}
	for i, word := range words {
		words[i] = titleCase(word)
	}
	return strings.Join(words, " ")
}

func splitCamel(chunk string) []string {
	if chunk == "" {
		return nil
	}
	runes := []rune(chunk)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur))
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

func titleCase(word string) string {
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
