package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler turns a field name such as "first_name" or "postCode2" into
// a display label ("First Name", "Post Code 2").
func DefaultLabeler(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})

	segments := make([]string, 0, len(words))
	for _, word := range words {
		for _, part := range splitCamel(word) {
			segments = append(segments, titleCase(part))
		}
	}
	return strings.Join(segments, " ")
}

func splitCamel(word string) []string {
	runes := []rune(word)
	var (
		parts []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur))
		if boundary {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
