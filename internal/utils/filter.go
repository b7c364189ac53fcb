package utils

import (
	"unicode"
)

// IsValidInput reports whether a prefix looks like the start of a
// method or constant name. Identifier runes plus the trailing `?`,
// `!` and `=` method suffixes pass; anything else (operators, pasted
// punctuation) is filtered out before hitting the resolver.
func IsValidInput(prefix string) bool {
	if prefix == "" {
		return false
	}
	runes := []rune(prefix)
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			continue
		}
		// Suffix runes are only valid in final position.
		if (r == '?' || r == '!' || r == '=') && i == len(runes)-1 {
			continue
		}
		return false
	}
	// Names never start with a digit or a suffix rune.
	first := runes[0]
	return unicode.IsLetter(first) || first == '_'
}
