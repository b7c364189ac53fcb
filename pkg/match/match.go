// Package match is the name-similarity oracle: a pure, deterministic
// predicate deciding whether a member name should be offered for a
// typed prefix. Exact case-sensitive prefix matches are always
// similar; the default matcher additionally accepts case-folded
// subsequence matches so `fbz` still finds `foo_baz`.
package match

import (
	"strings"

	"typesift/internal/utils"
)

// Matcher decides whether a candidate name is similar to the query
// prefix. Implementations must be pure functions of their two inputs
// and must return true for any exact case-sensitive prefix match.
type Matcher interface {
	Similar(name, prefix string) bool
}

// Default is the standard matcher: prefix first, then a case-folded
// in-order subsequence scan.
type Default struct{}

// PrefixOnly accepts exact case-sensitive prefix matches and nothing
// else. Useful for clients that do their own fuzzy filtering.
type PrefixOnly struct{}

// New picks the matcher for the configured mode.
func New(fuzzy bool) Matcher {
	if fuzzy {
		return Default{}
	}
	return PrefixOnly{}
}

func (Default) Similar(name, prefix string) bool {
	if strings.HasPrefix(name, prefix) {
		return true
	}
	return foldSubsequence(name, prefix)
}

func (PrefixOnly) Similar(name, prefix string) bool {
	return strings.HasPrefix(name, prefix)
}

// foldSubsequence reports whether every rune of pattern appears in
// name, in order, under case folding. An empty pattern matches
// vacuously (completion directly after the dot).
func foldSubsequence(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	pat := []rune(pattern)
	pi := 0
	for _, r := range name {
		if utils.EqualFold(r, pat[pi]) {
			pi++
			if pi == len(pat) {
				return true
			}
		}
	}
	return false
}
