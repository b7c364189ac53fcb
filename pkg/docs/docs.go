// Package docs mines documentation for a symbol from the source text
// preceding its declaration. Only `#` comment blocks directly above
// the declaration count; a blank line ends the block.
package docs

import "strings"

// DeprecationMarker is the substring that flags a documented symbol
// as deprecated.
const DeprecationMarker = "@deprecated"

// Extract returns the comment block immediately above the declaration
// at declOffset, with comment leaders stripped. The second result is
// false when no documentation exists.
func Extract(source string, declOffset int) (string, bool) {
	if declOffset < 0 || declOffset > len(source) {
		return "", false
	}

	// Back up to the start of the declaration's own line.
	lineStart := strings.LastIndexByte(source[:declOffset], '\n') + 1

	var lines []string
	rest := source[:lineStart]
	for {
		if rest == "" {
			break
		}
		prevStart := strings.LastIndexByte(rest[:len(rest)-1], '\n') + 1
		line := strings.TrimSpace(strings.TrimSuffix(rest[prevStart:], "\n"))
		if !strings.HasPrefix(line, "#") {
			break
		}
		lines = append(lines, stripLeader(line))
		rest = rest[:prevStart]
	}
	if len(lines) == 0 {
		return "", false
	}

	// Collected bottom-up; restore source order.
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "\n"), true
}

// Deprecated reports whether a mined documentation block carries the
// deprecation marker.
func Deprecated(doc string) bool {
	return strings.Contains(doc, DeprecationMarker)
}

func stripLeader(line string) string {
	line = strings.TrimPrefix(line, "#")
	return strings.TrimPrefix(line, " ")
}
