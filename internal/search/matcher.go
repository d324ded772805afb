package search

import (
	"regexp"
	"strings"

	"github.com/haystackd/haystack/internal/searchtypes"
)

// Pure functions for line-level matching. These have no side effects
// and depend only on their inputs, making them ideal for property-based
// testing.

// IsIdentifierChar returns true if the byte can appear in an identifier
// (alphanumeric, underscore, or dollar sign).
func IsIdentifierChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') || b == '_' || b == '$'
}

// isBoundedAt checks that the query occurrence starting at pos is not
// adjacent to an identifier character on either side.
func isBoundedAt(line string, pos, length int) bool {
	if pos > 0 && IsIdentifierChar(line[pos-1]) {
		return false
	}
	end := pos + length
	if end < len(line) && IsIdentifierChar(line[end]) {
		return false
	}
	return true
}

// MatchLine returns the 0-based start columns of every occurrence of
// query in line, left to right. Substring mode allows overlapping
// matches (the search resumes at i+1 after a hit at i). Word mode
// returns only boundary-delimited, non-overlapping occurrences.
// Matching is case-sensitive. An empty query yields no matches.
func MatchLine(line, query string, mode searchtypes.Mode) []int {
	if len(query) == 0 || len(query) > len(line) {
		return nil
	}

	var cols []int
	offset := 0
	for {
		idx := strings.Index(line[offset:], query)
		if idx < 0 {
			break
		}
		pos := offset + idx
		if mode == searchtypes.ModeWord {
			if isBoundedAt(line, pos, len(query)) {
				cols = append(cols, pos)
				offset = pos + len(query)
			} else {
				offset = pos + 1
			}
		} else {
			cols = append(cols, pos)
			offset = pos + 1
		}
	}
	return cols
}

// EscapeLiteral escapes regex metacharacters so the result matches the
// input string literally when compiled into a pattern.
func EscapeLiteral(s string) string {
	return regexp.QuoteMeta(s)
}
