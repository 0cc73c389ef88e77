package search

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Normalize lowercases and trims a raw ingredient or dish name before
// matching.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// Similarity returns a 0.0–1.0 confidence score between two strings
// using Levenshtein distance: 1.0 - distance/max(len(a), len(b)).
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// MatchesAny reports whether any expanded term is contained in the
// candidate text. Candidate is normalized before the containment test.
func MatchesAny(candidate string, terms []string) bool {
	text := Normalize(candidate)
	if text == "" {
		return false
	}
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
