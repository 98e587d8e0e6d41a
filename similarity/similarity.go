// Package similarity provides edit-distance-based fuzzy string matching,
// used wherever a "did you mean" suggestion is produced.
package similarity

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Distance returns the Levenshtein edit distance between a and b, with
// substitution, insertion, and deletion all costing 1.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Score returns the normalized similarity of a and b in [0, 1], defined as
// (maxLen - distance) / maxLen over rune counts. Two empty strings score 1.
func Score(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1.0
	}
	return float64(longest-Distance(a, b)) / float64(longest)
}

// BestMatch returns the candidate most similar to target with a score of at
// least threshold. The boolean is false when no candidate qualifies.
func BestMatch(target string, candidates []string, threshold float64) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		if s := Score(target, c); s >= threshold && s > bestScore {
			best = c
			bestScore = s
		}
	}
	return best, best != ""
}
