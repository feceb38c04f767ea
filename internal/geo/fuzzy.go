package geo

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// BestMatch finds the candidate most similar to query by normalized edit
// distance. It returns false when no candidate reaches minScore (0-100).
func BestMatch(query string, candidates []string, minScore int) (string, int, bool) {
	best, bestScore := "", -1
	for _, candidate := range candidates {
		score := Similarity(query, candidate)
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}

	if bestScore < minScore {
		return "", 0, false
	}
	return best, bestScore, true
}

// Similarity is a case-insensitive edit-distance ratio on a 0-100 scale.
func Similarity(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 100
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}

	dist := levenshtein.ComputeDistance(a, b)
	return (longest - dist) * 100 / longest
}
