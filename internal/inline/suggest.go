package inline

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// minSimilarity is the Levenshtein similarity below which no suggestion is
// made.
const minSimilarity = 0.6

var levenshtein = metrics.NewLevenshtein()

// Suggest returns the candidate most similar to name, or "" when none is
// close enough. Ties go to the earlier candidate.
func Suggest(name string, candidates []string) string {
	best, bestScore := "", minSimilarity
	for _, c := range candidates {
		if c == name {
			continue
		}
		score := strutil.Similarity(name, c, levenshtein)
		if score > bestScore || (best == "" && score == bestScore) {
			best, bestScore = c, score
		}
	}
	return best
}
