package parser

import (
	"strings"

	"github.com/adverify/supplyval/internal/model"
)

// misspellDistance is the maximum Levenshtein distance at which a token is
// diagnosed as a typo of DIRECT or RESELLER rather than an arbitrary value.
const misspellDistance = 2

// IsMisspelledRelationship reports whether token is close enough to DIRECT
// or RESELLER to be diagnosed as a misspelling. Exact matches (any case) are
// not misspellings.
func IsMisspelledRelationship(token string) bool {
	upper := strings.ToUpper(strings.TrimSpace(token))
	if _, ok := model.ParseRelationship(upper); ok {
		return false
	}
	return levenshteinDistance(upper, string(model.RelationshipDirect)) <= misspellDistance ||
		levenshteinDistance(upper, string(model.RelationshipReseller)) <= misspellDistance
}

// levenshteinDistance computes the edit distance between two strings using
// the two-row dynamic programming formulation.
func levenshteinDistance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := 0; j <= len(br); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(br)]
}
