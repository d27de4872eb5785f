package search

import "strings"

// Scoring constants. The thresholds and tier values are tuned against years
// of real catalog queries; change them and ranking changes everywhere.
const (
	substringBase  = 0.8
	substringBonus = 0.2
	prefixScore    = 0.7
	wordPrefix     = 0.75
	wordContains   = 0.65

	editDistanceWeight  = 0.6
	shortQueryLen       = 3
	shortQueryThreshold = 0.3
	longQueryThreshold  = 0.5
)

// Score computes a [0,1] similarity between a query and a candidate field.
// Tiers, best first: exact match, substring (scaled by coverage of the
// target), prefix, word-prefix, word-substring, then a thresholded
// normalized edit distance. Comparison is case-insensitive throughout.
func Score(query, target string) float64 {
	q := strings.ToLower(query)
	t := strings.ToLower(target)

	if q == "" || t == "" {
		return 0
	}
	if q == t {
		return 1
	}

	qLen := len([]rune(q))
	tLen := len([]rune(t))

	if strings.Contains(t, q) {
		// Shorter unmatched residual scores higher; q != t keeps this
		// strictly below 1.
		coverage := 1 - float64(tLen-qLen)/float64(tLen)
		return substringBase + substringBonus*coverage
	}
	if strings.HasPrefix(t, q) {
		return prefixScore
	}

	words := splitWords(t)
	for _, w := range words {
		if strings.HasPrefix(w, q) {
			return wordPrefix
		}
	}
	for _, w := range words {
		if strings.Contains(w, q) {
			return wordContains
		}
	}

	maxLen := qLen
	if tLen > maxLen {
		maxLen = tLen
	}
	similarity := 1 - float64(levenshtein(q, t))/float64(maxLen)

	threshold := longQueryThreshold
	if qLen <= shortQueryLen {
		threshold = shortQueryThreshold
	}
	if similarity > threshold {
		return similarity * editDistanceWeight
	}
	return 0
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '.'
	})
}

// levenshtein computes the edit distance with unit costs over the full
// dynamic-programming matrix.
func levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)

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
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(br)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
