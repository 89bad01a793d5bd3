package textmatch

import "strings"

// Scorer awards keyword overlap between a query and a candidate text.
type Scorer struct {
	// PerToken is added for each query token found in the haystack.
	PerToken int

	// WholePhrase is added when the whole normalized query is found.
	WholePhrase int
}

// Score returns the score of an already normalized haystack for the query.
// Zero means no match; callers exclude zero-score candidates.
func (s Scorer) Score(haystack string, tokens []string, whole string) int {
	if haystack == "" {
		return 0
	}
	score := 0
	for _, t := range tokens {
		if strings.Contains(haystack, t) {
			score += s.PerToken
		}
	}
	if whole != "" && strings.Contains(haystack, whole) {
		score += s.WholePhrase
	}
	return score
}

// ScoreQuery scores a normalized haystack against a parsed query.
func (s Scorer) ScoreQuery(haystack string, q Query) int {
	return s.Score(haystack, q.Tokens, q.Normalized)
}
