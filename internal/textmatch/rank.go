package textmatch

import "slices"

// Ranked is a candidate with its score.
type Ranked[T any] struct {
	Item  T
	Score int
}

// Rank scores every candidate, drops zero scores, sorts by score descending
// with ties kept in candidate order, and truncates to limit.
// A limit of zero or less means no truncation.
func Rank[T any](candidates []T, score func(T) int, limit int) []Ranked[T] {
	ranked := make([]Ranked[T], 0, len(candidates))
	for _, c := range candidates {
		if s := score(c); s > 0 {
			ranked = append(ranked, Ranked[T]{Item: c, Score: s})
		}
	}
	slices.SortStableFunc(ranked, func(a, b Ranked[T]) int {
		return b.Score - a.Score
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Items returns the ranked items without their scores.
func Items[T any](ranked []Ranked[T]) []T {
	out := make([]T, len(ranked))
	for i, r := range ranked {
		out[i] = r.Item
	}
	return out
}
