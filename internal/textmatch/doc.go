// Package textmatch implements the text matching primitives of the
// knowledge engine: normalization, tokenization, keyword scoring and
// stable ranking.
//
// Scoring is deliberately naive. A candidate earns a fixed weight for
// every query token it contains as a substring and a larger bonus when it
// contains the whole normalized query. There is no TF-IDF and no edit
// distance, so results stay predictable for children.
//
// Every function in this package is pure and safe for concurrent use.
package textmatch
