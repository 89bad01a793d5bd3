package textmatch

import (
	"strings"
	"unicode/utf8"
)

// Tokenizer splits normalized text into searchable terms.
type Tokenizer struct {
	stopWords map[string]struct{}
	minLength int
}

// NewTokenizer creates a tokenizer dropping stopWords and tokens shorter
// than minLength runes. Stop words are normalized so that any spelling
// variant of a stop word is dropped too.
func NewTokenizer(stopWords []string, minLength int) *Tokenizer {
	if minLength < 1 {
		minLength = 1
	}
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		if n := Normalize(w); n != "" {
			set[n] = struct{}{}
		}
	}
	return &Tokenizer{stopWords: set, minLength: minLength}
}

// Tokenize normalizes text and returns its terms in order.
// Duplicates are kept because scoring weighs repeated tokens.
// An empty result means the text has no searchable query.
func (t *Tokenizer) Tokenize(text string) []string {
	return t.tokens(Normalize(text))
}

// IsStopWord reports whether the normalized form of word is a stop word.
func (t *Tokenizer) IsStopWord(word string) bool {
	_, ok := t.stopWords[Normalize(word)]
	return ok
}

func (t *Tokenizer) tokens(normalized string) []string {
	if normalized == "" {
		return []string{}
	}
	fields := strings.Split(normalized, " ")
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < t.minLength {
			continue
		}
		if _, stop := t.stopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Query is a parsed free-text query.
type Query struct {
	// Raw is the query as typed.
	Raw string

	// Normalized is the whole query normalized, used for the phrase bonus.
	Normalized string

	// Tokens are the searchable terms.
	Tokens []string
}

// Searchable reports whether the query has at least one token.
func (q Query) Searchable() bool {
	return len(q.Tokens) > 0
}

// Parse normalizes and tokenizes a raw query.
func (t *Tokenizer) Parse(raw string) Query {
	n := Normalize(raw)
	return Query{Raw: raw, Normalized: n, Tokens: t.tokens(n)}
}
