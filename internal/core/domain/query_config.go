package domain

// QueryConfig holds the tunable parameters of the knowledge query engine.
type QueryConfig struct {
	// FactResultCap caps MatchedFacts.
	FactResultCap int `json:"factResultCap"`

	// RelatedPointCap caps RelatedPoints.
	RelatedPointCap int `json:"relatedPointCap"`

	// DirectSearchCap caps direct point search results.
	DirectSearchCap int `json:"directSearchCap"`

	// WholePhraseBonus is added when the whole normalized query is
	// a substring of the candidate text. It must exceed PerTokenWeight.
	WholePhraseBonus int `json:"wholePhraseBonus"`

	// PerTokenWeight is added for every query token found in the candidate.
	PerTokenWeight int `json:"perTokenWeight"`

	// MinTokenLength is the shortest token kept, in runes.
	MinTokenLength int `json:"minTokenLength"`

	// StopWords are dropped from queries. Compared after normalization.
	StopWords []string `json:"stopWords"`
}

// DefaultStopWords is the closed set of Arabic function words dropped from queries.
func DefaultStopWords() []string {
	return []string{
		"من", "في", "على", "عن", "الى", "إلى", "ما", "ماذا", "ايه", "اي", "هو",
		"هي", "ال", "اللي", "ليه", "ازاي", "كم", "أين", "فين", "ده", "دي",
	}
}

// DefaultQueryConfig returns the built-in query configuration.
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		FactResultCap:    6,
		RelatedPointCap:  4,
		DirectSearchCap:  8,
		WholePhraseBonus: 4,
		PerTokenWeight:   2,
		MinTokenLength:   2,
		StopWords:        DefaultStopWords(),
	}
}

// WithDefaults fills zero or negative fields from DefaultQueryConfig.
// Weights that break ValidWeights are replaced by the default pair.
func (c QueryConfig) WithDefaults() QueryConfig {
	d := DefaultQueryConfig()
	if c.FactResultCap <= 0 {
		c.FactResultCap = d.FactResultCap
	}
	if c.RelatedPointCap <= 0 {
		c.RelatedPointCap = d.RelatedPointCap
	}
	if c.DirectSearchCap <= 0 {
		c.DirectSearchCap = d.DirectSearchCap
	}
	if c.WholePhraseBonus <= 0 {
		c.WholePhraseBonus = d.WholePhraseBonus
	}
	if c.PerTokenWeight <= 0 {
		c.PerTokenWeight = d.PerTokenWeight
	}
	if c.MinTokenLength <= 0 {
		c.MinTokenLength = d.MinTokenLength
	}
	if c.StopWords == nil {
		c.StopWords = d.StopWords
	}
	if !c.ValidWeights() {
		c.WholePhraseBonus = d.WholePhraseBonus
		c.PerTokenWeight = d.PerTokenWeight
	}
	return c
}

// ValidWeights reports whether a whole-phrase match outweighs a single token.
func (c QueryConfig) ValidWeights() bool {
	return c.WholePhraseBonus > c.PerTokenWeight
}
