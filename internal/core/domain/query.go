package domain

// QueryOutcome distinguishes the ways a query can finish.
// None of them is an error.
type QueryOutcome string

const (
	// OutcomeNoTokens means the query had no searchable tokens
	// (empty, whitespace or stop-words only).
	OutcomeNoTokens QueryOutcome = "no_tokens"

	// OutcomeNoMatches means tokens were found but nothing scored.
	OutcomeNoMatches QueryOutcome = "no_matches"

	// OutcomeAnswered means at least one fact or point matched.
	OutcomeAnswered QueryOutcome = "answered"
)

// QueryResult is the transient answer to one query. It is never persisted.
type QueryResult struct {
	// Query is the raw query as asked.
	Query string `json:"query"`

	// Tokens are the searchable tokens derived from the query.
	Tokens []string `json:"tokens"`

	// Outcome tells empty-token results apart from no-match results.
	Outcome QueryOutcome `json:"outcome"`

	// MatchedFacts are ranked, capped at QueryConfig.FactResultCap.
	MatchedFacts []ScoredFact `json:"matchedFacts"`

	// RelatedPoints are ranked, capped at QueryConfig.RelatedPointCap.
	RelatedPoints []PointOfInterest `json:"relatedPoints"`
}

// Empty reports whether the result carries no facts and no points.
func (r QueryResult) Empty() bool {
	return len(r.MatchedFacts) == 0 && len(r.RelatedPoints) == 0
}

// NewEmptyResult returns an empty result for query with the given outcome.
func NewEmptyResult(query string, outcome QueryOutcome) QueryResult {
	return QueryResult{
		Query:         query,
		Tokens:        []string{},
		Outcome:       outcome,
		MatchedFacts:  []ScoredFact{},
		RelatedPoints: []PointOfInterest{},
	}
}

// SessionState is the state of a query session.
type SessionState string

const (
	// SessionIdle is the state before any answer and after empty queries.
	SessionIdle SessionState = "idle"

	// SessionAnswered is the state after a query produced a result.
	SessionAnswered SessionState = "answered"
)

// RandomFactQuery is the query label used for random fact answers.
const RandomFactQuery = "معلومة عشوائية"
