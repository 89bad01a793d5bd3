package services

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/logger"
	"github.com/custodia-labs/khareeta/internal/textmatch"
)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithQueryConfig sets caps, weights and stop words.
func WithQueryConfig(cfg domain.QueryConfig) SessionOption {
	return func(s *Session) {
		s.cfg = cfg.WithDefaults()
	}
}

// WithMissionTemplates replaces the default mission templates.
func WithMissionTemplates(templates []domain.MissionTemplate) SessionOption {
	return func(s *Session) {
		s.templates = templates
	}
}

// WithSeedFunc replaces StableSeed for point quizzes.
func WithSeedFunc(fn SeedFunc) SessionOption {
	return func(s *Session) {
		if fn != nil {
			s.seed = fn
		}
	}
}

// WithRandom sets the function used to pick random facts.
// It must return a value in [0, n).
func WithRandom(intN func(n int) int) SessionOption {
	return func(s *Session) {
		if intN != nil {
			s.intN = intN
		}
	}
}

// indexedPoint is a point with its cached normalized searchable text.
type indexedPoint struct {
	point      domain.PointOfInterest
	normalized string
}

// Session is the query session of one lesson scope: the fact index,
// the points, the last answer, visits, missions and point quiz answers.
//
// A Session is not safe for concurrent use; KnowledgeService guards it.
type Session struct {
	id        string
	cfg       domain.QueryConfig
	legend    *domain.Legend
	templates []domain.MissionTemplate
	seed      SeedFunc
	intN      func(n int) int

	tokenizer *textmatch.Tokenizer
	scorer    textmatch.Scorer

	facts     []domain.IndexedFact
	points    []indexedPoint
	pointByID map[string]int
	missions  []domain.Mission

	state    domain.SessionState
	last     *domain.QueryResult
	visited  []string
	tracker  *MissionTracker
	answered map[string]domain.PointQuizAnswer
}

// NewSession builds a session over lessons.
func NewSession(lessons []domain.LessonRecord, legend *domain.Legend, opts ...SessionOption) *Session {
	if legend == nil {
		legend = domain.NewLegend(domain.DefaultCategories())
	}
	s := &Session{
		cfg:       domain.DefaultQueryConfig(),
		legend:    legend,
		templates: domain.DefaultMissionTemplates(),
		seed:      StableSeed,
		intN:      rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tokenizer = textmatch.NewTokenizer(s.cfg.StopWords, s.cfg.MinTokenLength)
	s.scorer = textmatch.Scorer{PerToken: s.cfg.PerTokenWeight, WholePhrase: s.cfg.WholePhraseBonus}
	s.ResetScope(lessons)
	return s
}

// ResetScope rebuilds the index for lessons and clears all session state:
// last answer, visits, mission completion and quiz answers.
func (s *Session) ResetScope(lessons []domain.LessonRecord) {
	logger.Section("Scope Reset")

	s.id = uuid.NewString()
	s.facts = BuildIndex(lessons, s.legend)

	all := domain.Points(lessons)
	s.points = make([]indexedPoint, len(all))
	s.pointByID = make(map[string]int, len(all))
	for i, p := range all {
		s.points[i] = indexedPoint{point: p, normalized: textmatch.Normalize(p.SearchableText())}
		if _, dup := s.pointByID[p.ID]; !dup {
			s.pointByID[p.ID] = i
		}
	}
	s.missions = BuildMissions(all, s.templates)

	s.state = domain.SessionIdle
	s.last = nil
	s.visited = nil
	s.tracker = NewMissionTracker()
	s.answered = make(map[string]domain.PointQuizAnswer)

	logger.Debug("Session %s: %d facts, %d points, %d missions",
		s.id, len(s.facts), len(s.points), len(s.missions))
}

// ID identifies the session. It changes on every scope reset.
func (s *Session) ID() string {
	return s.id
}

// State returns the query state.
func (s *Session) State() domain.SessionState {
	return s.state
}

// Query ranks facts and related points without touching session state.
func (s *Session) Query(query string) domain.QueryResult {
	q := s.tokenizer.Parse(query)
	logger.Debug("Query %q: tokens=%v", query, q.Tokens)
	if !q.Searchable() {
		return domain.NewEmptyResult(query, domain.OutcomeNoTokens)
	}

	facts := textmatch.Rank(s.facts, func(f domain.IndexedFact) int {
		return s.scorer.ScoreQuery(f.NormalizedText, q)
	}, s.cfg.FactResultCap)
	points := s.rankPoints(q, s.cfg.RelatedPointCap)

	result := domain.NewEmptyResult(query, domain.OutcomeNoMatches)
	result.Tokens = q.Tokens
	for _, r := range facts {
		result.MatchedFacts = append(result.MatchedFacts, domain.ScoredFact{IndexedFact: r.Item, Score: r.Score})
	}
	for _, r := range points {
		result.RelatedPoints = append(result.RelatedPoints, r.point)
	}
	if !result.Empty() {
		result.Outcome = domain.OutcomeAnswered
	}

	logger.Debug("Scored %d facts, %d points: %d facts, %d points matched",
		len(s.facts), len(s.points), len(result.MatchedFacts), len(result.RelatedPoints))
	return result
}

// Ask answers a query and remembers it as the last answer.
// Queries without searchable tokens leave the session unchanged.
func (s *Session) Ask(query string) domain.QueryResult {
	result := s.Query(query)
	s.remember(result)
	return result
}

func (s *Session) remember(result domain.QueryResult) {
	if result.Outcome == domain.OutcomeNoTokens {
		return
	}
	s.last = &result
	s.state = domain.SessionAnswered
}

// LastAnswer returns the last remembered answer.
func (s *Session) LastAnswer() (domain.QueryResult, bool) {
	if s.last == nil {
		return domain.QueryResult{}, false
	}
	return *s.last, true
}

// SearchPoints ranks points directly, capped at the direct search cap.
func (s *Session) SearchPoints(query string) []domain.ScoredPoint {
	q := s.tokenizer.Parse(query)
	if !q.Searchable() {
		return []domain.ScoredPoint{}
	}
	ranked := s.rankPoints(q, s.cfg.DirectSearchCap)
	out := make([]domain.ScoredPoint, len(ranked))
	for i, r := range ranked {
		out[i] = domain.ScoredPoint{Point: r.point, Score: r.score}
	}
	return out
}

type scoredPoint struct {
	point domain.PointOfInterest
	score int
}

func (s *Session) rankPoints(q textmatch.Query, limit int) []scoredPoint {
	ranked := textmatch.Rank(s.points, func(p indexedPoint) int {
		return s.scorer.ScoreQuery(p.normalized, q)
	}, limit)
	out := make([]scoredPoint, len(ranked))
	for i, r := range ranked {
		out[i] = scoredPoint{point: r.Item.point, score: r.Score}
	}
	return out
}

// RandomFact answers with one random fact and its linked point.
func (s *Session) RandomFact() domain.QueryResult {
	if len(s.facts) == 0 {
		return domain.NewEmptyResult(domain.RandomFactQuery, domain.OutcomeNoMatches)
	}
	fact := s.facts[s.intN(len(s.facts))]

	result := domain.NewEmptyResult(domain.RandomFactQuery, domain.OutcomeAnswered)
	result.MatchedFacts = append(result.MatchedFacts, domain.ScoredFact{IndexedFact: fact})
	if p, ok := s.lookup(fact.LinkedPointID); ok {
		result.RelatedPoints = append(result.RelatedPoints, p)
	}
	s.remember(result)
	return result
}

// Facts returns the fact index in build order.
func (s *Session) Facts() []domain.IndexedFact {
	out := make([]domain.IndexedFact, len(s.facts))
	copy(out, s.facts)
	return out
}

// Points returns the scope's points in dataset order.
func (s *Session) Points() []domain.PointOfInterest {
	out := make([]domain.PointOfInterest, len(s.points))
	for i, p := range s.points {
		out[i] = p.point
	}
	return out
}

// Point returns a point by id.
func (s *Session) Point(id string) (domain.PointOfInterest, error) {
	p, ok := s.lookup(id)
	if !ok {
		return domain.PointOfInterest{}, fmt.Errorf("%w: %s", domain.ErrUnknownPoint, id)
	}
	return p, nil
}

func (s *Session) lookup(id string) (domain.PointOfInterest, bool) {
	if id == "" {
		return domain.PointOfInterest{}, false
	}
	i, ok := s.pointByID[id]
	if !ok {
		return domain.PointOfInterest{}, false
	}
	return s.points[i].point, true
}

// RecordVisit adds a point to the visited set and checks missions.
// Visiting a point twice records it once.
func (s *Session) RecordVisit(pointID string) (domain.VisitResult, error) {
	if _, ok := s.lookup(pointID); !ok {
		return domain.VisitResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownPoint, pointID)
	}

	first := true
	for _, id := range s.visited {
		if id == pointID {
			first = false
			break
		}
	}
	if first {
		s.visited = append(s.visited, pointID)
	}

	completed := s.CheckMissions()
	result := domain.VisitResult{
		PointID:    pointID,
		FirstVisit: first,
		Visited:    len(s.visited),
		Completed:  completed,
	}
	for _, m := range completed {
		result.Awarded += m.Reward
	}
	logger.Debug("Visit %s: first=%t visited=%d completed=%d", pointID, first, result.Visited, len(completed))
	return result, nil
}

// CheckMissions evaluates missions against the visited set and returns
// the missions completed by this call.
func (s *Session) CheckMissions() []domain.Mission {
	completed := s.tracker.Check(s.missions, s.visitedPoints())
	if completed == nil {
		return []domain.Mission{}
	}
	return completed
}

// Visited returns the visited point ids in visit order.
func (s *Session) Visited() []string {
	out := make([]string, len(s.visited))
	copy(out, s.visited)
	return out
}

// visitedPoints resolves visited ids; unknown ids are skipped.
func (s *Session) visitedPoints() []domain.PointOfInterest {
	out := make([]domain.PointOfInterest, 0, len(s.visited))
	for _, id := range s.visited {
		if p, ok := s.lookup(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Missions returns the scope's missions with visit progress.
func (s *Session) Missions() []domain.MissionStatus {
	return s.tracker.Statuses(s.missions, s.visitedPoints())
}

// PointQuiz builds the category quiz for a point.
func (s *Session) PointQuiz(pointID string) (domain.PointQuiz, error) {
	p, err := s.Point(pointID)
	if err != nil {
		return domain.PointQuiz{}, err
	}
	return domain.PointQuiz{
		PointID:    p.ID,
		PointName:  p.Name,
		CorrectKey: p.Type,
		Options:    PickOptions(p.Type, s.legend.Keys(), s.seed(p.SeedKey())),
	}, nil
}

// AnswerPointQuiz records the first answer to a point's quiz.
// A correct answer earns domain.PointQuizReward.
func (s *Session) AnswerPointQuiz(pointID, choice string) (domain.PointQuizAnswer, error) {
	p, err := s.Point(pointID)
	if err != nil {
		return domain.PointQuizAnswer{}, err
	}
	if prev, ok := s.answered[pointID]; ok {
		return prev, fmt.Errorf("%w: %s", domain.ErrAlreadyAnswered, pointID)
	}

	answer := domain.PointQuizAnswer{
		PointID: pointID,
		Choice:  choice,
		Correct: choice == p.Type,
	}
	if answer.Correct {
		answer.Awarded = domain.PointQuizReward
	}
	s.answered[pointID] = answer
	return answer, nil
}
