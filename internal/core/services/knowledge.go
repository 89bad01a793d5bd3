package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/ports/driving"
	"github.com/custodia-labs/khareeta/internal/logger"
)

// Ensure KnowledgeService implements the interface.
var _ driving.KnowledgeService = (*KnowledgeService)(nil)

// Awarder receives points earned in a session. ProgressService implements it.
type Awarder interface {
	Award(ctx context.Context, points int) (domain.Progress, error)
}

// KnowledgeService serves queries over the active lesson scope.
//
// The session is rebuilt outside the lock and swapped in under the write
// lock, so readers never observe a partially built index. Rebuilds hold
// rebuildMu from snapshot to swap so concurrent rebuilds cannot interleave.
type KnowledgeService struct {
	rebuildMu sync.Mutex

	mu      sync.RWMutex
	dataset *domain.Dataset
	legend  *domain.Legend
	scope   string
	session *Session
	opts    []SessionOption
	awarder Awarder
}

// NewKnowledgeService creates a knowledge service over all lessons of dataset.
func NewKnowledgeService(dataset *domain.Dataset, opts ...SessionOption) *KnowledgeService {
	if dataset == nil {
		dataset = &domain.Dataset{}
	}
	legend := legendFor(dataset)
	return &KnowledgeService{
		dataset: dataset,
		legend:  legend,
		session: NewSession(dataset.Lessons, legend, opts...),
		opts:    opts,
	}
}

// SetAwarder sets the collaborator that receives mission and quiz rewards.
func (s *KnowledgeService) SetAwarder(a Awarder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awarder = a
}

func legendFor(dataset *domain.Dataset) *domain.Legend {
	if len(dataset.Categories) > 0 {
		return domain.NewLegend(dataset.Categories)
	}
	return domain.NewLegend(domain.DefaultCategories())
}

// Ask ranks facts and related points for a query.
func (s *KnowledgeService) Ask(query string) domain.QueryResult {
	logger.Section("Knowledge Query")

	s.mu.RLock()
	session := s.session
	result := session.Query(query)
	s.mu.RUnlock()

	s.mu.Lock()
	// A scope reset during the query discards the answer.
	if s.session == session {
		session.remember(result)
	}
	s.mu.Unlock()

	return result
}

// SearchPoints ranks points directly.
func (s *KnowledgeService) SearchPoints(query string) []domain.ScoredPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.SearchPoints(query)
}

// RandomFact answers with one random fact.
func (s *KnowledgeService) RandomFact() domain.QueryResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.RandomFact()
}

// LastAnswer returns the answer to the most recent searchable query.
func (s *KnowledgeService) LastAnswer() (domain.QueryResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.LastAnswer()
}

// State returns the session state.
func (s *KnowledgeService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.State()
}

// SessionID identifies the current session.
func (s *KnowledgeService) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.ID()
}

// Facts returns the current fact index.
func (s *KnowledgeService) Facts() []domain.IndexedFact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Facts()
}

// Points returns the points of the active scope.
func (s *KnowledgeService) Points() []domain.PointOfInterest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Points()
}

// Point returns one point of the active scope.
func (s *KnowledgeService) Point(id string) (domain.PointOfInterest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Point(id)
}

// Categories returns the legend categories.
func (s *KnowledgeService) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.legend.Categories()
}

// RecordVisit marks a point as visited. Rewards of newly completed
// missions go to the awarder; the visit stays recorded if awarding fails.
func (s *KnowledgeService) RecordVisit(ctx context.Context, pointID string) (domain.VisitResult, error) {
	s.mu.Lock()
	result, err := s.session.RecordVisit(pointID)
	awarder := s.awarder
	s.mu.Unlock()
	if err != nil {
		return domain.VisitResult{}, err
	}

	if err := award(ctx, awarder, result.Awarded); err != nil {
		return result, fmt.Errorf("award missions: %w", err)
	}
	return result, nil
}

// Missions returns the missions of the active scope.
func (s *KnowledgeService) Missions() []domain.MissionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Missions()
}

// PointQuiz returns the category quiz for a point.
func (s *KnowledgeService) PointQuiz(pointID string) (domain.PointQuiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.PointQuiz(pointID)
}

// AnswerPointQuiz records the first answer to a point quiz.
func (s *KnowledgeService) AnswerPointQuiz(
	ctx context.Context, pointID, choice string,
) (domain.PointQuizAnswer, error) {
	s.mu.Lock()
	answer, err := s.session.AnswerPointQuiz(pointID, choice)
	awarder := s.awarder
	s.mu.Unlock()
	if err != nil {
		return answer, err
	}

	if err := award(ctx, awarder, answer.Awarded); err != nil {
		return answer, fmt.Errorf("award quiz: %w", err)
	}
	return answer, nil
}

func award(ctx context.Context, awarder Awarder, points int) error {
	if awarder == nil || points <= 0 {
		return nil
	}
	_, err := awarder.Award(ctx, points)
	return err
}

// Lessons lists the lessons of the dataset.
func (s *KnowledgeService) Lessons() []domain.LessonSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LessonSummary, len(s.dataset.Lessons))
	for i, l := range s.dataset.Lessons {
		out[i] = domain.LessonSummary{ID: l.ID, Title: l.Title, Points: len(l.Points)}
	}
	return out
}

// Lesson returns one lesson of the dataset.
func (s *KnowledgeService) Lesson(id string) (domain.LessonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lesson, ok := findLesson(s.dataset.Lessons, id)
	if !ok {
		return domain.LessonRecord{}, fmt.Errorf("%w: %s", domain.ErrUnknownLesson, id)
	}
	return lesson, nil
}

// Scope returns the active lesson id, "" meaning all lessons.
func (s *KnowledgeService) Scope() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scope
}

// SelectLesson changes the lesson scope. An empty id selects all lessons.
// The session is reset even when the scope is unchanged.
func (s *KnowledgeService) SelectLesson(lessonID string) error {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	s.mu.RLock()
	dataset := s.dataset
	legend := s.legend
	s.mu.RUnlock()

	lessons, err := scopeLessons(dataset, lessonID)
	if err != nil {
		return err
	}
	next := NewSession(lessons, legend, s.opts...)

	s.mu.Lock()
	s.session = next
	s.scope = lessonID
	s.mu.Unlock()

	logger.Info("Lesson scope: %q (%d lessons)", lessonID, len(lessons))
	return nil
}

// ReplaceLessons swaps in a new dataset, keeping the current scope when
// the lesson still exists and falling back to all lessons otherwise.
func (s *KnowledgeService) ReplaceLessons(dataset *domain.Dataset) {
	if dataset == nil {
		dataset = &domain.Dataset{}
	}
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	s.mu.RLock()
	scope := s.scope
	s.mu.RUnlock()

	lessons, err := scopeLessons(dataset, scope)
	if err != nil {
		logger.Warn("Lesson %q no longer in dataset, using all lessons", scope)
		scope = ""
		lessons = dataset.Lessons
	}
	legend := legendFor(dataset)
	next := NewSession(lessons, legend, s.opts...)

	s.mu.Lock()
	s.dataset = dataset
	s.legend = legend
	s.scope = scope
	s.session = next
	s.mu.Unlock()

	logger.Info("Dataset replaced: %d lessons", len(dataset.Lessons))
}

func scopeLessons(dataset *domain.Dataset, lessonID string) ([]domain.LessonRecord, error) {
	if lessonID == "" {
		return dataset.Lessons, nil
	}
	for _, l := range dataset.Lessons {
		if l.ID == lessonID {
			return []domain.LessonRecord{l}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownLesson, lessonID)
}
