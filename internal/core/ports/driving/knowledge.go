package driving

import (
	"context"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// KnowledgeService answers questions about the lessons in the active scope
// and tracks the map session (visits, missions, point quizzes).
//
// Query operations never fail: empty or unmatched queries return empty
// results with a distinguishing Outcome.
type KnowledgeService interface {
	// Ask ranks facts and related points for a free-text question.
	Ask(query string) domain.QueryResult

	// SearchPoints ranks points directly by their searchable text.
	SearchPoints(query string) []domain.ScoredPoint

	// RandomFact returns one random fact from the index.
	RandomFact() domain.QueryResult

	// LastAnswer returns the answer to the most recent searchable query.
	LastAnswer() (domain.QueryResult, bool)

	// State returns the query session state.
	State() domain.SessionState

	// Facts returns the current fact index in build order.
	Facts() []domain.IndexedFact

	// Points returns the points of the active scope.
	Points() []domain.PointOfInterest

	// Point returns one point of the active scope.
	Point(id string) (domain.PointOfInterest, error)

	// Categories returns the map legend.
	Categories() []domain.Category

	// RecordVisit marks a point as visited and awards newly completed missions.
	RecordVisit(ctx context.Context, pointID string) (domain.VisitResult, error)

	// Missions returns the missions of the active scope with their progress.
	Missions() []domain.MissionStatus

	// PointQuiz returns the category quiz for a point.
	PointQuiz(pointID string) (domain.PointQuiz, error)

	// AnswerPointQuiz records the first answer to a point quiz.
	AnswerPointQuiz(ctx context.Context, pointID, choice string) (domain.PointQuizAnswer, error)

	// Lessons lists the lessons of the dataset.
	Lessons() []domain.LessonSummary

	// Lesson returns one lesson of the dataset.
	Lesson(id string) (domain.LessonRecord, error)

	// Scope returns the active lesson id, or "" for all lessons.
	Scope() string

	// SelectLesson changes the lesson scope and resets the session.
	SelectLesson(lessonID string) error
}
