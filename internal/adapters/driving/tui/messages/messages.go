// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// AnswerReady carries the answer to a question back to the model.
type AnswerReady struct {
	Result domain.QueryResult
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAsk is the question input and answer view.
	ViewAsk
	// ViewLessons picks the lesson scope.
	ViewLessons
	// ViewPoint shows one map point with its quiz.
	ViewPoint
	// ViewProgress shows points, level and badges.
	ViewProgress
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAsk:
		return "ask"
	case ViewLessons:
		return "lessons"
	case ViewPoint:
		return "point"
	case ViewProgress:
		return "progress"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// LessonsLoaded carries the lesson list and the active scope.
type LessonsLoaded struct {
	Lessons []domain.LessonSummary
	Scope   string
}

// LessonSelected signals the lesson scope changed.
type LessonSelected struct {
	LessonID string
	Err      error
}

// PointSelected signals a map point was opened.
type PointSelected struct {
	PointID string
}

// PointLoaded carries a point and its category quiz.
type PointLoaded struct {
	Point domain.PointOfInterest
	Quiz  domain.PointQuiz
	Err   error
}

// VisitRecorded carries the outcome of visiting a point.
type VisitRecorded struct {
	Result domain.VisitResult
	Err    error
}

// QuizAnswered carries the outcome of answering a point quiz.
type QuizAnswered struct {
	Answer domain.PointQuizAnswer
	Err    error
}

// ProgressLoaded carries the child's achievements.
type ProgressLoaded struct {
	Achievements domain.Achievements
	Theme        domain.Theme
	Err          error
}
