package driving

import (
	"context"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// ProgressService manages the persisted progress snapshot.
type ProgressService interface {
	// Get returns the current progress.
	Get(ctx context.Context) (domain.Progress, error)

	// Award adds points to the total.
	Award(ctx context.Context, points int) (domain.Progress, error)

	// SetLessonProgress patches one lesson's progress and makes it the last lesson.
	SetLessonProgress(ctx context.Context, lessonID string, patch domain.LessonProgressPatch) (domain.Progress, error)

	// MarkCompleted marks a lesson as completed.
	MarkCompleted(ctx context.Context, lessonID string) (domain.Progress, error)

	// ToggleTheme switches between light and dark themes.
	ToggleTheme(ctx context.Context) (domain.Progress, error)

	// GradeMCQ grades a lesson quiz and records the answers.
	GradeMCQ(ctx context.Context, lessonID string, answers map[string]int) (domain.MCQResult, error)

	// Achievements returns level and badges for the current points.
	Achievements(ctx context.Context) (domain.Achievements, error)

	// Reset discards all progress.
	Reset(ctx context.Context) (domain.Progress, error)
}
