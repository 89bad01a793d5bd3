package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/ports/driven"
	"github.com/custodia-labs/khareeta/internal/core/ports/driving"
	"github.com/custodia-labs/khareeta/internal/logger"
)

// Ensure ProgressService implements the interfaces.
var (
	_ driving.ProgressService = (*ProgressService)(nil)
	_ Awarder                 = (*ProgressService)(nil)
)

// MCQ scoring.
const (
	MCQPointsPerAnswer = 10
	MCQPerfectBonus    = 10
)

// ProgressService reads and writes the progress snapshot. Every mutation
// loads the snapshot, applies the change and saves the whole snapshot.
type ProgressService struct {
	mu      sync.Mutex
	store   driven.ProgressStore
	lessons []domain.LessonRecord
	now     func() time.Time
}

// NewProgressService creates a progress service. Lessons seed the initial
// snapshot and supply MCQ answer keys.
func NewProgressService(store driven.ProgressStore, lessons []domain.LessonRecord) *ProgressService {
	return &ProgressService{
		store:   store,
		lessons: lessons,
		now:     time.Now,
	}
}

// SetLessons replaces the lessons after a dataset reload.
func (s *ProgressService) SetLessons(lessons []domain.LessonRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessons = lessons
}

// Get returns the current progress, or the initial progress if none is saved.
func (s *ProgressService) Get(ctx context.Context) (domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *ProgressService) load(ctx context.Context) (domain.Progress, error) {
	p, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewProgress(s.lessons), nil
	}
	if err != nil {
		return domain.Progress{}, fmt.Errorf("load progress: %w", err)
	}
	if p.Lessons == nil {
		p.Lessons = make(map[string]domain.LessonProgress)
	}
	if p.Theme == "" {
		p.Theme = domain.ThemeLight
	}
	return *p, nil
}

// update applies fn to the snapshot and saves it with a new revision.
func (s *ProgressService) update(ctx context.Context, fn func(*domain.Progress) error) (domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx)
	if err != nil {
		return domain.Progress{}, err
	}
	if err := fn(&p); err != nil {
		return domain.Progress{}, err
	}
	p.Revision = uuid.NewString()
	p.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, p); err != nil {
		return domain.Progress{}, fmt.Errorf("save progress: %w", err)
	}
	return p, nil
}

// Award adds points to the total.
func (s *ProgressService) Award(ctx context.Context, points int) (domain.Progress, error) {
	if points < 0 {
		return domain.Progress{}, fmt.Errorf("%w: negative award %d", domain.ErrInvalidInput, points)
	}
	logger.Debug("Award %d points", points)
	return s.update(ctx, func(p *domain.Progress) error {
		p.Points += points
		return nil
	})
}

// SetLessonProgress patches a lesson's progress and makes it the last lesson.
func (s *ProgressService) SetLessonProgress(
	ctx context.Context, lessonID string, patch domain.LessonProgressPatch,
) (domain.Progress, error) {
	if lessonID == "" {
		return domain.Progress{}, fmt.Errorf("%w: empty lesson id", domain.ErrInvalidInput)
	}
	return s.update(ctx, func(p *domain.Progress) error {
		p.Lessons[lessonID] = patch.Apply(p.Lessons[lessonID])
		p.LastLessonID = lessonID
		return nil
	})
}

// MarkCompleted marks a lesson as completed.
func (s *ProgressService) MarkCompleted(ctx context.Context, lessonID string) (domain.Progress, error) {
	done := true
	return s.SetLessonProgress(ctx, lessonID, domain.LessonProgressPatch{Completed: &done})
}

// ToggleTheme switches the theme.
func (s *ProgressService) ToggleTheme(ctx context.Context) (domain.Progress, error) {
	return s.update(ctx, func(p *domain.Progress) error {
		p.Theme = p.Theme.Toggle()
		return nil
	})
}

// GradeMCQ grades answers (question id to option index) against a lesson's
// quiz. Each correct answer scores MCQPointsPerAnswer. The first full-marks
// grading of a lesson awards MCQPerfectBonus; regrading never awards again.
// The answers, score and award are saved in one snapshot.
func (s *ProgressService) GradeMCQ(
	ctx context.Context, lessonID string, answers map[string]int,
) (domain.MCQResult, error) {
	s.mu.Lock()
	lesson, ok := findLesson(s.lessons, lessonID)
	s.mu.Unlock()
	if !ok {
		return domain.MCQResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownLesson, lessonID)
	}
	if len(lesson.Quiz) == 0 {
		return domain.MCQResult{}, fmt.Errorf("%w: lesson %s has no quiz", domain.ErrInvalidInput, lessonID)
	}

	result := domain.MCQResult{
		LessonID: lessonID,
		Answers:  make(map[string]int, len(answers)),
		Max:      len(lesson.Quiz) * MCQPointsPerAnswer,
	}
	for _, q := range lesson.Quiz {
		choice, answered := answers[q.ID]
		if !answered {
			continue
		}
		result.Answers[q.ID] = choice
		if choice == q.Answer {
			result.Score += MCQPointsPerAnswer
		}
	}
	result.Perfect = result.Score == result.Max

	_, err := s.update(ctx, func(p *domain.Progress) error {
		score := result.Score
		lp := domain.LessonProgressPatch{
			MCQ:      result.Answers,
			MCQScore: &score,
		}.Apply(p.Lessons[lessonID])
		if result.Perfect && !lp.MCQRewarded {
			lp.MCQRewarded = true
			result.Awarded = MCQPerfectBonus
		}
		p.Lessons[lessonID] = lp
		p.LastLessonID = lessonID
		p.Points += result.Awarded
		return nil
	})
	if err != nil {
		return domain.MCQResult{}, err
	}

	logger.Debug("MCQ %s: %d/%d, awarded %d", lessonID, result.Score, result.Max, result.Awarded)
	return result, nil
}

// Achievements returns level and badges for the saved points.
func (s *ProgressService) Achievements(ctx context.Context) (domain.Achievements, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return domain.Achievements{}, err
	}
	return domain.AchievementsFor(p.Points), nil
}

// Reset deletes the snapshot and returns the initial progress.
func (s *ProgressService) Reset(ctx context.Context) (domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Reset(ctx); err != nil {
		return domain.Progress{}, fmt.Errorf("reset progress: %w", err)
	}
	logger.Info("Progress reset")
	return domain.NewProgress(s.lessons), nil
}

func findLesson(lessons []domain.LessonRecord, id string) (domain.LessonRecord, bool) {
	for _, l := range lessons {
		if l.ID == id {
			return l, true
		}
	}
	return domain.LessonRecord{}, false
}
