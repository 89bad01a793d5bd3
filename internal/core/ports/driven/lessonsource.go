package driven

import (
	"context"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// LessonSource loads the static lesson dataset.
type LessonSource interface {
	// Load reads and decodes the dataset.
	// Returns domain.ErrNoLessons if the dataset holds no lessons.
	Load(ctx context.Context) (*domain.Dataset, error)

	// Location describes where the dataset comes from (file path or "embedded").
	Location() string
}
