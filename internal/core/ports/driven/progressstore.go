package driven

import (
	"context"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// ProgressStore persists the progress snapshot as a single key-value entry.
// Every Save replaces the whole snapshot; there are no partial updates.
type ProgressStore interface {
	// Load returns the saved snapshot.
	// Returns domain.ErrNotFound if nothing was saved yet.
	Load(ctx context.Context) (*domain.Progress, error)

	// Save replaces the snapshot.
	Save(ctx context.Context, progress domain.Progress) error

	// Reset deletes the snapshot.
	Reset(ctx context.Context) error
}
