package driven

import (
	"context"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// ImageSearcher finds child-safe images for a free-text query.
// Backed by the Openverse API.
type ImageSearcher interface {
	// SearchImages returns at most limit unique, child-safe images.
	SearchImages(ctx context.Context, query string, limit int) ([]domain.Image, error)
}
