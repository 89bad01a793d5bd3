package driving

import (
	"context"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// MediaService finds images for points.
type MediaService interface {
	// PointImages searches remote images for a point, cached per query.
	PointImages(ctx context.Context, point domain.PointOfInterest) ([]domain.Image, error)

	// LocalImages picks the best matching local images from a pool.
	LocalImages(point domain.PointOfInterest, pool []string, count int) []string
}
