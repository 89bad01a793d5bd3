package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/khareeta/internal/core/domain"
	"github.com/custodia-labs/khareeta/internal/core/ports/driven"
	"github.com/custodia-labs/khareeta/internal/core/ports/driving"
	"github.com/custodia-labs/khareeta/internal/logger"
	"github.com/custodia-labs/khareeta/internal/textmatch"
)

// Ensure MediaService implements the interface.
var _ driving.MediaService = (*MediaService)(nil)

// imageQuerySuffix narrows remote image searches to Egypt.
const imageQuerySuffix = " Egypt"

// categoryImageHints are words that mark an image as fitting a category.
var categoryImageHints = map[string][]string{
	domain.CategoryMinerals:       {"ذهب", "فوسفات", "حديد", "نحاس", "منجنيز", "رمال", "جرانيت", "تعدين", "منجم"},
	domain.CategoryEnergyNonRenew: {"غاز", "بترول", "نفط", "حقل"},
	domain.CategoryEnergyRenew:    {"شمس", "شمسي", "رياح", "كهرومائي", "بنبان", "جبل الزيت", "طاقة"},
	domain.CategoryFreshWater:     {"نيل", "نهر", "بحيره", "مياه", "سد", "قناطر"},
	domain.CategorySaltyWater:     {"بحر", "بحيره", "تحليه", "مياه مالحه"},
	domain.CategoryProjects:       {"مشروع", "مدينه", "قناه", "محطه", "ميناء", "قطار", "كوبري"},
}

// MediaService finds images for points: remote search through an
// ImageSearcher with a bounded LRU cache, and local picks from a pool.
type MediaService struct {
	searcher driven.ImageSearcher
	cache    *lru.Cache[string, []domain.Image]
	cfg      domain.MediaConfig
	seed     SeedFunc
}

// NewMediaService creates a media service. The searcher may be nil.
func NewMediaService(searcher driven.ImageSearcher, cfg domain.MediaConfig) (*MediaService, error) {
	defaults := domain.DefaultMediaConfig()
	if cfg.ImageCacheSize <= 0 {
		cfg.ImageCacheSize = defaults.ImageCacheSize
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.MaxImages <= 0 {
		cfg.MaxImages = defaults.MaxImages
	}

	cache, err := lru.New[string, []domain.Image](cfg.ImageCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}
	return &MediaService{
		searcher: searcher,
		cache:    cache,
		cfg:      cfg,
		seed:     StableSeed,
	}, nil
}

// ImageQuery returns the base search query for a point: its media query,
// else its name, with whitespace collapsed.
func ImageQuery(point domain.PointOfInterest) string {
	q := point.MediaQuery
	if strings.TrimSpace(q) == "" {
		q = point.Name
	}
	return strings.Join(strings.Fields(q), " ")
}

// PointImages searches remote images for a point. Results are cached per
// normalized query; empty results are not cached. Callers get their own
// copy of cached results. Search failures degrade to no images.
func (s *MediaService) PointImages(ctx context.Context, point domain.PointOfInterest) ([]domain.Image, error) {
	if s.searcher == nil {
		return nil, domain.ErrImageSearchUnavailable
	}

	base := ImageQuery(point)
	if base == "" {
		return []domain.Image{}, nil
	}
	key := textmatch.Normalize(base)
	if cached, ok := s.cache.Get(key); ok {
		logger.Debug("Image cache hit: %q", key)
		return slices.Clone(cached), nil
	}
	logger.Debug("Image cache miss: %q", key)

	images, err := s.searcher.SearchImages(ctx, base+imageQuerySuffix, s.cfg.PageSize)
	if err != nil {
		logger.Warn("Image search for %q failed: %v", base, err)
		return []domain.Image{}, nil
	}
	if len(images) > s.cfg.MaxImages {
		images = images[:s.cfg.MaxImages]
	}
	if len(images) > 0 {
		s.cache.Add(key, slices.Clone(images))
	}
	return images, nil
}

// CachedQueries returns the number of cached queries.
func (s *MediaService) CachedQueries() int {
	return s.cache.Len()
}

// LocalImages picks up to count images from pool for a point.
func (s *MediaService) LocalImages(point domain.PointOfInterest, pool []string, count int) []string {
	return PickImages(point, pool, count, s.seed)
}

// PickImages ranks pool entries (paths or titles) by overlap with the
// point's name, keywords and category. Tokens longer than four runes weigh
// 3, shorter ones 2, and each category hint found adds 4. Ties keep pool
// order. When nothing scores, picks start at a seed-derived offset.
func PickImages(point domain.PointOfInterest, pool []string, count int, seed SeedFunc) []string {
	if len(pool) == 0 || count <= 0 {
		return []string{}
	}
	if seed == nil {
		seed = StableSeed
	}

	var tokens []string
	for _, t := range strings.Fields(textmatch.Normalize(
		point.Name + " " + strings.Join(point.Keywords, " ") + " " + point.Type,
	)) {
		if utf8.RuneCountInString(t) > 1 {
			tokens = append(tokens, t)
		}
	}
	hints := make([]string, 0, len(categoryImageHints[point.Type]))
	for _, h := range categoryImageHints[point.Type] {
		hints = append(hints, textmatch.Normalize(h))
	}

	ranked := textmatch.Rank(pool, func(img string) int {
		hay := textmatch.Normalize(img)
		score := 0
		for _, t := range tokens {
			if strings.Contains(hay, t) {
				if utf8.RuneCountInString(t) > 4 {
					score += 3
				} else {
					score += 2
				}
			}
		}
		for _, h := range hints {
			if strings.Contains(hay, h) {
				score += 4
			}
		}
		return score
	}, count)
	if len(ranked) > 0 {
		return dedupe(textmatch.Items(ranked))
	}

	base := seed(point.SeedKey())
	n := min(count, len(pool))
	picks := make([]string, 0, n)
	for i := 0; i < n; i++ {
		picks = append(picks, pool[(base+i)%len(pool)])
	}
	return dedupe(picks)
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
